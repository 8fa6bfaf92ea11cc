package http

import (
	"time"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

// EnviarRespuestaRequestDTO is the POST /api/respuestas body.
type EnviarRespuestaRequestDTO struct {
	AlertaID          string  `json:"alertaId" validate:"required"`
	RemitenteUID      string  `json:"remitenteUid" validate:"required"`
	Mensaje           string  `json:"mensaje" validate:"required"`
	DestinatarioPhone string  `json:"destinatarioPhone" validate:"required"`
	RespuestaCitadaID *string `json:"respuestaCitadaId"`
}

// RespuestaResponseDTO is the full reply record returned after a submit.
// Timestamp is rendered as an ISO-8601 string; the store-assigned value is
// not readable in the write response, so the server's current time stands
// in, matching the stored value to within the request's duration.
type RespuestaResponseDTO struct {
	ID                string  `json:"id"`
	AlertaID          string  `json:"alertaId"`
	RemitenteUID      string  `json:"remitenteUid"`
	RemitenteNombre   string  `json:"remitenteNombre"`
	RemitenteAvatar   *string `json:"remitenteAvatar"`
	DestinatarioUID   string  `json:"destinatarioUid"`
	DestinatarioPhone string  `json:"destinatarioPhone"`
	Mensaje           string  `json:"mensaje"`
	RespuestaCitadaID *string `json:"respuestaCitadaId"`
	Timestamp         string  `json:"timestamp"`
}

// RespuestaItemDTO is one element of a GET listing.
type RespuestaItemDTO struct {
	ID                string  `json:"id"`
	RemitenteNombre   string  `json:"remitenteNombre"`
	RemitenteAvatar   *string `json:"remitenteAvatar"`
	Mensaje           string  `json:"mensaje"`
	Timestamp         string  `json:"timestamp"`
	EsMia             bool    `json:"esMia"`
	RespuestaCitadaID *string `json:"respuestaCitadaId"`
}

type enviarRespuestaResponse struct {
	Success   bool                 `json:"success"`
	Respuesta RespuestaResponseDTO `json:"respuesta"`
}

type listarRespuestasResponse struct {
	Success    bool               `json:"success"`
	Respuestas []RespuestaItemDTO `json:"respuestas"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newRespuestaResponseDTO(r *domain.Respuesta, now time.Time) RespuestaResponseDTO {
	return RespuestaResponseDTO{
		ID:                r.ID,
		AlertaID:          r.AlertaID,
		RemitenteUID:      r.RemitenteUID,
		RemitenteNombre:   r.RemitenteNombre,
		RemitenteAvatar:   r.RemitenteAvatar,
		DestinatarioUID:   r.DestinatarioUID,
		DestinatarioPhone: r.DestinatarioPhone,
		Mensaje:           r.Mensaje,
		RespuestaCitadaID: r.RespuestaCitadaID,
		Timestamp:         now.UTC().Format(time.RFC3339),
	}
}

// newRespuestaItemDTO maps a stored reply to its listing shape. Default
// substitution happens here, at the serialization boundary: an empty stored
// nombre becomes DefaultNombre, a zero timestamp becomes the current time.
func newRespuestaItemDTO(r *domain.Respuesta, userID string, now time.Time) RespuestaItemDTO {
	nombre := r.RemitenteNombre
	if nombre == "" {
		nombre = domain.DefaultNombre
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = now
	}
	return RespuestaItemDTO{
		ID:                r.ID,
		RemitenteNombre:   nombre,
		RemitenteAvatar:   r.RemitenteAvatar,
		Mensaje:           r.Mensaje,
		Timestamp:         ts.UTC().Format(time.RFC3339),
		EsMia:             r.RemitenteUID == userID,
		RespuestaCitadaID: r.RespuestaCitadaID,
	}
}
