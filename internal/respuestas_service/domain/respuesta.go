package domain

import (
	"time"
)

// Respuesta is a single threaded reply attached to an alerta. Documents are
// immutable once written; there is no update or delete path. The firestore
// field names match the wire contract consumed by the mobile clients, so
// they stay in Spanish camelCase.
type Respuesta struct {
	ID                string    `json:"id" firestore:"id"`
	AlertaID          string    `json:"alertaId" firestore:"alertaId"`
	RemitenteUID      string    `json:"remitenteUid" firestore:"remitenteUid"`
	RemitenteNombre   string    `json:"remitenteNombre" firestore:"remitenteNombre"`
	RemitenteAvatar   *string   `json:"remitenteAvatar" firestore:"remitenteAvatar"`
	DestinatarioUID   string    `json:"destinatarioUid" firestore:"destinatarioUid"`
	DestinatarioPhone string    `json:"destinatarioPhone" firestore:"destinatarioPhone"`
	Mensaje           string    `json:"mensaje" firestore:"mensaje"`
	RespuestaCitadaID *string   `json:"respuestaCitadaId" firestore:"respuestaCitadaId"`
	Timestamp         time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

// NewRespuesta builds a reply record ready for insertion. The remitente's
// display name and avatar are snapshotted at write time; later edits to the
// user never rewrite past replies. Timestamp is left zero so the store
// assigns it on write.
func NewRespuesta(id, alertaID string, remitente *Usuario, destinatarioUID, destinatarioPhone, mensaje string, respuestaCitadaID *string) *Respuesta {
	return &Respuesta{
		ID:                id,
		AlertaID:          alertaID,
		RemitenteUID:      remitente.UID,
		RemitenteNombre:   remitente.NombreODefault(),
		RemitenteAvatar:   remitente.Avatar,
		DestinatarioUID:   destinatarioUID,
		DestinatarioPhone: destinatarioPhone,
		Mensaje:           mensaje,
		RespuestaCitadaID: respuestaCitadaID,
	}
}
