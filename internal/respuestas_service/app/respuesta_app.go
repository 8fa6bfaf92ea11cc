package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

// SubjectRespuestaCreada is the broker subject notified after each
// successful write.
const SubjectRespuestaCreada = "respuestas.creada"

// EventPublisher publishes domain events. Publishing is best-effort; a
// failure never fails the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Application provides the reply operations: submit and list.
type Application struct {
	usuarioRepo   domain.UsuarioRepository
	respuestaRepo domain.RespuestaRepository
	events        EventPublisher
	logger        *slog.Logger
}

// NewApplication creates a new Application instance. events may be nil when
// no broker is configured.
func NewApplication(
	usuarioRepo domain.UsuarioRepository,
	respuestaRepo domain.RespuestaRepository,
	events EventPublisher,
	logger *slog.Logger,
) *Application {
	return &Application{
		usuarioRepo:   usuarioRepo,
		respuestaRepo: respuestaRepo,
		events:        events,
		logger:        logger,
	}
}

// EnviarRespuestaInput is the validated-at-the-service input for a new reply.
type EnviarRespuestaInput struct {
	AlertaID          string
	RemitenteUID      string
	Mensaje           string
	DestinatarioPhone string
	RespuestaCitadaID *string
}

type respuestaCreadaEvent struct {
	ID              string `json:"id"`
	AlertaID        string `json:"alertaId"`
	RemitenteUID    string `json:"remitenteUid"`
	DestinatarioUID string `json:"destinatarioUid"`
}

// EnviarRespuesta validates the input, resolves sender and recipient, and
// persists a new reply. Validation runs before any I/O; a missing sender or
// recipient surfaces as the specific not-found error and performs no write.
func (a *Application) EnviarRespuesta(ctx context.Context, input EnviarRespuestaInput) (*domain.Respuesta, error) {
	mensaje := strings.TrimSpace(input.Mensaje)

	var missing []string
	if input.AlertaID == "" {
		missing = append(missing, "alertaId")
	}
	if input.RemitenteUID == "" {
		missing = append(missing, "remitenteUid")
	}
	if mensaje == "" {
		missing = append(missing, "mensaje")
	}
	if input.DestinatarioPhone == "" {
		missing = append(missing, "destinatarioPhone")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	remitente, err := a.usuarioRepo.GetByUID(ctx, input.RemitenteUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRemitenteNotFound
		}
		return nil, err
	}

	telefono := domain.NormalizePhone(input.DestinatarioPhone)
	destinatario, err := a.usuarioRepo.FindByTelefono(ctx, telefono)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDestinatarioNotFound
		}
		return nil, err
	}

	respuesta := domain.NewRespuesta(
		uuid.New().String(),
		input.AlertaID,
		remitente,
		destinatario.UID,
		telefono,
		mensaje,
		input.RespuestaCitadaID,
	)

	if err := a.respuestaRepo.Insert(ctx, respuesta); err != nil {
		a.logger.ErrorContext(ctx, "Failed to persist respuesta", "error", err, "alerta_id", input.AlertaID)
		return nil, err
	}

	a.publishCreada(ctx, respuesta)
	return respuesta, nil
}

// ListarRespuestas returns all replies for an alerta in ascending timestamp
// order. No replies is an empty slice, not an error.
func (a *Application) ListarRespuestas(ctx context.Context, alertaID string) ([]*domain.Respuesta, error) {
	return a.respuestaRepo.ListByAlerta(ctx, alertaID)
}

func (a *Application) publishCreada(ctx context.Context, respuesta *domain.Respuesta) {
	if a.events == nil {
		return
	}
	payload, err := json.Marshal(respuestaCreadaEvent{
		ID:              respuesta.ID,
		AlertaID:        respuesta.AlertaID,
		RemitenteUID:    respuesta.RemitenteUID,
		DestinatarioUID: respuesta.DestinatarioUID,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to encode respuesta.creada event", "error", err, "respuesta_id", respuesta.ID)
		return
	}
	if err := a.events.Publish(ctx, SubjectRespuestaCreada, payload); err != nil {
		a.logger.WarnContext(ctx, "Failed to publish respuesta.creada event", "error", err, "respuesta_id", respuesta.ID)
	}
}
