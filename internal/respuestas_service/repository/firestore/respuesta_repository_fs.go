package firestore

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

const respuestasCollection = "respuestas"

// FsRespuestaRepository implements domain.RespuestaRepository over the
// respuestas collection.
type FsRespuestaRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

func NewFsRespuestaRepository(client *firestore.Client, logger *slog.Logger) *FsRespuestaRepository {
	return &FsRespuestaRepository{client: client, logger: logger}
}

// Insert writes the reply as a single document keyed by its id. The
// serverTimestamp tag on Respuesta.Timestamp makes the store assign the
// write time; ordering under contention is whatever the store decides.
func (r *FsRespuestaRepository) Insert(ctx context.Context, respuesta *domain.Respuesta) error {
	_, err := r.client.Collection(respuestasCollection).Doc(respuesta.ID).Set(ctx, respuesta)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting respuesta", "error", err, "respuesta_id", respuesta.ID, "alerta_id", respuesta.AlertaID)
		return err
	}
	r.logger.InfoContext(ctx, "Respuesta inserted", "respuesta_id", respuesta.ID, "alerta_id", respuesta.AlertaID)
	return nil
}

// ListByAlerta returns replies for an alerta in ascending timestamp order.
// A document that fails to decode is logged and skipped so one malformed
// record cannot fail the whole listing.
func (r *FsRespuestaRepository) ListByAlerta(ctx context.Context, alertaID string) ([]*domain.Respuesta, error) {
	iter := r.client.Collection(respuestasCollection).
		Where("alertaId", "==", alertaID).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	respuestas := make([]*domain.Respuesta, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			r.logger.ErrorContext(ctx, "Error listing respuestas", "error", err, "alerta_id", alertaID)
			return nil, err
		}

		respuesta := &domain.Respuesta{}
		if err := snap.DataTo(respuesta); err != nil {
			r.logger.WarnContext(ctx, "Skipping undecodable respuesta document", "error", err, "doc_id", snap.Ref.ID, "alerta_id", alertaID)
			continue
		}
		respuesta.ID = snap.Ref.ID
		respuestas = append(respuestas, respuesta)
	}
	return respuestas, nil
}
