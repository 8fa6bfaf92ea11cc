package firestore

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

const usuariosCollection = "usuarios"

// FsUsuarioRepository implements domain.UsuarioRepository over the usuarios
// collection. The directory is read-only from this service.
type FsUsuarioRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

func NewFsUsuarioRepository(client *firestore.Client, logger *slog.Logger) *FsUsuarioRepository {
	return &FsUsuarioRepository{client: client, logger: logger}
}

func (r *FsUsuarioRepository) GetByUID(ctx context.Context, uid string) (*domain.Usuario, error) {
	snap, err := r.client.Collection(usuariosCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			r.logger.WarnContext(ctx, "Usuario not found", "uid", uid)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Error getting usuario by uid", "error", err, "uid", uid)
		return nil, err
	}

	usuario := &domain.Usuario{}
	if err := snap.DataTo(usuario); err != nil {
		r.logger.ErrorContext(ctx, "Error decoding usuario document", "error", err, "uid", uid)
		return nil, err
	}
	usuario.UID = snap.Ref.ID
	return usuario, nil
}

func (r *FsUsuarioRepository) FindByTelefono(ctx context.Context, telefono string) (*domain.Usuario, error) {
	iter := r.client.Collection(usuariosCollection).
		Where("telefono", "==", telefono).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			r.logger.WarnContext(ctx, "No usuario matches telefono", "telefono", telefono)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Error querying usuario by telefono", "error", err, "telefono", telefono)
		return nil, err
	}

	usuario := &domain.Usuario{}
	if err := snap.DataTo(usuario); err != nil {
		r.logger.ErrorContext(ctx, "Error decoding usuario document", "error", err, "doc_id", snap.Ref.ID)
		return nil, err
	}
	usuario.UID = snap.Ref.ID
	return usuario, nil
}
