package domain

import (
	"context"
)

// UsuarioRepository reads the external user directory.
type UsuarioRepository interface {
	// GetByUID returns the user whose document id is uid, or ErrNotFound.
	GetByUID(ctx context.Context, uid string) (*Usuario, error)
	// FindByTelefono returns at most one user whose telefono equals the
	// given normalized phone, or ErrNotFound.
	FindByTelefono(ctx context.Context, telefono string) (*Usuario, error)
}

// RespuestaRepository manages the respuestas collection.
type RespuestaRepository interface {
	// Insert writes a single reply keyed by its id. The store assigns the
	// timestamp on write.
	Insert(ctx context.Context, respuesta *Respuesta) error
	// ListByAlerta returns all replies for the alerta ordered by ascending
	// timestamp. An alerta with no replies yields an empty slice, not an
	// error.
	ListByAlerta(ctx context.Context, alertaID string) ([]*Respuesta, error)
}
