package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates that a requested document was not found.
	ErrNotFound = errors.New("resource not found")
	// ErrRemitenteNotFound indicates the sending user does not exist.
	ErrRemitenteNotFound = fmt.Errorf("remitente %w", ErrNotFound)
	// ErrDestinatarioNotFound indicates no user matches the recipient phone.
	ErrDestinatarioNotFound = fmt.Errorf("destinatario %w", ErrNotFound)
)

// ValidationError reports the required input fields that were missing or
// empty. It is raised before any I/O is performed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "faltan campos obligatorios: " + strings.Join(e.Fields, ", ")
}
