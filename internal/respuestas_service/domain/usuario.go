package domain

// DefaultNombre is substituted whenever a user record carries no display
// name. Note this also replaces a legitimately empty stored name; that
// matches the established wire behavior and is pinned by tests.
const DefaultNombre = "Usuario"

// Usuario is a directory entry, read-only from this service's perspective.
// The UID is the document id, not a stored field.
type Usuario struct {
	UID      string  `json:"uid" firestore:"-"`
	Nombre   string  `json:"nombre" firestore:"nombre"`
	Avatar   *string `json:"avatar" firestore:"avatar"`
	Telefono string  `json:"telefono" firestore:"telefono"`
}

// NombreODefault returns the display name, or DefaultNombre when empty.
func (u *Usuario) NombreODefault() string {
	if u.Nombre == "" {
		return DefaultNombre
	}
	return u.Nombre
}
