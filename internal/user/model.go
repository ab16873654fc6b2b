package user

import "time"

// Usuario is the users row. The stored hash never serializes.
type Usuario struct {
	ID              int64      `json:"id_usuario"`
	Nombre          string     `json:"nombre"`
	Nickname        string     `json:"nickname"`
	Correo          string     `json:"correo"`
	Contrasenia     string     `json:"-"`
	ImagenPerfil    *string    `json:"imagen_perfil"`
	NumeroTelefono  *string    `json:"numero_telefono"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	FechaRegistro   time.Time  `json:"fecha_registro"`
}

// Info is the reduced view returned by GET /usuarios/:id_usuario.
type Info struct {
	ID            int64     `json:"id_usuario"`
	Nombre        string    `json:"nombre"`
	Correo        string    `json:"correo"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// UpdateParams carries the full-row update for a user. Contrasenia is the
// bcrypt hash; handlers hash before calling the store.
type UpdateParams struct {
	Nombre          string
	Nickname        string
	Correo          string
	Contrasenia     string
	ImagenPerfil    *string
	NumeroTelefono  *string
	FechaNacimiento *string
}
