package auth

import "github.com/davidrq/proyecto-blog/internal/user"

// Perfil is a user with their role and permission ids collapsed on,
// as returned by login and profile.
type Perfil struct {
	user.Usuario
	Rol      *string `json:"rol"`
	Permisos []int64 `json:"permisos"`
}

// NuevoUsuario carries the fields persisted at registration. Contrasenia
// is already hashed.
type NuevoUsuario struct {
	Nombre          string
	Nickname        string
	Correo          string
	Contrasenia     string
	ImagenPerfil    *string
	NumeroTelefono  *string
	FechaNacimiento *string
}
