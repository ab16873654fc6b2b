package rbac

// Rol is a named permission group.
type Rol struct {
	ID     int64  `json:"id_rol"`
	Nombre string `json:"nombre_rol"`
}

// Permiso is a named capability, granted only through roles.
type Permiso struct {
	ID     int64  `json:"id_permiso"`
	Nombre string `json:"nombre_permiso"`
}
