package rbac

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type rolRequest struct {
	Nombre string `json:"nombre_rol" validate:"required"`
}

type permisoRequest struct {
	Nombre string `json:"nombre_permiso" validate:"required"`
}

type asignarPermisoRequest struct {
	IDRol     int64 `json:"id_rol" validate:"required"`
	IDPermiso int64 `json:"id_permiso" validate:"required"`
}

type asignarRolRequest struct {
	IDUsuario int64 `json:"id_usuario" validate:"required"`
	IDRol     int64 `json:"id_rol" validate:"required"`
}

// ListRoles handles GET /rol.
func (h *Handler) ListRoles(c echo.Context) error {
	roles, err := h.store.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []Rol{}
	}
	return c.JSON(http.StatusOK, roles)
}

// GetRol handles GET /rol/:id.
func (h *Handler) GetRol(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	r, err := h.store.GetRol(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// CreateRol handles POST /rol.
func (h *Handler) CreateRol(c echo.Context) error {
	var req rolRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("El nombre del rol es requerido.")
	}

	id, err := h.store.CreateRol(c.Request().Context(), req.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id_rol":  id,
		"mensaje": "Rol creado exitosamente.",
	})
}

// UpdateRol handles PUT /rol/:id.
func (h *Handler) UpdateRol(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req rolRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("El nombre del rol es requerido.")
	}

	if err := h.store.UpdateRol(c.Request().Context(), id, req.Nombre); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Rol actualizado exitosamente."})
}

// DeleteRol handles DELETE /rol/:id.
func (h *Handler) DeleteRol(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.store.DeleteRol(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Rol eliminado exitosamente."})
}

// ListPermisos handles GET /permiso.
func (h *Handler) ListPermisos(c echo.Context) error {
	permisos, err := h.store.ListPermisos(c.Request().Context())
	if err != nil {
		return err
	}
	if permisos == nil {
		permisos = []Permiso{}
	}
	return c.JSON(http.StatusOK, permisos)
}

// GetPermiso handles GET /permiso/:id.
func (h *Handler) GetPermiso(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	p, err := h.store.GetPermiso(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePermiso handles POST /permiso.
func (h *Handler) CreatePermiso(c echo.Context) error {
	var req permisoRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("El nombre del permiso es requerido.")
	}

	id, err := h.store.CreatePermiso(c.Request().Context(), req.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id_permiso": id,
		"mensaje":    "Permiso creado exitosamente.",
	})
}

// UpdatePermiso handles PUT /permiso/:id.
func (h *Handler) UpdatePermiso(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req permisoRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("El nombre del permiso es requerido.")
	}

	if err := h.store.UpdatePermiso(c.Request().Context(), id, req.Nombre); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Permiso actualizado exitosamente."})
}

// DeletePermiso handles DELETE /permiso/:id.
func (h *Handler) DeletePermiso(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.store.DeletePermiso(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Permiso eliminado exitosamente."})
}

// AssignPermiso handles POST /asignar-permiso.
func (h *Handler) AssignPermiso(c echo.Context) error {
	var req asignarPermisoRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Los IDs de rol y permiso son requeridos.")
	}

	if err := h.store.AssignPermisoToRol(c.Request().Context(), req.IDRol, req.IDPermiso); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"mensaje": "Permiso asignado exitosamente al rol."})
}

// AssignRol handles POST /usuarios/asignar-rol.
func (h *Handler) AssignRol(c echo.Context) error {
	var req asignarRolRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Se requieren el id_usuario y el id_rol.")
	}

	if err := h.store.AssignRolToUsuario(c.Request().Context(), req.IDUsuario, req.IDRol); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Rol asignado al usuario exitosamente."})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Identificador inválido.")
	}
	return id, nil
}
