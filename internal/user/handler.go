package user

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

const bcryptCost = 10

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type updateRequest struct {
	Nombre          string  `json:"nombre" validate:"required"`
	Nickname        string  `json:"nickname" validate:"required"`
	Correo          string  `json:"correo" validate:"required,email"`
	Contrasenia     string  `json:"contrasenia" validate:"required"`
	ImagenPerfil    *string `json:"imagen_perfil"`
	NumeroTelefono  *string `json:"numero_telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
}

// List handles GET /usuarios.
func (h *Handler) List(c echo.Context) error {
	usuarios, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}
	if usuarios == nil {
		usuarios = []Usuario{}
	}
	return c.JSON(http.StatusOK, usuarios)
}

// Update handles PUT /usuarios/:id_usuario. Full-row update; the password is
// re-hashed on every update.
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id_usuario"))
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: nombre, nickname, correo o contrasenia.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Contrasenia), bcryptCost)
	if err != nil {
		return apperr.Internal("Error al actualizar el usuario.", err)
	}

	params := UpdateParams{
		Nombre:          req.Nombre,
		Nickname:        req.Nickname,
		Correo:          req.Correo,
		Contrasenia:     string(hashed),
		ImagenPerfil:    req.ImagenPerfil,
		NumeroTelefono:  req.NumeroTelefono,
		FechaNacimiento: req.FechaNacimiento,
	}
	if err := h.store.Update(c.Request().Context(), id, params); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Usuario actualizado exitosamente."})
}

// Delete handles DELETE /usuarios/:id_usuario.
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id_usuario"))
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Usuario eliminado exitosamente."})
}

// Info handles GET /usuarios/:id_usuario.
func (h *Handler) Info(c echo.Context) error {
	id, err := parseID(c.Param("id_usuario"))
	if err != nil {
		return err
	}
	info, err := h.store.Info(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Identificador inválido.")
	}
	return id, nil
}
