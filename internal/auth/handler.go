package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/middleware"
	"github.com/davidrq/proyecto-blog/internal/token"
)

const (
	bcryptCost = 10
	// Registration tokens always expire after an hour regardless of the
	// configured login TTL.
	registerTTL = time.Hour
)

type Handler struct {
	store  Store
	tokens *token.Manager
	// defaultRoleID is assigned to every newly registered user.
	defaultRoleID int64
}

func NewHandler(store Store, tokens *token.Manager, defaultRoleID int64) *Handler {
	return &Handler{store: store, tokens: tokens, defaultRoleID: defaultRoleID}
}

type registerRequest struct {
	Nombre          string  `json:"nombre" validate:"required"`
	Nickname        string  `json:"nickname" validate:"required"`
	Correo          string  `json:"correo" validate:"required,email"`
	Contrasenia     string  `json:"contrasenia" validate:"required"`
	ImagenPerfil    *string `json:"imagen_perfil"`
	NumeroTelefono  *string `json:"numero_telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
}

type loginRequest struct {
	Login       string `json:"login" validate:"required"`
	Contrasenia string `json:"contrasenia" validate:"required"`
}

// Register handles POST /register.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: nombre, nickname, correo o contrasenia.")
	}

	ctx := c.Request().Context()
	taken, err := h.store.Exists(ctx, req.Nickname, req.Correo)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Validation("El nickname o correo ya están en uso.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Contrasenia), bcryptCost)
	if err != nil {
		return apperr.Internal("Error al registrar usuario.", err)
	}

	nuevo := NuevoUsuario{
		Nombre:          req.Nombre,
		Nickname:        req.Nickname,
		Correo:          req.Correo,
		Contrasenia:     string(hashed),
		ImagenPerfil:    req.ImagenPerfil,
		NumeroTelefono:  req.NumeroTelefono,
		FechaNacimiento: req.FechaNacimiento,
	}
	id, err := h.store.Create(ctx, nuevo, h.defaultRoleID)
	if err != nil {
		return err
	}

	signed, err := h.tokens.IssueWithTTL(id, registerTTL)
	if err != nil {
		return apperr.Internal("Error al registrar usuario.", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"mensaje": "Usuario registrado exitosamente.",
		"token":   signed,
		"usuario": echo.Map{
			"id_usuario": id,
			"nombre":     req.Nombre,
			"nickname":   req.Nickname,
			"correo":     req.Correo,
		},
	})
}

// Login handles POST /login.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: login y contraseña.")
	}

	perfil, err := h.store.ByLogin(c.Request().Context(), req.Login)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(perfil.Contrasenia), []byte(req.Contrasenia)) != nil {
		return apperr.Unauthorized("Contraseña incorrecta.")
	}

	signed, err := h.tokens.Issue(perfil.ID)
	if err != nil {
		return apperr.Internal("Error al iniciar sesión.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   signed,
		"usuario": perfil,
	})
}

// Profile handles GET /profile for the authenticated user.
func (h *Handler) Profile(c echo.Context) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return apperr.Unauthorized("Token inválido.")
	}

	perfil, err := h.store.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"usuario": perfil})
}
