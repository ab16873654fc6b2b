package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/davidrq/proyecto-blog/internal/article"
	"github.com/davidrq/proyecto-blog/internal/auth"
	"github.com/davidrq/proyecto-blog/internal/category"
	appmw "github.com/davidrq/proyecto-blog/internal/middleware"
	"github.com/davidrq/proyecto-blog/internal/rbac"
	"github.com/davidrq/proyecto-blog/internal/tag"
	"github.com/davidrq/proyecto-blog/internal/token"
	"github.com/davidrq/proyecto-blog/internal/user"
)

// Handlers bundles the feature handlers wired into the router.
type Handlers struct {
	Auth       *auth.Handler
	Users      *user.Handler
	Articles   *article.Handler
	Categories *category.Handler
	Tags       *tag.Handler
	RBAC       *rbac.Handler
}

// New builds the echo router with all routes, middleware and the central
// error handler.
func New(log *slog.Logger, tokens *token.Manager, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	requireToken := appmw.RequireToken(tokens)

	// Public auth routes, rate limited against brute force.
	authGroup := e.Group("")
	authGroup.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	e.GET("/profile", h.Auth.Profile, requireToken)

	// User CRUD (register/login above handle create/auth).
	e.GET("/usuarios", h.Users.List)
	e.PUT("/usuarios/:id_usuario", h.Users.Update)
	e.DELETE("/usuarios/:id_usuario", h.Users.Delete)
	e.GET("/usuarios/:id_usuario", h.Users.Info, requireToken)

	// Roles and permissions.
	e.GET("/rol", h.RBAC.ListRoles)
	e.GET("/rol/:id", h.RBAC.GetRol)
	e.POST("/rol", h.RBAC.CreateRol)
	e.PUT("/rol/:id", h.RBAC.UpdateRol)
	e.DELETE("/rol/:id", h.RBAC.DeleteRol)

	e.GET("/permiso", h.RBAC.ListPermisos)
	e.GET("/permiso/:id", h.RBAC.GetPermiso)
	e.POST("/permiso", h.RBAC.CreatePermiso)
	e.PUT("/permiso/:id", h.RBAC.UpdatePermiso)
	e.DELETE("/permiso/:id", h.RBAC.DeletePermiso)

	e.POST("/asignar-permiso", h.RBAC.AssignPermiso)
	e.POST("/usuarios/asignar-rol", h.RBAC.AssignRol)

	// Articles, all behind the bearer gate.
	articulos := e.Group("/articulos")
	articulos.Use(requireToken)
	articulos.GET("", h.Articles.List)
	articulos.POST("", h.Articles.Create)
	articulos.GET("/:id_articulo", h.Articles.Get)
	articulos.PUT("/:id_articulo", h.Articles.Update)
	articulos.DELETE("/:id_articulo", h.Articles.Delete)
	articulos.GET("/usuario/:id_usuario", h.Articles.PorUsuario)
	articulos.GET("/usuario/todos/:id_usuario", h.Articles.TodosPorUsuario)
	articulos.GET("/:id_articulo/etiquetas", h.Articles.Etiquetas)
	articulos.GET("/categoria/:id_categoria", h.Articles.PorCategoria)

	// Categories and tags are public.
	e.GET("/categorias", h.Categories.List)
	e.GET("/categorias/:id", h.Categories.Get)
	e.POST("/categorias", h.Categories.Create)
	e.PUT("/categorias/:id", h.Categories.Update)
	e.DELETE("/categorias/:id", h.Categories.Delete)

	e.GET("/etiquetas", h.Tags.List)
	e.GET("/etiquetas/:id", h.Tags.Get)
	e.POST("/etiquetas", h.Tags.Create)
	e.PUT("/etiquetas/:id", h.Tags.Update)
	e.DELETE("/etiquetas/:id", h.Tags.Delete)

	return e
}
