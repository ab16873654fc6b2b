package article

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

const estadoBorrador = "borrador"

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type articuloRequest struct {
	IDUsuario   int64    `json:"id_usuario" validate:"required"`
	Titulo      string   `json:"titulo" validate:"required"`
	Contenido   string   `json:"contenido" validate:"required"`
	ImagenCover *string  `json:"imagen_cover"`
	Estado      string   `json:"estado"`
	Etiquetas   *[]int64 `json:"etiquetas"`
	Categorias  *[]int64 `json:"categorias"`
}

// List handles GET /articulos.
func (h *Handler) List(c echo.Context) error {
	articulos, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}
	if articulos == nil {
		articulos = []Resumen{}
	}
	return c.JSON(http.StatusOK, articulos)
}

// Get handles GET /articulos/:id_articulo.
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c.Param("id_articulo"))
	if err != nil {
		return err
	}
	detalle, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detalle)
}

// Create handles POST /articulos.
func (h *Handler) Create(c echo.Context) error {
	var req articuloRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: id_usuario, titulo y contenido.")
	}

	estado := req.Estado
	if estado == "" {
		estado = estadoBorrador
	}

	params := CreateParams{
		IDUsuario:   req.IDUsuario,
		Titulo:      req.Titulo,
		Contenido:   req.Contenido,
		ImagenCover: req.ImagenCover,
		Estado:      estado,
	}
	if req.Etiquetas != nil {
		params.Etiquetas = *req.Etiquetas
	}
	if req.Categorias != nil {
		params.Categorias = *req.Categorias
	}

	id, err := h.store.Create(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id_articulo": id,
		"mensaje":     "Artículo creado exitosamente.",
	})
}

// Update handles PUT /articulos/:id_articulo. Scalar fields are rewritten wholesale;
// etiquetas/categorias follow replace-all semantics when present.
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id_articulo"))
	if err != nil {
		return err
	}

	var req articuloRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: id_usuario, titulo y contenido.")
	}

	estado := req.Estado
	if estado == "" {
		estado = estadoBorrador
	}

	params := UpdateParams{
		IDUsuario:   req.IDUsuario,
		Titulo:      req.Titulo,
		Contenido:   req.Contenido,
		ImagenCover: req.ImagenCover,
		Estado:      estado,
		Etiquetas:   req.Etiquetas,
		Categorias:  req.Categorias,
	}
	if err := h.store.Update(c.Request().Context(), id, params); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Artículo actualizado exitosamente."})
}

// Delete handles DELETE /articulos/:id_articulo.
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id_articulo"))
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Artículo eliminado exitosamente."})
}

// PorUsuario handles GET /articulos/usuario/:id_usuario.
func (h *Handler) PorUsuario(c echo.Context) error {
	id, err := parseID(c.Param("id_usuario"))
	if err != nil {
		return err
	}
	articulos, err := h.store.ListByUsuario(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if articulos == nil {
		articulos = []ConAutor{}
	}
	return c.JSON(http.StatusOK, articulos)
}

// TodosPorUsuario handles GET /articulos/usuario/todos/:id_usuario.
func (h *Handler) TodosPorUsuario(c echo.Context) error {
	id, err := parseID(c.Param("id_usuario"))
	if err != nil {
		return err
	}
	articulos, err := h.store.ListAllByUsuario(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if articulos == nil {
		articulos = []Articulo{}
	}
	return c.JSON(http.StatusOK, articulos)
}

// Etiquetas handles GET /articulos/:id_articulo/etiquetas.
func (h *Handler) Etiquetas(c echo.Context) error {
	id, err := parseID(c.Param("id_articulo"))
	if err != nil {
		return err
	}
	etiquetas, err := h.store.EtiquetasDe(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if etiquetas == nil {
		etiquetas = []EtiquetaRef{}
	}
	return c.JSON(http.StatusOK, etiquetas)
}

// PorCategoria handles GET /articulos/categoria/:id_categoria.
func (h *Handler) PorCategoria(c echo.Context) error {
	id, err := parseID(c.Param("id_categoria"))
	if err != nil {
		return err
	}
	articulos, err := h.store.ListByCategoria(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if articulos == nil {
		articulos = []PorCategoria{}
	}
	return c.JSON(http.StatusOK, articulos)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Identificador inválido.")
	}
	return id, nil
}
