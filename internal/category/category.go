package category

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

// Categoria is a named article classifier.
type Categoria struct {
	ID     int64  `json:"id_categoria"`
	Nombre string `json:"nombre_categoria"`
}

// Store is the persistence boundary for category CRUD.
type Store interface {
	List(ctx context.Context) ([]Categoria, error)
	Get(ctx context.Context, id int64) (*Categoria, error)
	Create(ctx context.Context, nombre string) (int64, error)
	Update(ctx context.Context, id int64, nombre string) error
	Delete(ctx context.Context, id int64) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) List(ctx context.Context) ([]Categoria, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_categoria, nombre_categoria FROM categorias ORDER BY id_categoria`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener las categorías.", err)
	}
	defer rows.Close()

	var categorias []Categoria
	for rows.Next() {
		var cat Categoria
		if err := rows.Scan(&cat.ID, &cat.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener las categorías.", err)
		}
		categorias = append(categorias, cat)
	}
	return categorias, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id int64) (*Categoria, error) {
	var cat Categoria
	err := s.pool.QueryRow(ctx,
		`SELECT id_categoria, nombre_categoria FROM categorias WHERE id_categoria = $1`, id).
		Scan(&cat.ID, &cat.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Categoría no encontrada.")
		}
		return nil, apperr.Internal("Error al obtener la categoría.", err)
	}
	return &cat, nil
}

func (s *PGStore) Create(ctx context.Context, nombre string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categorias (nombre_categoria) VALUES ($1) RETURNING id_categoria`, nombre).
		Scan(&id)
	if err != nil {
		return 0, apperr.Internal("Error al crear la categoría.", err)
	}
	return id, nil
}

func (s *PGStore) Update(ctx context.Context, id int64, nombre string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categorias SET nombre_categoria = $1 WHERE id_categoria = $2`, nombre, id)
	if err != nil {
		return apperr.Internal("Error al actualizar la categoría.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Categoría no encontrada.")
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM categorias WHERE id_categoria = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar la categoría.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Categoría no encontrada.")
	}
	return nil
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type categoriaRequest struct {
	Nombre string `json:"nombre_categoria" validate:"required"`
}

// List handles GET /categorias.
func (h *Handler) List(c echo.Context) error {
	categorias, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}
	if categorias == nil {
		categorias = []Categoria{}
	}
	return c.JSON(http.StatusOK, categorias)
}

// Get handles GET /categorias/:id.
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	cat, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Create handles POST /categorias.
func (h *Handler) Create(c echo.Context) error {
	var req categoriaRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Falta el campo requerido: nombre_categoria.")
	}

	id, err := h.store.Create(c.Request().Context(), req.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id_categoria": id,
		"mensaje":      "Categoría creada exitosamente.",
	})
}

// Update handles PUT /categorias/:id.
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req categoriaRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Falta el campo requerido: nombre_categoria.")
	}

	if err := h.store.Update(c.Request().Context(), id, req.Nombre); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Categoría actualizada exitosamente."})
}

// Delete handles DELETE /categorias/:id.
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Categoría eliminada exitosamente."})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Identificador inválido.")
	}
	return id, nil
}
