package tag

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

// Etiqueta is a named article tag.
type Etiqueta struct {
	ID     int64  `json:"id_etiqueta"`
	Nombre string `json:"nombre_etiqueta"`
}

// Store is the persistence boundary for tag CRUD.
type Store interface {
	List(ctx context.Context) ([]Etiqueta, error)
	Get(ctx context.Context, id int64) (*Etiqueta, error)
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

func (s *PGStore) List(ctx context.Context) ([]Etiqueta, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_etiqueta, nombre_etiqueta FROM etiquetas ORDER BY id_etiqueta`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener las etiquetas.", err)
	}
	defer rows.Close()

	var etiquetas []Etiqueta
	for rows.Next() {
		var e Etiqueta
		if err := rows.Scan(&e.ID, &e.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener las etiquetas.", err)
		}
		etiquetas = append(etiquetas, e)
	}
	return etiquetas, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id int64) (*Etiqueta, error) {
	var e Etiqueta
	err := s.pool.QueryRow(ctx,
		`SELECT id_etiqueta, nombre_etiqueta FROM etiquetas WHERE id_etiqueta = $1`, id).
		Scan(&e.ID, &e.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Etiqueta no encontrada.")
		}
		return nil, apperr.Internal("Error al obtener la etiqueta.", err)
	}
	return &e, nil
}

func (s *PGStore) Create(ctx context.Context, nombre string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO etiquetas (nombre_etiqueta) VALUES ($1) RETURNING id_etiqueta`, nombre).
		Scan(&id)
	if err != nil {
		return 0, apperr.Internal("Error al crear la etiqueta.", err)
	}
	return id, nil
}

func (s *PGStore) Update(ctx context.Context, id int64, nombre string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE etiquetas SET nombre_etiqueta = $1 WHERE id_etiqueta = $2`, nombre, id)
	if err != nil {
		return apperr.Internal("Error al actualizar la etiqueta.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Etiqueta no encontrada.")
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM etiquetas WHERE id_etiqueta = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar la etiqueta.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Etiqueta no encontrada.")
	}
	return nil
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type etiquetaRequest struct {
	Nombre string `json:"nombre_etiqueta" validate:"required"`
}

// List handles GET /etiquetas.
func (h *Handler) List(c echo.Context) error {
	etiquetas, err := h.store.List(c.Request().Context())
	if err != nil {
		return err
	}
	if etiquetas == nil {
		etiquetas = []Etiqueta{}
	}
	return c.JSON(http.StatusOK, etiquetas)
}

// Get handles GET /etiquetas/:id.
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	e, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Create handles POST /etiquetas.
func (h *Handler) Create(c echo.Context) error {
	var req etiquetaRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: nombre_etiqueta.")
	}

	id, err := h.store.Create(c.Request().Context(), req.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id_etiqueta": id,
		"mensaje":     "Etiqueta creada exitosamente.",
	})
}

// Update handles PUT /etiquetas/:id.
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req etiquetaRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Cuerpo de la solicitud inválido.")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("Faltan campos requeridos: nombre_etiqueta.")
	}

	if err := h.store.Update(c.Request().Context(), id, req.Nombre); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Etiqueta actualizada exitosamente."})
}

// Delete handles DELETE /etiquetas/:id.
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Etiqueta eliminada exitosamente."})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Identificador inválido.")
	}
	return id, nil
}
