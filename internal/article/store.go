package article

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

// Store is the persistence boundary for articles and their join tables.
type Store interface {
	List(ctx context.Context) ([]Resumen, error)
	Get(ctx context.Context, id int64) (*Detalle, error)
	// Create inserts the article and its join rows in one transaction.
	Create(ctx context.Context, p CreateParams) (int64, error)
	// Update rewrites the scalar row and, when a classifier slice is
	// non-nil, replaces that relation's join rows, all in one transaction.
	Update(ctx context.Context, id int64, p UpdateParams) error
	// Delete removes join rows and the article in one transaction.
	Delete(ctx context.Context, id int64) error

	ListByUsuario(ctx context.Context, idUsuario int64) ([]ConAutor, error)
	ListAllByUsuario(ctx context.Context, idUsuario int64) ([]Articulo, error)
	EtiquetasDe(ctx context.Context, idArticulo int64) ([]EtiquetaRef, error)
	ListByCategoria(ctx context.Context, idCategoria int64) ([]PorCategoria, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) List(ctx context.Context) ([]Resumen, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id_articulo, a.fecha_publicacion, a.titulo, a.contenido,
		       u.nombre AS nombre_usuario
		FROM articulos a
		LEFT JOIN usuarios u ON a.id_usuario = u.id_usuario
		ORDER BY a.fecha_publicacion DESC`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los artículos.", err)
	}
	defer rows.Close()

	var articulos []Resumen
	for rows.Next() {
		var r Resumen
		if err := rows.Scan(&r.ID, &r.FechaPublicacion, &r.Titulo, &r.Contenido, &r.NombreUsuario); err != nil {
			return nil, apperr.Internal("Error al obtener los artículos.", err)
		}
		articulos = append(articulos, r)
	}
	return articulos, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id int64) (*Detalle, error) {
	var d Detalle
	err := s.pool.QueryRow(ctx, `
		SELECT u.id_usuario, u.nombre,
		       a.id_articulo, a.titulo, a.contenido, a.imagen_cover,
		       a.estado, a.fecha_publicacion,
		       COALESCE((
		           SELECT json_agg(json_build_object(
		               'id_categoria', c.id_categoria,
		               'nombre_categoria', c.nombre_categoria))
		           FROM articulos_categorias ac
		           JOIN categorias c ON ac.id_categoria = c.id_categoria
		           WHERE ac.id_articulo = a.id_articulo
		       ), '[]'::json) AS categorias,
		       COALESCE((
		           SELECT json_agg(json_build_object(
		               'id_etiqueta', e.id_etiqueta,
		               'nombre_etiqueta', e.nombre_etiqueta))
		           FROM articulos_etiquetas ae
		           JOIN etiquetas e ON ae.id_etiqueta = e.id_etiqueta
		           WHERE ae.id_articulo = a.id_articulo
		       ), '[]'::json) AS etiquetas
		FROM usuarios u
		JOIN articulos a ON u.id_usuario = a.id_usuario
		WHERE a.id_articulo = $1`, id).
		Scan(&d.IDUsuario, &d.Nombre, &d.ID, &d.Titulo, &d.Contenido,
			&d.ImagenCover, &d.Estado, &d.FechaPublicacion, &d.Categorias, &d.Etiquetas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Artículo no encontrado.")
		}
		return nil, apperr.Internal("Error al obtener el artículo.", err)
	}
	return &d, nil
}

func (s *PGStore) Create(ctx context.Context, p CreateParams) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, apperr.Internal("Error al crear el artículo.", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO articulos (id_usuario, titulo, contenido, imagen_cover, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_articulo`,
		p.IDUsuario, p.Titulo, p.Contenido, p.ImagenCover, p.Estado).Scan(&id)
	if err != nil {
		return 0, apperr.Internal("Error al crear el artículo.", err)
	}

	if err := insertJoins(ctx, tx, id, p.Etiquetas, p.Categorias); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperr.Internal("Error al crear el artículo.", err)
	}
	return id, nil
}

func (s *PGStore) Update(ctx context.Context, id int64, p UpdateParams) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperr.Internal("Error al actualizar el artículo.", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE articulos SET
			id_usuario = $1,
			titulo = $2,
			contenido = $3,
			imagen_cover = $4,
			estado = $5
		WHERE id_articulo = $6`,
		p.IDUsuario, p.Titulo, p.Contenido, p.ImagenCover, p.Estado, id)
	if err != nil {
		return apperr.Internal("Error al actualizar el artículo.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Artículo no encontrado.")
	}

	// Replace-all semantics: a supplied slice, even empty, rewrites the
	// relation; an absent one is left alone.
	if p.Etiquetas != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM articulos_etiquetas WHERE id_articulo = $1`, id); err != nil {
			return apperr.Internal("Error al actualizar el artículo.", err)
		}
		if err := insertJoins(ctx, tx, id, *p.Etiquetas, nil); err != nil {
			return err
		}
	}
	if p.Categorias != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM articulos_categorias WHERE id_articulo = $1`, id); err != nil {
			return apperr.Internal("Error al actualizar el artículo.", err)
		}
		if err := insertJoins(ctx, tx, id, nil, *p.Categorias); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Internal("Error al actualizar el artículo.", err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperr.Internal("Error al eliminar el artículo.", err)
	}
	defer tx.Rollback(ctx)

	// Join rows go first; there is no cascade.
	if _, err := tx.Exec(ctx,
		`DELETE FROM articulos_etiquetas WHERE id_articulo = $1`, id); err != nil {
		return apperr.Internal("Error al eliminar el artículo.", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM articulos_categorias WHERE id_articulo = $1`, id); err != nil {
		return apperr.Internal("Error al eliminar el artículo.", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM articulos WHERE id_articulo = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar el artículo.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Artículo no encontrado.")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Internal("Error al eliminar el artículo.", err)
	}
	return nil
}

func insertJoins(ctx context.Context, tx pgx.Tx, id int64, etiquetas, categorias []int64) error {
	for _, idEtiqueta := range etiquetas {
		if _, err := tx.Exec(ctx, `
			INSERT INTO articulos_etiquetas (id_articulo, id_etiqueta)
			VALUES ($1, $2)`, id, idEtiqueta); err != nil {
			return apperr.Internal("Error al asignar las etiquetas.", err)
		}
	}
	for _, idCategoria := range categorias {
		if _, err := tx.Exec(ctx, `
			INSERT INTO articulos_categorias (id_articulo, id_categoria)
			VALUES ($1, $2)`, id, idCategoria); err != nil {
			return apperr.Internal("Error al asignar las categorías.", err)
		}
	}
	return nil
}

func (s *PGStore) ListByUsuario(ctx context.Context, idUsuario int64) ([]ConAutor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id_articulo, a.id_usuario, a.titulo, a.contenido,
		       a.imagen_cover, a.estado, a.fecha_publicacion, u.nombre
		FROM articulos a
		JOIN usuarios u ON a.id_usuario = u.id_usuario
		WHERE u.id_usuario = $1`, idUsuario)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los artículos del usuario.", err)
	}
	defer rows.Close()

	var articulos []ConAutor
	for rows.Next() {
		var a ConAutor
		if err := rows.Scan(&a.ID, &a.IDUsuario, &a.Titulo, &a.Contenido,
			&a.ImagenCover, &a.Estado, &a.FechaPublicacion, &a.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener los artículos del usuario.", err)
		}
		articulos = append(articulos, a)
	}
	return articulos, rows.Err()
}

func (s *PGStore) ListAllByUsuario(ctx context.Context, idUsuario int64) ([]Articulo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id_articulo, id_usuario, titulo, contenido,
		       imagen_cover, estado, fecha_publicacion
		FROM articulos
		WHERE id_usuario = $1`, idUsuario)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los artículos del usuario.", err)
	}
	defer rows.Close()

	var articulos []Articulo
	for rows.Next() {
		var a Articulo
		if err := rows.Scan(&a.ID, &a.IDUsuario, &a.Titulo, &a.Contenido,
			&a.ImagenCover, &a.Estado, &a.FechaPublicacion); err != nil {
			return nil, apperr.Internal("Error al obtener los artículos del usuario.", err)
		}
		articulos = append(articulos, a)
	}
	return articulos, rows.Err()
}

func (s *PGStore) EtiquetasDe(ctx context.Context, idArticulo int64) ([]EtiquetaRef, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.id_etiqueta, e.nombre_etiqueta
		FROM articulos a
		JOIN articulos_etiquetas ae ON a.id_articulo = ae.id_articulo
		JOIN etiquetas e ON ae.id_etiqueta = e.id_etiqueta
		WHERE a.id_articulo = $1`, idArticulo)
	if err != nil {
		return nil, apperr.Internal("Error al obtener las etiquetas del artículo.", err)
	}
	defer rows.Close()

	var etiquetas []EtiquetaRef
	for rows.Next() {
		var e EtiquetaRef
		if err := rows.Scan(&e.ID, &e.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener las etiquetas del artículo.", err)
		}
		etiquetas = append(etiquetas, e)
	}
	return etiquetas, rows.Err()
}

func (s *PGStore) ListByCategoria(ctx context.Context, idCategoria int64) ([]PorCategoria, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id_articulo, a.titulo, a.contenido, a.imagen_cover,
		       a.estado, c.nombre_categoria
		FROM articulos a
		JOIN articulos_categorias ac ON a.id_articulo = ac.id_articulo
		JOIN categorias c ON ac.id_categoria = c.id_categoria
		WHERE c.id_categoria = $1`, idCategoria)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los artículos de la categoría.", err)
	}
	defer rows.Close()

	var articulos []PorCategoria
	for rows.Next() {
		var a PorCategoria
		if err := rows.Scan(&a.ID, &a.Titulo, &a.Contenido, &a.ImagenCover,
			&a.Estado, &a.NombreCategoria); err != nil {
			return nil, apperr.Internal("Error al obtener los artículos de la categoría.", err)
		}
		articulos = append(articulos, a)
	}
	return articulos, rows.Err()
}
