package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

// Store is the persistence boundary for roles, permissions and their
// assignments.
type Store interface {
	ListRoles(ctx context.Context) ([]Rol, error)
	GetRol(ctx context.Context, id int64) (*Rol, error)
	CreateRol(ctx context.Context, nombre string) (int64, error)
	UpdateRol(ctx context.Context, id int64, nombre string) error
	DeleteRol(ctx context.Context, id int64) error

	ListPermisos(ctx context.Context) ([]Permiso, error)
	GetPermiso(ctx context.Context, id int64) (*Permiso, error)
	CreatePermiso(ctx context.Context, nombre string) (int64, error)
	UpdatePermiso(ctx context.Context, id int64, nombre string) error
	DeletePermiso(ctx context.Context, id int64) error

	// AssignPermisoToRol links a permission to a role. Both must exist;
	// re-assigning an existing pair is a no-op.
	AssignPermisoToRol(ctx context.Context, idRol, idPermiso int64) error
	// AssignRolToUsuario links a role to a user with the same contract.
	AssignRolToUsuario(ctx context.Context, idUsuario, idRol int64) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) ListRoles(ctx context.Context) ([]Rol, error) {
	rows, err := s.pool.Query(ctx, `SELECT id_rol, nombre_rol FROM roles ORDER BY id_rol`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los roles.", err)
	}
	defer rows.Close()

	var roles []Rol
	for rows.Next() {
		var r Rol
		if err := rows.Scan(&r.ID, &r.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener los roles.", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *PGStore) GetRol(ctx context.Context, id int64) (*Rol, error) {
	var r Rol
	err := s.pool.QueryRow(ctx,
		`SELECT id_rol, nombre_rol FROM roles WHERE id_rol = $1`, id).
		Scan(&r.ID, &r.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Rol no encontrado.")
		}
		return nil, apperr.Internal("Error al obtener el rol.", err)
	}
	return &r, nil
}

func (s *PGStore) CreateRol(ctx context.Context, nombre string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO roles (nombre_rol) VALUES ($1) RETURNING id_rol`, nombre).Scan(&id)
	if err != nil {
		return 0, apperr.Internal("Error al crear el rol.", err)
	}
	return id, nil
}

func (s *PGStore) UpdateRol(ctx context.Context, id int64, nombre string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE roles SET nombre_rol = $1 WHERE id_rol = $2`, nombre, id)
	if err != nil {
		return apperr.Internal("Error al actualizar el rol.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Rol no encontrado.")
	}
	return nil
}

func (s *PGStore) DeleteRol(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM roles WHERE id_rol = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar el rol.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Rol no encontrado.")
	}
	return nil
}

func (s *PGStore) ListPermisos(ctx context.Context) ([]Permiso, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_permiso, nombre_permiso FROM permisos ORDER BY id_permiso`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener permisos.", err)
	}
	defer rows.Close()

	var permisos []Permiso
	for rows.Next() {
		var p Permiso
		if err := rows.Scan(&p.ID, &p.Nombre); err != nil {
			return nil, apperr.Internal("Error al obtener permisos.", err)
		}
		permisos = append(permisos, p)
	}
	return permisos, rows.Err()
}

func (s *PGStore) GetPermiso(ctx context.Context, id int64) (*Permiso, error) {
	var p Permiso
	err := s.pool.QueryRow(ctx,
		`SELECT id_permiso, nombre_permiso FROM permisos WHERE id_permiso = $1`, id).
		Scan(&p.ID, &p.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Permiso no encontrado.")
		}
		return nil, apperr.Internal("Error al obtener el permiso.", err)
	}
	return &p, nil
}

func (s *PGStore) CreatePermiso(ctx context.Context, nombre string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO permisos (nombre_permiso) VALUES ($1) RETURNING id_permiso`, nombre).Scan(&id)
	if err != nil {
		return 0, apperr.Internal("Error al crear el permiso.", err)
	}
	return id, nil
}

func (s *PGStore) UpdatePermiso(ctx context.Context, id int64, nombre string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE permisos SET nombre_permiso = $1 WHERE id_permiso = $2`, nombre, id)
	if err != nil {
		return apperr.Internal("Error al actualizar el permiso.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Permiso no encontrado para actualizar.")
	}
	return nil
}

func (s *PGStore) DeletePermiso(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM permisos WHERE id_permiso = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar el permiso.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Permiso no encontrado para eliminar.")
	}
	return nil
}

func (s *PGStore) AssignPermisoToRol(ctx context.Context, idRol, idPermiso int64) error {
	if _, err := s.GetRol(ctx, idRol); err != nil {
		return err
	}
	if _, err := s.GetPermiso(ctx, idPermiso); err != nil {
		return err
	}

	// Composite PK makes re-assignment a no-op.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO roles_permisos (id_rol, id_permiso)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, idRol, idPermiso)
	if err != nil {
		return apperr.Internal("Error al asignar el permiso al rol.", err)
	}
	return nil
}

func (s *PGStore) AssignRolToUsuario(ctx context.Context, idUsuario, idRol int64) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuarios WHERE id_usuario = $1)`, idUsuario).Scan(&exists)
	if err != nil {
		return apperr.Internal("Error al asignar rol al usuario.", err)
	}
	if !exists {
		return apperr.NotFound("Usuario no encontrado.")
	}
	if _, err := s.GetRol(ctx, idRol); err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO usuarios_roles (id_usuario, id_rol)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, idUsuario, idRol)
	if err != nil {
		return apperr.Internal("Error al asignar rol al usuario.", err)
	}
	return nil
}
