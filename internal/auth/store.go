package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/db"
)

// Store is the persistence boundary for registration, login and profile.
type Store interface {
	// Exists reports whether a user with the nickname or correo is present.
	Exists(ctx context.Context, nickname, correo string) (bool, error)
	// Create inserts the user and its default role assignment in one
	// transaction and returns the generated id.
	Create(ctx context.Context, nuevo NuevoUsuario, defaultRoleID int64) (int64, error)
	// ByLogin finds a user by nickname or correo with rol and permisos.
	ByLogin(ctx context.Context, login string) (*Perfil, error)
	// Profile loads a user by id with rol and deduplicated permisos.
	Profile(ctx context.Context, id int64) (*Perfil, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Exists(ctx context.Context, nickname, correo string) (bool, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE nickname = $1 OR correo = $2`,
		nickname, correo).Scan(&count)
	if err != nil {
		return false, apperr.Internal("Error al registrar usuario.", err)
	}
	return count > 0, nil
}

func (s *PGStore) Create(ctx context.Context, nuevo NuevoUsuario, defaultRoleID int64) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, apperr.Internal("Error al registrar usuario.", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, nickname, correo, contrasenia,
		                      imagen_perfil, numero_telefono, fecha_nacimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date)
		RETURNING id_usuario`,
		nuevo.Nombre, nuevo.Nickname, nuevo.Correo, nuevo.Contrasenia,
		nuevo.ImagenPerfil, nuevo.NumeroTelefono, nuevo.FechaNacimiento).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, apperr.Validation("El nickname o correo ya están en uso.")
		}
		return 0, apperr.Internal("Error al registrar usuario.", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO usuarios_roles (id_usuario, id_rol) VALUES ($1, $2)`,
		id, defaultRoleID)
	if err != nil {
		return 0, apperr.Internal("Error al registrar usuario.", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperr.Internal("Error al registrar usuario.", err)
	}
	return id, nil
}

func (s *PGStore) ByLogin(ctx context.Context, login string) (*Perfil, error) {
	return s.perfil(ctx, `WHERE u.nickname = $1 OR u.correo = $1`, login)
}

func (s *PGStore) Profile(ctx context.Context, id int64) (*Perfil, error) {
	return s.perfil(ctx, `WHERE u.id_usuario = $1`, id)
}

// perfil loads one user row with its role name and permission ids. The
// role-permission join fans out, so permisos are deduplicated in the
// aggregate.
func (s *PGStore) perfil(ctx context.Context, where string, arg any) (*Perfil, error) {
	var p Perfil
	err := s.pool.QueryRow(ctx, `
		SELECT u.id_usuario, u.nombre, u.nickname, u.correo, u.contrasenia,
		       u.imagen_perfil, u.numero_telefono, u.fecha_nacimiento, u.fecha_registro,
		       MIN(r.nombre_rol) AS rol,
		       COALESCE(ARRAY_AGG(DISTINCT rp.id_permiso) FILTER (WHERE rp.id_permiso IS NOT NULL), '{}') AS permisos
		FROM usuarios u
		LEFT JOIN usuarios_roles ur ON u.id_usuario = ur.id_usuario
		LEFT JOIN roles r ON ur.id_rol = r.id_rol
		LEFT JOIN roles_permisos rp ON r.id_rol = rp.id_rol
		`+where+`
		GROUP BY u.id_usuario`, arg).
		Scan(&p.ID, &p.Nombre, &p.Nickname, &p.Correo, &p.Contrasenia,
			&p.ImagenPerfil, &p.NumeroTelefono, &p.FechaNacimiento, &p.FechaRegistro,
			&p.Rol, &p.Permisos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Usuario no encontrado.")
		}
		return nil, apperr.Internal("Error al obtener usuario.", err)
	}
	if p.Permisos == nil {
		p.Permisos = []int64{}
	}
	return &p, nil
}
