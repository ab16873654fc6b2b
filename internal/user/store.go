package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/db"
)

// Store is the persistence boundary for user CRUD.
type Store interface {
	List(ctx context.Context) ([]Usuario, error)
	Update(ctx context.Context, id int64, params UpdateParams) error
	Delete(ctx context.Context, id int64) error
	Info(ctx context.Context, id int64) (*Info, error)
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) List(ctx context.Context) ([]Usuario, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id_usuario, nombre, nickname, correo, contrasenia,
		       imagen_perfil, numero_telefono, fecha_nacimiento, fecha_registro
		FROM usuarios
		ORDER BY id_usuario`)
	if err != nil {
		return nil, apperr.Internal("Error al obtener los usuarios.", err)
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		var u Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Nickname, &u.Correo, &u.Contrasenia,
			&u.ImagenPerfil, &u.NumeroTelefono, &u.FechaNacimiento, &u.FechaRegistro); err != nil {
			return nil, apperr.Internal("Error al obtener los usuarios.", err)
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, id int64, p UpdateParams) error {
	// Uniqueness checks exclude the row being updated.
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE nickname = $1 AND id_usuario <> $2`,
		p.Nickname, id).Scan(&count)
	if err != nil {
		return apperr.Internal("Error al actualizar el usuario.", err)
	}
	if count > 0 {
		return apperr.Conflict("El nickname ya existe. Elige uno diferente.")
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE correo = $1 AND id_usuario <> $2`,
		p.Correo, id).Scan(&count)
	if err != nil {
		return apperr.Internal("Error al actualizar el usuario.", err)
	}
	if count > 0 {
		return apperr.Conflict("El correo ya está registrado. Utiliza otro.")
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE usuarios SET
			nombre = $1,
			nickname = $2,
			correo = $3,
			contrasenia = $4,
			imagen_perfil = $5,
			numero_telefono = $6,
			fecha_nacimiento = $7::date
		WHERE id_usuario = $8`,
		p.Nombre, p.Nickname, p.Correo, p.Contrasenia,
		p.ImagenPerfil, p.NumeroTelefono, p.FechaNacimiento, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("El nickname o correo ya están en uso.")
		}
		return apperr.Internal("Error al actualizar el usuario.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Usuario no encontrado.")
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM usuarios WHERE id_usuario = $1`, id)
	if err != nil {
		return apperr.Internal("Error al eliminar el usuario.", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Usuario no encontrado.")
	}
	return nil
}

func (s *PGStore) Info(ctx context.Context, id int64) (*Info, error) {
	var info Info
	err := s.pool.QueryRow(ctx, `
		SELECT id_usuario, nombre, correo, fecha_registro
		FROM usuarios
		WHERE id_usuario = $1`, id).
		Scan(&info.ID, &info.Nombre, &info.Correo, &info.FechaRegistro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Usuario no encontrado.")
		}
		return nil, apperr.Internal("Error al obtener la información del usuario.", err)
	}
	return &info, nil
}
