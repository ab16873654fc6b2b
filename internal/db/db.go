package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidrq/proyecto-blog/internal/config"
)

// Connect opens the Postgres pool with the configured bounds and verifies
// connectivity with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnIdleTime = cfg.IdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the blog schema if it is missing and seeds the base
// roles so registration's default role assignment always has a target.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id_usuario BIGSERIAL PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL,
			nickname VARCHAR(50) NOT NULL UNIQUE,
			correo VARCHAR(50) NOT NULL UNIQUE,
			contrasenia VARCHAR(255) NOT NULL,
			imagen_perfil VARCHAR(100),
			numero_telefono VARCHAR(20),
			fecha_nacimiento DATE,
			fecha_registro TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id_rol BIGSERIAL PRIMARY KEY,
			nombre_rol VARCHAR(50) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS permisos (
			id_permiso BIGSERIAL PRIMARY KEY,
			nombre_permiso VARCHAR(50) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS usuarios_roles (
			id_usuario BIGINT NOT NULL REFERENCES usuarios(id_usuario),
			id_rol BIGINT NOT NULL REFERENCES roles(id_rol),
			PRIMARY KEY (id_usuario, id_rol)
		)`,
		`CREATE TABLE IF NOT EXISTS roles_permisos (
			id_rol BIGINT NOT NULL REFERENCES roles(id_rol),
			id_permiso BIGINT NOT NULL REFERENCES permisos(id_permiso),
			PRIMARY KEY (id_rol, id_permiso)
		)`,
		`CREATE TABLE IF NOT EXISTS categorias (
			id_categoria BIGSERIAL PRIMARY KEY,
			nombre_categoria VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS etiquetas (
			id_etiqueta BIGSERIAL PRIMARY KEY,
			nombre_etiqueta VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articulos (
			id_articulo BIGSERIAL PRIMARY KEY,
			id_usuario BIGINT NOT NULL REFERENCES usuarios(id_usuario),
			titulo VARCHAR(255) NOT NULL,
			contenido TEXT NOT NULL,
			imagen_cover VARCHAR(255),
			estado VARCHAR(20) NOT NULL DEFAULT 'borrador',
			fecha_publicacion TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS articulos_categorias (
			id_articulo BIGINT NOT NULL REFERENCES articulos(id_articulo),
			id_categoria BIGINT NOT NULL REFERENCES categorias(id_categoria),
			PRIMARY KEY (id_articulo, id_categoria)
		)`,
		`CREATE TABLE IF NOT EXISTS articulos_etiquetas (
			id_articulo BIGINT NOT NULL REFERENCES articulos(id_articulo),
			id_etiqueta BIGINT NOT NULL REFERENCES etiquetas(id_etiqueta),
			PRIMARY KEY (id_articulo, id_etiqueta)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return seedRoles(ctx, pool)
}

// seedRoles inserts the base roles on an empty roles table. Registration
// assigns role 2 by default.
func seedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count); err != nil {
		return fmt.Errorf("check roles: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `
		INSERT INTO roles (id_rol, nombre_rol)
		VALUES (1, 'administrador'), (2, 'lector')`)
	if err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	// Keep the sequence ahead of the explicit seed ids.
	if _, err := pool.Exec(ctx, `SELECT setval('roles_id_rol_seq', 2, true)`); err != nil {
		return fmt.Errorf("advance roles sequence: %w", err)
	}
	return nil
}
