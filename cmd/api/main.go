package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/davidrq/proyecto-blog/internal/article"
	"github.com/davidrq/proyecto-blog/internal/auth"
	"github.com/davidrq/proyecto-blog/internal/category"
	"github.com/davidrq/proyecto-blog/internal/config"
	"github.com/davidrq/proyecto-blog/internal/db"
	"github.com/davidrq/proyecto-blog/internal/logger"
	"github.com/davidrq/proyecto-blog/internal/rbac"
	"github.com/davidrq/proyecto-blog/internal/server"
	"github.com/davidrq/proyecto-blog/internal/tag"
	"github.com/davidrq/proyecto-blog/internal/token"
	"github.com/davidrq/proyecto-blog/internal/user"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slogger := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}
	slogger.Info("connected to Postgres", "database", cfg.Database.Name)

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handlers := server.Handlers{
		Auth:       auth.NewHandler(auth.NewPGStore(pool), tokens, cfg.Auth.DefaultRoleID),
		Users:      user.NewHandler(user.NewPGStore(pool)),
		Articles:   article.NewHandler(article.NewPGStore(pool)),
		Categories: category.NewHandler(category.NewPGStore(pool)),
		Tags:       tag.NewHandler(tag.NewPGStore(pool)),
		RBAC:       rbac.NewHandler(rbac.NewPGStore(pool)),
	}

	e := server.New(slogger, tokens, handlers)

	slogger.Info("API server listening", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
