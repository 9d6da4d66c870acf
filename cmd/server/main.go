// Package main is the entry point for the gerador-provas API server.
// It reads configuration, builds the logger and hands off to
// internal/server; everything else lives in the internal packages.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/psouza/gerador-provas/internal/config"
	"github.com/psouza/gerador-provas/internal/server"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingSecret) {
			logger.Error("JWT_SECRET não definido; gere um com: openssl rand -hex 32")
		} else {
			logger.Error("configuração inválida", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	if cfg.SecretTooShort() {
		logger.Warn("JWT_SECRET curto demais para produção",
			slog.Int("min_length", config.MinSecretLength),
		)
	}

	if dir := filepath.Dir(cfg.DBPath); cfg.DBPath != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("falha ao criar diretório do banco",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("falha ao criar servidor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("erro no servidor", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
