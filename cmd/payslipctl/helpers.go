package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DrOksusu/email-automation/internal/app"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/db"
)

// connect opens the pool and wires services. The caller closes the pool.
func connect(ctx context.Context, cfg config.Config) (*app.Services, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect failed: %w", err)
	}
	return app.Build(cfg, pool), pool, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
