package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/venuehub/internal/core/domain"
)

// ConfigRepo implements ports.ConfigProvider from the app_config table.
type ConfigRepo struct {
	db       *DB
	solution string
}

// NewConfigRepo creates a ConfigRepo reading the row for solution.
func NewConfigRepo(db *DB, solution string) *ConfigRepo {
	return &ConfigRepo{db: db, solution: solution}
}

// GetConfig returns the stored configuration document.
func (r *ConfigRepo) GetConfig(ctx context.Context) (*domain.RawAppConfig, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT config FROM app_config WHERE solution = $1
	`, r.solution).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no app config for solution %q", r.solution)
	}
	if err != nil {
		return nil, err
	}

	var cfg domain.RawAppConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode app config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig stores cfg as the solution's configuration document.
func (r *ConfigRepo) SaveConfig(ctx context.Context, cfg json.RawMessage) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO app_config (solution, config)
		VALUES ($1, $2)
		ON CONFLICT (solution) DO UPDATE SET config = EXCLUDED.config, updated_at = now()
	`, r.solution, []byte(cfg))
	return err
}
