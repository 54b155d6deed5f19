package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

type responseLogRepo struct {
	pool *pgxpool.Pool
}

// NewResponseLogRepository creates the raw-response audit sink.
func NewResponseLogRepository(pool *pgxpool.Pool) ports.ResponseLogRepository {
	return &responseLogRepo{pool: pool}
}

func (r *responseLogRepo) Record(ctx context.Context, kind, data string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hf_response (type, created, data) VALUES ($1, $2, $3)
	`, kind, time.Now().Unix(), data)
	if err != nil {
		return fmt.Errorf("record response: %w", err)
	}
	return nil
}

func (r *responseLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.ResponseEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, type, created, data FROM hf_response
		ORDER BY created DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var entries []domain.ResponseEntry
	for rows.Next() {
		var e domain.ResponseEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Created, &e.Data); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ ports.ResponseLogRepository = (*responseLogRepo)(nil)
