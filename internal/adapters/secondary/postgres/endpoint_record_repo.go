package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

type endpointRecordRepo struct {
	pool *pgxpool.Pool
}

// NewEndpointRecordRepository creates the local mirror repository.
func NewEndpointRecordRepository(pool *pgxpool.Pool) ports.EndpointRecordRepository {
	return &endpointRecordRepo{pool: pool}
}

const recordColumns = `
	id, label, description, enabled, access_token,
	namespace, name, type, account_id,
	repository, framework, task, revision,
	accelerator, instance_size, instance_type, vendor, region,
	min_replica, max_replica, scale_to_zero_timeout,
	state, url, remote_created_at, remote_updated_at, imported_at
`

func (r *endpointRecordRepo) Create(ctx context.Context, rec *domain.EndpointRecord) error {
	query := `
		INSERT INTO inference_endpoint (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Label, rec.Description, rec.Enabled, rec.AccessToken,
		rec.Namespace, rec.Name, rec.Type, rec.AccountID,
		rec.Repository, rec.Framework, rec.Task, rec.Revision,
		rec.Accelerator, rec.InstanceSize, rec.InstanceType, rec.Vendor, rec.Region,
		rec.MinReplica, rec.MaxReplica, rec.ScaleToZeroTimeout,
		rec.State, rec.URL, rec.CreatedAt, rec.UpdatedAt, rec.ImportedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrRecordExists
		}
		return fmt.Errorf("create endpoint record: %w", err)
	}
	return nil
}

func (r *endpointRecordRepo) GetByID(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inference_endpoint WHERE id = $1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get endpoint record: %w", err)
	}
	return rec, nil
}

func (r *endpointRecordRepo) List(ctx context.Context) ([]*domain.EndpointRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM inference_endpoint ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list endpoint records: %w", err)
	}
	defer rows.Close()

	var recs []*domain.EndpointRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan endpoint record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *endpointRecordRepo) Update(ctx context.Context, rec *domain.EndpointRecord) error {
	query := `
		UPDATE inference_endpoint SET
			label = $2, description = $3, enabled = $4, access_token = $5,
			namespace = $6, name = $7, type = $8, account_id = $9,
			repository = $10, framework = $11, task = $12, revision = $13,
			accelerator = $14, instance_size = $15, instance_type = $16,
			vendor = $17, region = $18,
			min_replica = $19, max_replica = $20, scale_to_zero_timeout = $21,
			state = $22, url = $23, remote_created_at = $24, remote_updated_at = $25
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Label, rec.Description, rec.Enabled, rec.AccessToken,
		rec.Namespace, rec.Name, rec.Type, rec.AccountID,
		rec.Repository, rec.Framework, rec.Task, rec.Revision,
		rec.Accelerator, rec.InstanceSize, rec.InstanceType,
		rec.Vendor, rec.Region,
		rec.MinReplica, rec.MaxReplica, rec.ScaleToZeroTimeout,
		rec.State, rec.URL, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update endpoint record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *endpointRecordRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inference_endpoint WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete endpoint record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *endpointRecordRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM inference_endpoint WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check endpoint record: %w", err)
	}
	return exists, nil
}

func scanRecord(row pgx.Row) (*domain.EndpointRecord, error) {
	var rec domain.EndpointRecord
	err := row.Scan(
		&rec.ID, &rec.Label, &rec.Description, &rec.Enabled, &rec.AccessToken,
		&rec.Namespace, &rec.Name, &rec.Type, &rec.AccountID,
		&rec.Repository, &rec.Framework, &rec.Task, &rec.Revision,
		&rec.Accelerator, &rec.InstanceSize, &rec.InstanceType, &rec.Vendor, &rec.Region,
		&rec.MinReplica, &rec.MaxReplica, &rec.ScaleToZeroTimeout,
		&rec.State, &rec.URL, &rec.CreatedAt, &rec.UpdatedAt, &rec.ImportedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

var _ ports.EndpointRecordRepository = (*endpointRecordRepo)(nil)
