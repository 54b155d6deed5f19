package ports

import (
	"context"
	"io"

	"hf-endpoint-service/internal/core/domain"
)

// EndpointRecordRepository persists local endpoint mirrors.
type EndpointRecordRepository interface {
	Create(ctx context.Context, rec *domain.EndpointRecord) error
	GetByID(ctx context.Context, id string) (*domain.EndpointRecord, error)
	List(ctx context.Context) ([]*domain.EndpointRecord, error)
	Update(ctx context.Context, rec *domain.EndpointRecord) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// SettingsRepository persists module settings as key/value rows.
type SettingsRepository interface {
	// Get returns domain.ErrSettingNotFound for unknown keys.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// ResponseLogRepository is the audit sink for raw API response bodies.
type ResponseLogRepository interface {
	Record(ctx context.Context, kind, data string) error
	ListRecent(ctx context.Context, limit int) ([]domain.ResponseEntry, error)
}

// FileStore resolves an opaque file reference supplied as a binary task
// input to a readable stream and its detected MIME type.
type FileStore interface {
	Open(ref string) (io.ReadCloser, string, error)
}
