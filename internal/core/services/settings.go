package services

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// SettingsService merges persisted setting rows over file/env defaults. It
// is the ConfigProvider the remote clients consume: persisted values win,
// and the access token is applied last.
type SettingsService struct {
	repo      ports.SettingsRepository
	responses ports.ResponseLogRepository
	defaults  domain.Settings
}

func NewSettingsService(repo ports.SettingsRepository, responses ports.ResponseLogRepository, defaults domain.Settings) *SettingsService {
	return &SettingsService{repo: repo, responses: responses, defaults: defaults}
}

// Settings returns the effective configuration. Repository failures fall
// back to the defaults so a read problem never blocks an operation.
func (s *SettingsService) Settings(ctx context.Context) domain.Settings {
	out := s.defaults

	rows, err := s.repo.All(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load persisted settings, using defaults")
		return out
	}

	if v, ok := rows[domain.SettingURL]; ok {
		out.URL = v
	}
	if v, ok := rows[domain.SettingLogging]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			out.Logging = b
		}
	}
	if v, ok := rows[domain.SettingAccessToken]; ok && v != "" {
		out.AccessToken = v
	}

	return out
}

// Save persists the full settings set.
func (s *SettingsService) Save(ctx context.Context, in domain.Settings) error {
	if err := s.repo.Set(ctx, domain.SettingURL, in.URL); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, domain.SettingLogging, strconv.FormatBool(in.Logging)); err != nil {
		return err
	}
	return s.repo.Set(ctx, domain.SettingAccessToken, in.AccessToken)
}

// RecentResponses returns the newest audit-log rows; limit zero selects the
// repository default.
func (s *SettingsService) RecentResponses(ctx context.Context, limit int) ([]domain.ResponseEntry, error) {
	return s.responses.ListRecent(ctx, limit)
}

func (s *SettingsService) AccessToken(ctx context.Context) string {
	return s.Settings(ctx).AccessToken
}

func (s *SettingsService) InferenceURL(ctx context.Context) string {
	return s.Settings(ctx).URL
}

func (s *SettingsService) LoggingEnabled(ctx context.Context) bool {
	return s.Settings(ctx).Logging
}

var _ ports.ConfigProvider = (*SettingsService)(nil)
