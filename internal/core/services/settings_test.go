package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hf-endpoint-service/internal/core/domain"
	"hf-endpoint-service/internal/testutil"
)

func TestSettingsService_PersistedRowsOverrideDefaults(t *testing.T) {
	repo := new(testutil.MockSettingsRepo)
	repo.On("All", mock.Anything).Return(map[string]string{
		domain.SettingURL:         "https://my-endpoint.example/v1",
		domain.SettingLogging:     "false",
		domain.SettingAccessToken: "persisted-token",
	}, nil)

	svc := NewSettingsService(repo, nil, domain.Settings{
		AccessToken: "env-token",
		URL:         "",
		Logging:     true,
	})

	settings := svc.Settings(context.Background())

	assert.Equal(t, "https://my-endpoint.example/v1", settings.URL)
	assert.False(t, settings.Logging)
	assert.Equal(t, "persisted-token", settings.AccessToken)
}

func TestSettingsService_RepoFailureFallsBackToDefaults(t *testing.T) {
	repo := new(testutil.MockSettingsRepo)
	repo.On("All", mock.Anything).Return(nil, errors.New("db down"))

	svc := NewSettingsService(repo, nil, domain.Settings{AccessToken: "env-token", Logging: true})

	settings := svc.Settings(context.Background())

	assert.Equal(t, "env-token", settings.AccessToken)
	assert.True(t, settings.Logging)
}

func TestSettingsService_EmptyPersistedTokenKeepsDefault(t *testing.T) {
	repo := new(testutil.MockSettingsRepo)
	repo.On("All", mock.Anything).Return(map[string]string{
		domain.SettingAccessToken: "",
	}, nil)

	svc := NewSettingsService(repo, nil, domain.Settings{AccessToken: "env-token"})

	assert.Equal(t, "env-token", svc.AccessToken(context.Background()))
}

func TestSettingsService_InvalidLoggingValueIgnored(t *testing.T) {
	repo := new(testutil.MockSettingsRepo)
	repo.On("All", mock.Anything).Return(map[string]string{
		domain.SettingLogging: "maybe",
	}, nil)

	svc := NewSettingsService(repo, nil, domain.Settings{Logging: true})

	assert.True(t, svc.LoggingEnabled(context.Background()))
}

func TestSettingsService_SavePersistsAllKeys(t *testing.T) {
	repo := new(testutil.MockSettingsRepo)
	repo.On("Set", mock.Anything, domain.SettingURL, "https://u").Return(nil)
	repo.On("Set", mock.Anything, domain.SettingLogging, "true").Return(nil)
	repo.On("Set", mock.Anything, domain.SettingAccessToken, "tok").Return(nil)

	svc := NewSettingsService(repo, nil, domain.Settings{})
	err := svc.Save(context.Background(), domain.Settings{AccessToken: "tok", URL: "https://u", Logging: true})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSettingsService_RecentResponses(t *testing.T) {
	responses := new(testutil.MockResponseLogRepo)
	responses.On("ListRecent", mock.Anything, 10).Return([]domain.ResponseEntry{
		{ID: 2, Type: "inference_endpoints", Created: 1714550400, Data: `{"items":[]}`},
	}, nil)

	svc := NewSettingsService(new(testutil.MockSettingsRepo), responses, domain.Settings{})
	entries, err := svc.RecentResponses(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inference_endpoints", entries[0].Type)
}
