package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// MockEndpointAPI is a mock of EndpointAPI. Call options are resolved and
// the effective token is passed to Called so tests can assert on it.
type MockEndpointAPI struct {
	mock.Mock
}

func (m *MockEndpointAPI) ListEndpoints(ctx context.Context, namespace string, opts ...ports.CallOption) ([]domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) GetEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) CreateEndpoint(ctx context.Context, cfg *domain.EndpointConfig, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, cfg, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) UpdateEndpoint(ctx context.Context, namespace, name string, update *domain.EndpointUpdate, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, update, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) DeleteEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) error {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, o.AccessToken)
	return args.Error(0)
}

func (m *MockEndpointAPI) PauseEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) ResumeEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

func (m *MockEndpointAPI) ScaleToZeroEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	o := ports.ApplyCallOptions(opts)
	args := m.Called(ctx, namespace, name, o.AccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Endpoint), args.Error(1)
}

// MockInferenceAPI is a mock of InferenceAPI.
type MockInferenceAPI struct {
	mock.Mock
}

func (m *MockInferenceAPI) RunTask(ctx context.Context, task string, params domain.TaskParams, opts ...ports.CallOption) (*domain.TaskResult, error) {
	args := m.Called(ctx, task, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskResult), args.Error(1)
}

func (m *MockInferenceAPI) ImageTextToText(ctx context.Context, params domain.TaskParams, opts ...ports.CallOption) (*domain.TaskResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskResult), args.Error(1)
}

// MockEndpointRecordRepo is a mock of EndpointRecordRepository.
type MockEndpointRecordRepo struct {
	mock.Mock
}

func (m *MockEndpointRecordRepo) Create(ctx context.Context, rec *domain.EndpointRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEndpointRecordRepo) GetByID(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EndpointRecord), args.Error(1)
}

func (m *MockEndpointRecordRepo) List(ctx context.Context) ([]*domain.EndpointRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EndpointRecord), args.Error(1)
}

func (m *MockEndpointRecordRepo) Update(ctx context.Context, rec *domain.EndpointRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEndpointRecordRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEndpointRecordRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSettingsRepo is a mock of SettingsRepository.
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsRepo) All(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockResponseLogRepo is a mock of ResponseLogRepository.
type MockResponseLogRepo struct {
	mock.Mock
}

func (m *MockResponseLogRepo) Record(ctx context.Context, kind, data string) error {
	args := m.Called(ctx, kind, data)
	return args.Error(0)
}

func (m *MockResponseLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.ResponseEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResponseEntry), args.Error(1)
}

// MockFileStore is a mock of FileStore.
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Open(ref string) (io.ReadCloser, string, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

// StaticConfigProvider is a fixed-value ConfigProvider for tests.
type StaticConfigProvider struct {
	Token   string
	URL     string
	Logging bool
}

func (p *StaticConfigProvider) AccessToken(ctx context.Context) string  { return p.Token }
func (p *StaticConfigProvider) InferenceURL(ctx context.Context) string { return p.URL }
func (p *StaticConfigProvider) LoggingEnabled(ctx context.Context) bool { return p.Logging }
