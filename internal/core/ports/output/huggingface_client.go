package ports

import (
	"context"

	"hf-endpoint-service/internal/core/domain"
)

// CallOptions carries per-call overrides for remote API operations.
type CallOptions struct {
	// AccessToken replaces the client's configured token for this call.
	AccessToken string
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithAccessToken overrides the bearer token for a single call. Resolution
// order is per-record override, then the globally configured token.
func WithAccessToken(token string) CallOption {
	return func(o *CallOptions) {
		if token != "" {
			o.AccessToken = token
		}
	}
}

// ApplyCallOptions folds opts into a CallOptions value.
func ApplyCallOptions(opts []CallOption) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// EndpointAPI is the lifecycle client for managed inference endpoints. It
// translates domain operations into REST calls and normalizes responses; it
// never enforces state transitions, never retries, and never touches the
// local mirror.
type EndpointAPI interface {
	ListEndpoints(ctx context.Context, namespace string, opts ...CallOption) ([]domain.Endpoint, error)
	GetEndpoint(ctx context.Context, namespace, name string, opts ...CallOption) (*domain.Endpoint, error)
	CreateEndpoint(ctx context.Context, cfg *domain.EndpointConfig, opts ...CallOption) (*domain.Endpoint, error)
	UpdateEndpoint(ctx context.Context, namespace, name string, update *domain.EndpointUpdate, opts ...CallOption) (*domain.Endpoint, error)
	DeleteEndpoint(ctx context.Context, namespace, name string, opts ...CallOption) error

	// PauseEndpoint sets minReplica and maxReplica to 0.
	PauseEndpoint(ctx context.Context, namespace, name string, opts ...CallOption) (*domain.Endpoint, error)
	// ResumeEndpoint sets minReplica and maxReplica to 1.
	ResumeEndpoint(ctx context.Context, namespace, name string, opts ...CallOption) (*domain.Endpoint, error)
	// ScaleToZeroEndpoint sets minReplica to 0 and leaves maxReplica alone so
	// the endpoint can scale back up on traffic.
	ScaleToZeroEndpoint(ctx context.Context, namespace, name string, opts ...CallOption) (*domain.Endpoint, error)
}

// InferenceAPI runs hosted inference tasks against the configured URL or the
// per-task default model.
type InferenceAPI interface {
	RunTask(ctx context.Context, task string, params domain.TaskParams, opts ...CallOption) (*domain.TaskResult, error)
	ImageTextToText(ctx context.Context, params domain.TaskParams, opts ...CallOption) (*domain.TaskResult, error)
}
