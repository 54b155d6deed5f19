package ports

import "context"

// ConfigProvider supplies the effective module settings to the remote
// clients: persisted overrides merged over file/env defaults. Reads are
// cheap and consistent within a single operation.
type ConfigProvider interface {
	// AccessToken is the global bearer token; empty means unauthenticated
	// (the request then fails at the transport).
	AccessToken(ctx context.Context) string
	// InferenceURL is the configured hosted inference URL; empty selects the
	// per-task default model URL.
	InferenceURL(ctx context.Context) string
	// LoggingEnabled gates debug request logging.
	LoggingEnabled(ctx context.Context) bool
}
