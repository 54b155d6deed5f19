package domain

import (
	"errors"
	"fmt"
)

// Configuration errors: required input missing before any network call.
var (
	ErrNamespaceRequired    = errors.New("namespace is required")
	ErrNameRequired         = errors.New("endpoint name is required")
	ErrRepositoryRequired   = errors.New("model repository is required")
	ErrReplicaBounds        = errors.New("min replica must be between 0 and max replica")
	ErrInputRequired        = errors.New("binary input is required for this task")
	ErrUnknownTask          = errors.New("unknown inference task")
	ErrEmptyUpdate          = errors.New("update contains no fields")
	ErrInferenceURLRequired = errors.New("no inference url configured")
)

// Local record errors.
var (
	ErrRecordNotFound = errors.New("inference endpoint record not found")
	ErrRecordExists   = errors.New("inference endpoint record already exists")
	ErrRecordDisabled = errors.New("inference endpoint record is disabled")
)

// Settings errors.
var (
	ErrSettingNotFound = errors.New("setting not found")
)

// RemoteError is a non-success HTTP status or transport failure from the
// HuggingFace API. It carries the raw status and body so callers can render a
// useful message; nothing here is ever retried automatically.
type RemoteError struct {
	// Op names the failed operation, e.g. "create endpoint" or a task name.
	Op string
	// StatusCode is the HTTP status, or 0 for transport-level failures.
	StatusCode int
	// Body is the raw response body, possibly empty.
	Body string
	// ServerSide marks 5xx responses for diagnostics.
	ServerSide bool
	// Transient marks responses indicating a model is still loading. The
	// caller may retry after a delay; the client never does.
	Transient bool

	Err error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether err is a RemoteError, returning it if so.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsTransient reports whether err indicates a model that is still loading.
func IsTransient(err error) bool {
	re, ok := IsRemote(err)
	return ok && re.Transient
}
