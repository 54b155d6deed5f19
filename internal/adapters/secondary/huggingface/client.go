package huggingface

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// API locations. EndpointURL is the versioned Inference Endpoints collection
// root; namespace and name are appended as path components.
const (
	DefaultEndpointURL   = "https://api.endpoints.huggingface.cloud/v2/endpoint"
	DefaultInferenceBase = "https://api-inference.huggingface.co/models"
	DefaultRouterBase    = "https://router.huggingface.co/models"
)

const defaultTimeout = 30 * time.Second

// Options tune the client for non-default deployments and tests.
type Options struct {
	EndpointURL   string
	InferenceBase string
	RouterBase    string
	Timeout       time.Duration
}

// Client talks to the HuggingFace Inference Endpoints API and the hosted
// inference API. One blocking HTTP call per operation, no retries; every
// failure surfaces to the caller with status and body attached.
type Client struct {
	endpointURL   string
	inferenceBase string
	routerBase    string

	provider ports.ConfigProvider
	files    ports.FileStore
	recorder ports.ResponseLogRepository

	client *http.Client
	// uploadClient has no overall timeout; large audio/image uploads to the
	// hosted API can legitimately outlive the default deadline.
	uploadClient *http.Client
}

// NewClient creates a client. files and recorder may be nil when binary tasks
// or response auditing are not wired.
func NewClient(provider ports.ConfigProvider, files ports.FileStore, recorder ports.ResponseLogRepository, opts Options) *Client {
	if opts.EndpointURL == "" {
		opts.EndpointURL = DefaultEndpointURL
	}
	if opts.InferenceBase == "" {
		opts.InferenceBase = DefaultInferenceBase
	}
	if opts.RouterBase == "" {
		opts.RouterBase = DefaultRouterBase
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		endpointURL:   opts.EndpointURL,
		inferenceBase: opts.InferenceBase,
		routerBase:    opts.RouterBase,
		provider:      provider,
		files:         files,
		recorder:      recorder,
		client:        &http.Client{Timeout: opts.Timeout},
		uploadClient:  &http.Client{},
	}
}

// token resolves the bearer token for one call: per-call override first,
// then the configured global token.
func (c *Client) token(ctx context.Context, opts []ports.CallOption) string {
	o := ports.ApplyCallOptions(opts)
	if o.AccessToken != "" {
		return o.AccessToken
	}
	return c.provider.AccessToken(ctx)
}

// do issues one request and drains the body. Transport-level failures come
// back as RemoteError with a zero status code.
func (c *Client) do(ctx context.Context, op, method, url, token, contentType string, body io.Reader, hc *http.Client) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, &domain.RemoteError{Op: op, Err: err}
	}
	req.Header.Set("authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	if hc == nil {
		hc = c.client
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, &domain.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, raw, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, url, token string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	return c.do(ctx, op, method, url, token, "application/json", body, nil)
}

// record appends a raw response body to the audit log. Failures here are
// logged and dropped; auditing never fails an operation.
func (c *Client) record(ctx context.Context, kind string, data []byte) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, kind, string(data)); err != nil {
		log.WithError(err).WithField("kind", kind).Warn("failed to record response")
	}
}

// debugf emits a debug log line when request logging is enabled.
func (c *Client) debugf(ctx context.Context, fields log.Fields, msg string) {
	if !c.provider.LoggingEnabled(ctx) {
		return
	}
	log.WithFields(fields).Debug(msg)
}

func remoteErr(op string, status int, body []byte) error {
	return &domain.RemoteError{
		Op:         op,
		StatusCode: status,
		Body:       string(body),
		ServerSide: status >= 500,
	}
}

var (
	_ ports.EndpointAPI  = (*Client)(nil)
	_ ports.InferenceAPI = (*Client)(nil)
)
