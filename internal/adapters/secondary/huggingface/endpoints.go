package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// Payload defaults matching the Inference Endpoints API expectations.
const (
	defaultType         = domain.EndpointTypeProtected
	defaultAccelerator  = domain.AcceleratorCPU
	defaultInstanceSize = "x1"
	defaultInstanceType = "intel-spr"
	defaultFramework    = domain.FrameworkPyTorch
	defaultTask         = "text-generation"
	defaultRegion       = "us-east-1"
	defaultVendor       = domain.VendorAWS
)

// ListEndpoints fetches the endpoint collection for a namespace. A response
// without an items key is an empty collection, not an error.
func (c *Client) ListEndpoints(ctx context.Context, namespace string, opts ...ports.CallOption) ([]domain.Endpoint, error) {
	const op = "list inference endpoints"

	if namespace == "" {
		return nil, domain.ErrNamespaceRequired
	}

	url := c.endpointURL + "/" + namespace
	status, body, err := c.doJSON(ctx, op, http.MethodGet, url, c.token(ctx, opts), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, remoteErr(op, status, body)
	}

	var envelope struct {
		Items []domain.Endpoint `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode endpoint list: %w", err)
	}

	c.record(ctx, "inference_endpoints", body)

	if envelope.Items == nil {
		return []domain.Endpoint{}, nil
	}
	return envelope.Items, nil
}

// GetEndpoint fetches a single endpoint by namespace and name.
func (c *Client) GetEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	const op = "get inference endpoint"

	if namespace == "" {
		return nil, domain.ErrNamespaceRequired
	}
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	url := c.endpointURL + "/" + namespace + "/" + name
	status, body, err := c.doJSON(ctx, op, http.MethodGet, url, c.token(ctx, opts), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, remoteErr(op, status, body)
	}

	c.record(ctx, "inference_endpoint_get", body)

	return decodeEndpoint(body), nil
}

// CreateEndpoint provisions a new endpoint in the config's namespace. The
// API may answer 202 while provisioning; that is success.
func (c *Client) CreateEndpoint(ctx context.Context, cfg *domain.EndpointConfig, opts ...ports.CallOption) (*domain.Endpoint, error) {
	const op = "create inference endpoint"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(createPayload(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode endpoint config: %w", err)
	}

	url := c.endpointURL + "/" + cfg.Namespace
	c.debugf(ctx, log.Fields{"url": url, "payload": string(payload)}, "creating inference endpoint")

	status, body, err := c.doJSON(ctx, op, http.MethodPost, url, c.token(ctx, opts), payload)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		return nil, remoteErr(op, status, body)
	}

	c.record(ctx, "inference_endpoint_create", body)
	c.debugf(ctx, log.Fields{"name": cfg.Name}, "created inference endpoint")

	return decodeEndpoint(body), nil
}

// UpdateEndpoint issues a sparse PUT: fields left nil in update never appear
// in the outgoing JSON.
func (c *Client) UpdateEndpoint(ctx context.Context, namespace, name string, update *domain.EndpointUpdate, opts ...ports.CallOption) (*domain.Endpoint, error) {
	const op = "update inference endpoint"

	if namespace == "" {
		return nil, domain.ErrNamespaceRequired
	}
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	payload, err := json.Marshal(updatePayload(update))
	if err != nil {
		return nil, fmt.Errorf("encode endpoint update: %w", err)
	}

	url := c.endpointURL + "/" + namespace + "/" + name
	c.debugf(ctx, log.Fields{"url": url, "payload": string(payload)}, "updating inference endpoint")

	status, body, err := c.doJSON(ctx, op, http.MethodPut, url, c.token(ctx, opts), payload)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK, http.StatusAccepted:
	default:
		return nil, remoteErr(op, status, body)
	}

	c.record(ctx, "inference_endpoint_update", body)

	return decodeEndpoint(body), nil
}

// DeleteEndpoint removes the remote endpoint. The local mirror, if any, is
// the caller's concern.
func (c *Client) DeleteEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) error {
	const op = "delete inference endpoint"

	if namespace == "" {
		return domain.ErrNamespaceRequired
	}
	if name == "" {
		return domain.ErrNameRequired
	}

	url := c.endpointURL + "/" + namespace + "/" + name
	c.debugf(ctx, log.Fields{"namespace": namespace, "name": name}, "deleting inference endpoint")

	status, body, err := c.doJSON(ctx, op, http.MethodDelete, url, c.token(ctx, opts), nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
	default:
		return remoteErr(op, status, body)
	}

	audit, _ := json.Marshal(map[string]string{"namespace": namespace, "name": name})
	c.record(ctx, "inference_endpoint_delete", audit)

	return nil
}

// PauseEndpoint forces the replica window to zero. Paused endpoints stay
// down until an explicit resume.
func (c *Client) PauseEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	return c.UpdateEndpoint(ctx, namespace, name, &domain.EndpointUpdate{
		MinReplica: intptr(0),
		MaxReplica: intptr(0),
	}, opts...)
}

// ResumeEndpoint brings a paused endpoint back with one replica.
func (c *Client) ResumeEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	return c.UpdateEndpoint(ctx, namespace, name, &domain.EndpointUpdate{
		MinReplica: intptr(1),
		MaxReplica: intptr(1),
	}, opts...)
}

// ScaleToZeroEndpoint drops minReplica to zero and leaves maxReplica alone
// so the endpoint restarts itself on the next request.
func (c *Client) ScaleToZeroEndpoint(ctx context.Context, namespace, name string, opts ...ports.CallOption) (*domain.Endpoint, error) {
	return c.UpdateEndpoint(ctx, namespace, name, &domain.EndpointUpdate{
		MinReplica: intptr(0),
	}, opts...)
}

// createPayload builds the full nested create body. The image object always
// carries exactly one variant key: the default huggingface image, or the
// custom image when one is supplied.
func createPayload(cfg *domain.EndpointConfig) map[string]any {
	scaling := map[string]any{
		"minReplica": cfg.MinReplica,
		"maxReplica": cfg.MaxReplica,
	}
	if cfg.ScaleToZeroTimeout != nil {
		scaling["scaleToZeroTimeout"] = *cfg.ScaleToZeroTimeout
	}

	image := map[string]any{"huggingface": map[string]any{}}
	if cfg.CustomImage != nil {
		image = map[string]any{"custom": cfg.CustomImage}
	}

	model := map[string]any{
		"repository": cfg.Repository,
		"framework":  orDefault(cfg.Framework, defaultFramework),
		"task":       orDefault(cfg.Task, defaultTask),
		"image":      image,
	}
	if cfg.Revision != "" {
		model["revision"] = cfg.Revision
	}

	return map[string]any{
		"name": cfg.Name,
		"type": orDefault(cfg.Type, defaultType),
		"compute": map[string]any{
			"accelerator":  orDefault(cfg.Accelerator, defaultAccelerator),
			"instanceSize": orDefault(cfg.InstanceSize, defaultInstanceSize),
			"instanceType": orDefault(cfg.InstanceType, defaultInstanceType),
			"scaling":      scaling,
		},
		"model": model,
		"provider": map[string]any{
			"region": orDefault(cfg.Region, defaultRegion),
			"vendor": orDefault(cfg.Vendor, defaultVendor),
		},
	}
}

// updatePayload sparse-copies only the set fields into the nested shape.
func updatePayload(update *domain.EndpointUpdate) map[string]any {
	payload := map[string]any{}
	if update == nil {
		return payload
	}

	compute := map[string]any{}
	if update.Accelerator != nil {
		compute["accelerator"] = *update.Accelerator
	}
	if update.InstanceSize != nil {
		compute["instanceSize"] = *update.InstanceSize
	}
	if update.InstanceType != nil {
		compute["instanceType"] = *update.InstanceType
	}

	scaling := map[string]any{}
	if update.MinReplica != nil {
		scaling["minReplica"] = *update.MinReplica
	}
	if update.MaxReplica != nil {
		scaling["maxReplica"] = *update.MaxReplica
	}
	if update.ScaleToZeroTimeout != nil {
		scaling["scaleToZeroTimeout"] = *update.ScaleToZeroTimeout
	}
	if len(scaling) > 0 {
		compute["scaling"] = scaling
	}
	if len(compute) > 0 {
		payload["compute"] = compute
	}

	model := map[string]any{}
	if update.Repository != nil {
		model["repository"] = *update.Repository
	}
	if update.Framework != nil {
		model["framework"] = *update.Framework
	}
	if update.Task != nil {
		model["task"] = *update.Task
	}
	if update.Revision != nil {
		model["revision"] = *update.Revision
	}
	if update.CustomImage != nil {
		model["image"] = map[string]any{"custom": update.CustomImage}
	}
	if len(model) > 0 {
		payload["model"] = model
	}

	return payload
}

// decodeEndpoint is only called once the status is known to be a success.
// The API sometimes answers 202 with an empty body while provisioning; a
// body that does not decode yields a zero-value endpoint, not an error.
func decodeEndpoint(body []byte) *domain.Endpoint {
	var ep domain.Endpoint
	if err := json.Unmarshal(body, &ep); err != nil {
		return &domain.Endpoint{}
	}
	return &ep
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intptr(v int) *int {
	return &v
}
