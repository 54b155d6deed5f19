package dto

import (
	"time"

	"hf-endpoint-service/internal/core/domain"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateEndpointRequest provisions a remote inference endpoint and imports
// it as a local record.
type CreateEndpointRequest struct {
	Namespace  string `json:"namespace" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"omitempty,oneof=public protected private"`
	Repository string `json:"repository" binding:"required"`
	Framework  string `json:"framework"`
	Task       string `json:"task"`
	Revision   string `json:"revision"`

	Accelerator  string `json:"accelerator"`
	InstanceSize string `json:"instance_size"`
	InstanceType string `json:"instance_type"`
	Vendor       string `json:"vendor"`
	Region       string `json:"region"`

	MinReplica         *int `json:"min_replica"`
	MaxReplica         *int `json:"max_replica"`
	ScaleToZeroTimeout *int `json:"scale_to_zero_timeout"`

	CustomImage *CustomImageRequest `json:"custom_image"`

	Label       string `json:"label"`
	Description string `json:"description"`
	AccessToken string `json:"access_token"`
}

// CustomImageRequest selects a user-supplied container image instead of the
// default HuggingFace one.
type CustomImageRequest struct {
	URL         string            `json:"url" binding:"required"`
	HealthRoute string            `json:"health_route"`
	Env         map[string]string `json:"env"`
}

// UpdateEndpointRequest is a sparse update; absent fields are not sent to
// the remote API.
type UpdateEndpointRequest struct {
	Accelerator        *string             `json:"accelerator"`
	InstanceSize       *string             `json:"instance_size"`
	InstanceType       *string             `json:"instance_type"`
	MinReplica         *int                `json:"min_replica"`
	MaxReplica         *int                `json:"max_replica"`
	ScaleToZeroTimeout *int                `json:"scale_to_zero_timeout"`
	Repository         *string             `json:"repository"`
	Framework          *string             `json:"framework"`
	Task               *string             `json:"task"`
	Revision           *string             `json:"revision"`
	CustomImage        *CustomImageRequest `json:"custom_image"`
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateEndpointRequest) Empty() bool {
	return r.Accelerator == nil && r.InstanceSize == nil && r.InstanceType == nil &&
		r.MinReplica == nil && r.MaxReplica == nil && r.ScaleToZeroTimeout == nil &&
		r.Repository == nil && r.Framework == nil && r.Task == nil &&
		r.Revision == nil && r.CustomImage == nil
}

// SyncRequest imports a selection of remote endpoints as local records.
type SyncRequest struct {
	Namespace   string   `json:"namespace" binding:"required"`
	Names       []string `json:"names" binding:"required"`
	AccessToken string   `json:"access_token"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// EndpointRecordResponse is a local endpoint mirror in API responses. The
// per-record token override is reported as a flag, never echoed.
type EndpointRecordResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
	HasToken    bool   `json:"has_token"`

	Namespace  string `json:"namespace"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	AccountID  string `json:"account_id,omitempty"`
	Repository string `json:"repository"`
	Framework  string `json:"framework,omitempty"`
	Task       string `json:"task,omitempty"`
	Revision   string `json:"revision,omitempty"`

	Accelerator        string `json:"accelerator,omitempty"`
	InstanceSize       string `json:"instance_size,omitempty"`
	InstanceType       string `json:"instance_type,omitempty"`
	Vendor             string `json:"vendor,omitempty"`
	Region             string `json:"region,omitempty"`
	MinReplica         int    `json:"min_replica"`
	MaxReplica         int    `json:"max_replica"`
	ScaleToZeroTimeout *int   `json:"scale_to_zero_timeout,omitempty"`

	State     string `json:"state,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	ImportedAt time.Time `json:"imported_at"`
}

// ListEndpointRecordsResponse is the local record list.
type ListEndpointRecordsResponse struct {
	Items []EndpointRecordResponse `json:"items"`
	Total int                      `json:"total"`
}

// RemoteEndpointResponse is a remote endpoint as seen during import
// selection, before any local record exists.
type RemoteEndpointResponse struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	State      string `json:"state,omitempty"`
	URL        string `json:"url,omitempty"`
	Repository string `json:"repository,omitempty"`
	Task       string `json:"task,omitempty"`
	Imported   bool   `json:"imported"`
}

// ListRemoteEndpointsResponse is the remote listing of a namespace.
type ListRemoteEndpointsResponse struct {
	Items []RemoteEndpointResponse `json:"items"`
	Total int                      `json:"total"`
}

// SyncResponse reports an import run.
type SyncResponse struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

// ============================================================================
// Converters
// ============================================================================

// ToEndpointConfig converts a create request to the domain config. An absent
// max_replica defaults to 1 so a minimal request yields a runnable endpoint;
// an absent min_replica defaults to 0.
func ToEndpointConfig(req *CreateEndpointRequest) *domain.EndpointConfig {
	cfg := &domain.EndpointConfig{
		Namespace:          req.Namespace,
		Name:               req.Name,
		Type:               req.Type,
		Repository:         req.Repository,
		Framework:          req.Framework,
		Task:               req.Task,
		Revision:           req.Revision,
		Accelerator:        req.Accelerator,
		InstanceSize:       req.InstanceSize,
		InstanceType:       req.InstanceType,
		Vendor:             req.Vendor,
		Region:             req.Region,
		MaxReplica:         1,
		ScaleToZeroTimeout: req.ScaleToZeroTimeout,
		CustomImage:        toCustomImage(req.CustomImage),
	}
	if req.MinReplica != nil {
		cfg.MinReplica = *req.MinReplica
	}
	if req.MaxReplica != nil {
		cfg.MaxReplica = *req.MaxReplica
	}
	return cfg
}

// ToEndpointUpdate converts an update request to the domain sparse update.
func ToEndpointUpdate(req *UpdateEndpointRequest) *domain.EndpointUpdate {
	return &domain.EndpointUpdate{
		Accelerator:        req.Accelerator,
		InstanceSize:       req.InstanceSize,
		InstanceType:       req.InstanceType,
		MinReplica:         req.MinReplica,
		MaxReplica:         req.MaxReplica,
		ScaleToZeroTimeout: req.ScaleToZeroTimeout,
		Repository:         req.Repository,
		Framework:          req.Framework,
		Task:               req.Task,
		Revision:           req.Revision,
		CustomImage:        toCustomImage(req.CustomImage),
	}
}

func toCustomImage(req *CustomImageRequest) *domain.CustomImage {
	if req == nil {
		return nil
	}
	return &domain.CustomImage{
		URL:         req.URL,
		HealthRoute: req.HealthRoute,
		Env:         req.Env,
	}
}

// ToEndpointRecordResponse converts a local record for API responses.
func ToEndpointRecordResponse(rec *domain.EndpointRecord) EndpointRecordResponse {
	return EndpointRecordResponse{
		ID:                 rec.ID,
		Label:              rec.Label,
		Description:        rec.Description,
		Enabled:            rec.Enabled,
		HasToken:           rec.AccessToken != "",
		Namespace:          rec.Namespace,
		Name:               rec.Name,
		Type:               rec.Type,
		AccountID:          rec.AccountID,
		Repository:         rec.Repository,
		Framework:          rec.Framework,
		Task:               rec.Task,
		Revision:           rec.Revision,
		Accelerator:        rec.Accelerator,
		InstanceSize:       rec.InstanceSize,
		InstanceType:       rec.InstanceType,
		Vendor:             rec.Vendor,
		Region:             rec.Region,
		MinReplica:         rec.MinReplica,
		MaxReplica:         rec.MaxReplica,
		ScaleToZeroTimeout: rec.ScaleToZeroTimeout,
		State:              rec.State,
		URL:                rec.URL,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
		ImportedAt:         rec.ImportedAt,
	}
}

// ToRemoteEndpointResponse converts a remote listing entry; imported marks
// names that already have a local record.
func ToRemoteEndpointResponse(ep *domain.Endpoint, imported bool) RemoteEndpointResponse {
	return RemoteEndpointResponse{
		Name:       ep.Name,
		Type:       ep.Type,
		State:      ep.Status.State,
		URL:        ep.Status.URL,
		Repository: ep.Model.Repository,
		Task:       ep.Model.Task,
		Imported:   imported,
	}
}
