package domain

import "time"

// Endpoint types accepted by the Inference Endpoints API.
const (
	EndpointTypePublic    = "public"
	EndpointTypeProtected = "protected"
	EndpointTypePrivate   = "private"
)

// Accelerator classes.
const (
	AcceleratorCPU = "cpu"
	AcceleratorGPU = "gpu"
)

// Cloud vendors.
const (
	VendorAWS   = "aws"
	VendorAzure = "azure"
	VendorGCP   = "gcp"
)

// Model frameworks.
const (
	FrameworkPyTorch    = "pytorch"
	FrameworkTensorFlow = "tensorflow"
	FrameworkCustom     = "custom"
)

// Observed endpoint states. The server owns this vocabulary; the values here
// are the ones the API is known to return, not a closed set enforced locally.
const (
	StatePending      = "pending"
	StateInitializing = "initializing"
	StateUpdating     = "updating"
	StateRunning      = "running"
	StatePaused       = "paused"
	StateScaledToZero = "scaledToZero"
	StateFailed       = "failed"
)

// CustomImage describes a user-supplied container image for an endpoint,
// replacing the default HuggingFace inference image.
type CustomImage struct {
	URL         string            `json:"url"`
	HealthRoute string            `json:"health_route,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
}

// EndpointConfig is the desired state of a remote inference endpoint. A nil
// CustomImage selects the default HuggingFace image; the outgoing payload
// carries exactly one image variant either way.
type EndpointConfig struct {
	Namespace          string
	Name               string
	Type               string
	Repository         string
	Framework          string
	Task               string
	Revision           string
	Accelerator        string
	InstanceSize       string
	InstanceType       string
	Vendor             string
	Region             string
	MinReplica         int
	MaxReplica         int
	ScaleToZeroTimeout *int
	CustomImage        *CustomImage
}

// Validate checks the fields that must be present before a create call goes
// out. Replica bounds are only checked here: partial updates legitimately
// break them (pausing sets both to zero through two separate writes).
func (c *EndpointConfig) Validate() error {
	if c.Namespace == "" {
		return ErrNamespaceRequired
	}
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Repository == "" {
		return ErrRepositoryRequired
	}
	if c.MinReplica < 0 || c.MaxReplica < 0 {
		return ErrReplicaBounds
	}
	if c.MinReplica > c.MaxReplica {
		return ErrReplicaBounds
	}
	return nil
}

// EndpointUpdate is a sparse update. Nil fields are left out of the outgoing
// JSON entirely; this is a partial-update contract, not a full replace.
type EndpointUpdate struct {
	Accelerator        *string
	InstanceSize       *string
	InstanceType       *string
	MinReplica         *int
	MaxReplica         *int
	ScaleToZeroTimeout *int
	Repository         *string
	Framework          *string
	Task               *string
	Revision           *string
	CustomImage        *CustomImage
}

// EndpointStatus is the observed remote state, read-only from this side.
// Timestamps stay in the server's wire format.
type EndpointStatus struct {
	State     string `json:"state"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Scaling is the replica window of an endpoint.
type Scaling struct {
	MinReplica         int  `json:"minReplica"`
	MaxReplica         int  `json:"maxReplica"`
	ScaleToZeroTimeout *int `json:"scaleToZeroTimeout,omitempty"`
}

// Compute is the hardware block of an endpoint.
type Compute struct {
	Accelerator  string  `json:"accelerator,omitempty"`
	InstanceSize string  `json:"instanceSize,omitempty"`
	InstanceType string  `json:"instanceType,omitempty"`
	Scaling      Scaling `json:"scaling"`
}

// Model is the model block of an endpoint.
type Model struct {
	Repository string `json:"repository,omitempty"`
	Framework  string `json:"framework,omitempty"`
	Task       string `json:"task,omitempty"`
	Revision   string `json:"revision,omitempty"`
}

// Provider is the cloud placement block of an endpoint.
type Provider struct {
	Region string `json:"region,omitempty"`
	Vendor string `json:"vendor,omitempty"`
}

// Endpoint is the normalized remote representation returned by every
// successful lifecycle call. Nested objects missing from the response body
// decode to their zero values; consumers read fields without nil checks.
type Endpoint struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	AccountID string         `json:"accountId,omitempty"`
	Status    EndpointStatus `json:"status"`
	Compute   Compute        `json:"compute"`
	Model     Model          `json:"model"`
	Provider  Provider       `json:"provider"`
}

// RecordID derives the local identity of an endpoint mirror. Deterministic
// from the remote coordinates so re-imports collide instead of duplicating.
func RecordID(namespace, name string) string {
	return namespace + "-" + name
}

// EndpointRecord is the persisted local mirror of a remote endpoint. The
// authoritative state lives remotely; this is a cache refreshed only by
// explicit user action, never polled.
type EndpointRecord struct {
	ID          string
	Label       string
	Description string
	Enabled     bool

	// AccessToken overrides the globally configured token for this record
	// when non-empty.
	AccessToken string

	Namespace          string
	Name               string
	Type               string
	AccountID          string
	Repository         string
	Framework          string
	Task               string
	Revision           string
	Accelerator        string
	InstanceSize       string
	InstanceType       string
	Vendor             string
	Region             string
	MinReplica         int
	MaxReplica         int
	ScaleToZeroTimeout *int

	State     string
	URL       string
	CreatedAt string
	UpdatedAt string

	ImportedAt time.Time
}

// NewEndpointRecord mirrors a remote endpoint into a fresh local record.
func NewEndpointRecord(namespace, accessToken string, ep *Endpoint) *EndpointRecord {
	rec := &EndpointRecord{
		ID:          RecordID(namespace, ep.Name),
		Label:       ep.Name,
		Enabled:     true,
		AccessToken: accessToken,
		Namespace:   namespace,
		Name:        ep.Name,
		Type:        ep.Type,
		ImportedAt:  time.Now(),
	}
	if rec.Type == "" {
		rec.Type = EndpointTypeProtected
	}
	rec.ApplyRemote(ep)
	return rec
}

// ApplyRemote overwrites the mirrored config and status fields with a fresh
// remote representation.
func (r *EndpointRecord) ApplyRemote(ep *Endpoint) {
	r.AccountID = ep.AccountID
	r.Repository = ep.Model.Repository
	r.Framework = ep.Model.Framework
	r.Task = ep.Model.Task
	r.Revision = ep.Model.Revision
	r.Accelerator = ep.Compute.Accelerator
	r.InstanceSize = ep.Compute.InstanceSize
	r.InstanceType = ep.Compute.InstanceType
	r.Region = ep.Provider.Region
	r.Vendor = ep.Provider.Vendor
	r.MinReplica = ep.Compute.Scaling.MinReplica
	r.MaxReplica = ep.Compute.Scaling.MaxReplica
	r.ScaleToZeroTimeout = ep.Compute.Scaling.ScaleToZeroTimeout
	r.State = ep.Status.State
	r.URL = ep.Status.URL
	r.CreatedAt = ep.Status.CreatedAt
	r.UpdatedAt = ep.Status.UpdatedAt
}
