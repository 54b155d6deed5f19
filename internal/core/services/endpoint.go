package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// EndpointService orchestrates remote lifecycle operations and the local
// mirror. Remote state is authoritative; the mirror is refreshed only by the
// explicit operations here, never polled.
type EndpointService struct {
	api  ports.EndpointAPI
	repo ports.EndpointRecordRepository
}

func NewEndpointService(api ports.EndpointAPI, repo ports.EndpointRecordRepository) *EndpointService {
	return &EndpointService{api: api, repo: repo}
}

// Create provisions a remote endpoint and mirrors the response as a new
// local record. accessToken, when non-empty, becomes the record's override.
func (s *EndpointService) Create(ctx context.Context, cfg *domain.EndpointConfig, label, description, accessToken string) (*domain.EndpointRecord, error) {
	ep, err := s.api.CreateEndpoint(ctx, cfg, ports.WithAccessToken(accessToken))
	if err != nil {
		return nil, err
	}

	rec := domain.NewEndpointRecord(cfg.Namespace, accessToken, ep)
	if rec.Name == "" {
		// Some provisioning responses echo a partial body; fall back to the
		// requested coordinates.
		rec.Name = cfg.Name
		rec.ID = domain.RecordID(cfg.Namespace, cfg.Name)
		rec.Label = cfg.Name
	}
	if label != "" {
		rec.Label = label
	}
	rec.Description = description

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SyncResult reports the outcome of an import run.
type SyncResult struct {
	Imported []string
	Skipped  []string
	Failed   []string
}

// Sync lists the namespace's remote endpoints and imports the selected
// names as local records, skipping any whose derived ID already exists.
// Per-item failures are reported, not fatal.
func (s *EndpointService) Sync(ctx context.Context, namespace, accessToken string, names []string) (*SyncResult, error) {
	if namespace == "" {
		return nil, domain.ErrNamespaceRequired
	}

	endpoints, err := s.api.ListEndpoints(ctx, namespace, ports.WithAccessToken(accessToken))
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}

	result := &SyncResult{}
	for i := range endpoints {
		ep := &endpoints[i]
		if !selected[ep.Name] {
			continue
		}

		id := domain.RecordID(namespace, ep.Name)
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = append(result.Skipped, ep.Name)
			continue
		}

		rec := domain.NewEndpointRecord(namespace, accessToken, ep)
		if err := s.repo.Create(ctx, rec); err != nil {
			log.WithError(err).WithField("endpoint", ep.Name).Warn("failed to import endpoint")
			result.Failed = append(result.Failed, ep.Name)
			continue
		}
		result.Imported = append(result.Imported, ep.Name)
	}

	return result, nil
}

// loadEnabled fetches a record for a remote-facing operation. Disabled
// records keep their mirror but refuse remote calls until re-enabled.
func (s *EndpointService) loadEnabled(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.Enabled {
		return nil, domain.ErrRecordDisabled
	}
	return rec, nil
}

// Refresh fetches the remote endpoint and overwrites the mirrored fields.
func (s *EndpointService) Refresh(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return nil, err
	}

	ep, err := s.api.GetEndpoint(ctx, rec.Namespace, rec.Name, ports.WithAccessToken(rec.AccessToken))
	if err != nil {
		return nil, err
	}

	rec.ApplyRemote(ep)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update issues a raw sparse update and mirrors the response locally.
func (s *EndpointService) Update(ctx context.Context, id string, update *domain.EndpointUpdate) (*domain.EndpointRecord, error) {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return nil, err
	}

	ep, err := s.api.UpdateEndpoint(ctx, rec.Namespace, rec.Name, update, ports.WithAccessToken(rec.AccessToken))
	if err != nil {
		return nil, err
	}

	rec.ApplyRemote(ep)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Pause stops the endpoint and forces the local replica window to zero,
// whatever the response carries.
func (s *EndpointService) Pause(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return nil, err
	}

	ep, err := s.api.PauseEndpoint(ctx, rec.Namespace, rec.Name, ports.WithAccessToken(rec.AccessToken))
	if err != nil {
		return nil, err
	}

	rec.State = orState(ep.Status.State, domain.StatePaused)
	rec.MinReplica = 0
	rec.MaxReplica = 0
	applyUpdatedAt(rec, ep)

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Resume brings a paused endpoint back with one replica.
func (s *EndpointService) Resume(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return nil, err
	}

	ep, err := s.api.ResumeEndpoint(ctx, rec.Namespace, rec.Name, ports.WithAccessToken(rec.AccessToken))
	if err != nil {
		return nil, err
	}

	rec.State = orState(ep.Status.State, domain.StateInitializing)
	rec.MinReplica = 1
	rec.MaxReplica = 1
	applyUpdatedAt(rec, ep)

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ScaleToZero drops minReplica to zero locally and remotely; maxReplica is
// untouched so the endpoint can scale back up on its own.
func (s *EndpointService) ScaleToZero(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return nil, err
	}

	ep, err := s.api.ScaleToZeroEndpoint(ctx, rec.Namespace, rec.Name, ports.WithAccessToken(rec.AccessToken))
	if err != nil {
		return nil, err
	}

	rec.State = orState(ep.Status.State, domain.StateScaledToZero)
	rec.MinReplica = 0
	applyUpdatedAt(rec, ep)

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteLocal removes the mirror only; the remote endpoint keeps running.
func (s *EndpointService) DeleteLocal(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteRemote deletes the remote endpoint. The local mirror stays; removing
// it is a separate, explicit decision.
func (s *EndpointService) DeleteRemote(ctx context.Context, id string) error {
	rec, err := s.loadEnabled(ctx, id)
	if err != nil {
		return err
	}
	return s.api.DeleteEndpoint(ctx, rec.Namespace, rec.Name, ports.WithAccessToken(rec.AccessToken))
}

// List returns all local records.
func (s *EndpointService) List(ctx context.Context) ([]*domain.EndpointRecord, error) {
	return s.repo.List(ctx)
}

// Get returns one local record.
func (s *EndpointService) Get(ctx context.Context, id string) (*domain.EndpointRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRemote lists the remote endpoints of a namespace without touching the
// mirror, for import selection.
func (s *EndpointService) ListRemote(ctx context.Context, namespace, accessToken string) ([]domain.Endpoint, error) {
	return s.api.ListEndpoints(ctx, namespace, ports.WithAccessToken(accessToken))
}

func orState(state, fallback string) string {
	if state == "" {
		return fallback
	}
	return state
}

func applyUpdatedAt(rec *domain.EndpointRecord, ep *domain.Endpoint) {
	if ep.Status.UpdatedAt != "" {
		rec.UpdatedAt = ep.Status.UpdatedAt
	}
}
