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

func remoteEndpoint(name, state string) *domain.Endpoint {
	return &domain.Endpoint{
		Name: name,
		Type: "protected",
		Status: domain.EndpointStatus{
			State:     state,
			URL:       "https://" + name + ".endpoints.huggingface.cloud",
			UpdatedAt: "2024-05-01T10:00:00Z",
		},
		Compute: domain.Compute{
			Accelerator: "cpu",
			Scaling:     domain.Scaling{MinReplica: 1, MaxReplica: 2},
		},
		Model:    domain.Model{Repository: "dslim/bert-base-NER", Task: "token-classification"},
		Provider: domain.Provider{Region: "us-east-1", Vendor: "aws"},
	}
}

func TestEndpointService_Create_MirrorsRemoteResponse(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	cfg := &domain.EndpointConfig{Namespace: "acme", Name: "ner-prod", Repository: "dslim/bert-base-NER", MaxReplica: 2}
	api.On("CreateEndpoint", mock.Anything, cfg, "tok").Return(remoteEndpoint("ner-prod", "pending"), nil)

	var created *domain.EndpointRecord
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.EndpointRecord")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.EndpointRecord) }).
		Return(nil)

	rec, err := svc.Create(context.Background(), cfg, "NER production", "tagging service", "tok")

	require.NoError(t, err)
	assert.Same(t, created, rec)
	assert.Equal(t, "acme-ner-prod", rec.ID)
	assert.Equal(t, "NER production", rec.Label)
	assert.Equal(t, "tagging service", rec.Description)
	assert.Equal(t, "tok", rec.AccessToken)
	assert.Equal(t, "pending", rec.State)
	assert.Equal(t, 1, rec.MinReplica)
	assert.Equal(t, 2, rec.MaxReplica)
	assert.True(t, rec.Enabled)
	api.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestEndpointService_Create_PartialBodyFallsBackToRequest(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	cfg := &domain.EndpointConfig{Namespace: "acme", Name: "ner-prod", Repository: "r", MaxReplica: 1}
	api.On("CreateEndpoint", mock.Anything, cfg, "").Return(&domain.Endpoint{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec, err := svc.Create(context.Background(), cfg, "", "", "")

	require.NoError(t, err)
	assert.Equal(t, "ner-prod", rec.Name)
	assert.Equal(t, "acme-ner-prod", rec.ID)
	assert.Equal(t, "ner-prod", rec.Label)
}

func TestEndpointService_Create_RemoteFailureDoesNotPersist(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	cfg := &domain.EndpointConfig{Namespace: "acme", Name: "x", Repository: "r", MaxReplica: 1}
	api.On("CreateEndpoint", mock.Anything, cfg, "").
		Return(nil, &domain.RemoteError{Op: "create inference endpoint", StatusCode: 400, Body: "bad"})

	_, err := svc.Create(context.Background(), cfg, "", "", "")

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEndpointService_Sync_SkipsExistingAndReportsFailures(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	api.On("ListEndpoints", mock.Anything, "acme", "tok").Return([]domain.Endpoint{
		*remoteEndpoint("a", "running"),
		*remoteEndpoint("b", "running"),
		*remoteEndpoint("c", "running"),
		*remoteEndpoint("ignored", "running"),
	}, nil)

	repo.On("Exists", mock.Anything, "acme-a").Return(false, nil)
	repo.On("Exists", mock.Anything, "acme-b").Return(true, nil)
	repo.On("Exists", mock.Anything, "acme-c").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *domain.EndpointRecord) bool { return rec.ID == "acme-a" })).Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *domain.EndpointRecord) bool { return rec.ID == "acme-c" })).Return(errors.New("db down"))

	result, err := svc.Sync(context.Background(), "acme", "tok", []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Imported)
	assert.Equal(t, []string{"b"}, result.Skipped)
	assert.Equal(t, []string{"c"}, result.Failed)
	repo.AssertNotCalled(t, "Exists", mock.Anything, "acme-ignored")
}

func TestEndpointService_Sync_RequiresNamespace(t *testing.T) {
	svc := NewEndpointService(new(testutil.MockEndpointAPI), new(testutil.MockEndpointRecordRepo))

	_, err := svc.Sync(context.Background(), "", "", []string{"a"})

	assert.ErrorIs(t, err, domain.ErrNamespaceRequired)
}

func TestEndpointService_Refresh_UsesRecordToken(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, AccessToken: "record-token"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("GetEndpoint", mock.Anything, "acme", "a", "record-token").Return(remoteEndpoint("a", "running"), nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.Refresh(context.Background(), "acme-a")

	require.NoError(t, err)
	assert.Equal(t, "running", got.State)
	assert.Equal(t, "dslim/bert-base-NER", got.Repository)
	api.AssertExpectations(t)
}

func TestEndpointService_Pause_ForcesLocalReplicasToZero(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, MinReplica: 1, MaxReplica: 2, State: "running"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	// The API answer still claims running replicas; the mirror must not
	// believe it.
	api.On("PauseEndpoint", mock.Anything, "acme", "a", "").Return(remoteEndpoint("a", "paused"), nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.Pause(context.Background(), "acme-a")

	require.NoError(t, err)
	assert.Equal(t, "paused", got.State)
	assert.Equal(t, 0, got.MinReplica)
	assert.Equal(t, 0, got.MaxReplica)
	assert.Equal(t, "2024-05-01T10:00:00Z", got.UpdatedAt)
}

func TestEndpointService_Pause_FallbackStateWhenBodyOmitsIt(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, State: "running"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("PauseEndpoint", mock.Anything, "acme", "a", "").Return(&domain.Endpoint{}, nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.Pause(context.Background(), "acme-a")

	require.NoError(t, err)
	assert.Equal(t, domain.StatePaused, got.State)
}

func TestEndpointService_Resume_SetsSingleReplica(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, State: "paused"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("ResumeEndpoint", mock.Anything, "acme", "a", "").Return(&domain.Endpoint{}, nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.Resume(context.Background(), "acme-a")

	require.NoError(t, err)
	assert.Equal(t, domain.StateInitializing, got.State)
	assert.Equal(t, 1, got.MinReplica)
	assert.Equal(t, 1, got.MaxReplica)
}

func TestEndpointService_ScaleToZero_KeepsMaxReplica(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, MinReplica: 1, MaxReplica: 4}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("ScaleToZeroEndpoint", mock.Anything, "acme", "a", "").Return(&domain.Endpoint{}, nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.ScaleToZero(context.Background(), "acme-a")

	require.NoError(t, err)
	assert.Equal(t, domain.StateScaledToZero, got.State)
	assert.Equal(t, 0, got.MinReplica)
	assert.Equal(t, 4, got.MaxReplica)
}

func TestEndpointService_DeleteRemote_LeavesLocalRecord(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true, AccessToken: "tok"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("DeleteEndpoint", mock.Anything, "acme", "a", "tok").Return(nil)

	err := svc.DeleteRemote(context.Background(), "acme-a")

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	api.AssertExpectations(t)
}

func TestEndpointService_DeleteLocal(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	repo.On("Delete", mock.Anything, "acme-a").Return(nil)

	require.NoError(t, svc.DeleteLocal(context.Background(), "acme-a"))
	api.AssertNotCalled(t, "DeleteEndpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEndpointService_Update_RefreshesMirrorFromResponse(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a", Enabled: true}
	min := 2
	update := &domain.EndpointUpdate{MinReplica: &min}

	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)
	api.On("UpdateEndpoint", mock.Anything, "acme", "a", update, "").Return(remoteEndpoint("a", "updating"), nil)
	repo.On("Update", mock.Anything, rec).Return(nil)

	got, err := svc.Update(context.Background(), "acme-a", update)

	require.NoError(t, err)
	assert.Equal(t, "updating", got.State)
	assert.Equal(t, 1, got.MinReplica)
	assert.Equal(t, 2, got.MaxReplica)
}

func TestEndpointService_Refresh_UnknownRecord(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	repo.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrRecordNotFound)

	_, err := svc.Refresh(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	api.AssertNotCalled(t, "GetEndpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEndpointService_Pause_DisabledRecord(t *testing.T) {
	api := new(testutil.MockEndpointAPI)
	repo := new(testutil.MockEndpointRecordRepo)
	svc := NewEndpointService(api, repo)

	rec := &domain.EndpointRecord{ID: "acme-a", Namespace: "acme", Name: "a"}
	repo.On("GetByID", mock.Anything, "acme-a").Return(rec, nil)

	_, err := svc.Pause(context.Background(), "acme-a")

	assert.ErrorIs(t, err, domain.ErrRecordDisabled)
	api.AssertNotCalled(t, "PauseEndpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
