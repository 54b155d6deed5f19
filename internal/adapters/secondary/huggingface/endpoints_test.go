package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
	"hf-endpoint-service/internal/testutil"
)

// capturedRequest remembers what the fake API saw.
type capturedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newEndpointTestClient(t *testing.T, status int, response string, captured *capturedRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Method = r.Method
			captured.Path = r.URL.Path
			captured.Auth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &captured.Body)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return NewClient(&testutil.StaticConfigProvider{Token: "global-token"}, nil, nil, Options{
		EndpointURL: srv.URL,
	})
}

func TestListEndpoints_Success(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{"items":[{"name":"ner-prod","type":"protected","status":{"state":"running","url":"https://x.endpoints.huggingface.cloud"}}]}`, &captured)

	endpoints, err := client.ListEndpoints(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "ner-prod", endpoints[0].Name)
	assert.Equal(t, "running", endpoints[0].Status.State)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/acme", captured.Path)
	assert.Equal(t, "Bearer global-token", captured.Auth)
}

func TestListEndpoints_MissingItemsKeyIsEmpty(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusOK, `{}`, nil)

	endpoints, err := client.ListEndpoints(context.Background(), "acme")

	require.NoError(t, err)
	assert.NotNil(t, endpoints)
	assert.Empty(t, endpoints)
}

func TestListEndpoints_EmptyNamespace(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{}`, &captured)

	_, err := client.ListEndpoints(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrNamespaceRequired)
	assert.Empty(t, captured.Method, "no request should go out")
}

func TestListEndpoints_ServerError(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusInternalServerError, `{"error":"boom"}`, nil)

	_, err := client.ListEndpoints(context.Background(), "acme")

	re, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
	assert.True(t, re.ServerSide)
	assert.Contains(t, re.Body, "boom")
}

func TestGetEndpoint_NotFound(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusNotFound, `{"error":"no such endpoint"}`, nil)

	_, err := client.GetEndpoint(context.Background(), "acme", "gone")

	re, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.False(t, re.ServerSide)
	assert.Contains(t, re.Body, "no such endpoint")
}

func TestGetEndpoint_TokenOverride(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{"name":"ner-prod"}`, &captured)

	_, err := client.GetEndpoint(context.Background(), "acme", "ner-prod", ports.WithAccessToken("record-token"))

	require.NoError(t, err)
	assert.Equal(t, "Bearer record-token", captured.Auth)
	assert.Equal(t, "/acme/ner-prod", captured.Path)
}

func TestCreateEndpoint_DefaultsAndImageVariant(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusAccepted, `{"name":"ner-prod","type":"protected","status":{"state":"pending"}}`, &captured)

	cfg := &domain.EndpointConfig{
		Namespace:  "acme",
		Name:       "ner-prod",
		Repository: "dslim/bert-base-NER",
		MaxReplica: 1,
	}
	ep, err := client.CreateEndpoint(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "ner-prod", ep.Name)
	assert.Equal(t, "pending", ep.Status.State)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/acme", captured.Path)

	assert.Equal(t, "ner-prod", captured.Body["name"])
	assert.Equal(t, "protected", captured.Body["type"])

	compute := captured.Body["compute"].(map[string]any)
	assert.Equal(t, "cpu", compute["accelerator"])
	assert.Equal(t, "x1", compute["instanceSize"])
	assert.Equal(t, "intel-spr", compute["instanceType"])

	scaling := compute["scaling"].(map[string]any)
	assert.Equal(t, float64(0), scaling["minReplica"])
	assert.Equal(t, float64(1), scaling["maxReplica"])
	_, hasTimeout := scaling["scaleToZeroTimeout"]
	assert.False(t, hasTimeout)

	model := captured.Body["model"].(map[string]any)
	assert.Equal(t, "dslim/bert-base-NER", model["repository"])
	assert.Equal(t, "pytorch", model["framework"])
	assert.Equal(t, "text-generation", model["task"])
	_, hasRevision := model["revision"]
	assert.False(t, hasRevision)

	image := model["image"].(map[string]any)
	assert.Contains(t, image, "huggingface")
	assert.NotContains(t, image, "custom")

	provider := captured.Body["provider"].(map[string]any)
	assert.Equal(t, "us-east-1", provider["region"])
	assert.Equal(t, "aws", provider["vendor"])
}

func TestCreateEndpoint_CustomImageReplacesDefault(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusCreated, `{"name":"ocr"}`, &captured)

	timeout := 900
	cfg := &domain.EndpointConfig{
		Namespace:          "acme",
		Name:               "ocr",
		Repository:         "acme/ocr-model",
		Task:               "image-to-text",
		Revision:           "abc123",
		MinReplica:         1,
		MaxReplica:         2,
		ScaleToZeroTimeout: &timeout,
		CustomImage: &domain.CustomImage{
			URL:         "registry.example.com/ocr:latest",
			HealthRoute: "/health",
			Env:         map[string]string{"BATCH": "4"},
		},
	}
	_, err := client.CreateEndpoint(context.Background(), cfg)

	require.NoError(t, err)

	model := captured.Body["model"].(map[string]any)
	assert.Equal(t, "image-to-text", model["task"], "caller-supplied task replaces the default")
	assert.Equal(t, "abc123", model["revision"])

	image := model["image"].(map[string]any)
	assert.NotContains(t, image, "huggingface")
	custom := image["custom"].(map[string]any)
	assert.Equal(t, "registry.example.com/ocr:latest", custom["url"])
	assert.Equal(t, "/health", custom["health_route"])

	scaling := captured.Body["compute"].(map[string]any)["scaling"].(map[string]any)
	assert.Equal(t, float64(1), scaling["minReplica"])
	assert.Equal(t, float64(2), scaling["maxReplica"])
	assert.Equal(t, float64(900), scaling["scaleToZeroTimeout"])
}

func TestCreateEndpoint_Validation(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{}`, &captured)

	_, err := client.CreateEndpoint(context.Background(), &domain.EndpointConfig{Namespace: "acme", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrRepositoryRequired)

	_, err = client.CreateEndpoint(context.Background(), &domain.EndpointConfig{
		Namespace: "acme", Name: "x", Repository: "r", MinReplica: 3, MaxReplica: 1,
	})
	assert.ErrorIs(t, err, domain.ErrReplicaBounds)

	assert.Empty(t, captured.Method, "validation failures never reach the network")
}

func TestCreateEndpoint_RejectedStatus(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusBadRequest, `{"error":"quota exceeded"}`, nil)

	_, err := client.CreateEndpoint(context.Background(), &domain.EndpointConfig{
		Namespace: "acme", Name: "x", Repository: "r", MaxReplica: 1,
	})

	re, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Contains(t, re.Body, "quota exceeded")
}

func TestCreateEndpoint_AcceptedWithEmptyBody(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusAccepted, "", nil)

	ep, err := client.CreateEndpoint(context.Background(), &domain.EndpointConfig{
		Namespace: "acme", Name: "ner-prod", Repository: "r", MaxReplica: 1,
	})

	require.NoError(t, err)
	require.NotNil(t, ep)
	assert.Equal(t, domain.Endpoint{}, *ep)
}

func TestUpdateEndpoint_AcceptedWithUndecodableBody(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusAccepted, "pending", nil)

	min := 1
	ep, err := client.UpdateEndpoint(context.Background(), "acme", "ner-prod", &domain.EndpointUpdate{
		MinReplica: &min,
	})

	require.NoError(t, err)
	require.NotNil(t, ep)
	assert.Equal(t, domain.Endpoint{}, *ep)
}

func TestUpdateEndpoint_SparsePayload(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{"name":"ner-prod"}`, &captured)

	min := 2
	_, err := client.UpdateEndpoint(context.Background(), "acme", "ner-prod", &domain.EndpointUpdate{
		MinReplica: &min,
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, captured.Method)
	assert.Equal(t, "/acme/ner-prod", captured.Path)

	scaling := captured.Body["compute"].(map[string]any)["scaling"].(map[string]any)
	assert.Equal(t, float64(2), scaling["minReplica"])
	_, hasMax := scaling["maxReplica"]
	assert.False(t, hasMax, "unset fields stay out of the payload")
	_, hasModel := captured.Body["model"]
	assert.False(t, hasModel)
}

func TestPauseEndpoint_PayloadShape(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{"name":"ner-prod","status":{"state":"paused"}}`, &captured)

	ep, err := client.PauseEndpoint(context.Background(), "acme", "ner-prod")

	require.NoError(t, err)
	assert.Equal(t, "paused", ep.Status.State)

	scaling := captured.Body["compute"].(map[string]any)["scaling"].(map[string]any)
	assert.Equal(t, float64(0), scaling["minReplica"])
	assert.Equal(t, float64(0), scaling["maxReplica"])
}

func TestResumeEndpoint_PayloadShape(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusAccepted, `{"name":"ner-prod"}`, &captured)

	_, err := client.ResumeEndpoint(context.Background(), "acme", "ner-prod")

	require.NoError(t, err)
	scaling := captured.Body["compute"].(map[string]any)["scaling"].(map[string]any)
	assert.Equal(t, float64(1), scaling["minReplica"])
	assert.Equal(t, float64(1), scaling["maxReplica"])
}

func TestScaleToZeroEndpoint_LeavesMaxReplica(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusOK, `{"name":"ner-prod"}`, &captured)

	_, err := client.ScaleToZeroEndpoint(context.Background(), "acme", "ner-prod")

	require.NoError(t, err)
	scaling := captured.Body["compute"].(map[string]any)["scaling"].(map[string]any)
	assert.Equal(t, float64(0), scaling["minReplica"])
	_, hasMax := scaling["maxReplica"]
	assert.False(t, hasMax, "scale-to-zero must not touch maxReplica")
}

func TestDeleteEndpoint_AcceptsNoContent(t *testing.T) {
	var captured capturedRequest
	client := newEndpointTestClient(t, http.StatusNoContent, ``, &captured)

	err := client.DeleteEndpoint(context.Background(), "acme", "ner-prod")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, captured.Method)
	assert.Equal(t, "/acme/ner-prod", captured.Path)
}

func TestDeleteEndpoint_NotFound(t *testing.T) {
	client := newEndpointTestClient(t, http.StatusNotFound, `{"error":"gone"}`, nil)

	err := client.DeleteEndpoint(context.Background(), "acme", "ner-prod")

	re, ok := domain.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
}

func TestListEndpoints_Recorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	recorder := new(testutil.MockResponseLogRepo)
	recorder.On("Record", mock.Anything, "inference_endpoints", `{"items":[]}`).Return(nil)

	client := NewClient(&testutil.StaticConfigProvider{Token: "t"}, nil, recorder, Options{EndpointURL: srv.URL})
	_, err := client.ListEndpoints(context.Background(), "acme")

	require.NoError(t, err)
	recorder.AssertExpectations(t)
}
