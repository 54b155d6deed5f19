package huggingface

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

const defaultOCRModel = "microsoft/Florence-2-large"

// RunTask executes one hosted inference task. Caller parameters are merged
// over the task's default skeleton at the top level; caller values win.
func (c *Client) RunTask(ctx context.Context, task string, params domain.TaskParams, opts ...ports.CallOption) (*domain.TaskResult, error) {
	spec, ok := taskSpecs[task]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTask, task)
	}

	merged := mergeParams(spec.defaults(), params)
	if task == domain.TaskZeroShotClassification {
		joinCandidateLabels(merged)
	}

	url, err := c.taskURL(ctx, task)
	if err != nil {
		return nil, err
	}
	token := c.token(ctx, opts)

	var (
		status int
		body   []byte
	)
	if spec.binary {
		status, body, err = c.postBinary(ctx, task, url, token, merged, spec.slow)
	} else {
		status, body, err = c.postJSON(ctx, task, url, token, merged)
	}
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, taskErr(task, status, body)
	}

	if !spec.skipLog {
		c.record(ctx, task, body)
	}

	return decodeTaskResult(task, body)
}

// ImageTextToText sends an image plus prompt through the router API, e.g.
// for OCR. The image is base64-encoded on the wire.
func (c *Client) ImageTextToText(ctx context.Context, params domain.TaskParams, opts ...ports.CallOption) (*domain.TaskResult, error) {
	task := domain.TaskImageTextToText

	model := stringParam(params, "model", defaultOCRModel)
	image := stringParam(params, "image", "")
	prompt := stringParam(params, "prompt", "<OCR>")

	if image == "" {
		return nil, domain.ErrInputRequired
	}
	if !isBase64(image) {
		image = base64.StdEncoding.EncodeToString([]byte(image))
	}

	maxTokens := 1024
	if v, ok := params["max_tokens"]; ok {
		if n, ok := toInt(v); ok {
			maxTokens = n
		}
	}

	payload := domain.TaskParams{
		"inputs":     map[string]any{"image": image, "text": prompt},
		"parameters": map[string]any{"max_new_tokens": maxTokens},
	}

	url := c.routerBase + "/" + model
	c.debugf(ctx, log.Fields{"model": model, "prompt": prompt}, "image-text-to-text request")

	status, body, err := c.postJSON(ctx, task, url, c.token(ctx, opts), payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, taskErr(task, status, body)
	}

	if c.provider.LoggingEnabled(ctx) {
		c.record(ctx, task, body)
	}

	return decodeTaskResult(task, body)
}

func (c *Client) postJSON(ctx context.Context, task, url, token string, params domain.TaskParams) (int, []byte, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s request: %w", task, err)
	}
	return c.doJSON(ctx, task, http.MethodPost, url, token, payload)
}

// postBinary streams the referenced file's bytes as the request body with
// its detected MIME type. Slow tasks use the client without a deadline so
// large uploads are not cut off.
func (c *Client) postBinary(ctx context.Context, task, url, token string, params domain.TaskParams, slow bool) (int, []byte, error) {
	ref := binaryInput(params["inputs"])
	if ref == "" {
		return 0, nil, domain.ErrInputRequired
	}
	if c.files == nil {
		return 0, nil, domain.ErrInputRequired
	}

	reader, mime, err := c.files.Open(ref)
	if err != nil {
		return 0, nil, fmt.Errorf("open %s input: %w", task, err)
	}
	defer reader.Close()

	hc := c.client
	if slow {
		hc = c.uploadClient
	}
	return c.do(ctx, task, http.MethodPost, url, token, mime, reader, hc)
}

// taskURL prefers the configured hosted inference URL; otherwise the task's
// default model is addressed directly.
func (c *Client) taskURL(ctx context.Context, task string) (string, error) {
	if url := c.provider.InferenceURL(ctx); url != "" {
		return url, nil
	}
	model, ok := domain.TaskModels()[task]
	if !ok {
		return "", fmt.Errorf("%w: no default model for task %s", domain.ErrInferenceURLRequired, task)
	}
	return c.inferenceBase + "/" + model, nil
}

func taskErr(task string, status int, body []byte) error {
	return &domain.RemoteError{
		Op:         task,
		StatusCode: status,
		Body:       string(body),
		ServerSide: status >= 500,
		Transient:  isLoadingBody(body),
	}
}

// isLoadingBody detects the hosted API's "model is currently loading" reply.
func isLoadingBody(body []byte) bool {
	var decoded struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return false
	}
	return strings.Contains(decoded.Error, "loading")
}

func decodeTaskResult(task string, body []byte) (*domain.TaskResult, error) {
	result := &domain.TaskResult{Task: task, Body: body}
	if err := json.Unmarshal(body, &result.Data); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", task, err)
	}
	return result, nil
}

// mergeParams shallow-merges caller params over the defaults skeleton.
func mergeParams(defaults, params domain.TaskParams) domain.TaskParams {
	merged := domain.TaskParams{}
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

// joinCandidateLabels flattens a candidate_labels slice into the
// comma-separated string form the API accepts.
func joinCandidateLabels(params domain.TaskParams) {
	inner, ok := params["parameters"].(map[string]any)
	if !ok {
		return
	}
	switch labels := inner["candidate_labels"].(type) {
	case []string:
		inner["candidate_labels"] = strings.Join(labels, ", ")
	case []any:
		parts := make([]string, 0, len(labels))
		for _, l := range labels {
			if s, ok := l.(string); ok {
				parts = append(parts, s)
			}
		}
		inner["candidate_labels"] = strings.Join(parts, ", ")
	}
}

// binaryInput extracts the file reference from the inputs parameter, which
// arrives either as a single reference or a list with the reference first.
func binaryInput(v any) string {
	switch inputs := v.(type) {
	case string:
		return inputs
	case []string:
		if len(inputs) > 0 {
			return inputs[0]
		}
	case []any:
		for _, in := range inputs {
			if s, ok := in.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func stringParam(params domain.TaskParams, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func isBase64(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
