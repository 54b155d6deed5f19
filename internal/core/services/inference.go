package services

import (
	"context"

	"hf-endpoint-service/internal/core/domain"
	ports "hf-endpoint-service/internal/core/ports/output"
)

// InferenceService runs hosted inference tasks.
type InferenceService struct {
	api ports.InferenceAPI
}

func NewInferenceService(api ports.InferenceAPI) *InferenceService {
	return &InferenceService{api: api}
}

// Run executes a named task with the given parameters. The task client owns
// default merging and payload shaping.
func (s *InferenceService) Run(ctx context.Context, task string, params domain.TaskParams) (*domain.TaskResult, error) {
	if task == domain.TaskImageTextToText {
		return s.api.ImageTextToText(ctx, params)
	}
	return s.api.RunTask(ctx, task, params)
}

// TaskOptions returns the task identifier to label map.
func (s *InferenceService) TaskOptions() map[string]string {
	return domain.TaskOptions()
}
