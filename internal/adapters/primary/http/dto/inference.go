package dto

import (
	"encoding/json"

	"hf-endpoint-service/internal/core/domain"
)

// RunTaskRequest carries the caller parameters for one inference task run.
// Params are merged over the task's default skeleton; caller values win.
type RunTaskRequest struct {
	Params map[string]any `json:"params"`
}

// TaskResultResponse is a decoded task response.
type TaskResultResponse struct {
	Task string          `json:"task"`
	Data json.RawMessage `json:"data"`
}

// TaskOptionResponse is one selectable task.
type TaskOptionResponse struct {
	Task  string `json:"task"`
	Label string `json:"label"`
}

// ListTaskOptionsResponse lists the selectable tasks.
type ListTaskOptionsResponse struct {
	Items []TaskOptionResponse `json:"items"`
	Total int                  `json:"total"`
}

// ToTaskResultResponse converts a task result; the raw body is passed
// through untouched when it is valid JSON.
func ToTaskResultResponse(res *domain.TaskResult) TaskResultResponse {
	out := TaskResultResponse{Task: res.Task}
	if json.Valid(res.Body) {
		out.Data = json.RawMessage(res.Body)
		return out
	}
	quoted, _ := json.Marshal(string(res.Body))
	out.Data = quoted
	return out
}
