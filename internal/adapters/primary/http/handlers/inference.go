package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/adapters/primary/http/dto"
)

// ListTasks lists the selectable inference tasks.
func (h *Handler) ListTasks(c *gin.Context) {
	options := h.inferenceSvc.TaskOptions()

	items := make([]dto.TaskOptionResponse, 0, len(options))
	for task, label := range options {
		items = append(items, dto.TaskOptionResponse{Task: task, Label: label})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Task < items[j].Task })

	c.JSON(http.StatusOK, dto.ListTaskOptionsResponse{
		Items: items,
		Total: len(items),
	})
}

// RunTask executes one inference task with caller parameters merged over
// the task defaults.
func (h *Handler) RunTask(c *gin.Context) {
	task := c.Param("task")

	var req dto.RunTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inferenceSvc.Run(c.Request.Context(), task, req.Params)
	if err != nil {
		log.WithError(err).WithField("task", task).Error("run task failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResultResponse(result))
}
