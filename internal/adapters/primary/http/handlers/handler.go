package handlers

import (
	"hf-endpoint-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	endpointSvc  *services.EndpointService
	inferenceSvc *services.InferenceService
	settingsSvc  *services.SettingsService
}

func New(
	endpointSvc *services.EndpointService,
	inferenceSvc *services.InferenceService,
	settingsSvc *services.SettingsService,
) *Handler {
	return &Handler{
		endpointSvc:  endpointSvc,
		inferenceSvc: inferenceSvc,
		settingsSvc:  settingsSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Local endpoint records
	r.GET("/endpoints", h.ListEndpoints)
	r.GET("/endpoints/:id", h.GetEndpoint)
	r.POST("/endpoints", h.CreateEndpoint)
	r.PATCH("/endpoints/:id", h.UpdateEndpoint)
	r.DELETE("/endpoints/:id", h.DeleteEndpoint)

	// Remote lifecycle actions
	r.POST("/endpoints/:id/refresh", h.RefreshEndpoint)
	r.POST("/endpoints/:id/pause", h.PauseEndpoint)
	r.POST("/endpoints/:id/resume", h.ResumeEndpoint)
	r.POST("/endpoints/:id/scale_to_zero", h.ScaleToZeroEndpoint)
	r.DELETE("/endpoints/:id/remote", h.DeleteRemoteEndpoint)

	// Remote listing and import
	r.GET("/remote_endpoints", h.ListRemoteEndpoints)
	r.POST("/sync", h.SyncEndpoints)

	// Inference tasks
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks/:task", h.RunTask)

	// Settings / audit log
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
	r.GET("/responses", h.ListResponses)
}
