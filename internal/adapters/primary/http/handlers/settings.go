package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/adapters/primary/http/dto"
)

// GetSettings returns the effective configuration.
func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.settingsSvc.Settings(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// UpdateSettings merges a sparse update over the current settings and
// persists the result.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merged := dto.ApplySettings(h.settingsSvc.Settings(c.Request.Context()), &req)
	if err := h.settingsSvc.Save(c.Request.Context(), merged); err != nil {
		log.WithError(err).Error("save settings failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(merged))
}

// ListResponses returns recent audit-log rows, newest first.
func (h *Handler) ListResponses(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	entries, err := h.settingsSvc.RecentResponses(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("list responses failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ResponseEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ToResponseEntryResponse(e))
	}

	c.JSON(http.StatusOK, dto.ListResponseEntriesResponse{
		Items: items,
		Total: len(items),
	})
}
