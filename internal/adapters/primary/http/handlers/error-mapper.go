package handlers

import (
	"errors"
	"net/http"

	"hf-endpoint-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	// Remote API failures carry the upstream status and body; surface both
	// so the caller can tell a bad request from an upstream outage.
	if re, ok := domain.IsRemote(err); ok {
		status := http.StatusBadGateway
		if re.Transient {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"error":           re.Error(),
			"upstream_status": re.StatusCode,
			"upstream_body":   re.Body,
			"transient":       re.Transient,
		})
		return
	}

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrSettingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrRecordExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrNamespaceRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrRepositoryRequired),
		errors.Is(err, domain.ErrReplicaBounds),
		errors.Is(err, domain.ErrInputRequired),
		errors.Is(err, domain.ErrUnknownTask),
		errors.Is(err, domain.ErrEmptyUpdate),
		errors.Is(err, domain.ErrRecordDisabled),
		errors.Is(err, domain.ErrInferenceURLRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
