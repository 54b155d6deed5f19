package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hf-endpoint-service/internal/adapters/primary/http/dto"
	"hf-endpoint-service/internal/core/domain"
)

// ListEndpoints lists all local endpoint records.
func (h *Handler) ListEndpoints(c *gin.Context) {
	records, err := h.endpointSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list endpoint records failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.EndpointRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.ToEndpointRecordResponse(rec))
	}

	c.JSON(http.StatusOK, dto.ListEndpointRecordsResponse{
		Items: items,
		Total: len(items),
	})
}

// GetEndpoint returns one local endpoint record.
func (h *Handler) GetEndpoint(c *gin.Context) {
	rec, err := h.endpointSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// CreateEndpoint provisions a remote endpoint and mirrors it locally.
func (h *Handler) CreateEndpoint(c *gin.Context) {
	var req dto.CreateEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := dto.ToEndpointConfig(&req)
	rec, err := h.endpointSvc.Create(c.Request.Context(), cfg, req.Label, req.Description, req.AccessToken)
	if err != nil {
		log.WithError(err).WithField("endpoint", req.Name).Error("create endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEndpointRecordResponse(rec))
}

// UpdateEndpoint applies a sparse update remotely and refreshes the mirror.
func (h *Handler) UpdateEndpoint(c *gin.Context) {
	var req dto.UpdateEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Empty() {
		mapDomainError(c, domain.ErrEmptyUpdate)
		return
	}

	rec, err := h.endpointSvc.Update(c.Request.Context(), c.Param("id"), dto.ToEndpointUpdate(&req))
	if err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("update endpoint failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// DeleteEndpoint removes the local record; the remote endpoint keeps
// running.
func (h *Handler) DeleteEndpoint(c *gin.Context) {
	if err := h.endpointSvc.DeleteLocal(c.Request.Context(), c.Param("id")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RefreshEndpoint re-reads the remote endpoint into the mirror.
func (h *Handler) RefreshEndpoint(c *gin.Context) {
	rec, err := h.endpointSvc.Refresh(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("refresh endpoint failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// PauseEndpoint stops the endpoint (replica window 0/0).
func (h *Handler) PauseEndpoint(c *gin.Context) {
	rec, err := h.endpointSvc.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("pause endpoint failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// ResumeEndpoint restarts a paused endpoint (replica window 1/1).
func (h *Handler) ResumeEndpoint(c *gin.Context) {
	rec, err := h.endpointSvc.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("resume endpoint failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// ScaleToZeroEndpoint drops minReplica to zero, leaving maxReplica so the
// endpoint can scale back up on traffic.
func (h *Handler) ScaleToZeroEndpoint(c *gin.Context) {
	rec, err := h.endpointSvc.ScaleToZero(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("scale endpoint to zero failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEndpointRecordResponse(rec))
}

// DeleteRemoteEndpoint deletes the remote endpoint, keeping the local
// record for later cleanup.
func (h *Handler) DeleteRemoteEndpoint(c *gin.Context) {
	if err := h.endpointSvc.DeleteRemote(c.Request.Context(), c.Param("id")); err != nil {
		log.WithError(err).WithField("id", c.Param("id")).Error("delete remote endpoint failed")
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRemoteEndpoints lists the remote endpoints of a namespace for import
// selection, marking those already mirrored.
func (h *Handler) ListRemoteEndpoints(c *gin.Context) {
	namespace := c.Query("namespace")
	if namespace == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNamespaceRequired.Error()})
		return
	}

	endpoints, err := h.endpointSvc.ListRemote(c.Request.Context(), namespace, c.Query("access_token"))
	if err != nil {
		log.WithError(err).WithField("namespace", namespace).Error("list remote endpoints failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RemoteEndpointResponse, 0, len(endpoints))
	for i := range endpoints {
		ep := &endpoints[i]
		_, err := h.endpointSvc.Get(c.Request.Context(), domain.RecordID(namespace, ep.Name))
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			log.WithError(err).WithField("name", ep.Name).Error("imported lookup failed")
			mapDomainError(c, err)
			return
		}
		items = append(items, dto.ToRemoteEndpointResponse(ep, err == nil))
	}

	c.JSON(http.StatusOK, dto.ListRemoteEndpointsResponse{
		Items: items,
		Total: len(items),
	})
}

// SyncEndpoints imports a selection of remote endpoints as local records.
func (h *Handler) SyncEndpoints(c *gin.Context) {
	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.endpointSvc.Sync(c.Request.Context(), req.Namespace, req.AccessToken, req.Names)
	if err != nil {
		log.WithError(err).WithField("namespace", req.Namespace).Error("sync endpoints failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		Imported: emptyIfNil(result.Imported),
		Skipped:  emptyIfNil(result.Skipped),
		Failed:   emptyIfNil(result.Failed),
	})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
