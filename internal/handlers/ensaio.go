package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type EnsaioHandler struct {
	log          *logger.Logger
	ensaioSvc    services.EnsaioService
	duplicateSvc services.DuplicateService
}

func NewEnsaioHandler(baseLog *logger.Logger, ensaioSvc services.EnsaioService, duplicateSvc services.DuplicateService) *EnsaioHandler {
	return &EnsaioHandler{
		log:          baseLog.With("handler", "EnsaioHandler"),
		ensaioSvc:    ensaioSvc,
		duplicateSvc: duplicateSvc,
	}
}

// GET /ensaios
func (eh *EnsaioHandler) List(c *gin.Context) {
	summaries, err := eh.ensaioSvc.List(c.Request.Context())
	if err != nil {
		eh.log.Error("List ensaios failed", "error", err)
		respondServiceError(c, err)
		return
	}
	if summaries == nil {
		summaries = []*types.EnsaioSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"ensaios": summaries})
}

// GET /ensaios/:uuid
func (eh *EnsaioHandler) Get(c *gin.Context) {
	ensaioUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}
	detail, err := eh.ensaioSvc.Get(c.Request.Context(), ensaioUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PATCH /ensaios/:uuid
func (eh *EnsaioHandler) Patch(c *gin.Context) {
	ensaioUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}
	var patch types.EnsaioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := eh.ensaioSvc.Patch(c.Request.Context(), ensaioUUID, &patch); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /ensaios/:uuid
func (eh *EnsaioHandler) Delete(c *gin.Context) {
	ensaioUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}
	if err := eh.ensaioSvc.Delete(c.Request.Context(), ensaioUUID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /ensaios/duplicar
func (eh *EnsaioHandler) Duplicate(c *gin.Context) {
	var req types.DuplicarEnsaioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := eh.duplicateSvc.Duplicate(c.Request.Context(), req.EnsaioUUID)
	if err != nil {
		eh.log.Error("Duplicate ensaio failed", "ensaio_uuid", req.EnsaioUUID, "error", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
