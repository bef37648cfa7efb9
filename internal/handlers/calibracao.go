package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type CalibracaoHandler struct {
	log           *logger.Logger
	calibracaoSvc services.CalibracaoService
}

func NewCalibracaoHandler(baseLog *logger.Logger, calibracaoSvc services.CalibracaoService) *CalibracaoHandler {
	return &CalibracaoHandler{
		log:           baseLog.With("handler", "CalibracaoHandler"),
		calibracaoSvc: calibracaoSvc,
	}
}

// GET /calibracoes
func (ch *CalibracaoHandler) List(c *gin.Context) {
	rows, err := ch.calibracaoSvc.List(c.Request.Context())
	if err != nil {
		ch.log.Error("List calibracoes failed", "error", err)
		respondServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []*types.Calibracao{}
	}
	c.JSON(http.StatusOK, gin.H{"calibracoes": rows})
}

// POST /calibracoes
func (ch *CalibracaoHandler) Create(c *gin.Context) {
	var in types.CalibracaoIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := ch.calibracaoSvc.Create(c.Request.Context(), &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// PATCH /calibracoes/:id
func (ch *CalibracaoHandler) Patch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calibracao id"})
		return
	}
	var patch types.CalibracaoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.calibracaoSvc.Patch(c.Request.Context(), id, &patch); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /calibracoes
// Replaces the calibration of a cylinder serial, creating it when new.
func (ch *CalibracaoHandler) Upsert(c *gin.Context) {
	var in types.CalibracaoIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := ch.calibracaoSvc.UpsertByCilindro(c.Request.Context(), &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /calibracoes/:id
func (ch *CalibracaoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calibracao id"})
		return
	}
	if err := ch.calibracaoSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
