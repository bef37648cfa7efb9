package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type SyncHandler struct {
	log     *logger.Logger
	syncSvc services.SyncService
}

func NewSyncHandler(baseLog *logger.Logger, syncSvc services.SyncService) *SyncHandler {
	return &SyncHandler{
		log:     baseLog.With("handler", "SyncHandler"),
		syncSvc: syncSvc,
	}
}

// POST /push (aliases: /upload, /sync/push, /sync/upload)
// Receives one full test bundle from the field collector.
func (sh *SyncHandler) Push(c *gin.Context) {
	var payload types.PushPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ensaioUUID, err := sh.syncSvc.Push(c.Request.Context(), &payload)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) {
			// The field client keys on this exact shape to offer the
			// operator the overwrite retry.
			c.JSON(http.StatusConflict, gin.H{
				"reason":        "exists",
				"by":            "codigo_obra+estaca_num",
				"codigo_obra":   conflict.CodigoObra,
				"estaca_num":    conflict.EstacaNum,
				"existing_uuid": conflict.ExistingUUID,
			})
			return
		}
		sh.log.Error("Push failed", "error", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "uuid": ensaioUUID})
}
