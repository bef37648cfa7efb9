package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type LeituraHandler struct {
	log        *logger.Logger
	leituraSvc services.LeituraService
}

func NewLeituraHandler(baseLog *logger.Logger, leituraSvc services.LeituraService) *LeituraHandler {
	return &LeituraHandler{
		log:        baseLog.With("handler", "LeituraHandler"),
		leituraSvc: leituraSvc,
	}
}

type leituraCreate struct {
	EstacaID int64 `json:"estaca_id"`
	types.LeituraIn
}

// GET /leituras?estaca_id=N
func (lh *LeituraHandler) List(c *gin.Context) {
	estacaID, err := strconv.ParseInt(c.Query("estaca_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estaca_id query parameter is required"})
		return
	}
	rows, err := lh.leituraSvc.ListByEstacaID(c.Request.Context(), estacaID)
	if err != nil {
		lh.log.Error("List leituras failed", "estaca_id", estacaID, "error", err)
		respondServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []*types.Leitura{}
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// POST /leituras
// Accepts a single row object or an array of rows. All rows of one request
// must target the same estaca.
func (lh *LeituraHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var items []leituraCreate
	if err := json.Unmarshal(body, &items); err != nil {
		var single leituraCreate
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		items = []leituraCreate{single}
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no rows to insert"})
		return
	}

	estacaID := items[0].EstacaID
	if estacaID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estaca_id is required"})
		return
	}
	rows := make([]types.LeituraIn, 0, len(items))
	for _, item := range items {
		if item.EstacaID != estacaID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all rows must share the same estaca_id"})
			return
		}
		if item.Estagio == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estagio is required"})
			return
		}
		rows = append(rows, item.LeituraIn)
	}

	ids, err := lh.leituraSvc.Insert(c.Request.Context(), estacaID, rows)
	if err != nil {
		lh.log.Error("Insert leituras failed", "estaca_id", estacaID, "error", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "ids": ids})
}

// PATCH /leituras/:id
func (lh *LeituraHandler) Patch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leitura id"})
		return
	}
	var patch types.LeituraPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := lh.leituraSvc.PatchFields(c.Request.Context(), id, &patch); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /leituras/:id
func (lh *LeituraHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leitura id"})
		return
	}
	if err := lh.leituraSvc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /leituras/batch
func (lh *LeituraHandler) BatchPatch(c *gin.Context) {
	var req types.LeiturasBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := lh.leituraSvc.BatchPatch(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}
