package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solarline/quotation-service/internal/database"
	"github.com/solarline/quotation-service/internal/export"
)

// BatchResponse represents a persisted quotation batch
type BatchResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id,omitempty"`
	Quotations     []QuotationResponse `json:"quotations"`
	QuotationCount int                 `json:"quotation_count"`
	CreatedAt      string              `json:"created_at"`
}

// BatchHandler serves persisted quotation batches.
type BatchHandler struct {
	store  *database.Store
	logger zerolog.Logger
}

// NewBatchHandler creates the batch handler.
func NewBatchHandler(store *database.Store) *BatchHandler {
	return &BatchHandler{
		store:  store,
		logger: log.With().Str("component", "batch-handler").Logger(),
	}
}

// Get handles GET /api/quotations/batches/:batchId.
func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.store.GetBatch(c.Request.Context(), c.Param("batchId"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("batch_id", c.Param("batchId")).Msg("batch lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{
		ID:             batch.ID,
		UserID:         batch.UserID,
		Quotations:     quotationsToResponse(batch.Quotations),
		QuotationCount: batch.QuotationCount,
		CreatedAt:      batch.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Export handles GET /api/quotations/batches/:batchId/export, returning
// the batch as an Excel workbook.
func (h *BatchHandler) Export(c *gin.Context) {
	batch, err := h.store.GetBatch(c.Request.Context(), c.Param("batchId"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("batch_id", c.Param("batchId")).Msg("batch lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	workbook, err := export.BatchXLSX(batch)
	if err != nil {
		h.logger.Error().Err(err).Str("batch_id", batch.ID).Msg("batch export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export batch"})
		return
	}

	filename := fmt.Sprintf("quotations-%s.xlsx", batch.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
