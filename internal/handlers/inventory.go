package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/solarline/quotation-service/internal/catalog"
	"github.com/solarline/quotation-service/internal/database"
	"github.com/solarline/quotation-service/internal/quotation"
)

// InventoryEntryRequest represents one stocked item in an inventory upload
type InventoryEntryRequest struct {
	Model    string  `json:"model" binding:"required"`
	Brand    string  `json:"brand,omitempty"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Rate     float64 `json:"rate" binding:"min=0"`
	Profit   float64 `json:"profit"`
	PowerW   float64 `json:"power_w,omitempty" binding:"omitempty,min=0"`
}

// InventoryRequest represents an inventory upload, sections keyed by
// category name (SolarPanels, Inverters, ...).
type InventoryRequest struct {
	UserID   string                             `json:"user_id" binding:"required"`
	Sections map[string][]InventoryEntryRequest `json:"sections" binding:"required"`
}

// InventoryEntryResponse represents one stocked item in API responses
type InventoryEntryResponse struct {
	Model    string  `json:"model"`
	Brand    string  `json:"brand,omitempty"`
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
	Profit   float64 `json:"profit"`
	PowerW   float64 `json:"power_w,omitempty"`
}

// InventoryHandler serves per-user inventory uploads, lookups and
// inventory-mode quotation generation.
type InventoryHandler struct {
	store     *database.Store
	generator *quotation.Generator
	config    *quotation.Config
	logger    zerolog.Logger
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(store *database.Store, generator *quotation.Generator, config *quotation.Config) *InventoryHandler {
	if config == nil {
		config = quotation.DefaultConfig()
	}
	return &InventoryHandler{
		store:     store,
		generator: generator,
		config:    config,
		logger:    log.With().Str("component", "inventory-handler").Logger(),
	}
}

// Add handles POST /api/inventory/. Entries whose model already exists
// in that user's category are silently dropped.
func (h *InventoryHandler) Add(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted := 0
	for key, entries := range req.Sections {
		cat, err := catalog.FromInventoryKey(key)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		converted := make([]catalog.InventoryEntry, 0, len(entries))
		for _, e := range entries {
			converted = append(converted, catalog.InventoryEntry{
				Model:    e.Model,
				Brand:    e.Brand,
				Quantity: e.Quantity,
				Rate:     decimal.NewFromFloat(e.Rate),
				Profit:   decimal.NewFromFloat(e.Profit),
				PowerW:   e.PowerW,
			})
		}
		n, err := h.store.AddInventoryEntries(c.Request.Context(), req.UserID, cat, converted)
		if err != nil {
			h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("inventory insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store inventory"})
			return
		}
		inserted += n
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": req.UserID, "inserted": inserted})
}

// Get handles GET /api/inventory/:userId.
func (h *InventoryHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	inv, err := h.store.InventoryByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("inventory lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return
	}
	if inv.Empty() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no inventory for user"})
		return
	}

	sections := make(map[string][]InventoryEntryResponse, len(inv.Sections))
	for cat, entries := range inv.Sections {
		out := make([]InventoryEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, InventoryEntryResponse{
				Model:    e.Model,
				Brand:    e.Brand,
				Quantity: e.Quantity,
				Rate:     e.Rate.InexactFloat64(),
				Profit:   e.Profit.InexactFloat64(),
				PowerW:   e.PowerW,
			})
		}
		sections[cat.InventoryKey()] = out
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "sections": sections})
}

// Quotations handles GET /api/inventory/:userId/quotations. Query
// params: capacity_kw (required), max_quotations (default 10).
func (h *InventoryHandler) Quotations(c *gin.Context) {
	userID := c.Param("userId")

	capacity, err := strconv.ParseFloat(c.Query("capacity_kw"), 64)
	if err != nil || capacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity_kw must be a positive number"})
		return
	}

	maxQuotations := h.config.DefaultMaxQuotations
	if raw := c.Query("max_quotations"); raw != "" {
		maxQuotations, err = strconv.Atoi(raw)
		if err != nil || maxQuotations <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_quotations must be a positive integer"})
			return
		}
	}

	quotations, err := h.generator.GenerateInventory(c.Request.Context(), quotation.InventoryRequest{
		UserID:           userID,
		SystemCapacityKW: capacity,
		MaxQuotations:    &maxQuotations,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("inventory quotation generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quotation generation failed"})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Quotations: quotationsToResponse(quotations),
		Count:      len(quotations),
	})
}
