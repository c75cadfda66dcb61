package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solarline/quotation-service/internal/quotation"
)

// GenerateRequest represents the quotation generation request.
// A user_id selects inventory mode; otherwise the shared catalog is used.
type GenerateRequest struct {
	SystemCapacityKW  float64  `json:"system_capacity_kw" binding:"required,gt=0"`
	UserID            string   `json:"user_id,omitempty"`
	InverterBrands    []string `json:"inverter_brands,omitempty"`
	PanelBrands       []string `json:"panel_brands,omitempty"`
	MountingMaterials []string `json:"mounting_material,omitempty"`
	MountingCoatings  []string `json:"mounting_coating,omitempty"`
	MaxQuotations     *int     `json:"max_quotations,omitempty" binding:"omitempty,min=1"`
	Save              bool     `json:"save,omitempty"`
}

// LineItemResponse represents one priced component in a quotation
type LineItemResponse struct {
	Category       string  `json:"category"`
	ComponentID    string  `json:"component_id,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	Model          string  `json:"model"`
	Specifications string  `json:"specifications,omitempty"`
	WarrantyYears  int     `json:"warranty_years,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitRate       float64 `json:"unit_rate"`
	Amount         float64 `json:"amount"`
	Profit         float64 `json:"profit"`
}

// QuotationResponse represents one complete quotation
type QuotationResponse struct {
	ID          string             `json:"id"`
	Lines       []LineItemResponse `json:"lines"`
	TotalCost   float64            `json:"total_cost"`
	TotalProfit float64            `json:"total_profit"`
	TotalPrice  float64            `json:"total_price"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// GenerateResponse represents the generation result envelope.
// SaveError is set when persistence was requested but failed; the
// computed quotations are still returned.
type GenerateResponse struct {
	Quotations []QuotationResponse `json:"quotations"`
	Count      int                 `json:"count"`
	BatchID    string              `json:"batch_id,omitempty"`
	SaveError  string              `json:"save_error,omitempty"`
}

// QuotationHandler serves quotation generation.
type QuotationHandler struct {
	generator *quotation.Generator
	logger    zerolog.Logger
}

// NewQuotationHandler creates the quotation handler.
func NewQuotationHandler(generator *quotation.Generator) *QuotationHandler {
	return &QuotationHandler{
		generator: generator,
		logger:    log.With().Str("component", "quotation-handler").Logger(),
	}
}

// Generate handles POST /api/quotations/.
func (h *QuotationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		quotations []quotation.Quotation
		err        error
	)
	if req.UserID != "" {
		quotations, err = h.generator.GenerateInventory(c.Request.Context(), quotation.InventoryRequest{
			UserID:           req.UserID,
			SystemCapacityKW: req.SystemCapacityKW,
			MaxQuotations:    req.MaxQuotations,
		})
	} else {
		quotations, err = h.generator.GenerateCatalog(c.Request.Context(), quotation.CatalogRequest{
			SystemCapacityKW:  req.SystemCapacityKW,
			InverterBrands:    req.InverterBrands,
			PanelBrands:       req.PanelBrands,
			MountingMaterials: req.MountingMaterials,
			MountingCoatings:  req.MountingCoatings,
			MaxQuotations:     req.MaxQuotations,
		})
	}

	var invalid quotation.ErrInvalidRequest
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("quotation generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quotation generation failed"})
		return
	}

	response := GenerateResponse{
		Quotations: quotationsToResponse(quotations),
		Count:      len(quotations),
	}

	// Persistence failure never discards the computed quotations.
	if req.Save && len(quotations) > 0 {
		batchID, saveErr := h.generator.Persist(c.Request.Context(), req.UserID, quotations)
		if saveErr != nil {
			h.logger.Warn().Err(saveErr).Msg("batch save failed, returning results anyway")
			response.SaveError = "failed to save quotation batch"
		} else {
			response.BatchID = batchID
		}
	}

	c.JSON(http.StatusOK, response)
}

func quotationsToResponse(quotations []quotation.Quotation) []QuotationResponse {
	out := make([]QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		lines := make([]LineItemResponse, 0, len(q.Lines))
		for _, l := range q.Lines {
			lines = append(lines, LineItemResponse{
				Category:       l.Category.Label(),
				ComponentID:    l.ComponentID,
				Brand:          l.Brand,
				Model:          l.Model,
				Specifications: l.Specifications,
				WarrantyYears:  l.WarrantyYears,
				Quantity:       l.Quantity,
				UnitRate:       l.UnitRate.InexactFloat64(),
				Amount:         l.Amount.InexactFloat64(),
				Profit:         l.Profit.InexactFloat64(),
			})
		}
		out = append(out, QuotationResponse{
			ID:          q.ID,
			Lines:       lines,
			TotalCost:   q.TotalCost.InexactFloat64(),
			TotalProfit: q.TotalProfit.InexactFloat64(),
			TotalPrice:  q.TotalPrice.InexactFloat64(),
			GeneratedAt: q.GeneratedAt,
		})
	}
	return out
}
