package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/solarline/quotation-service/internal/catalog"
	"github.com/solarline/quotation-service/internal/database"
	"github.com/solarline/quotation-service/internal/pkg/token"
)

// ComponentRequest represents a catalog component create payload
type ComponentRequest struct {
	Brand         string         `json:"brand"`
	Model         string         `json:"model" binding:"required"`
	PowerW        float64        `json:"power_w,omitempty" binding:"omitempty,min=0"`
	Material      string         `json:"material,omitempty"`
	Coating       string         `json:"coating,omitempty"`
	Specs         map[string]any `json:"specs,omitempty"`
	Cost          float64        `json:"cost" binding:"min=0"`
	Profit        float64        `json:"profit"`
	WarrantyYears int            `json:"warranty_years,omitempty" binding:"omitempty,min=0"`
}

// ComponentResponse represents a catalog component in API responses
type ComponentResponse struct {
	ID            string         `json:"id"`
	Category      string         `json:"category"`
	Brand         string         `json:"brand,omitempty"`
	Model         string         `json:"model"`
	PowerW        float64        `json:"power_w,omitempty"`
	Material      string         `json:"material,omitempty"`
	Coating       string         `json:"coating,omitempty"`
	Specs         map[string]any `json:"specs,omitempty"`
	Cost          float64        `json:"cost"`
	Profit        float64        `json:"profit"`
	WarrantyYears int            `json:"warranty_years,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ComponentHandler serves the catalog endpoints for all seven
// categories. The category is carried in the route path (e.g.
// /api/solar-panels/). Catalog records are insert-only.
type ComponentHandler struct {
	store  *database.Store
	logger zerolog.Logger
}

// NewComponentHandler creates the catalog handler.
func NewComponentHandler(store *database.Store) *ComponentHandler {
	return &ComponentHandler{
		store:  store,
		logger: log.With().Str("component", "catalog-handler").Logger(),
	}
}

// Create handles POST /api/<category-slug>/.
func (h *ComponentHandler) Create(cat catalog.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ComponentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comp := componentFromRequest(cat, req)
		comp.ID = token.Component()
		comp.CreatedAt = time.Now().UTC()
		if err := h.store.CreateComponent(c.Request.Context(), comp); err != nil {
			h.logger.Error().Err(err).Str("category", string(cat)).Msg("component create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create component"})
			return
		}
		c.JSON(http.StatusCreated, componentToResponse(comp))
	}
}

// List handles GET /api/<category-slug>/.
func (h *ComponentHandler) List(cat catalog.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		components, err := h.store.ComponentsByCategory(c.Request.Context(), cat)
		if err != nil {
			h.logger.Error().Err(err).Str("category", string(cat)).Msg("component list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list components"})
			return
		}
		out := make([]ComponentResponse, 0, len(components))
		for _, comp := range components {
			out = append(out, componentToResponse(comp))
		}
		c.JSON(http.StatusOK, gin.H{"components": out, "count": len(out)})
	}
}

// Get handles GET /api/<category-slug>/:id.
func (h *ComponentHandler) Get(cat catalog.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := h.store.GetComponent(c.Request.Context(), c.Param("id"))
		if errors.Is(err, database.ErrNotFound) || (err == nil && comp.Category != cat) {
			c.JSON(http.StatusNotFound, gin.H{"error": "component not found"})
			return
		}
		if err != nil {
			h.logger.Error().Err(err).Str("id", c.Param("id")).Msg("component get failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load component"})
			return
		}
		c.JSON(http.StatusOK, componentToResponse(comp))
	}
}

func componentFromRequest(cat catalog.Category, req ComponentRequest) catalog.Component {
	return catalog.Component{
		Category:      cat,
		Brand:         req.Brand,
		Model:         req.Model,
		PowerW:        req.PowerW,
		Material:      req.Material,
		Coating:       req.Coating,
		Specs:         req.Specs,
		Cost:          decimal.NewFromFloat(req.Cost),
		Profit:        decimal.NewFromFloat(req.Profit),
		WarrantyYears: req.WarrantyYears,
	}
}

func componentToResponse(comp catalog.Component) ComponentResponse {
	return ComponentResponse{
		ID:            comp.ID,
		Category:      string(comp.Category),
		Brand:         comp.Brand,
		Model:         comp.Model,
		PowerW:        comp.PowerW,
		Material:      comp.Material,
		Coating:       comp.Coating,
		Specs:         comp.Specs,
		Cost:          comp.Cost.InexactFloat64(),
		Profit:        comp.Profit.InexactFloat64(),
		WarrantyYears: comp.WarrantyYears,
		CreatedAt:     comp.CreatedAt,
	}
}
