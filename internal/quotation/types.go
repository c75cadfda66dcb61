package quotation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solarline/quotation-service/internal/catalog"
)

// CatalogRequest contains the parameters for catalog-mode quotation
// generation: size the system, pick brand/material filters, cap output.
type CatalogRequest struct {
	SystemCapacityKW  float64  // Target system size in kW (must be > 0)
	InverterBrands    []string // Restrict inverters to these brands (empty = all)
	PanelBrands       []string // Restrict panels to these brands (empty = all)
	MountingMaterials []string // Restrict mounting structures by material (empty = all)
	MountingCoatings  []string // Restrict mounting structures by coating (empty = all)
	MaxQuotations     *int     // Maximum quotations to return (nil = no limit)
}

// InventoryRequest contains the parameters for inventory-mode quotation
// generation against a single user's stocked components.
type InventoryRequest struct {
	UserID           string  // Inventory owner
	SystemCapacityKW float64 // Target system size in kW (must be > 0)
	MaxQuotations    *int    // Maximum quotations to return (nil = no limit)
}

// LineItem is one priced component inside a quotation.
type LineItem struct {
	Category       catalog.Category `json:"category"`
	ComponentID    string           `json:"component_id,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Model          string           `json:"model"`
	Specifications string           `json:"specifications,omitempty"`
	WarrantyYears  int              `json:"warranty_years,omitempty"`
	Quantity       int              `json:"quantity"`
	UnitRate       decimal.Decimal  `json:"unit_rate"`
	Amount         decimal.Decimal  `json:"amount"`
	Profit         decimal.Decimal  `json:"profit"`
}

// Quotation is one complete priced component combination.
// TotalPrice is always TotalCost + TotalProfit.
type Quotation struct {
	ID          string          `json:"id"`
	Lines       []LineItem      `json:"lines"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Batch is a persisted set of quotations from one generation run.
type Batch struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id,omitempty"`
	Quotations     []Quotation `json:"quotations"`
	QuotationCount int         `json:"quotation_count"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Config contains the combination caps and output defaults for the
// generator. Caps bound the Cartesian product per configurable category.
type Config struct {
	PanelLimit           int // Panel variants per run
	InverterLimit        int // Inverter variants per run
	MountingLimit        int // Mounting structure variants per run
	EarthingLimit        int // Earthing variants per run (inventory mode)
	DefaultMaxQuotations int // Default output cap when the caller gives none
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() *Config {
	return &Config{
		PanelLimit:           3,
		InverterLimit:        3,
		MountingLimit:        2,
		EarthingLimit:        2,
		DefaultMaxQuotations: 10,
	}
}

// CategoryLimit returns the combination cap for a configurable category,
// 0 when the category enters quotations as a fixed inclusion.
func (c *Config) CategoryLimit(cat catalog.Category) int {
	switch cat {
	case catalog.SolarPanel:
		return c.PanelLimit
	case catalog.Inverter:
		return c.InverterLimit
	case catalog.MountingStructure:
		return c.MountingLimit
	case catalog.EarthingSystem:
		return c.EarthingLimit
	default:
		return 0
	}
}

// Validate validates the catalog-mode request.
func (r *CatalogRequest) Validate() error {
	if r.SystemCapacityKW <= 0 {
		return ErrInvalidRequest{Field: "system_capacity_kw", Reason: "must be greater than zero"}
	}
	if r.MaxQuotations != nil && *r.MaxQuotations <= 0 {
		return ErrInvalidRequest{Field: "max_quotations", Reason: "must be greater than zero when set"}
	}
	return nil
}

// Validate validates the inventory-mode request.
func (r *InventoryRequest) Validate() error {
	if r.UserID == "" {
		return ErrInvalidRequest{Field: "user_id", Reason: "cannot be empty"}
	}
	if r.SystemCapacityKW <= 0 {
		return ErrInvalidRequest{Field: "system_capacity_kw", Reason: "must be greater than zero"}
	}
	if r.MaxQuotations != nil && *r.MaxQuotations <= 0 {
		return ErrInvalidRequest{Field: "max_quotations", Reason: "must be greater than zero when set"}
	}
	return nil
}

// ErrInvalidRequest is returned when a generation request is invalid.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
