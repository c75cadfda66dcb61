package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Component is a catalog entry for one purchasable item. Cost and Profit
// are per-unit amounts in the tenant currency; Specs carries
// category-specific attributes (efficiency, MPPT channels, ratings).
type Component struct {
	ID            string          `json:"id"`
	Category      Category        `json:"category"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	PowerW        float64         `json:"power_w,omitempty"`
	Material      string          `json:"material,omitempty"`
	Coating       string          `json:"coating,omitempty"`
	Specs         map[string]any  `json:"specs,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	WarrantyYears int             `json:"warranty_years,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SpecSummary renders a compact one-line description for quotation
// line items, e.g. "550W, 21.3% efficiency" for panels or
// "98.2% efficiency, 2 MPPT channels" for inverters.
func (c Component) SpecSummary() string {
	var parts []string
	if c.Category == SolarPanel && c.PowerW > 0 {
		parts = append(parts, fmt.Sprintf("%.0fW", c.PowerW))
	}
	if eff, ok := specFloat(c.Specs, "efficiency"); ok {
		parts = append(parts, fmt.Sprintf("%.1f%% efficiency", eff))
	}
	if c.Category == Inverter {
		if mppt, ok := specFloat(c.Specs, "mppt_channels"); ok {
			parts = append(parts, fmt.Sprintf("%.0f MPPT channels", mppt))
		}
	}
	if c.Category == MountingStructure {
		if c.Material != "" {
			parts = append(parts, c.Material)
		}
		if c.Coating != "" {
			parts = append(parts, c.Coating+" coated")
		}
	}
	if len(parts) == 0 && len(c.Specs) > 0 {
		if desc, ok := c.Specs["description"].(string); ok {
			return desc
		}
	}
	return strings.Join(parts, ", ")
}

func specFloat(specs map[string]any, key string) (float64, bool) {
	if specs == nil {
		return 0, false
	}
	switch v := specs[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// InventoryEntry is one stocked item in a user inventory: the model
// reference plus on-hand quantity and that user's own per-unit rate
// and markup, which override catalog pricing.
type InventoryEntry struct {
	Model    string          `json:"model"`
	Brand    string          `json:"brand,omitempty"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Profit   decimal.Decimal `json:"profit"`
	PowerW   float64         `json:"power_w,omitempty"`
}

// Inventory is the per-user stock aggregate, keyed by category.
type Inventory struct {
	UserID    string                        `json:"user_id"`
	Sections  map[Category][]InventoryEntry `json:"sections"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

// Entries returns the section for a category, nil when absent.
func (inv Inventory) Entries(c Category) []InventoryEntry {
	if inv.Sections == nil {
		return nil
	}
	return inv.Sections[c]
}

// Empty reports whether the inventory has no entries in any section.
func (inv Inventory) Empty() bool {
	for _, entries := range inv.Sections {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}
