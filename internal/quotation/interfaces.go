package quotation

import (
	"context"

	"github.com/solarline/quotation-service/internal/catalog"
)

// CatalogSource supplies components for catalog-mode generation.
type CatalogSource interface {
	// ComponentsByCategory returns all catalog components in a category.
	ComponentsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.Component, error)
}

// InventorySource supplies a user's stocked components for
// inventory-mode generation.
type InventorySource interface {
	// InventoryByUser returns the user's inventory aggregate.
	// Implementations return an empty (not nil-sectioned) inventory
	// when the user has no stock recorded.
	InventoryByUser(ctx context.Context, userID string) (catalog.Inventory, error)
}

// BatchStore persists generated quotation batches.
type BatchStore interface {
	SaveBatch(ctx context.Context, batch Batch) error
}
