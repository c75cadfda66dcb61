package database

import (
	"context"
	"fmt"
	"time"

	"github.com/solarline/quotation-service/internal/catalog"
)

// AddInventoryEntries appends entries to a user's inventory section.
// Duplicate models within a category are silently dropped, keeping the
// first-recorded entry. Returns the number of rows actually inserted.
func (s *Store) AddInventoryEntries(ctx context.Context, userID string, cat catalog.Category, entries []catalog.InventoryEntry) (int, error) {
	inserted := 0
	for _, entry := range entries {
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO inventory_entries (user_id, category, model, brand, quantity, rate, profit, power_w)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, category, model) DO NOTHING`,
			userID, cat, entry.Model, entry.Brand, entry.Quantity, entry.Rate, entry.Profit, entry.PowerW,
		)
		if err != nil {
			return inserted, fmt.Errorf("inserting inventory entry %s/%s: %w", cat, entry.Model, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// InventoryByUser returns the user's full inventory aggregate. A user
// with no stock gets an aggregate with empty sections, not an error.
func (s *Store) InventoryByUser(ctx context.Context, userID string) (catalog.Inventory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category, model, brand, quantity, rate, profit, power_w, created_at
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY category, created_at`, userID)
	if err != nil {
		return catalog.Inventory{}, fmt.Errorf("querying inventory for %s: %w", userID, err)
	}
	defer rows.Close()

	inv := catalog.Inventory{
		UserID:   userID,
		Sections: make(map[catalog.Category][]catalog.InventoryEntry),
	}
	for rows.Next() {
		var cat catalog.Category
		var entry catalog.InventoryEntry
		var createdAt time.Time
		if err := rows.Scan(&cat, &entry.Model, &entry.Brand, &entry.Quantity,
			&entry.Rate, &entry.Profit, &entry.PowerW, &createdAt); err != nil {
			return catalog.Inventory{}, fmt.Errorf("scanning inventory row: %w", err)
		}
		inv.Sections[cat] = append(inv.Sections[cat], entry)
		if createdAt.After(inv.UpdatedAt) {
			inv.UpdatedAt = createdAt
		}
	}
	return inv, rows.Err()
}
