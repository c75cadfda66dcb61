package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/solarline/quotation-service/internal/catalog"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const componentColumns = `id, category, brand, model, power_w, material, coating, specs, cost, profit, warranty_years, created_at`

// CreateComponent inserts a catalog component.
func (s *Store) CreateComponent(ctx context.Context, comp catalog.Component) error {
	specs, err := json.Marshal(comp.Specs)
	if err != nil {
		return fmt.Errorf("encoding specs for %s: %w", comp.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO components (id, category, brand, model, power_w, material, coating, specs, cost, profit, warranty_years)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		comp.ID, comp.Category, comp.Brand, comp.Model, comp.PowerW,
		comp.Material, comp.Coating, specs, comp.Cost, comp.Profit, comp.WarrantyYears,
	)
	if err != nil {
		return fmt.Errorf("inserting component %s: %w", comp.ID, err)
	}
	return nil
}

// ComponentsByCategory returns all components in a category, oldest
// first so combination capping is deterministic across requests.
func (s *Store) ComponentsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.Component, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+componentColumns+`
		FROM components
		WHERE category = $1
		ORDER BY created_at, id`, cat)
	if err != nil {
		return nil, fmt.Errorf("querying components for %s: %w", cat, err)
	}
	defer rows.Close()

	var components []catalog.Component
	for rows.Next() {
		comp, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, comp)
	}
	return components, rows.Err()
}

// GetComponent returns one component by id.
func (s *Store) GetComponent(ctx context.Context, id string) (catalog.Component, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+componentColumns+`
		FROM components
		WHERE id = $1`, id)
	comp, err := scanComponent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Component{}, ErrNotFound
	}
	return comp, err
}

func scanComponent(row pgx.Row) (catalog.Component, error) {
	var comp catalog.Component
	var specs []byte
	err := row.Scan(
		&comp.ID, &comp.Category, &comp.Brand, &comp.Model, &comp.PowerW,
		&comp.Material, &comp.Coating, &specs, &comp.Cost, &comp.Profit,
		&comp.WarrantyYears, &comp.CreatedAt,
	)
	if err != nil {
		return catalog.Component{}, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &comp.Specs); err != nil {
			return catalog.Component{}, fmt.Errorf("decoding specs for %s: %w", comp.ID, err)
		}
	}
	return comp, nil
}
