package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/solarline/quotation-service/internal/quotation"
)

// SaveBatch persists a quotation batch as an immutable snapshot. The
// quotations themselves are stored as a JSONB document so the result
// shape survives schema evolution of the components table.
func (s *Store) SaveBatch(ctx context.Context, batch quotation.Batch) error {
	results, err := json.Marshal(batch.Quotations)
	if err != nil {
		return fmt.Errorf("encoding batch %s: %w", batch.ID, err)
	}
	var userID *string
	if batch.UserID != "" {
		userID = &batch.UserID
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO quotation_batches (id, user_id, results, quotation_count, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		batch.ID, userID, results, batch.QuotationCount, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting batch %s: %w", batch.ID, err)
	}
	return nil
}

// GetBatch loads a persisted batch by id.
func (s *Store) GetBatch(ctx context.Context, id string) (quotation.Batch, error) {
	var batch quotation.Batch
	var userID *string
	var results []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, results, quotation_count, created_at
		FROM quotation_batches
		WHERE id = $1`, id).
		Scan(&batch.ID, &userID, &results, &batch.QuotationCount, &batch.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return quotation.Batch{}, ErrNotFound
	}
	if err != nil {
		return quotation.Batch{}, fmt.Errorf("querying batch %s: %w", id, err)
	}
	if userID != nil {
		batch.UserID = *userID
	}
	if err := json.Unmarshal(results, &batch.Quotations); err != nil {
		return quotation.Batch{}, fmt.Errorf("decoding batch %s: %w", id, err)
	}
	return batch, nil
}
