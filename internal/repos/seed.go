package repos

import (
	"context"
	"time"

	"storekeeper/internal/domain"
	applog "storekeeper/internal/log"
)

var samples = []domain.Product{
	{ID: "sample-1", Name: "Sample Product 1", Quantity: 10, Price: 29.99},
	{ID: "sample-2", Name: "Sample Product 2", Quantity: 5, Price: 49.99},
}

// SeedIfEmpty inserts the sample products when the table has no rows.
func (r *ProductRepo) SeedIfEmpty(ctx context.Context, now time.Time) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "db.seed", map[string]any{"products": len(samples)})

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("seed products", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, s := range samples {
		// Later samples are newer so the list shows them first.
		s.CreatedAt = now.UnixMilli() + int64(i)
		s.UpdatedAt = s.CreatedAt
		if err := insertProduct(ctx, tx, s, true); err != nil {
			return storageError("seed products", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError("seed products", err)
	}
	return nil
}
