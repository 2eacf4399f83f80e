package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pema-project/pema/internal/models"
)

// collectPage runs the shared two statement List flow: count the table,
// then fetch one page ordered newest first. Every resource repo reuses
// it with its own SQL and row mapper.
func collectPage[T any](ctx context.Context, db DBTX, countSQL string, pageSQL string, req models.PageRequest, rowTo pgx.RowToFunc[T]) (models.Page[T], error) {
	req = req.Normalize()

	var total int64
	if err := db.QueryRow(ctx, countSQL).Scan(&total); err != nil {
		return models.Page[T]{}, fmt.Errorf("db error: %w", err)
	}

	rows, _ := db.Query(ctx, pageSQL, req.Limit, req.Offset())
	items, err := pgx.CollectRows(rows, rowTo)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("db error: %w", err)
	}

	return models.NewPage(items, total, req), nil
}
