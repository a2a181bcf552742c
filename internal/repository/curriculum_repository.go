package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

var ErrClassNotFound = errors.New("class does not exist")

// CurriculumRepository handles curriculum data access.
type CurriculumRepository struct {
	pool *pgxpool.Pool
}

// NewCurriculumRepository creates a new CurriculumRepository.
func NewCurriculumRepository(pool *pgxpool.Pool) *CurriculumRepository {
	return &CurriculumRepository{pool: pool}
}

// GetByID retrieves a curriculum item by ID.
func (r *CurriculumRepository) GetByID(ctx context.Context, id string) (*model.Curriculum, error) {
	cu := &model.Curriculum{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, class_id, title, description, sort_order, created_at, updated_at
		 FROM curricula WHERE id = $1`, id,
	).Scan(&cu.ID, &cu.ClassID, &cu.Title, &cu.Description, &cu.SortOrder, &cu.CreatedAt, &cu.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cu, nil
}

// ListByClass retrieves a class's curriculum in display order.
func (r *CurriculumRepository) ListByClass(ctx context.Context, classID string) ([]model.Curriculum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, title, description, sort_order, created_at, updated_at
		 FROM curricula WHERE class_id = $1 ORDER BY sort_order, id`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Curriculum
	for rows.Next() {
		var cu model.Curriculum
		if err := rows.Scan(&cu.ID, &cu.ClassID, &cu.Title, &cu.Description, &cu.SortOrder, &cu.CreatedAt, &cu.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, cu)
	}
	return items, rows.Err()
}

// Create inserts a curriculum item at the end of its class's order.
// Referential integrity to the class is checked at this boundary.
func (r *CurriculumRepository) Create(ctx context.Context, cu *model.Curriculum) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO curricula (class_id, title, description, sort_order)
		 VALUES ($1, $2, $3, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM curricula WHERE class_id = $1))
		 RETURNING id, sort_order, created_at, updated_at`,
		cu.ClassID, cu.Title, cu.Description,
	).Scan(&cu.ID, &cu.SortOrder, &cu.CreatedAt, &cu.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrClassNotFound
		}
		return err
	}
	return nil
}

// Update modifies a curriculum item's title and description.
func (r *CurriculumRepository) Update(ctx context.Context, cu *model.Curriculum) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE curricula SET title = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		cu.Title, cu.Description, cu.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a curriculum item by ID. Returns false when no row matched.
func (r *CurriculumRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM curricula WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Reorder assigns sort_order 1..N within one class following the submitted
// id order, in one transaction. The list must be a permutation of the
// class's items; otherwise ErrOrderMismatch and nothing is written.
func (r *CurriculumRepository) Reorder(ctx context.Context, classID string, ids []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var total int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM curricula WHERE class_id = $1`, classID,
		).Scan(&total); err != nil {
			return err
		}
		if total != len(ids) {
			return ErrOrderMismatch
		}

		seen := make(map[string]bool, len(ids))
		for i, id := range ids {
			if seen[id] {
				return ErrOrderMismatch
			}
			seen[id] = true

			tag, err := tx.Exec(ctx,
				`UPDATE curricula SET sort_order = $1, updated_at = CURRENT_TIMESTAMP
				 WHERE id = $2 AND class_id = $3`,
				i+1, id, classID,
			)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return ErrOrderMismatch
			}
		}
		return nil
	})
}
