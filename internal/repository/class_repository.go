package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

var ErrDuplicateClassName = errors.New("class with this name already exists")

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, sort_order, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes in display order.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, sort_order, created_at, updated_at
		 FROM classes ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class at the end of the display order.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, description, sort_order)
		 VALUES ($1, $2, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM classes))
		 RETURNING id, sort_order, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateClassName
		}
		return err
	}
	return nil
}

// Update modifies a class's name and description.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		c.Name, c.Description, c.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateClassName
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a class by its ID. Returns false when no row matched.
// Curricula belonging to the class block deletion via their FK.
func (r *ClassRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Reorder assigns sort_order 1..N following the submitted id order, in one
// transaction. The list must be a permutation of all stored classes;
// otherwise ErrOrderMismatch and nothing is written.
func (r *ClassRepository) Reorder(ctx context.Context, ids []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var total int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&total); err != nil {
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
				`UPDATE classes SET sort_order = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
				i+1, id,
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
