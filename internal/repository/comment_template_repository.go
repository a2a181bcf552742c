package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

// CommentTemplateRepository handles comment-template data access.
type CommentTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewCommentTemplateRepository creates a new CommentTemplateRepository.
func NewCommentTemplateRepository(pool *pgxpool.Pool) *CommentTemplateRepository {
	return &CommentTemplateRepository{pool: pool}
}

// GetByID retrieves a template by ID.
func (r *CommentTemplateRepository) GetByID(ctx context.Context, id string) (*model.CommentTemplate, error) {
	t := &model.CommentTemplate{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, category, body, created_at, updated_at
		 FROM comment_templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Category, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all templates grouped by category.
func (r *CommentTemplateRepository) List(ctx context.Context) ([]model.CommentTemplate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, category, body, created_at, updated_at
		 FROM comment_templates ORDER BY category, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []model.CommentTemplate
	for rows.Next() {
		var t model.CommentTemplate
		if err := rows.Scan(&t.ID, &t.Category, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Count returns the number of stored templates.
func (r *CommentTemplateRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comment_templates`).Scan(&n)
	return n, err
}

// Create inserts a new template.
func (r *CommentTemplateRepository) Create(ctx context.Context, t *model.CommentTemplate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO comment_templates (category, body)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		t.Category, t.Body,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// CreateBatch inserts several templates in one transaction. Used for
// default seeding.
func (r *CommentTemplateRepository) CreateBatch(ctx context.Context, templates []model.CommentTemplate) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range templates {
			err := tx.QueryRow(ctx,
				`INSERT INTO comment_templates (category, body)
				 VALUES ($1, $2)
				 RETURNING id, created_at, updated_at`,
				templates[i].Category, templates[i].Body,
			).Scan(&templates[i].ID, &templates[i].CreatedAt, &templates[i].UpdatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Update modifies an existing template.
func (r *CommentTemplateRepository) Update(ctx context.Context, t *model.CommentTemplate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE comment_templates SET category = $1, body = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		t.Category, t.Body, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a template by ID. Returns false when no row matched.
func (r *CommentTemplateRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comment_templates WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
