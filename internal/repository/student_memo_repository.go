package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

// StudentMemoRepository handles student-memo data access.
type StudentMemoRepository struct {
	pool *pgxpool.Pool
}

// NewStudentMemoRepository creates a new StudentMemoRepository.
func NewStudentMemoRepository(pool *pgxpool.Pool) *StudentMemoRepository {
	return &StudentMemoRepository{pool: pool}
}

// GetByID retrieves a memo by ID.
func (r *StudentMemoRepository) GetByID(ctx context.Context, id string) (*model.StudentMemo, error) {
	m := &model.StudentMemo{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, content, author, created_at, updated_at
		 FROM student_memos WHERE id = $1`, id,
	).Scan(&m.ID, &m.StudentID, &m.Content, &m.Author, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByStudent retrieves a student's memos, newest first.
func (r *StudentMemoRepository) ListByStudent(ctx context.Context, studentID string) ([]model.StudentMemo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, content, author, created_at, updated_at
		 FROM student_memos WHERE student_id = $1 ORDER BY created_at DESC, id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memos []model.StudentMemo
	for rows.Next() {
		var m model.StudentMemo
		if err := rows.Scan(&m.ID, &m.StudentID, &m.Content, &m.Author, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// Create inserts a new memo.
func (r *StudentMemoRepository) Create(ctx context.Context, m *model.StudentMemo) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO student_memos (student_id, content, author)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		m.StudentID, m.Content, m.Author,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

// Update modifies an existing memo.
func (r *StudentMemoRepository) Update(ctx context.Context, m *model.StudentMemo) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE student_memos SET content = $1, author = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		m.Content, m.Author, m.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a memo by ID. Returns false when no row matched.
func (r *StudentMemoRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM student_memos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
