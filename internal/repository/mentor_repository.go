package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

// MentorRepository handles mentor data access.
type MentorRepository struct {
	pool *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository.
func NewMentorRepository(pool *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{pool: pool}
}

// GetByID retrieves a mentor by ID.
func (r *MentorRepository) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	m := &model.Mentor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, last_name, first_name, email, phone, specialty, status, joined_on, created_at, updated_at
		 FROM mentors WHERE id = $1`, id,
	).Scan(&m.ID, &m.LastName, &m.FirstName, &m.Email, &m.Phone, &m.Specialty, &m.Status, &m.JoinedOn, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List retrieves all mentors, active ones first, then by name.
func (r *MentorRepository) List(ctx context.Context) ([]model.Mentor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, last_name, first_name, email, phone, specialty, status, joined_on, created_at, updated_at
		 FROM mentors
		 ORDER BY CASE status WHEN 'active' THEN 0 WHEN 'inactive' THEN 1 ELSE 2 END, last_name, first_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentors []model.Mentor
	for rows.Next() {
		var m model.Mentor
		if err := rows.Scan(&m.ID, &m.LastName, &m.FirstName, &m.Email, &m.Phone, &m.Specialty, &m.Status, &m.JoinedOn, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

// Create inserts a new mentor.
func (r *MentorRepository) Create(ctx context.Context, m *model.Mentor) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO mentors (last_name, first_name, email, phone, specialty, status, joined_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		m.LastName, m.FirstName, m.Email, m.Phone, m.Specialty, m.Status, m.JoinedOn,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update modifies an existing mentor.
func (r *MentorRepository) Update(ctx context.Context, m *model.Mentor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE mentors SET last_name = $1, first_name = $2, email = $3, phone = $4,
		        specialty = $5, status = $6, joined_on = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		m.LastName, m.FirstName, m.Email, m.Phone, m.Specialty, m.Status, m.JoinedOn, m.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a mentor by ID. Returns false when no row matched.
func (r *MentorRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mentors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
