package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jukulab/classdesk-backend/internal/model"
)

var ErrStudentNotFound = errors.New("student does not exist")

// ClassRecordRepository handles class-record data access.
type ClassRecordRepository struct {
	pool *pgxpool.Pool
}

// NewClassRecordRepository creates a new ClassRecordRepository.
func NewClassRecordRepository(pool *pgxpool.Pool) *ClassRecordRepository {
	return &ClassRecordRepository{pool: pool}
}

const recordColumns = `id, student_id, student_name, taught_on, class_range,
	typing_result, writing_result, writing_step, comment, next_class_range,
	instructor, created_at, updated_at`

func scanRecord(row pgx.Row) (*model.ClassRecord, error) {
	rec := &model.ClassRecord{}
	err := row.Scan(&rec.ID, &rec.StudentID, &rec.StudentName, &rec.TaughtOn,
		&rec.ClassRange, &rec.TypingResult, &rec.WritingResult, &rec.WritingStep,
		&rec.Comment, &rec.NextClassRange, &rec.Instructor, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByID retrieves a class record by ID.
func (r *ClassRecordRepository) GetByID(ctx context.Context, id string) (*model.ClassRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM class_records WHERE id = $1`, id))
}

// ListByStudent retrieves a student's records, newest first.
func (r *ClassRecordRepository) ListByStudent(ctx context.Context, studentID string) ([]model.ClassRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM class_records
		 WHERE student_id = $1 ORDER BY taught_on DESC, created_at DESC, id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ClassRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// PreviousTypingResult returns the typing result of the student's latest
// record strictly before rec's date (created_at breaks same-day ties).
// Returns nil when rec is the student's first record.
func (r *ClassRecordRepository) PreviousTypingResult(ctx context.Context, rec *model.ClassRecord) (*string, error) {
	var result string
	err := r.pool.QueryRow(ctx,
		`SELECT typing_result FROM class_records
		 WHERE student_id = $1 AND id <> $2
		   AND (taught_on < $3 OR (taught_on = $3 AND created_at < $4))
		 ORDER BY taught_on DESC, created_at DESC
		 LIMIT 1`,
		rec.StudentID, rec.ID, rec.TaughtOn, rec.CreatedAt,
	).Scan(&result)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Create inserts a new class record. The student's current name is copied
// onto the record inside the insert so the sheet stays printable even if
// the student row changes later.
func (r *ClassRecordRepository) Create(ctx context.Context, rec *model.ClassRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO class_records
		   (student_id, student_name, taught_on, class_range, typing_result,
		    writing_result, writing_step, comment, next_class_range, instructor)
		 SELECT s.id, s.name, $2, $3, $4, $5, $6, $7, $8, $9
		 FROM students s WHERE s.id = $1
		 RETURNING id, student_name, created_at, updated_at`,
		rec.StudentID, rec.TaughtOn, rec.ClassRange, rec.TypingResult,
		rec.WritingResult, rec.WritingStep, rec.Comment, rec.NextClassRange, rec.Instructor,
	).Scan(&rec.ID, &rec.StudentName, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStudentNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

// Update modifies an existing class record.
func (r *ClassRecordRepository) Update(ctx context.Context, rec *model.ClassRecord) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE class_records SET taught_on = $1, class_range = $2, typing_result = $3,
		        writing_result = $4, writing_step = $5, comment = $6,
		        next_class_range = $7, instructor = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		rec.TaughtOn, rec.ClassRange, rec.TypingResult, rec.WritingResult,
		rec.WritingStep, rec.Comment, rec.NextClassRange, rec.Instructor, rec.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgxNoRows
	}
	return nil
}

// Delete removes a class record by ID. Returns false when no row matched.
func (r *ClassRecordRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM class_records WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
