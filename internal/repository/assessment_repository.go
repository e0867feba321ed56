package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"seedble/internal/database"

	"github.com/google/uuid"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

type Assessment struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            string
	Status          string
	SkillsEvaluated int
	CompletionTime  *int
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

type AssessmentRepository interface {
	Create(ctx context.Context, userID uuid.UUID, assessmentType string) (*Assessment, error)
	Complete(ctx context.Context, id uuid.UUID, skillsEvaluated int, completionTime *int, completedAt time.Time) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Assessment, error)
	CountCompletedByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) Create(ctx context.Context, userID uuid.UUID, assessmentType string) (*Assessment, error) {
	a := &Assessment{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      assessmentType,
		Status:    "in_progress",
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO assessments (id, user_id, type, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.Type, a.Status, a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) Complete(ctx context.Context, id uuid.UUID, skillsEvaluated int, completionTime *int, completedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE assessments
		 SET status = 'completed', skills_evaluated = $2, completion_time = $3, completed_at = $4
		 WHERE id = $1 AND status = 'in_progress'`,
		id, skillsEvaluated, completionTime, completedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

func (r *PostgresAssessmentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]Assessment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, status, skills_evaluated, completion_time, created_at, completed_at
		 FROM assessments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		var a Assessment
		var completionTime sql.NullInt64
		var completed sql.NullTime
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Status, &a.SkillsEvaluated,
			&completionTime, &a.CreatedAt, &completed); err != nil {
			return nil, err
		}
		if completionTime.Valid {
			n := int(completionTime.Int64)
			a.CompletionTime = &n
		}
		if completed.Valid {
			t := completed.Time
			a.CompletedAt = &t
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) CountCompletedByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM assessments WHERE user_id = $1 AND status = 'completed'`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
