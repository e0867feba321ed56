package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"seedble/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID             uuid.UUID
	Name           string
	Description    string
	RequiredSkills []string
	StartDate      time.Time
	EndDate        *time.Time
	Status         string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
}

type ProjectMember struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	JoinedAt  time.Time
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context) ([]Project, error)
	AddMember(ctx context.Context, m *ProjectMember) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error)
	CountMembershipsByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p *Project) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, name, description, required_skills, start_date, end_date, status, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.RequiredSkills, p.StartDate, p.EndDate, p.Status, p.CreatedBy, p.CreatedAt,
	)
	return err
}

const projectSelect = `
SELECT id, name, COALESCE(description, ''), required_skills, start_date, end_date, status, created_by, created_at
FROM projects`

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	var endDate sql.NullTime
	row := r.db.QueryRow(ctx, projectSelect+` WHERE id = $1`, id)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.RequiredSkills, &p.StartDate, &endDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if endDate.Valid {
		t := endDate.Time
		p.EndDate = &t
	}
	return &p, nil
}

func (r *PostgresProjectRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresProjectRepository) ListActive(ctx context.Context) ([]Project, error) {
	rows, err := r.db.Query(ctx, projectSelect+` WHERE status = 'active' ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		var endDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.RequiredSkills, &p.StartDate, &endDate,
			&p.Status, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			p.EndDate = &t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) AddMember(ctx context.Context, m *ProjectMember) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_members (id, project_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		uuid.New(), m.ProjectID, m.UserID, m.Role, m.JoinedAt,
	)
	return err
}

func (r *PostgresProjectRepository) ListMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT project_id, user_id, role, created_at
		 FROM project_members WHERE project_id = $1 ORDER BY created_at ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectMember, 0)
	for rows.Next() {
		var m ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) CountMembershipsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM project_members WHERE user_id = $1`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
