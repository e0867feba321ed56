package repository

import (
	"context"
	"database/sql"
	"errors"

	"seedble/internal/database"
	"seedble/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    skill.Category
	Description string
}

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]Skill, error)
	FindByName(ctx context.Context, name string) (Skill, error)
	EnsureSkill(ctx context.Context, name string, category skill.Category, description string) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, COALESCE(description, '') FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByName matches case-insensitively, mirroring the catalog's
// create-if-missing semantics.
func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string) (Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, COALESCE(description, '') FROM skills WHERE lower(name) = lower($1)`,
		name,
	)

	var s Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) EnsureSkill(ctx context.Context, name string, category skill.Category, description string) (Skill, error) {
	existing, err := r.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSkillNotFound) {
		return Skill{}, err
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, description) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO NOTHING`,
		id, name, string(category), description,
	)
	if err != nil {
		return Skill{}, err
	}

	// Re-read instead of returning the insert candidate: a concurrent
	// EnsureSkill may have won the conflict.
	return r.FindByName(ctx, name)
}
