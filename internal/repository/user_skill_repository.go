package repository

import (
	"context"
	"errors"
	"time"

	"seedble/internal/database"
	"seedble/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkill struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SkillID      uuid.UUID
	SkillName    string
	Category     skill.Category
	Level        int
	Interest     int
	IsPriority   bool
	LastAssessed time.Time
}

// UserSkillUpsert is one assessed entry; level and interest are validated
// by the caller.
type UserSkillUpsert struct {
	SkillID    uuid.UUID
	Level      int
	Interest   int
	IsPriority bool
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkill, error)
	UpsertMany(ctx context.Context, userID uuid.UUID, entries []UserSkillUpsert, assessedAt time.Time) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `
SELECT us.id, us.user_id, us.skill_id, s.name, s.category,
       us.level, us.interest, us.is_priority, us.last_assessed
FROM user_skills us
JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = $1 ORDER BY s.name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserSkills(rows)
}

func (r *PostgresUserSkillRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkill, error) {
	out := make(map[uuid.UUID][]UserSkill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = ANY($1) ORDER BY s.name ASC`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanUserSkills(rows)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.UserID] = append(out[it.UserID], it)
	}
	return out, nil
}

// UpsertMany writes assessment results with upsert semantics on the
// (user_id, skill_id) unique pair, all in one transaction.
func (r *PostgresUserSkillRepository) UpsertMany(ctx context.Context, userID uuid.UUID, entries []UserSkillUpsert, assessedAt time.Time) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, skill_id, level, interest, is_priority, last_assessed)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (user_id, skill_id) DO UPDATE
			 SET level = EXCLUDED.level,
			     interest = EXCLUDED.interest,
			     is_priority = EXCLUDED.is_priority,
			     last_assessed = EXCLUDED.last_assessed,
			     updated_at = now()`,
			uuid.New(), userID, e.SkillID, e.Level, e.Interest, e.IsPriority, assessedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserSkillRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_skills WHERE user_id = $1`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanUserSkills(rows database.Rows) ([]UserSkill, error) {
	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Category,
			&us.Level, &us.Interest, &us.IsPriority, &us.LastAssessed); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
