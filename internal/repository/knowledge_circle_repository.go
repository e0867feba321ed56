package repository

import (
	"context"
	"time"

	"seedble/internal/database"

	"github.com/google/uuid"
)

type KnowledgeCircle struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Icon        string
	Color       string
	MemberCount int
	CreatedAt   time.Time
}

type KnowledgeCircleRepository interface {
	ListWithMemberCounts(ctx context.Context) ([]KnowledgeCircle, error)
	Join(ctx context.Context, circleID, userID uuid.UUID) error
	Leave(ctx context.Context, circleID, userID uuid.UUID) error
}

type PostgresKnowledgeCircleRepository struct {
	db database.DB
}

func NewPostgresKnowledgeCircleRepository(db database.DB) *PostgresKnowledgeCircleRepository {
	return &PostgresKnowledgeCircleRepository{db: db}
}

func (r *PostgresKnowledgeCircleRepository) ListWithMemberCounts(ctx context.Context) ([]KnowledgeCircle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT kc.id, kc.name, COALESCE(kc.description, ''), kc.category, kc.icon, kc.color,
		        COUNT(cm.id), kc.created_at
		 FROM knowledge_circles kc
		 LEFT JOIN circle_members cm ON cm.circle_id = kc.id
		 GROUP BY kc.id
		 ORDER BY kc.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]KnowledgeCircle, 0)
	for rows.Next() {
		var c KnowledgeCircle
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.Icon, &c.Color,
			&c.MemberCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresKnowledgeCircleRepository) Join(ctx context.Context, circleID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO circle_members (id, circle_id, user_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (circle_id, user_id) DO NOTHING`,
		uuid.New(), circleID, userID,
	)
	return err
}

func (r *PostgresKnowledgeCircleRepository) Leave(ctx context.Context, circleID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM circle_members WHERE circle_id = $1 AND user_id = $2`,
		circleID, userID,
	)
	return err
}
