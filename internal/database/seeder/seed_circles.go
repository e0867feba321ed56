package seeder

import (
	"context"
	"fmt"

	"seedble/internal/database"
)

type KnowledgeCirclesSeeder struct{}

func (KnowledgeCirclesSeeder) Name() string { return "knowledge_circles" }

func (KnowledgeCirclesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "knowledge_circles", "id", "name", "description", "category", "icon", "color"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name        string
		Description string
		Category    string
		Icon        string
		Color       string
	}{
		{"Frontend Guild", "React, design systems and everything in the browser", "technical", "layout", "#7c3aed"},
		{"Backend Guild", "Services, data modeling and APIs", "technical", "server", "#2563eb"},
		{"Data & AI", "Analytics, ML and data tooling", "technical", "brain", "#059669"},
		{"Leadership Circle", "Mentoring, feedback and people growth", "soft", "users", "#d97706"},
		{"Ways of Working", "Agile practice, review culture and delivery process", "process", "workflow", "#dc2626"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO knowledge_circles (id, name, description, category, icon, color)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name, it.Description, it.Category, it.Icon, it.Color,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
