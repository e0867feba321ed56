package seeder

import (
	"context"
	"fmt"

	"seedble/internal/database"
	"seedble/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "description", "created_at"); err != nil {
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
		Name     string
		Category skill.Category
	}{
		{Name: "React", Category: skill.CategoryTechnical},
		{Name: "TypeScript", Category: skill.CategoryTechnical},
		{Name: "Node.js", Category: skill.CategoryTechnical},
		{Name: "Python", Category: skill.CategoryTechnical},
		{Name: "SQL", Category: skill.CategoryTechnical},
		{Name: "CSS", Category: skill.CategoryTechnical},
		{Name: "Machine Learning", Category: skill.CategoryTechnical},
		{Name: "UI Design", Category: skill.CategoryTechnical},
		{Name: "Communication", Category: skill.CategorySoft},
		{Name: "Team Leadership", Category: skill.CategorySoft},
		{Name: "Problem Solving", Category: skill.CategorySoft},
		{Name: "Mentoring", Category: skill.CategorySoft},
		{Name: "Stakeholder Management", Category: skill.CategorySoft},
		{Name: "Agile", Category: skill.CategoryProcess},
		{Name: "Code Review", Category: skill.CategoryProcess},
		{Name: "Testing Practices", Category: skill.CategoryProcess},
		{Name: "Documentation", Category: skill.CategoryProcess},
		{Name: "Risk Assessment", Category: skill.CategoryProcess},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category, description)
			 VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name,
			string(it.Category),
			fmt.Sprintf("%s skill: %s", it.Category, it.Name),
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
