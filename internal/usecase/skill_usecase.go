package usecase

import (
	"context"
	"errors"
	"strings"

	"seedble/internal/domain/skill"
	"seedble/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillItem struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	EnsureSkill(ctx context.Context, name, category, description string) (SkillItem, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{
			ID:          it.ID,
			Name:        it.Name,
			Category:    string(it.Category),
			Description: it.Description,
		})
	}
	return out, nil
}

func (u *Skill) EnsureSkill(ctx context.Context, name, category, description string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}
	cat := skill.Category(category)
	if !cat.Valid() {
		return SkillItem{}, ErrInvalidInput
	}
	s, err := u.repo.EnsureSkill(ctx, name, cat, description)
	if err != nil {
		return SkillItem{}, ErrInternal
	}
	return SkillItem{ID: s.ID, Name: s.Name, Category: string(s.Category), Description: s.Description}, nil
}
