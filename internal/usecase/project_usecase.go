package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"seedble/internal/repository"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type CreateProjectInput struct {
	Name           string
	Description    string
	RequiredSkills []string
	StartDate      time.Time
	EndDate        *time.Time
	MemberIDs      []uuid.UUID
}

type ProjectMemberItem struct {
	UserID   uuid.UUID
	FullName string
	Role     string
	JoinedAt time.Time
}

type ProjectItem struct {
	ID             uuid.UUID
	Name           string
	Description    string
	RequiredSkills []string
	StartDate      time.Time
	EndDate        *time.Time
	Status         string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	Members        []ProjectMemberItem
}

// Notifier pushes realtime events to connected clients. Implementations must
// never block the caller.
type Notifier interface {
	ProjectCreated(projectID uuid.UUID, name string, memberIDs []uuid.UUID)
	ReviewAssigned(reviewID, reviewerID, revieweeID, projectID uuid.UUID)
}

type ProjectUsecase interface {
	CreateProject(ctx context.Context, creatorID uuid.UUID, in CreateProjectInput) (ProjectItem, error)
	GetProject(ctx context.Context, id uuid.UUID) (ProjectItem, error)
	ListActiveProjects(ctx context.Context) ([]ProjectItem, error)
	AddMember(ctx context.Context, projectID, userID uuid.UUID, role string) error
}

type Project struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	notifier Notifier
	logger   *log.Logger
}

func NewProjectUsecase(projects repository.ProjectRepository, users repository.UserRepository, notifier Notifier, logger *log.Logger) *Project {
	return &Project{projects: projects, users: users, notifier: notifier, logger: logger}
}

func (u *Project) CreateProject(ctx context.Context, creatorID uuid.UUID, in CreateProjectInput) (ProjectItem, error) {
	if creatorID == uuid.Nil {
		return ProjectItem{}, ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.StartDate.IsZero() {
		return ProjectItem{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return ProjectItem{}, ErrInvalidInput
	}

	required := make([]string, 0, len(in.RequiredSkills))
	for _, s := range in.RequiredSkills {
		if strings.TrimSpace(s) != "" {
			required = append(required, strings.TrimSpace(s))
		}
	}

	p := &repository.Project{
		ID:             uuid.New(),
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		RequiredSkills: required,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         "active",
		CreatedBy:      creatorID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.projects.Create(ctx, p); err != nil {
		return ProjectItem{}, ErrInternal
	}

	now := time.Now().UTC()
	added := make([]uuid.UUID, 0, len(in.MemberIDs))
	for _, memberID := range in.MemberIDs {
		if memberID == uuid.Nil {
			continue
		}
		m := &repository.ProjectMember{ProjectID: p.ID, UserID: memberID, Role: "member", JoinedAt: now}
		if err := u.projects.AddMember(ctx, m); err != nil {
			if isForeignKeyViolation(err) {
				continue
			}
			return ProjectItem{}, ErrInternal
		}
		added = append(added, memberID)
	}

	if u.notifier != nil {
		u.notifier.ProjectCreated(p.ID, p.Name, added)
	}
	if u.logger != nil {
		u.logger.Printf("[Project] created id=%s name=%q members=%d", p.ID, p.Name, len(added))
	}

	return u.GetProject(ctx, p.ID)
}

func (u *Project) GetProject(ctx context.Context, id uuid.UUID) (ProjectItem, error) {
	if id == uuid.Nil {
		return ProjectItem{}, ErrInvalidInput
	}
	p, err := u.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ProjectItem{}, ErrProjectNotFound
		}
		return ProjectItem{}, ErrInternal
	}

	members, err := u.projects.ListMembers(ctx, id)
	if err != nil {
		return ProjectItem{}, ErrInternal
	}

	item := toProjectItem(*p)
	for _, m := range members {
		mi := ProjectMemberItem{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
		if profile, err := u.users.FindByID(ctx, m.UserID); err == nil {
			mi.FullName = profile.FullName
		}
		item.Members = append(item.Members, mi)
	}
	return item, nil
}

func (u *Project) ListActiveProjects(ctx context.Context) ([]ProjectItem, error) {
	projects, err := u.projects.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ProjectItem, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectItem(p))
	}
	return out, nil
}

func (u *Project) AddMember(ctx context.Context, projectID, userID uuid.UUID, role string) error {
	if projectID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}
	exists, err := u.projects.ExistsByID(ctx, projectID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrProjectNotFound
	}
	if role == "" {
		role = "member"
	}

	m := &repository.ProjectMember{ProjectID: projectID, UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
	if err := u.projects.AddMember(ctx, m); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidInput
		}
		return ErrInternal
	}
	return nil
}

func toProjectItem(p repository.Project) ProjectItem {
	return ProjectItem{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		RequiredSkills: p.RequiredSkills,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
	}
}
