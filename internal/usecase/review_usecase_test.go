package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"seedble/internal/domain/review"
	"seedble/internal/repository"

	"github.com/google/uuid"
)

type mockReviewRepo struct {
	byID      map[uuid.UUID]*repository.PeerReview
	created   []*repository.PeerReview
	completed map[uuid.UUID]review.Scores
	statuses  map[uuid.UUID]review.Status
	err       error
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		byID:      make(map[uuid.UUID]*repository.PeerReview),
		completed: make(map[uuid.UUID]review.Scores),
		statuses:  make(map[uuid.UUID]review.Status),
	}
}

func (m *mockReviewRepo) Create(_ context.Context, reviewerID, revieweeID, projectID uuid.UUID) (*repository.PeerReview, error) {
	if m.err != nil {
		return nil, m.err
	}
	pr := &repository.PeerReview{
		ID:         uuid.New(),
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		ProjectID:  projectID,
		Status:     review.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	m.byID[pr.ID] = pr
	m.created = append(m.created, pr)
	return pr, nil
}

func (m *mockReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.PeerReview, error) {
	if m.err != nil {
		return nil, m.err
	}
	pr, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	cp := *pr
	return &cp, nil
}

func (m *mockReviewRepo) SetStatus(_ context.Context, id uuid.UUID, from, to review.Status) error {
	pr, ok := m.byID[id]
	if !ok || pr.Status != from {
		return repository.ErrReviewNotFound
	}
	pr.Status = to
	m.statuses[id] = to
	return nil
}

func (m *mockReviewRepo) CompleteTx(_ context.Context, id uuid.UUID, scores review.Scores, feedback string, ratings []review.SkillRating, flagged bool, flagReason string, completedAt time.Time) error {
	pr, ok := m.byID[id]
	if !ok || (pr.Status != review.StatusPending && pr.Status != review.StatusInProgress) {
		return repository.ErrReviewNotFound
	}
	pr.Status = review.StatusCompleted
	if flagged {
		pr.Status = review.StatusFlagged
	}
	s := scores
	pr.Scores = &s
	overall := scores.Overall()
	pr.Overall = &overall
	pr.Feedback = feedback
	pr.CompletedAt = &completedAt
	m.completed[id] = scores
	return nil
}

func (m *mockReviewRepo) Validate(_ context.Context, id uuid.UUID, validatedAt time.Time) error {
	pr, ok := m.byID[id]
	if !ok || pr.Status != review.StatusCompleted {
		return repository.ErrReviewNotFound
	}
	pr.Status = review.StatusValidated
	pr.ValidatedAt = &validatedAt
	return nil
}

func (m *mockReviewRepo) Flag(_ context.Context, id uuid.UUID, reason string) error {
	pr, ok := m.byID[id]
	if !ok || pr.Status != review.StatusCompleted {
		return repository.ErrReviewNotFound
	}
	pr.Status = review.StatusFlagged
	pr.FlagReason = reason
	return nil
}

func (m *mockReviewRepo) ListByReviewerID(_ context.Context, reviewerID uuid.UUID) ([]repository.PeerReview, error) {
	out := make([]repository.PeerReview, 0)
	for _, pr := range m.byID {
		if pr.ReviewerID == reviewerID {
			out = append(out, *pr)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) ListByRevieweeID(_ context.Context, revieweeID uuid.UUID) ([]repository.PeerReview, error) {
	out := make([]repository.PeerReview, 0)
	for _, pr := range m.byID {
		if pr.RevieweeID == revieweeID {
			out = append(out, *pr)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) ListCompletedScoresByRevieweeID(context.Context, uuid.UUID) ([]float64, error) {
	return nil, nil
}

func (m *mockReviewRepo) CountPendingByReviewerID(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

type mockUserRepo struct {
	profiles map[uuid.UUID]repository.Profile
}

func (m mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return repository.Profile{}, repository.ErrUserNotFound
	}
	return p, nil
}

func (m mockUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.profiles[id]
	return ok, nil
}

func (m mockUserRepo) ListCandidates(context.Context) ([]repository.Profile, error) {
	out := make([]repository.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

type mockProjectRepo struct {
	existing map[uuid.UUID]*repository.Project
	members  []repository.ProjectMember
}

func (m *mockProjectRepo) Create(_ context.Context, p *repository.Project) error {
	if m.existing == nil {
		m.existing = make(map[uuid.UUID]*repository.Project)
	}
	m.existing[p.ID] = p
	return nil
}

func (m *mockProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.Project, error) {
	p, ok := m.existing[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProjectRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.existing[id]
	return ok, nil
}

func (m *mockProjectRepo) ListActive(context.Context) ([]repository.Project, error) { return nil, nil }

func (m *mockProjectRepo) AddMember(_ context.Context, mem *repository.ProjectMember) error {
	m.members = append(m.members, *mem)
	return nil
}

func (m *mockProjectRepo) ListMembers(_ context.Context, projectID uuid.UUID) ([]repository.ProjectMember, error) {
	out := make([]repository.ProjectMember, 0)
	for _, mem := range m.members {
		if mem.ProjectID == projectID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *mockProjectRepo) CountMembershipsByUserID(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

type recordingNotifier struct {
	reviewAssigned int
	projectCreated int
}

func (n *recordingNotifier) ProjectCreated(uuid.UUID, string, []uuid.UUID) { n.projectCreated++ }
func (n *recordingNotifier) ReviewAssigned(uuid.UUID, uuid.UUID, uuid.UUID, uuid.UUID) {
	n.reviewAssigned++
}

func reviewFixture(t *testing.T) (*Review, *mockReviewRepo, *recordingNotifier, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()
	reviewer := uuid.New()
	reviewee := uuid.New()
	projectID := uuid.New()

	reviews := newMockReviewRepo()
	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		reviewer: {ID: reviewer, FullName: "Reviewer"},
		reviewee: {ID: reviewee, FullName: "Reviewee"},
	}}
	projects := &mockProjectRepo{existing: map[uuid.UUID]*repository.Project{
		projectID: {ID: projectID, Name: "Apollo", Status: "active"},
	}}
	notifier := &recordingNotifier{}

	uc := NewReviewUsecase(reviews, users, projects, review.VariancePolicy{}, notifier, nil)
	return uc, reviews, notifier, reviewer, reviewee, projectID
}

func TestReviewUsecase_AssignReview_Success(t *testing.T) {
	uc, reviews, notifier, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.Status != review.StatusPending {
		t.Fatalf("expected pending, got %s", item.Status)
	}
	if len(reviews.created) != 1 {
		t.Fatalf("expected 1 created review, got %d", len(reviews.created))
	}
	if notifier.reviewAssigned != 1 {
		t.Fatalf("expected notification, got %d", notifier.reviewAssigned)
	}
}

func TestReviewUsecase_AssignReview_SelfReview(t *testing.T) {
	uc, _, _, reviewer, _, projectID := reviewFixture(t)

	_, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewer, ProjectID: projectID,
	})
	if !errors.Is(err, ErrReviewSelf) {
		t.Fatalf("expected ErrReviewSelf, got %v", err)
	}
}

func TestReviewUsecase_AssignReview_UnknownProject(t *testing.T) {
	uc, _, _, reviewer, reviewee, _ := reviewFixture(t)

	_, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: uuid.New(),
	})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestReviewUsecase_SubmitReview_FromPending(t *testing.T) {
	uc, _, _, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	submitted, err := uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{
		ReviewID: item.ID,
		Ratings: []review.SkillRating{
			{SkillID: uuid.New(), Category: review.CategoryTechnical, Score: 4},
			{SkillID: uuid.New(), Category: review.CategorySoft, Score: 3},
			{SkillID: uuid.New(), Category: review.CategoryProcess, Score: 5},
			{SkillID: uuid.New(), Category: review.CategoryInnovation, Score: 4},
		},
		Feedback: "solid work",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != review.StatusCompleted {
		t.Fatalf("expected completed, got %s", submitted.Status)
	}
	if submitted.Overall == nil || *submitted.Overall != 4.0 {
		t.Fatalf("expected overall 4.0, got %v", submitted.Overall)
	}
}

func TestReviewUsecase_SubmitReview_EmptyRatings(t *testing.T) {
	uc, _, _, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	_, err = uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{ReviewID: item.ID})
	if !errors.Is(err, ErrReviewEmptyRatings) {
		t.Fatalf("expected ErrReviewEmptyRatings, got %v", err)
	}
}

func TestReviewUsecase_SubmitReview_WrongReviewer(t *testing.T) {
	uc, _, _, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	_, err = uc.SubmitReview(context.Background(), reviewee, SubmitReviewInput{
		ReviewID: item.ID,
		Ratings:  []review.SkillRating{{SkillID: uuid.New(), Category: review.CategoryTechnical, Score: 4}},
	})
	if !errors.Is(err, ErrReviewNotReviewer) {
		t.Fatalf("expected ErrReviewNotReviewer, got %v", err)
	}
}

func TestReviewUsecase_SubmitReview_AlreadyCompleted(t *testing.T) {
	uc, _, _, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	ratings := []review.SkillRating{{SkillID: uuid.New(), Category: review.CategoryTechnical, Score: 4}}
	if _, err := uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{ReviewID: item.ID, Ratings: ratings}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err = uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{ReviewID: item.ID, Ratings: ratings})
	if !errors.Is(err, ErrReviewTransition) {
		t.Fatalf("expected ErrReviewTransition, got %v", err)
	}
}

func TestReviewUsecase_ValidateThenFlagRejected(t *testing.T) {
	uc, _, _, reviewer, reviewee, projectID := reviewFixture(t)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	ratings := []review.SkillRating{{SkillID: uuid.New(), Category: review.CategoryTechnical, Score: 4}}
	if _, err := uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{ReviewID: item.ID, Ratings: ratings}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := uc.ValidateReview(context.Background(), item.ID); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := uc.FlagReview(context.Background(), item.ID, "dispute"); !errors.Is(err, ErrReviewTransition) {
		t.Fatalf("expected ErrReviewTransition after validation, got %v", err)
	}
}

func TestReviewUsecase_SubmitReview_VarianceSuggestsFlag(t *testing.T) {
	reviewer := uuid.New()
	reviewee := uuid.New()
	projectID := uuid.New()

	reviews := newMockReviewRepo()
	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		reviewer: {ID: reviewer}, reviewee: {ID: reviewee},
	}}
	projects := &mockProjectRepo{existing: map[uuid.UUID]*repository.Project{projectID: {ID: projectID}}}

	uc := NewReviewUsecase(reviews, users, projects, review.VariancePolicy{Threshold: 3}, nil, nil)

	item, err := uc.AssignReview(context.Background(), AssignReviewInput{
		ReviewerID: reviewer, RevieweeID: reviewee, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Technical 5, everything else unrated (0): spread 5 exceeds the threshold.
	submitted, err := uc.SubmitReview(context.Background(), reviewer, SubmitReviewInput{
		ReviewID: item.ID,
		Ratings:  []review.SkillRating{{SkillID: uuid.New(), Category: review.CategoryTechnical, Score: 5}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !submitted.FlagSuggested {
		t.Fatalf("expected flag suggestion")
	}
	if submitted.Status != review.StatusCompleted {
		t.Fatalf("flag suggestion must not change status, got %s", submitted.Status)
	}
}
