package review

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestComputeScores_OverallIsMeanOfFourCategories(t *testing.T) {
	ratings := []SkillRating{
		{SkillID: uuid.New(), Category: CategoryTechnical, Score: 4},
		{SkillID: uuid.New(), Category: CategoryTechnical, Score: 4},
		{SkillID: uuid.New(), Category: CategorySoft, Score: 3},
		{SkillID: uuid.New(), Category: CategoryProcess, Score: 5},
		{SkillID: uuid.New(), Category: CategoryInnovation, Score: 2},
	}
	scores, err := ComputeScores(ratings)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := (4.0 + 3.0 + 5.0 + 2.0) / 4.0
	if math.Abs(scores.Overall()-want) > 1e-9 {
		t.Fatalf("expected overall %v, got %v", want, scores.Overall())
	}
	if scores.Overall() < 0 || scores.Overall() > 5 {
		t.Fatalf("overall out of [0,5]: %v", scores.Overall())
	}
}

func TestComputeScores_EmptyCategoryContributesZero(t *testing.T) {
	// No soft skills rated: the category scores 0 by policy, which drags the
	// overall down. This is the documented behavior, not a defect to repair.
	ratings := []SkillRating{
		{SkillID: uuid.New(), Category: CategoryTechnical, Score: 4},
		{SkillID: uuid.New(), Category: CategoryProcess, Score: 3},
		{SkillID: uuid.New(), Category: CategoryInnovation, Score: 4},
	}
	scores, err := ComputeScores(ratings)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if scores.Soft != EmptyCategoryScore {
		t.Fatalf("expected soft=%v, got %v", EmptyCategoryScore, scores.Soft)
	}
	if math.Abs(scores.Overall()-2.75) > 1e-9 {
		t.Fatalf("expected overall 2.75, got %v", scores.Overall())
	}
}

func TestComputeScores_RejectsEmptySubmission(t *testing.T) {
	_, err := ComputeScores(nil)
	if !errors.Is(err, ErrNoRatings) {
		t.Fatalf("expected ErrNoRatings, got %v", err)
	}
}

func TestComputeScores_RejectsOutOfRangeRating(t *testing.T) {
	for _, score := range []int{0, 6, -1} {
		_, err := ComputeScores([]SkillRating{{SkillID: uuid.New(), Category: CategoryTechnical, Score: score}})
		if !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("score %d: expected ErrRatingOutOfRange, got %v", score, err)
		}
	}
}

func TestComputeScores_RejectsUnknownCategory(t *testing.T) {
	_, err := ComputeScores([]SkillRating{{SkillID: uuid.New(), Category: "leadership", Score: 3}})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTransition_ForwardPath(t *testing.T) {
	steps := []struct {
		from, to Status
	}{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusValidated},
		{StatusCompleted, StatusFlagged},
	}
	for _, s := range steps {
		if err := Transition(s.from, s.to); err != nil {
			t.Fatalf("expected %s -> %s allowed, got %v", s.from, s.to, err)
		}
	}
}

func TestTransition_TerminalStatesRejected(t *testing.T) {
	rejected := []struct {
		from, to Status
	}{
		{StatusValidated, StatusInProgress},
		{StatusValidated, StatusCompleted},
		{StatusFlagged, StatusCompleted},
		{StatusFlagged, StatusPending},
		{StatusCompleted, StatusPending},
		{StatusInProgress, StatusPending},
	}
	for _, s := range rejected {
		if err := Transition(s.from, s.to); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected %s -> %s rejected, got %v", s.from, s.to, err)
		}
	}
}

func TestVariancePolicy(t *testing.T) {
	scores := Scores{Technical: 5, Soft: 1, Process: 4, Innovation: 4}
	if got := scores.Spread(); math.Abs(got-4.0) > 1e-9 {
		t.Fatalf("expected spread 4, got %v", got)
	}

	if (VariancePolicy{}).ShouldFlag(scores) {
		t.Fatalf("disabled policy must never suggest flagging")
	}
	if !(VariancePolicy{Threshold: 3}).ShouldFlag(scores) {
		t.Fatalf("expected flag suggestion at spread 4 >= threshold 3")
	}
	if (VariancePolicy{Threshold: 4.5}).ShouldFlag(scores) {
		t.Fatalf("expected no flag suggestion below threshold")
	}
}
