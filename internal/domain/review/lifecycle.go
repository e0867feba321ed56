package review

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusValidated  Status = "validated"
	StatusFlagged    Status = "flagged"
)

// Category is one of the four fixed groups on a review sheet. Ratings
// arrive tagged with their category; the lifecycle never guesses one.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategorySoft       Category = "soft"
	CategoryProcess    Category = "process"
	CategoryInnovation Category = "innovation"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryProcess, CategoryInnovation:
		return true
	}
	return false
}

// EmptyCategoryScore is the contribution of a category with no rated skills.
// Zero-filling keeps the overall score computable for partial sheets.
const EmptyCategoryScore = 0.0

var (
	ErrInvalidTransition = errors.New("invalid review transition")
	ErrNoRatings         = errors.New("review submission has no skill ratings")
	ErrRatingOutOfRange  = errors.New("skill rating out of range")
	ErrInvalidCategory   = errors.New("invalid rating category")
)

// SkillRating is one 1-5 rating on the review sheet.
type SkillRating struct {
	SkillID  uuid.UUID
	Category Category
	Score    int
	Feedback string
}

// Scores holds the four category means, each on the 0-5 scale.
type Scores struct {
	Technical  float64
	Soft       float64
	Process    float64
	Innovation float64
}

// Overall is the unweighted mean of the four category scores.
func (s Scores) Overall() float64 {
	return (s.Technical + s.Soft + s.Process + s.Innovation) / 4.0
}

// Spread is the gap between the highest and lowest category score.
func (s Scores) Spread() float64 {
	min, max := s.Technical, s.Technical
	for _, v := range []float64{s.Soft, s.Process, s.Innovation} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}

// ComputeScores aggregates the per-skill ratings into category means.
// A submission with no ratings at all is rejected; a category with no rated
// skills scores EmptyCategoryScore rather than blocking the overall score.
func ComputeScores(ratings []SkillRating) (Scores, error) {
	if len(ratings) == 0 {
		return Scores{}, ErrNoRatings
	}

	sums := make(map[Category]float64, 4)
	counts := make(map[Category]int, 4)
	for _, r := range ratings {
		if !r.Category.Valid() {
			return Scores{}, fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
		}
		if r.Score < 1 || r.Score > 5 {
			return Scores{}, fmt.Errorf("%w: %d", ErrRatingOutOfRange, r.Score)
		}
		sums[r.Category] += float64(r.Score)
		counts[r.Category]++
	}

	mean := func(c Category) float64 {
		if counts[c] == 0 {
			return EmptyCategoryScore
		}
		return sums[c] / float64(counts[c])
	}

	return Scores{
		Technical:  mean(CategoryTechnical),
		Soft:       mean(CategorySoft),
		Process:    mean(CategoryProcess),
		Innovation: mean(CategoryInnovation),
	}, nil
}

// transitions is the forward-only state machine. Submitting directly from
// pending is allowed because opening the sheet and submitting it may happen
// in one operation; validated and flagged are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusValidated, StatusFlagged},
	StatusValidated:  {},
	StatusFlagged:    {},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// VariancePolicy suggests flagging a completed review whose category scores
// diverge by at least Threshold. A zero or negative threshold disables the
// policy; flagging always remains a validator decision, never automatic.
type VariancePolicy struct {
	Threshold float64
}

func (p VariancePolicy) ShouldFlag(s Scores) bool {
	if p.Threshold <= 0 {
		return false
	}
	return s.Spread() >= p.Threshold
}
