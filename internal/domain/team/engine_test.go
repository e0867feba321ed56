package team

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"seedble/internal/domain/scoring"

	"github.com/google/uuid"
)

func syntheticCandidates() []Candidate {
	// 10 candidates with decreasing overlap on the requirement set.
	required := []string{"React", "SQL", "Docker", "Kubernetes"}
	out := make([]Candidate, 0, 10)
	for i := 0; i < 10; i++ {
		entries := make([]scoring.Entry, 0)
		for j := 0; j <= i%4; j++ {
			entries = append(entries, scoring.Entry{SkillName: required[j], Level: 1 + (i+j)%5})
		}
		out = append(out, Candidate{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("candidate-%d", i))),
			DisplayName: fmt.Sprintf("Candidate %d", i),
			Role:        "Developer",
			Entries:     entries,
		})
	}
	return out
}

func TestRecommend_Deterministic(t *testing.T) {
	candidates := syntheticCandidates()
	required := []string{"React", "SQL", "Docker", "Kubernetes"}

	first := Recommend(candidates, required, DefaultTeamSize)
	second := Recommend(candidates, required, DefaultTeamSize)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical recommendations for identical inputs")
	}
}

func TestRecommend_TopNAggregates(t *testing.T) {
	candidates := syntheticCandidates()
	required := []string{"React", "SQL", "Docker", "Kubernetes"}

	rec := Recommend(candidates, required, 4)
	if len(rec.Team) != 4 {
		t.Fatalf("expected team of 4, got %d", len(rec.Team))
	}

	matchSum, compatSum := 0, 0
	for _, m := range rec.Team {
		matchSum += m.SkillMatchPct
		compatSum += m.CompatibilityPct
	}
	wantCoverage := int(math.Round(float64(matchSum) / 4.0))
	wantSuccess := int(math.Round(float64(compatSum) / 4.0))

	if rec.SkillsCoverage != wantCoverage {
		t.Fatalf("expected coverage %d, got %d", wantCoverage, rec.SkillsCoverage)
	}
	if rec.SuccessPrediction != wantSuccess {
		t.Fatalf("expected success prediction %d, got %d", wantSuccess, rec.SuccessPrediction)
	}
}

func TestRecommend_RankingOrder(t *testing.T) {
	candidates := syntheticCandidates()
	rec := Recommend(candidates, []string{"React", "SQL", "Docker", "Kubernetes"}, len(candidates))

	for i := 1; i < len(rec.Team); i++ {
		prev, cur := rec.Team[i-1], rec.Team[i]
		if cur.CompatibilityPct > prev.CompatibilityPct {
			t.Fatalf("ranking not descending by compatibility at %d", i)
		}
		if cur.CompatibilityPct == prev.CompatibilityPct && cur.AverageLevel > prev.AverageLevel {
			t.Fatalf("tie not broken by average level at %d", i)
		}
	}
}

func TestRecommend_TieBreakPreservesEnumerationOrder(t *testing.T) {
	// Two identical candidates: the one enumerated first must rank first.
	entries := []scoring.Entry{{SkillName: "Go", Level: 3}}
	a := Candidate{ID: uuid.New(), DisplayName: "First", Entries: entries}
	b := Candidate{ID: uuid.New(), DisplayName: "Second", Entries: entries}

	rec := Recommend([]Candidate{a, b}, []string{"Go"}, 2)
	if rec.Team[0].DisplayName != "First" || rec.Team[1].DisplayName != "Second" {
		t.Fatalf("expected enumeration order on full tie, got %s then %s",
			rec.Team[0].DisplayName, rec.Team[1].DisplayName)
	}
}

func TestRecommend_EmptyCandidatePool(t *testing.T) {
	rec := Recommend(nil, []string{"React"}, DefaultTeamSize)
	if len(rec.Team) != 0 {
		t.Fatalf("expected empty team")
	}
	if rec.SkillsCoverage != 0 || rec.SuccessPrediction != 0 {
		t.Fatalf("expected zero aggregates, got coverage=%d success=%d",
			rec.SkillsCoverage, rec.SuccessPrediction)
	}
	if len(rec.Narrative.Risks) == 0 {
		t.Fatalf("expected templated risk for empty pool")
	}
}

func TestRecommend_TeamSizeClamps(t *testing.T) {
	candidates := syntheticCandidates()

	rec := Recommend(candidates, []string{"React"}, 0)
	if len(rec.Team) != DefaultTeamSize {
		t.Fatalf("expected default team size %d, got %d", DefaultTeamSize, len(rec.Team))
	}

	rec = Recommend(candidates[:2], []string{"React"}, 5)
	if len(rec.Team) != 2 {
		t.Fatalf("expected team clamped to pool size 2, got %d", len(rec.Team))
	}
}

func TestTemplateNarrative_CoverageGap(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New(), DisplayName: "Ada", Entries: []scoring.Entry{{SkillName: "React", Level: 4}}},
	}
	rec := Recommend(candidates, []string{"React", "Rust"}, 1)

	foundGap := false
	for _, r := range rec.Narrative.Risks {
		if r == "No selected member covers: Rust" {
			foundGap = true
		}
	}
	if !foundGap {
		t.Fatalf("expected uncovered-skill risk, got %v", rec.Narrative.Risks)
	}
	if len(rec.Narrative.Suggestions) == 0 {
		t.Fatalf("expected at least one suggestion")
	}
}
