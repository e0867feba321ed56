package scoring

import (
	"math"
	"testing"
)

func TestCalculate_FullMatchWithScaledLevel(t *testing.T) {
	entries := []Entry{
		{SkillName: "React", Level: 4},
		{SkillName: "SQL", Level: 2},
		{SkillName: "CSS", Level: 5},
	}
	res := Calculate(entries, []string{"React", "SQL"})

	if res.SkillMatchPct != 100 {
		t.Fatalf("expected match 100, got %v", res.SkillMatchPct)
	}
	wantAvg := 11.0 / 3.0
	if math.Abs(res.AverageLevel-wantAvg) > 1e-9 {
		t.Fatalf("expected avg level %v, got %v", wantAvg, res.AverageLevel)
	}
	if res.CompatibilityPct != 87 {
		t.Fatalf("expected compatibility 87, got %d", res.CompatibilityPct)
	}
	if len(res.MatchingSkills) != 2 || res.MatchingSkills[0] != "React" || res.MatchingSkills[1] != "SQL" {
		t.Fatalf("unexpected matching skills: %v", res.MatchingSkills)
	}
}

func TestCalculate_EmptyRequiredSkills(t *testing.T) {
	res := Calculate([]Entry{{SkillName: "Go", Level: 5}}, nil)
	if res.SkillMatchPct != 0 {
		t.Fatalf("expected match 0 for empty requirements, got %v", res.SkillMatchPct)
	}
	if res.AverageLevel != 5 {
		t.Fatalf("expected avg level 5, got %v", res.AverageLevel)
	}
	// compatibility = round((0 + 100) / 2)
	if res.CompatibilityPct != 50 {
		t.Fatalf("expected compatibility 50, got %d", res.CompatibilityPct)
	}
}

func TestCalculate_NoEntries(t *testing.T) {
	res := Calculate(nil, []string{"React", "SQL"})
	if res.AverageLevel != 0 {
		t.Fatalf("expected avg level 0, got %v", res.AverageLevel)
	}
	if res.SkillMatchPct != 0 {
		t.Fatalf("expected match 0, got %v", res.SkillMatchPct)
	}
	if res.CompatibilityPct != 0 {
		t.Fatalf("expected compatibility 0, got %d", res.CompatibilityPct)
	}
}

func TestCalculate_CompatibilityDependsOnlyOnMatchWhenNoEntries(t *testing.T) {
	// A candidate with no entries cannot match anything, but the formula
	// must still reduce to skill match alone when average level is zero.
	entries := []Entry{{SkillName: "React", Level: 0}}
	res := Calculate(entries, []string{"React"})
	if res.AverageLevel != 0 {
		t.Fatalf("expected avg level 0, got %v", res.AverageLevel)
	}
	if res.CompatibilityPct != 50 {
		t.Fatalf("expected compatibility round(100/2)=50, got %d", res.CompatibilityPct)
	}
}

func TestCalculate_CaseInsensitiveMatching(t *testing.T) {
	entries := []Entry{{SkillName: "react", Level: 3}, {SkillName: "NODE.JS", Level: 3}}
	res := Calculate(entries, []string{"React", "Node.js", "SQL"})
	if len(res.MatchingSkills) != 2 {
		t.Fatalf("expected 2 matches, got %v", res.MatchingSkills)
	}
	want := 100.0 * 2.0 / 3.0
	if math.Abs(res.SkillMatchPct-want) > 1e-9 {
		t.Fatalf("expected match %v, got %v", want, res.SkillMatchPct)
	}
}

func TestCalculate_DuplicateRequirementsCountOnce(t *testing.T) {
	entries := []Entry{{SkillName: "Go", Level: 4}}
	res := Calculate(entries, []string{"Go", "go", " GO ", "SQL"})
	if res.SkillMatchPct != 50 {
		t.Fatalf("expected match 50 over deduped set, got %v", res.SkillMatchPct)
	}
}

func TestCalculate_LevelsClampedBeforeAveraging(t *testing.T) {
	entries := []Entry{{SkillName: "Go", Level: 9}, {SkillName: "SQL", Level: -3}}
	res := Calculate(entries, []string{"Go"})
	if math.Abs(res.AverageLevel-2.5) > 1e-9 {
		t.Fatalf("expected clamped avg 2.5, got %v", res.AverageLevel)
	}
}
