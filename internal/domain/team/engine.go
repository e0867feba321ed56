package team

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"seedble/internal/domain/scoring"

	"github.com/google/uuid"
)

// DefaultTeamSize mirrors the top-4 selection of the project creation flow.
const DefaultTeamSize = 4

type Candidate struct {
	ID          uuid.UUID
	DisplayName string
	Role        string
	Entries     []scoring.Entry
}

// CandidateScore is derived per invocation and never persisted.
type CandidateScore struct {
	UserID           uuid.UUID
	DisplayName      string
	Role             string
	SkillMatchPct    int
	AverageLevel     float64
	CompatibilityPct int
	MatchingSkills   []string
}

type Narrative struct {
	Reasoning   []string
	Risks       []string
	Suggestions []string
}

type Recommendation struct {
	Team              []CandidateScore
	SkillsCoverage    int
	SuccessPrediction int
	Narrative         Narrative
}

// Recommend ranks candidates against the required skills and selects the top
// teamSize of them. Ordering is deterministic: compatibility descending,
// then average level descending, then input enumeration order. An empty
// candidate pool yields an empty team with zero aggregates.
func Recommend(candidates []Candidate, requiredSkills []string, teamSize int) Recommendation {
	scored := make([]CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		res := scoring.Calculate(c.Entries, requiredSkills)
		scored = append(scored, CandidateScore{
			UserID:           c.ID,
			DisplayName:      c.DisplayName,
			Role:             c.Role,
			SkillMatchPct:    int(math.Round(res.SkillMatchPct)),
			AverageLevel:     res.AverageLevel,
			CompatibilityPct: res.CompatibilityPct,
			MatchingSkills:   res.MatchingSkills,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].CompatibilityPct != scored[j].CompatibilityPct {
			return scored[i].CompatibilityPct > scored[j].CompatibilityPct
		}
		return scored[i].AverageLevel > scored[j].AverageLevel
	})

	n := teamSize
	if n <= 0 {
		n = DefaultTeamSize
	}
	if n > len(scored) {
		n = len(scored)
	}
	selected := scored[:n]

	rec := Recommendation{
		Team:              selected,
		SkillsCoverage:    roundedMean(selected, func(s CandidateScore) int { return s.SkillMatchPct }),
		SuccessPrediction: roundedMean(selected, func(s CandidateScore) int { return s.CompatibilityPct }),
	}
	rec.Narrative = TemplateNarrative(rec, requiredSkills)
	return rec
}

func roundedMean(scores []CandidateScore, metric func(CandidateScore) int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += metric(s)
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// TemplateNarrative derives reasoning, risks and suggestions from the
// computed metrics. It stands in for the AI collaborator and is the fallback
// whenever that collaborator is absent or fails; the numeric fields of the
// recommendation never depend on either.
func TemplateNarrative(rec Recommendation, requiredSkills []string) Narrative {
	var n Narrative

	if len(rec.Team) == 0 {
		n.Risks = append(n.Risks, "No candidates available for this requirement set")
		n.Suggestions = append(n.Suggestions, "Add skill assessments for potential team members before requesting a recommendation")
		return n
	}

	n.Reasoning = append(n.Reasoning,
		fmt.Sprintf("Selected team covers %d%% of the required skills with a %d%% predicted success rate", rec.SkillsCoverage, rec.SuccessPrediction))
	for _, m := range rec.Team {
		if m.SkillMatchPct >= 50 && len(m.MatchingSkills) > 0 {
			n.Reasoning = append(n.Reasoning,
				fmt.Sprintf("%s: strong match (%d%%) on %s", m.DisplayName, m.SkillMatchPct, strings.Join(m.MatchingSkills, ", ")))
		}
	}

	covered := make(map[string]struct{})
	for _, m := range rec.Team {
		for _, s := range m.MatchingSkills {
			covered[strings.ToLower(s)] = struct{}{}
		}
		if m.SkillMatchPct < 50 {
			n.Risks = append(n.Risks,
				fmt.Sprintf("%s matches fewer than half of the required skills (%d%%)", m.DisplayName, m.SkillMatchPct))
		}
	}

	missing := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range requiredSkills {
		name := strings.TrimSpace(r)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := covered[key]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		n.Risks = append(n.Risks,
			fmt.Sprintf("No selected member covers: %s", strings.Join(missing, ", ")))
		n.Suggestions = append(n.Suggestions,
			fmt.Sprintf("Recruit or upskill for %s to close the coverage gap", strings.Join(missing, ", ")))
	}
	if len(n.Suggestions) == 0 {
		n.Suggestions = append(n.Suggestions, "Confirm member availability before finalizing the team")
	}

	return n
}
