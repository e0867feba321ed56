package scoring

import (
	"math"
	"strings"
)

// Entry is one skill in a candidate's profile as the scorer sees it.
type Entry struct {
	SkillName  string
	Level      int
	Interest   int
	IsPriority bool
}

type Result struct {
	// SkillMatchPct is 100 * |matching| / |required|, unrounded so callers
	// combining it with other terms do not accumulate rounding error.
	SkillMatchPct float64
	// AverageLevel is the mean level across all of the candidate's entries,
	// on the raw 1-5 scale. 0 when the candidate has no entries.
	AverageLevel float64
	// CompatibilityPct combines skill match and level, both on a 0-100
	// scale (level is normalized by *20), averaged and rounded.
	CompatibilityPct int
	// MatchingSkills holds the required-skill names found in the profile,
	// in requirement order with the requirement's casing.
	MatchingSkills []string
}

// Calculate scores a single candidate against a required-skill list. Skill
// names match case-insensitively. The function is total: an empty requirement
// list or an empty profile yields zeros, never an error.
func Calculate(entries []Entry, requiredSkills []string) Result {
	owned := make(map[string]struct{}, len(entries))
	levelSum := 0.0
	levelCount := 0
	for _, e := range entries {
		name := normalizeSkillName(e.SkillName)
		if name == "" {
			continue
		}
		owned[name] = struct{}{}
		levelSum += float64(clampLevel(e.Level))
		levelCount++
	}

	required := dedupeRequired(requiredSkills)

	matching := make([]string, 0, len(required))
	for _, r := range required {
		if _, ok := owned[normalizeSkillName(r)]; ok {
			matching = append(matching, r)
		}
	}

	matchPct := 0.0
	if len(required) > 0 {
		matchPct = 100.0 * float64(len(matching)) / float64(len(required))
	}

	avgLevel := 0.0
	if levelCount > 0 {
		avgLevel = levelSum / float64(levelCount)
	}

	return Result{
		SkillMatchPct:    matchPct,
		AverageLevel:     avgLevel,
		CompatibilityPct: combine(matchPct, avgLevel),
		MatchingSkills:   matching,
	}
}

// combine averages the match percentage with the level normalized to 0-100.
// Both terms are percentages before averaging.
func combine(matchPct, avgLevel float64) int {
	pct := math.Round((matchPct + avgLevel*20.0) / 2.0)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

func normalizeSkillName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupeRequired treats the requirement list as a case-insensitive set,
// keeping first occurrence order and casing.
func dedupeRequired(required []string) []string {
	seen := make(map[string]struct{}, len(required))
	out := make([]string, 0, len(required))
	for _, r := range required {
		name := strings.TrimSpace(r)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
