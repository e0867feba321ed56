package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

type recommendationCacheKeyInput struct {
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int      `json:"team_size"`
}

func normalizeSkillName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// RecommendationCacheKey is insensitive to skill ordering, casing and
// duplicates, so equivalent requests share a cache entry.
func RecommendationCacheKey(requiredSkills []string, teamSize int) string {
	seen := make(map[string]struct{}, len(requiredSkills))
	skills := make([]string, 0, len(requiredSkills))
	for _, s := range requiredSkills {
		s = normalizeSkillName(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		skills = append(skills, s)
	}
	sort.Strings(skills)

	in := recommendationCacheKeyInput{RequiredSkills: skills, TeamSize: teamSize}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recommendation:" + hex.EncodeToString(sum[:])
}
