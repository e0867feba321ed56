package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"seedble/internal/domain/team"
)

// Client asks an external service to write the prose around a team
// recommendation. Callers fall back to the template narrative when the
// client is nil or the call fails.
type Client interface {
	Generate(ctx context.Context, rec team.Recommendation, requiredSkills []string) (team.Narrative, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type generateRequest struct {
	RequiredSkills []string        `json:"required_skills"`
	Team           []memberPayload `json:"team"`
	SkillsCoverage int             `json:"skills_coverage"`
	SuccessPredict int             `json:"success_prediction"`
}

type memberPayload struct {
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	SkillMatchPct    int      `json:"skill_match_pct"`
	AverageLevel     float64  `json:"average_level"`
	CompatibilityPct int      `json:"compatibility_pct"`
	MatchingSkills   []string `json:"matching_skills"`
}

type generateResponse struct {
	Reasoning   []string `json:"reasoning"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) Generate(ctx context.Context, rec team.Recommendation, requiredSkills []string) (team.Narrative, error) {
	if c == nil || c.client == nil {
		return team.Narrative{}, errors.New("nil narrative client")
	}
	endpoint := c.baseURL + "/narrative"

	members := make([]memberPayload, 0, len(rec.Team))
	for _, m := range rec.Team {
		members = append(members, memberPayload{
			Name:             m.DisplayName,
			Role:             m.Role,
			SkillMatchPct:    m.SkillMatchPct,
			AverageLevel:     m.AverageLevel,
			CompatibilityPct: m.CompatibilityPct,
			MatchingSkills:   m.MatchingSkills,
		})
	}
	body := generateRequest{
		RequiredSkills: requiredSkills,
		Team:           members,
		SkillsCoverage: rec.SkillsCoverage,
		SuccessPredict: rec.SuccessPrediction,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return team.Narrative{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return team.Narrative{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return team.Narrative{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("narrative generation failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Narrative] Generate error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return team.Narrative{}, err
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return team.Narrative{}, err
	}
	return team.Narrative{
		Reasoning:   out.Reasoning,
		Risks:       out.Risks,
		Suggestions: out.Suggestions,
	}, nil
}

var _ Client = (*httpClient)(nil)
