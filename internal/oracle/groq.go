package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobrank/internal/domain/job"
	"jobrank/internal/rank"
)

// Client talks to a Groq-style (OpenAI-compatible) chat completions endpoint.
// It implements both rank.IntentOracle and rank.ScoringOracle. Temperature is
// pinned low: the pipeline wants determinism-seeking behavior, not variety.
// Every failure mode (transport, auth, non-2xx, non-JSON output, schema
// violation) surfaces as a plain error; callers fall back identically on all
// of them.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  *http.Client
	logger  *log.Logger
}

const (
	defaultTimeout     = 8 * time.Second
	oracleTemperature  = 0.1
	intentMaxTokens    = 800
	scoringMaxTokens   = 2000
	summaryDescription = 300
)

func NewClient(baseURL, apiKey, model string, timeout time.Duration, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" || strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const intentSystemPrompt = `You are an expert job search analyst. Analyze the user's job search request and extract key information with PRECISE job categorization.

Return your analysis as a JSON object with these fields:
{
  "job_roles": ["exact job titles/roles the user is looking for, most specific first"],
  "skills": ["specific technical/professional skills mentioned"],
  "industries": ["industries mentioned or strongly implied"],
  "experience_level": "entry/junior/mid/senior/expert",
  "location_preferences": ["locations if mentioned"],
  "job_types": ["full-time/part-time/contract/freelance"],
  "salary_expectations": "any salary mentions or 'not_mentioned'",
  "key_requirements": ["important requirements"],
  "career_goals": "brief description of what the user wants to achieve",
  "search_intent": "job_search/career_change/skill_development/specific_company",
  "primary_category": "one of: software_engineer/data_analyst/sales/teacher/delivery/customer_service/healthcare/finance/other"
}

IMPORTANT RULES:
1. "software engineer", "developer", "programming" imply primary_category software_engineer
2. "analyst" or "data" imply data_analyst
3. "sales" or "business development" imply sales
4. "teacher" or "education" imply teacher
5. "delivery" or "driver" imply delivery
6. Prefer the more specific category whenever multiple terms are present
7. Be very specific about job_roles; do not include generic terms`

// AnalyzeIntent implements rank.IntentOracle.
func (c *Client) AnalyzeIntent(ctx context.Context, query string) (rank.Intent, error) {
	var intent rank.Intent
	if c == nil {
		return intent, errors.New("oracle not configured")
	}

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: intentSystemPrompt},
		{Role: "user", Content: "Analyze this job search request: " + query},
	}, intentMaxTokens)
	if err != nil {
		return intent, err
	}

	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return intent, fmt.Errorf("intent oracle returned malformed JSON: %w", err)
	}
	return intent, nil
}

const scoringSystemPrompt = `You are an expert job matching specialist. Score each job on how well it matches the user's requirements.

CRITICAL MATCHING RULES:
1. The user is looking for "%s" category jobs
2. Jobs outside this category must get VERY LOW scores (0-30) regardless of other similarity
3. Jobs matching the category score 70-100, scaled by job title match quality
4. Exact job title matches get highest priority

Return a JSON object:
{
  "scores": {"0": 85, "1": 72, ...},
  "reasoning": {"0": "why", "1": "why", ...}
}

Score from 0-100. Be STRICT about category mismatches: if the user wants a software engineer job, do not give high scores to telecaller positions.
PRIORITIZE: job title relevance > category alignment > skills > experience > location`

type jobSummary struct {
	Index              int    `json:"index"`
	JobTitle           string `json:"job_title"`
	Company            string `json:"company"`
	Location           string `json:"location"`
	Salary             string `json:"salary"`
	Description        string `json:"description"`
	Industry           string `json:"industry"`
	JobType            string `json:"job_type"`
	ExperienceRequired string `json:"experience_required"`
	Skills             string `json:"skills"`
}

type scorePayload struct {
	Scores    map[string]int    `json:"scores"`
	Reasoning map[string]string `json:"reasoning"`
}

// ScoreJobs implements rank.ScoringOracle.
func (c *Client) ScoreJobs(ctx context.Context, candidates []job.Record, query string, intent rank.Intent) (map[int]rank.OracleScore, error) {
	if c == nil {
		return nil, errors.New("oracle not configured")
	}
	if len(candidates) == 0 {
		return map[int]rank.OracleScore{}, nil
	}

	summaries := make([]jobSummary, 0, len(candidates))
	for i, rec := range candidates {
		desc := rec.Description
		if len(desc) > summaryDescription {
			desc = desc[:summaryDescription]
		}
		summaries = append(summaries, jobSummary{
			Index:              i,
			JobTitle:           rec.Title,
			Company:            rec.Company,
			Location:           rec.Location,
			Salary:             rec.SalaryRange,
			Description:        desc,
			Industry:           rec.Industry,
			JobType:            rec.JobType,
			ExperienceRequired: rec.ExperienceRequired,
			Skills:             strings.Join(rec.SkillsRequired, ", "),
		})
	}

	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return nil, err
	}
	jobsJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf(
		"User Search: %s\nUser's Target Category: %s\n\nUser Intent Analysis: %s\n\nJobs to Score: %s",
		query, intent.PrimaryCategory, intentJSON, jobsJSON,
	)

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: fmt.Sprintf(scoringSystemPrompt, intent.PrimaryCategory)},
		{Role: "user", Content: userPrompt},
	}, scoringMaxTokens)
	if err != nil {
		return nil, err
	}

	var payload scorePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("scoring oracle returned malformed JSON: %w", err)
	}
	if payload.Scores == nil {
		return nil, errors.New("scoring oracle response missing scores")
	}

	out := make(map[int]rank.OracleScore, len(payload.Scores))
	for key, score := range payload.Scores {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(candidates) {
			continue
		}
		out[idx] = rank.OracleScore{Score: score, Reason: payload.Reasoning[key]}
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    oracleTemperature,
		MaxTokens:      maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("[Oracle] chat completion failed status=%d body=%q", resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return "", fmt.Errorf("oracle request failed: status=%d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("oracle response has no choices")
	}
	return stripFences(out.Choices[0].Message.Content), nil
}

// stripFences removes markdown code fences some models wrap JSON output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
