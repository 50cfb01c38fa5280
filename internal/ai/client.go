package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/config"
	"github.com/spec-kit/audit-tracker/internal/domain"
)

// ErrNotConfigured is returned by NewClient when no endpoint is set.
var ErrNotConfigured = errors.New("ai: endpoint not configured")

var riskPrompt = template.Must(template.New("risk").Parse(`You are an expert risk assessor for a retail bank.

Based on the historical audit data, regulatory changes, and industry trends provided, identify potential risks and provide recommendations for addressing them.

Historical Audit Data: {{.HistoricalData}}
Regulatory Changes: {{.RegulatoryChanges}}
Industry Trends: {{.IndustryTrends}}

Respond with a JSON object with the fields "riskSummary" (string), "riskDetails" (array of strings, one per risk) and "recommendations" (array of strings).`))

// Client calls a generateContent-style text generation API.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.AIConfig, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		timeout:  cfg.Timeout(),
		logger:   logger,
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Assess asks the model for a structured risk assessment.
func (c *Client) Assess(ctx context.Context, input domain.RiskAssessmentInput) (*domain.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var prompt strings.Builder
	if err := riskPrompt.Execute(&prompt, input); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.endpoint + "/models/" + c.model + ":generateContent")
	if c.apiKey != "" {
		agent.Set("x-goog-api-key", c.apiKey)
	}
	agent.JSON(generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt.String()}}}},
		GenerationConfig: generationConfig{ResponseMimeType: fiber.MIMEApplicationJSON},
	})
	agent.Timeout(timeout)

	var resp generateResponse
	status, body, errs := agent.Struct(&resp)
	if len(errs) > 0 {
		return nil, fmt.Errorf("ai request: %w", errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		c.logger.Warn("ai request rejected", zap.Int("status", status), zap.Int("body_bytes", len(body)))
		return nil, fmt.Errorf("ai request: unexpected status %d", status)
	}
	return decodeAssessment(resp)
}

func decodeAssessment(resp generateResponse) (*domain.RiskAssessment, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("ai response: no candidates")
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")

	var assessment domain.RiskAssessment
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &assessment); err != nil {
		return nil, fmt.Errorf("ai response: %w", err)
	}
	if assessment.Summary == "" {
		return nil, errors.New("ai response: missing riskSummary")
	}
	return &assessment, nil
}
