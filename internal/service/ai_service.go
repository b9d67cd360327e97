package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/domain/entity"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAIDisabled is returned when no API key is configured. The feature
	// degrades to a reported "disabled" state, it never crashes the app.
	ErrAIDisabled = errors.New("AI features are disabled: no API key configured")

	// ErrAIRequestFailed covers transport, auth and quota failures
	ErrAIRequestFailed = errors.New("AI service request failed")

	// ErrAIMalformedResponse is returned when the provider's structured
	// output does not match the requested schema. Malformed output fails
	// loudly; it is never silently coerced into a plan.
	ErrAIMalformedResponse = errors.New("AI service returned a malformed response")
)

// AIClient is the generative collaborator: a best-effort, fallible oracle.
// Domain correctness never depends on it.
type AIClient interface {
	Enabled() bool
	// SummarizePatientNotes drafts a free-text clinical overview from the
	// patient's notes.
	SummarizePatientNotes(ctx context.Context, notes string) (string, error)
	// DraftProcedures asks for a schema-constrained list of
	// {description, cost} procedure drafts.
	DraftProcedures(ctx context.Context, prompt string) ([]entity.ProcedureDraft, error)
}

type geminiClient struct {
	http   *resty.Client
	apiKey string
	model  string
	log    *logrus.Logger
}

// NewGeminiClient builds the Gemini-backed AIClient. A missing key yields a
// client whose calls all return ErrAIDisabled.
func NewGeminiClient(cfg config.AIConfig, log *logrus.Logger) AIClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &geminiClient{
		http:   client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		log:    log,
	}
}

func (c *geminiClient) Enabled() bool {
	return c.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// procedureListSchema constrains the drafting response to a JSON array of
// {description, cost} objects.
var procedureListSchema = map[string]interface{}{
	"type": "ARRAY",
	"items": map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"description": map[string]interface{}{"type": "STRING"},
			"cost":        map[string]interface{}{"type": "NUMBER"},
		},
		"required": []string{"description", "cost"},
	},
}

func (c *geminiClient) generate(ctx context.Context, req *geminiRequest) (string, error) {
	var res geminiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&res).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		c.log.Warnf("Gemini request failed: %+v", err)
		return "", fmt.Errorf("%w: %v", ErrAIRequestFailed, err)
	}
	if resp.IsError() {
		c.log.Warnf("Gemini returned HTTP %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("%w: HTTP %d", ErrAIRequestFailed, resp.StatusCode())
	}
	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrAIMalformedResponse)
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

func (c *geminiClient) SummarizePatientNotes(ctx context.Context, notes string) (string, error) {
	if !c.Enabled() {
		return "", ErrAIDisabled
	}

	prompt := fmt.Sprintf(`You are an expert dental assistant. Summarize the following patient notes into a concise, easy-to-read overview for a dentist.
Focus on key issues, recent treatments, and any patient-specific concerns like allergies or anxiety. Use bullet points.

Patient Notes:
---
%s
---

Summary:`, notes)

	return c.generate(ctx, &geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
}

func (c *geminiClient) DraftProcedures(ctx context.Context, prompt string) ([]entity.ProcedureDraft, error) {
	if !c.Enabled() {
		return nil, ErrAIDisabled
	}

	fullPrompt := fmt.Sprintf(`Based on the following patient notes, create a structured dental treatment plan. List the necessary procedures with their estimated costs.

Patient Notes:
---
%s
---

Treatment Plan Procedures:`, prompt)

	text, err := c.generate(ctx, &geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: fullPrompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   procedureListSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var drafts []entity.ProcedureDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &drafts); err != nil {
		c.log.Warnf("Gemini structured output did not parse: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrAIMalformedResponse, err)
	}
	for _, d := range drafts {
		if d.Description == "" || d.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: procedure entry missing description or has negative cost", ErrAIMalformedResponse)
		}
	}
	return drafts, nil
}
