package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/araquiz/backend/internal/models"
)

// Verifier runs the self-verification pass: a second model answers the
// generated question blind, and a disagreement rejects the question.
type Verifier struct {
	llm   LLMClient
	model string
}

func NewVerifier(llm LLMClient, model string) *Verifier {
	return &Verifier{llm: llm, model: model}
}

func (v *Verifier) ModelName() string {
	return v.model
}

type VerificationResult struct {
	SelectedIndex int    `json:"selected_index"`
	Matches       bool   `json:"matches"`
	Confidence    string `json:"confidence"`
	Reasoning     string `json:"reasoning"`
	PromptTokens  int    `json:"prompt_tokens"`
	OutputTokens  int    `json:"output_tokens"`
}

type verificationResponse struct {
	Answer     *int   `json:"answer"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (v *Verifier) VerifyQuestion(ctx context.Context, q *models.Question) (*VerificationResult, error) {
	prompt := buildVerificationPrompt(q)

	resp, err := v.llm.Generate(ctx, verificationSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("verification call failed: %w", err)
	}

	cleaned := stripCodeFences(resp.Content)
	var vResp verificationResponse
	if err := json.Unmarshal([]byte(cleaned), &vResp); err != nil {
		return nil, fmt.Errorf("failed to parse verification response: %w", err)
	}
	if vResp.Answer == nil {
		return nil, fmt.Errorf("verification response missing answer")
	}

	return &VerificationResult{
		SelectedIndex: *vResp.Answer,
		Matches:       *vResp.Answer == q.CorrectIndex,
		Confidence:    strings.ToLower(strings.TrimSpace(vResp.Confidence)),
		Reasoning:     vResp.Reasoning,
		PromptTokens:  resp.PromptTokens,
		OutputTokens:  resp.OutputTokens,
	}, nil
}
