package generator

import (
	"context"
	"fmt"
	"log"

	"github.com/araquiz/backend/internal/models"
)

// Config selects the generation backend and tuning for a Generator.
type Config struct {
	Model             string
	ValidationModel   string
	Language          string
	Mock              bool
	UseCLI            bool
	CLIPath           string
	ValidationEnabled bool
}

// Generator maps a (category, difficulty) request to a validated Question or
// an error. It holds no session state; retry policy belongs to the caller.
type Generator struct {
	llm      LLMClient
	model    string
	language string
	verifier *Verifier
}

func NewGenerator(cfg Config) *Generator {
	var llm LLMClient
	model := cfg.Model

	switch {
	case cfg.UseCLI:
		cliPath := cfg.CLIPath
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	case cfg.Mock:
		llm = NewMockClient()
		model = "mock"
		log.Println("Generator using mock data")
	default:
		llm = NewAPIClient(cfg.Model)
		log.Println("Generator using Anthropic API:", cfg.Model)
	}

	g := &Generator{
		llm:      llm,
		model:    model,
		language: cfg.Language,
	}

	// Verification is pointless against the mock backend.
	if cfg.ValidationEnabled && !cfg.Mock {
		vModel := cfg.ValidationModel
		if vModel == "" {
			vModel = cfg.Model
		}
		g.verifier = NewVerifier(NewAPIClient(vModel), vModel)
		log.Println("Generator verification enabled:", vModel)
	}

	return g
}

func (g *Generator) ModelName() string {
	return g.model
}

// Fetch generates one validated question. The asked list is forwarded to the
// provider as a no-repeat hint; it is not re-checked here (the session owns
// its own history).
func (g *Generator) Fetch(ctx context.Context, category models.Category, difficulty models.Difficulty, asked []string) (*models.Question, error) {
	systemPrompt := MCQSystemPrompt(g.language)
	userPrompt := BuildMCQUserPrompt(category, difficulty, asked)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	q, err := ParseQuestion(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse question: %w", err)
	}

	if g.verifier != nil {
		vr, err := g.verifier.VerifyQuestion(ctx, q)
		if err != nil {
			log.Printf("WARN: verification failed: %v; passing question as unverified", err)
		} else if !vr.Matches {
			return nil, fmt.Errorf("verification rejected question: verifier chose %d, generator marked %d (%s)",
				vr.SelectedIndex, q.CorrectIndex, vr.Reasoning)
		}
	}

	return q, nil
}
