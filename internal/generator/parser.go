package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/araquiz/backend/internal/models"
)

// generatedQuestion mirrors the provider's wire contract. Pointer fields
// distinguish absent keys from zero values.
type generatedQuestion struct {
	Question    *string  `json:"question"`
	Options     []string `json:"options"`
	Answer      *int     `json:"answer"`
	Explanation string   `json:"explanation"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuestion turns a raw provider response into a validated Question.
// Any deviation from the contract is a *ValidationError, never a panic or a
// partially-filled question.
func ParseQuestion(responseBody string) (*models.Question, error) {
	cleaned := stripCodeFences(responseBody)

	var gq generatedQuestion
	if err := json.Unmarshal([]byte(cleaned), &gq); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestion(&gq); err != nil {
		return nil, err
	}

	return &models.Question{
		Text:         strings.TrimSpace(*gq.Question),
		Options:      gq.Options,
		CorrectIndex: *gq.Answer,
		Explanation:  strings.TrimSpace(gq.Explanation),
	}, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuestion(gq *generatedQuestion) error {
	var errs []string

	if gq.Question == nil {
		errs = append(errs, "missing question key")
	} else if strings.TrimSpace(*gq.Question) == "" {
		errs = append(errs, "empty question text")
	}

	if gq.Options == nil {
		errs = append(errs, "missing options key")
	} else if len(gq.Options) != models.NumOptions {
		errs = append(errs, fmt.Sprintf("expected %d options, got %d", models.NumOptions, len(gq.Options)))
	} else {
		seen := make(map[string]bool, models.NumOptions)
		for i, opt := range gq.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("option %d is empty", i))
			}
			key := strings.ToLower(strings.TrimSpace(opt))
			if seen[key] {
				log.Printf("WARNING: duplicate option text %q in generated question", opt)
			}
			seen[key] = true
		}
	}

	if gq.Answer == nil {
		errs = append(errs, "missing answer key")
	} else if *gq.Answer < 0 || *gq.Answer >= models.NumOptions {
		errs = append(errs, fmt.Sprintf("answer index %d out of range [0,%d]", *gq.Answer, models.NumOptions-1))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
