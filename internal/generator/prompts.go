package generator

import (
	"fmt"
	"strings"

	"github.com/araquiz/backend/internal/models"
)

// maxNoRepeat caps how many prior questions are echoed back into the prompt.
const maxNoRepeat = 20

func MCQSystemPrompt(language string) string {
	return fmt.Sprintf(`You are a quiz master who writes multiple-choice trivia questions in %s. Every question must have exactly four options and exactly one correct answer. Respond with JSON only, without prose or markdown.`, language)
}

var difficultyGuidance = map[models.Difficulty]string{
	models.DifficultyEasy:   "easy: a question any middle school kid could answer",
	models.DifficultyMedium: "medium: a question pitched at high school level",
	models.DifficultyHard:   "hard: a question so specific to the field that people outside it cannot answer",
}

func BuildMCQUserPrompt(category models.Category, difficulty models.Difficulty, asked []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate one multiple-choice question in the category %q at %s difficulty.\n\n", category, difficulty)
	fmt.Fprintf(&sb, "Difficulty calibration: %s.\n\n", difficultyGuidance[difficulty])

	sb.WriteString(`Respond with exactly this JSON shape:
{"question":"...","options":["...","...","...","..."],"answer":0,"explanation":"..."}

"options" must contain exactly 4 strings.
"answer" is the zero-based index of the correct option.
"explanation" is one sentence on why the answer is correct.
`)

	sb.WriteString("\nDo NOT repeat any of these already-asked questions:\n")
	sb.WriteString(buildNoRepeatList(asked, maxNoRepeat))
	sb.WriteString("\n")

	return sb.String()
}

// buildNoRepeatList formats prior questions for the prompt, keeping only the
// most recent max entries. Returns "None" when there is no history.
func buildNoRepeatList(asked []string, max int) string {
	if len(asked) == 0 {
		return "None"
	}

	if max > 0 && len(asked) > max {
		asked = asked[len(asked)-max:]
	}

	var b strings.Builder
	for i, q := range asked {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── Verification prompt (Stage 2) ──────────────────────────

const verificationSystemPrompt = `You are a subject-matter expert reviewing a trivia question. Answer it yourself without being told which option is marked correct. Respond with JSON only.`

func buildVerificationPrompt(q *models.Question) string {
	var sb strings.Builder

	sb.WriteString("QUESTION:\n")
	sb.WriteString(q.Text)
	sb.WriteString("\n\nOPTIONS:\n")

	for i, opt := range q.Options {
		fmt.Fprintf(&sb, "(%d) %s\n", i, opt)
	}

	sb.WriteString(`
Select the BEST answer. Respond with JSON only:
{
  "answer": 0,
  "confidence": "high",
  "reasoning": "Why you selected this option..."
}

"answer" is the zero-based index of your selection.
confidence must be one of: "high", "medium", "low"`)

	return sb.String()
}
