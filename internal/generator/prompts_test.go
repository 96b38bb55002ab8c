package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/araquiz/backend/internal/models"
)

func TestMCQSystemPrompt_IncludesLanguage(t *testing.T) {
	prompt := MCQSystemPrompt("Arabic")
	if !strings.Contains(prompt, "Arabic") {
		t.Error("system prompt should name the question language")
	}
	if !strings.Contains(prompt, "JSON only") {
		t.Error("system prompt should demand JSON-only output")
	}
}

func TestBuildMCQUserPrompt_IncludesRequest(t *testing.T) {
	prompt := BuildMCQUserPrompt(models.CategoryGeography, models.DifficultyHard, nil)

	if !strings.Contains(prompt, "geography") {
		t.Error("prompt should include the category")
	}
	if !strings.Contains(prompt, "hard") {
		t.Error("prompt should include the difficulty")
	}
	if !strings.Contains(prompt, `"answer"`) || !strings.Contains(prompt, `"options"`) {
		t.Error("prompt should spell out the JSON contract")
	}
	if !strings.Contains(prompt, "exactly 4 strings") {
		t.Error("prompt should pin the option count")
	}
	if !strings.Contains(prompt, "None") {
		t.Error("prompt should say None when there is no question history")
	}
}

func TestBuildMCQUserPrompt_DifficultyGuidance(t *testing.T) {
	cases := map[models.Difficulty]string{
		models.DifficultyEasy:   "middle school",
		models.DifficultyMedium: "high school",
		models.DifficultyHard:   "outside it cannot answer",
	}

	for difficulty, want := range cases {
		prompt := BuildMCQUserPrompt(models.CategoryScience, difficulty, nil)
		if !strings.Contains(prompt, want) {
			t.Errorf("%s prompt should contain %q", difficulty, want)
		}
	}
}

func TestBuildMCQUserPrompt_NoRepeatList(t *testing.T) {
	asked := []string{"What shape is the Earth?", "Which planet is red?"}
	prompt := BuildMCQUserPrompt(models.CategoryScience, models.DifficultyEasy, asked)

	for _, q := range asked {
		if !strings.Contains(prompt, q) {
			t.Errorf("prompt should list already-asked question %q", q)
		}
	}
}

func TestBuildNoRepeatList_CapsHistory(t *testing.T) {
	asked := make([]string, 30)
	for i := range asked {
		asked[i] = fmt.Sprintf("question %d", i)
	}

	list := buildNoRepeatList(asked, maxNoRepeat)

	if strings.Contains(list, "question 5") {
		t.Error("oldest questions should be dropped past the cap")
	}
	if !strings.Contains(list, "question 29") {
		t.Error("most recent question should always be listed")
	}
	if lines := strings.Count(list, "\n") + 1; lines != maxNoRepeat {
		t.Errorf("expected %d lines, got %d", maxNoRepeat, lines)
	}
}
