package generator

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validQuestionJSON(answer int) string {
	return fmt.Sprintf(
		`{"question":"What shape is the Earth?","options":["Spherical","Flat","Square","Triangular"],"answer":%d,"explanation":"The Earth is an oblate spheroid."}`,
		answer,
	)
}

func TestParseQuestion_Valid(t *testing.T) {
	q, err := ParseQuestion(validQuestionJSON(0))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if q.Text != "What shape is the Earth?" {
		t.Errorf("unexpected question text: %q", q.Text)
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex != 0 {
		t.Errorf("expected correct index 0, got %d", q.CorrectIndex)
	}
	if q.Explanation == "" {
		t.Error("expected explanation to be preserved")
	}
}

func TestParseQuestion_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuestionJSON(2) + "\n```"

	q, err := ParseQuestion(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if q.CorrectIndex != 2 {
		t.Errorf("expected correct index 2, got %d", q.CorrectIndex)
	}
}

func TestParseQuestion_MissingExplanationOK(t *testing.T) {
	input := `{"question":"Q?","options":["a","b","c","d"],"answer":1}`

	q, err := ParseQuestion(input)
	if err != nil {
		t.Fatalf("explanation is optional, got: %v", err)
	}
	if q.Explanation != "" {
		t.Errorf("expected empty explanation, got %q", q.Explanation)
	}
}

func TestParseQuestion_ThreeOptions(t *testing.T) {
	input := `{"question":"Q?","options":["a","b","c"],"answer":0}`

	_, err := ParseQuestion(input)
	if err == nil {
		t.Fatal("expected validation error for 3 options")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	if !containsError(ve, "expected 4 options") {
		t.Errorf("expected error about option count, got: %v", ve.Errors)
	}
}

func TestParseQuestion_AnswerOutOfRange(t *testing.T) {
	for _, answer := range []int{-1, 4, 5} {
		_, err := ParseQuestion(validQuestionJSON(answer))
		if err == nil {
			t.Fatalf("expected validation error for answer %d", answer)
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for answer %d, got: %T", answer, err)
		}
		if !containsError(ve, "out of range") {
			t.Errorf("expected out-of-range error for answer %d, got: %v", answer, ve.Errors)
		}
	}
}

func TestParseQuestion_MissingKeys(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"no question", `{"options":["a","b","c","d"],"answer":0}`, "missing question key"},
		{"no options", `{"question":"Q?","answer":0}`, "missing options key"},
		{"no answer", `{"question":"Q?","options":["a","b","c","d"]}`, "missing answer key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuestion(tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got: %T", err)
			}
			if !containsError(ve, tc.want) {
				t.Errorf("expected error containing %q, got: %v", tc.want, ve.Errors)
			}
		})
	}
}

func TestParseQuestion_EmptyTexts(t *testing.T) {
	input := `{"question":"   ","options":["a","","c","d"],"answer":0}`

	_, err := ParseQuestion(input)
	if err == nil {
		t.Fatal("expected validation error for empty texts")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
	if !containsError(ve, "empty question text") {
		t.Errorf("expected empty question error, got: %v", ve.Errors)
	}
	if !containsError(ve, "option 1 is empty") {
		t.Errorf("expected empty option error, got: %v", ve.Errors)
	}
}

func TestParseQuestion_NotJSON(t *testing.T) {
	_, err := ParseQuestion("Sure! Here is your question: what shape is the Earth?")
	if err == nil {
		t.Fatal("expected parse error for non-JSON response")
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatal("expected a plain parse error, not a ValidationError")
	}
}

func containsError(ve *ValidationError, substr string) bool {
	for _, e := range ve.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
