package models

import "time"

// ── Request Types ─────────────────────────────────────

type StartQuizRequest struct {
	Category Category `json:"category"`
}

type SelectOptionRequest struct {
	// Pointer so that index 0 is distinguishable from an absent field.
	OptionIndex *int `json:"option_index"`
}

// ── Response Types ────────────────────────────────────

// QuestionView is a question as served to the client: the correct index and
// explanation are withheld until the question has been graded.
type QuestionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// QuizStateResponse is the full renderable state of a session.
type QuizStateResponse struct {
	SessionID      string        `json:"session_id"`
	Category       Category      `json:"category"`
	Difficulty     Difficulty    `json:"difficulty"`
	Score          int           `json:"score"`
	Streak         int           `json:"streak"`
	QuestionNumber int           `json:"question_number"`
	TotalQuestions int           `json:"total_questions"`
	Progress       float64       `json:"progress"`
	Question       *QuestionView `json:"question,omitempty"`
	SelectedOption *int          `json:"selected_option,omitempty"`
	Answered       bool          `json:"answered"`
	Completed      bool          `json:"completed"`
	Stalled        bool          `json:"stalled"`
}

// SubmitAnswerResponse is the grading result for one submit.
type SubmitAnswerResponse struct {
	Correct       bool       `json:"correct"`
	CorrectIndex  int        `json:"correct_index"`
	Explanation   string     `json:"explanation"`
	ScoreDelta    int        `json:"score_delta"`
	Score         int        `json:"score"`
	Streak        int        `json:"streak"`
	Difficulty    Difficulty `json:"difficulty"`
	Completed     bool       `json:"completed"`
	FinalScore    *int       `json:"final_score,omitempty"`
	ScoreRecorded *bool      `json:"score_recorded,omitempty"`
}

// ── Leaderboard / History Types ───────────────────────

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type QuizRun struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Category   Category  `json:"category"`
	Score      int       `json:"score"`
	FinishedAt time.Time `json:"finished_at"`
}

type RunHistoryResponse struct {
	Runs []QuizRun `json:"runs"`
}
