package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araquiz/backend/internal/models"
)

// stubSource scripts the QuestionSource boundary: unique questions by
// default, with knobs for failures and repeated texts.
type stubSource struct {
	failNext     int
	repeatText   string
	correctIndex int
	calls        int
	difficulties []models.Difficulty
	lastAsked    []string
}

func (s *stubSource) Fetch(ctx context.Context, category models.Category, difficulty models.Difficulty, asked []string) (*models.Question, error) {
	s.calls++
	s.difficulties = append(s.difficulties, difficulty)
	s.lastAsked = append([]string(nil), asked...)

	if s.failNext > 0 {
		s.failNext--
		return nil, errors.New("provider unavailable")
	}

	text := fmt.Sprintf("question #%d", s.calls)
	if s.repeatText != "" {
		text = s.repeatText
	}

	return &models.Question{
		Text:         text,
		Options:      []string{"option a", "option b", "option c", "option d"},
		CorrectIndex: s.correctIndex,
		Explanation:  "the first option is the factual one",
	}, nil
}

func newStartedSession(t *testing.T, src *stubSource) *Session {
	t.Helper()
	s := NewSession(src, models.CategoryScience)
	require.NoError(t, s.Start(context.Background()))
	return s
}

// answerCurrent selects and submits either the correct option or a wrong one.
func answerCurrent(t *testing.T, s *Session, correct bool) *Result {
	t.Helper()
	st := s.State()
	require.NotNil(t, st.Question, "cannot answer a stalled session")

	idx := st.Question.CorrectIndex
	if !correct {
		idx = (idx + 1) % len(st.Question.Options)
	}

	require.NoError(t, s.SelectOption(idx))
	res, err := s.Submit()
	require.NoError(t, err)
	return res
}

// ── Pure transition rules ───────────────────────────────

func TestAdvanceStreak(t *testing.T) {
	cases := []struct {
		name    string
		streak  int
		correct bool
		want    int
	}{
		{"first correct", 0, true, 1},
		{"growing streak", 3, true, 4},
		{"correct after misses restarts at one", -2, true, 1},
		{"positive streak collapses on miss", 5, false, 0},
		{"miss from zero goes negative", 0, false, -1},
		{"misses keep counting down", -3, false, -4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, advanceStreak(tc.streak, tc.correct))
		})
	}
}

func TestAdjustDifficulty(t *testing.T) {
	cases := []struct {
		name   string
		d      models.Difficulty
		streak int
		want   models.Difficulty
	}{
		{"easy promotes on any positive streak", models.DifficultyEasy, 1, models.DifficultyMedium},
		{"easy holds on zero streak", models.DifficultyEasy, 0, models.DifficultyEasy},
		{"easy holds on negative streak", models.DifficultyEasy, -4, models.DifficultyEasy},
		{"medium promotes at streak two", models.DifficultyMedium, 2, models.DifficultyHard},
		{"medium holds at streak one", models.DifficultyMedium, 1, models.DifficultyMedium},
		{"medium holds at streak zero", models.DifficultyMedium, 0, models.DifficultyMedium},
		{"medium demotes on negative streak", models.DifficultyMedium, -1, models.DifficultyEasy},
		{"hard demotes at streak zero", models.DifficultyHard, 0, models.DifficultyMedium},
		{"hard demotes on negative streak", models.DifficultyHard, -2, models.DifficultyMedium},
		{"hard holds on positive streak", models.DifficultyHard, 6, models.DifficultyHard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, adjustDifficulty(tc.d, tc.streak))
		})
	}
}

// ── Lifecycle ───────────────────────────────────────────

func TestStart_Initializes(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)

	st := s.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, models.DifficultyEasy, st.Difficulty)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Equal(t, TotalQuestions, st.TotalQuestions)
	assert.False(t, st.Answered)
	assert.False(t, st.Completed)
	assert.False(t, st.Stalled)
	require.NotNil(t, st.Question)

	require.Equal(t, 1, src.calls)
	assert.Equal(t, models.DifficultyEasy, src.difficulties[0])
	assert.Empty(t, src.lastAsked)
}

func TestStart_FetchFailureLeavesEmptyQueue(t *testing.T) {
	src := &stubSource{failNext: 1}
	s := NewSession(src, models.CategoryHistory)

	err := s.Start(context.Background())
	require.ErrorIs(t, err, ErrGenerationFailed)

	st := s.State()
	assert.True(t, st.Stalled)
	assert.Nil(t, st.Question)
	assert.Equal(t, 0, st.Score)

	// Submitting while stalled is rejected without state change.
	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrNoQuestion)
	assert.ErrorIs(t, s.SelectOption(0), ErrNoQuestion)

	// Start is idempotent on a stalled session; retrying recovers.
	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.State().Stalled)
}

func TestRestart_Resets(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)
	firstID := s.ID()

	answerCurrent(t, s, true)
	require.Equal(t, 1, s.State().Score)

	require.NoError(t, s.Restart(context.Background()))

	st := s.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Streak)
	assert.Equal(t, models.DifficultyEasy, st.Difficulty)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.False(t, st.Answered)
	assert.False(t, st.Completed)
	assert.NotEqual(t, firstID, st.ID)

	// The old run's questions are discarded: the no-repeat list is empty.
	assert.Empty(t, src.lastAsked)
}

// ── Selection and grading ───────────────────────────────

func TestSelectOption_OutOfRange(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	assert.ErrorIs(t, s.SelectOption(-1), ErrInvalidSelection)
	assert.ErrorIs(t, s.SelectOption(4), ErrInvalidSelection)
	assert.Nil(t, s.State().SelectedOption)
}

func TestSelectOption_AfterAnswer(t *testing.T) {
	s := newStartedSession(t, &stubSource{})
	answerCurrent(t, s, true)

	assert.ErrorIs(t, s.SelectOption(0), ErrAlreadyAnswered)
}

func TestSubmit_NoSelection(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	_, err := s.Submit()
	require.ErrorIs(t, err, ErrNoSelection)

	st := s.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Streak)
	assert.False(t, st.Answered)
}

func TestSubmit_Correct(t *testing.T) {
	src := &stubSource{correctIndex: 2}
	s := newStartedSession(t, src)

	require.NoError(t, s.SelectOption(2))
	res, err := s.Submit()
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, 2, res.CorrectIndex)
	assert.Equal(t, 1, res.ScoreDelta)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, models.DifficultyMedium, res.Difficulty)
	assert.False(t, res.Completed)

	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSubmit_Incorrect(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	res := answerCurrent(t, s, false)

	assert.False(t, res.Correct)
	assert.Equal(t, -1, res.ScoreDelta)
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, -1, res.Streak)
	assert.Equal(t, models.DifficultyEasy, res.Difficulty)
}

func TestSubmit_DefaultExplanation(t *testing.T) {
	src := &stubSource{}
	s := NewSession(src, models.CategoryScience)
	require.NoError(t, s.Start(context.Background()))

	// Strip the explanation the stub provides.
	s.questions[0].Explanation = ""

	res := answerCurrent(t, s, true)
	assert.Equal(t, defaultExplanation, res.Explanation)
}

func TestScoreAccounting(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	answers := []bool{true, false, false, true, true, false, false, false, true}
	correct, incorrect := 0, 0

	for i, ok := range answers {
		answerCurrent(t, s, ok)
		if ok {
			correct++
		} else {
			incorrect++
		}
		assert.Equal(t, correct-incorrect, s.State().Score, "after answer %d", i+1)
		if i < len(answers)-1 {
			require.NoError(t, s.Next(context.Background()))
		}
	}

	// Score and streak both went negative along the way; neither clamps.
	assert.Equal(t, correct-incorrect, s.State().Score)
}

// ── Difficulty scenarios ────────────────────────────────

func TestScenario_TwoCorrectReachHard(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)

	res := answerCurrent(t, s, true)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, models.DifficultyMedium, res.Difficulty)

	require.NoError(t, s.Next(context.Background()))
	// The second question is fetched at the just-promoted difficulty.
	assert.Equal(t, models.DifficultyMedium, src.difficulties[1])

	res = answerCurrent(t, s, true)
	assert.Equal(t, 2, res.Streak)
	assert.Equal(t, models.DifficultyHard, res.Difficulty)
}

func TestScenario_MissOnHardDropsToMedium(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	// Three correct answers: easy → medium → hard.
	for i := 0; i < 3; i++ {
		answerCurrent(t, s, true)
		require.NoError(t, s.Next(context.Background()))
	}
	require.Equal(t, models.DifficultyHard, s.State().Difficulty)

	res := answerCurrent(t, s, false)
	assert.Equal(t, 0, res.Streak)
	assert.Equal(t, models.DifficultyMedium, res.Difficulty)
}

func TestScenario_MissOnMediumDropsToEasy(t *testing.T) {
	s := newStartedSession(t, &stubSource{})

	answerCurrent(t, s, true) // easy → medium, streak 1
	require.NoError(t, s.Next(context.Background()))

	res := answerCurrent(t, s, false) // streak 0: medium holds
	assert.Equal(t, models.DifficultyMedium, res.Difficulty)
	require.NoError(t, s.Next(context.Background()))

	res = answerCurrent(t, s, false) // streak -1: medium → easy
	assert.Equal(t, -1, res.Streak)
	assert.Equal(t, models.DifficultyEasy, res.Difficulty)
}

// ── Advancing ───────────────────────────────────────────

func TestNext_BeforeSubmit(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)

	err := s.Next(context.Background())
	require.ErrorIs(t, err, ErrNotAnswered)

	st := s.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Equal(t, 1, src.calls)
}

func TestNext_FetchFailureLeavesStateUnchanged(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)
	answerCurrent(t, s, true)

	src.failNext = 1
	err := s.Next(context.Background())
	require.ErrorIs(t, err, ErrGenerationFailed)

	st := s.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.True(t, st.Answered, "grading outcome must survive a failed fetch")
	assert.Equal(t, 1, st.Score)

	// The failed fetch appended nothing; retrying the same call succeeds.
	require.NoError(t, s.Next(context.Background()))
	st = s.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.False(t, st.Answered)
	assert.Nil(t, st.SelectedOption)
}

func TestNext_PassesQuestionHistory(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)

	answerCurrent(t, s, true)
	require.NoError(t, s.Next(context.Background()))

	require.Equal(t, []string{"question #1"}, src.lastAsked)
}

func TestNext_RejectsRepeatedQuestion(t *testing.T) {
	src := &stubSource{repeatText: "the same question every time"}
	s := newStartedSession(t, src)
	answerCurrent(t, s, true)

	err := s.Next(context.Background())
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "repeated question")

	st := s.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.True(t, st.Answered)
}

// ── Completion ──────────────────────────────────────────

func TestCompletion_AfterTenthSubmit(t *testing.T) {
	src := &stubSource{}
	s := newStartedSession(t, src)

	var res *Result
	for i := 0; i < TotalQuestions; i++ {
		res = answerCurrent(t, s, i%2 == 0)
		if i < TotalQuestions-1 {
			require.NoError(t, s.Next(context.Background()))
			require.False(t, res.Completed)
		}
	}

	require.True(t, res.Completed)
	st := s.State()
	assert.Equal(t, TotalQuestions-1, st.CurrentIndex)
	assert.True(t, st.Completed)

	// Exactly ten fetches: no eleventh question is ever requested.
	assert.Equal(t, TotalQuestions, src.calls)

	assert.ErrorIs(t, s.Next(context.Background()), ErrQuizCompleted)
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrQuizCompleted)
	assert.ErrorIs(t, s.SelectOption(0), ErrQuizCompleted)
	assert.Equal(t, TotalQuestions, src.calls)

	// Only restart remains valid.
	require.NoError(t, s.Restart(context.Background()))
	assert.False(t, s.State().Completed)
	assert.Equal(t, TotalQuestions+1, src.calls)
}

func TestProgress_RealDivision(t *testing.T) {
	s := newStartedSession(t, &stubSource{})
	assert.Equal(t, 0.0, s.State().Progress)

	answerCurrent(t, s, true)
	require.NoError(t, s.Next(context.Background()))
	assert.InDelta(t, 0.1, s.State().Progress, 1e-9)

	answerCurrent(t, s, true)
	require.NoError(t, s.Next(context.Background()))
	assert.InDelta(t, 0.2, s.State().Progress, 1e-9)
}
