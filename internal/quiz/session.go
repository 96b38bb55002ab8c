package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/araquiz/backend/internal/models"
)

// TotalQuestions is the fixed length of one quiz run.
const TotalQuestions = 10

// defaultExplanation stands in when the provider omitted one.
const defaultExplanation = "Explanation not provided."

// QuestionSource produces a validated question for a (category, difficulty)
// request or fails. The asked list is the session's question history, passed
// as a no-repeat hint to the provider.
type QuestionSource interface {
	Fetch(ctx context.Context, category models.Category, difficulty models.Difficulty, asked []string) (*models.Question, error)
}

// Session owns all state for one user's run through up to TotalQuestions
// questions. Every transition is atomic: a failing call leaves the session
// exactly as it was.
//
// One logical actor drives a session; the mutex only guards against
// double-submitted requests for the same user.
type Session struct {
	mu     sync.Mutex
	source QuestionSource

	id             string
	category       models.Category
	questions      []models.Question
	currentIndex   int
	score          int
	streak         int
	difficulty     models.Difficulty
	selectedOption *int
	answered       bool
	completed      bool
}

// Result is the grading outcome of one submit, shaped for presentation.
type Result struct {
	Correct      bool
	CorrectIndex int
	Explanation  string
	ScoreDelta   int
	Score        int
	Streak       int
	Difficulty   models.Difficulty
	Completed    bool
}

// State is a point-in-time snapshot of a session for rendering.
type State struct {
	ID             string
	Category       models.Category
	Difficulty     models.Difficulty
	Score          int
	Streak         int
	CurrentIndex   int
	TotalQuestions int
	Progress       float64
	Question       *models.Question
	SelectedOption *int
	Answered       bool
	Completed      bool
	Stalled        bool
}

func NewSession(source QuestionSource, category models.Category) *Session {
	return &Session{
		source:     source,
		id:         uuid.NewString(),
		category:   category,
		difficulty: models.DifficultyEasy,
	}
}

// Start resets every counter and fetches question 1 at easy difficulty.
// On fetch failure the reset sticks but the queue stays empty: the session is
// stalled and Start may simply be called again.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.NewString()
	s.questions = nil
	s.currentIndex = 0
	s.score = 0
	s.streak = 0
	s.difficulty = models.DifficultyEasy
	s.selectedOption = nil
	s.answered = false
	s.completed = false

	q, err := s.fetchLocked(ctx)
	if err != nil {
		return err
	}
	s.questions = append(s.questions, *q)
	return nil
}

// Restart is start by another name: a full reinitialization followed by
// fetching question 1.
func (s *Session) Restart(ctx context.Context) error {
	return s.Start(ctx)
}

// SelectOption records a pick for the current question. No effect on score or
// streak.
func (s *Session) SelectOption(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return ErrQuizCompleted
	}
	if s.stalledLocked() {
		return ErrNoQuestion
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	if i < 0 || i >= len(s.questions[s.currentIndex].Options) {
		return ErrInvalidSelection
	}

	s.selectedOption = &i
	return nil
}

// Submit grades the current selection. Score, streak and difficulty are
// updated here and nowhere else.
func (s *Session) Submit() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return nil, ErrQuizCompleted
	}
	if s.stalledLocked() {
		return nil, ErrNoQuestion
	}
	if s.answered {
		return nil, ErrAlreadyAnswered
	}
	if s.selectedOption == nil {
		return nil, ErrNoSelection
	}

	q := s.questions[s.currentIndex]
	correct := *s.selectedOption == q.CorrectIndex

	delta := -1
	if correct {
		delta = 1
	}

	s.answered = true
	s.score += delta
	s.streak = advanceStreak(s.streak, correct)
	s.difficulty = adjustDifficulty(s.difficulty, s.streak)

	if s.currentIndex == TotalQuestions-1 {
		s.completed = true
	}

	explanation := q.Explanation
	if explanation == "" {
		explanation = defaultExplanation
	}

	return &Result{
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		Explanation:  explanation,
		ScoreDelta:   delta,
		Score:        s.score,
		Streak:       s.streak,
		Difficulty:   s.difficulty,
		Completed:    s.completed,
	}, nil
}

// Next advances to the following question, fetching it at the current
// (possibly just-changed) difficulty. The fetch happens first: if it fails,
// nothing moves and calling Next again is the retry path.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return ErrQuizCompleted
	}
	if !s.answered {
		return ErrNotAnswered
	}

	q, err := s.fetchLocked(ctx)
	if err != nil {
		return err
	}

	s.questions = append(s.questions, *q)
	s.currentIndex++
	s.selectedOption = nil
	s.answered = false
	return nil
}

// State returns a renderable snapshot. The Question pointer references a copy.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:             s.id,
		Category:       s.category,
		Difficulty:     s.difficulty,
		Score:          s.score,
		Streak:         s.streak,
		CurrentIndex:   s.currentIndex,
		TotalQuestions: TotalQuestions,
		Progress:       float64(s.currentIndex) / float64(TotalQuestions),
		Answered:       s.answered,
		Completed:      s.completed,
		Stalled:        s.stalledLocked(),
	}

	if !st.Stalled {
		q := s.questions[s.currentIndex]
		st.Question = &q
	}
	if s.selectedOption != nil {
		sel := *s.selectedOption
		st.SelectedOption = &sel
	}

	return st
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) Category() models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// stalledLocked reports whether the current index has no fetched question yet.
func (s *Session) stalledLocked() bool {
	return len(s.questions) <= s.currentIndex
}

// fetchLocked asks the source for one question at the session's current
// difficulty. It never mutates session state; the caller appends on success.
func (s *Session) fetchLocked(ctx context.Context) (*models.Question, error) {
	asked := make([]string, 0, len(s.questions))
	for _, q := range s.questions {
		asked = append(asked, q.Text)
	}

	q, err := s.source.Fetch(ctx, s.category, s.difficulty, asked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// The no-repeat list is only a hint to the provider; reject exact
	// repeats here.
	for _, prev := range s.questions {
		if prev.Text == q.Text {
			return nil, fmt.Errorf("%w: provider repeated question %q", ErrGenerationFailed, q.Text)
		}
	}

	return q, nil
}
