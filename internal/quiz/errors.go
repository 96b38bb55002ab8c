package quiz

import "errors"

// Every failure below is recoverable: the failing call leaves the session
// exactly as it was.
var (
	// ErrInvalidSelection reports a selection index outside the option range.
	ErrInvalidSelection = errors.New("selection index out of range")

	// ErrNoSelection reports a submit before any option was picked.
	ErrNoSelection = errors.New("no option selected")

	// ErrAlreadyAnswered reports a select or submit after grading.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotAnswered reports a next before the current question was graded.
	ErrNotAnswered = errors.New("current question not answered")

	// ErrQuizCompleted means only restart is valid on this session.
	ErrQuizCompleted = errors.New("quiz already completed")

	// ErrNoQuestion means the session is stalled: the current question was
	// never fetched. Retry the stalled operation.
	ErrNoQuestion = errors.New("no question available")

	// ErrGenerationFailed wraps provider failures and malformed or duplicate
	// content. Nothing was enqueued; retrying is safe.
	ErrGenerationFailed = errors.New("question generation failed")
)
