package quiz

import "github.com/araquiz/backend/internal/models"

// advanceStreak applies the asymmetric streak rule.
//
// Correct:   a positive streak grows; anything else restarts at 1.
// Incorrect: a positive streak collapses to 0; a non-positive streak keeps
// counting misses further negative.
func advanceStreak(streak int, correct bool) int {
	if correct {
		if streak > 0 {
			return streak + 1
		}
		return 1
	}
	if streak > 0 {
		return 0
	}
	return streak - 1
}

// adjustDifficulty evaluates the transition rules against the difficulty in
// effect before this answer and the already-updated streak. The guards are on
// distinct difficulty values, so at most one rule fires and a single answer
// never moves more than one level.
func adjustDifficulty(d models.Difficulty, streak int) models.Difficulty {
	switch {
	case d == models.DifficultyEasy && streak >= 1:
		return models.DifficultyMedium
	case d == models.DifficultyHard && streak <= 0:
		return models.DifficultyMedium
	case d == models.DifficultyMedium && streak >= 2:
		return models.DifficultyHard
	case d == models.DifficultyMedium && streak <= -1:
		return models.DifficultyEasy
	}
	return d
}
