package models

type Category string

const (
	CategoryScience    Category = "science"
	CategoryLiterature Category = "literature"
	CategoryReligion   Category = "religion"
	CategoryGeography  Category = "geography"
	CategoryHistory    Category = "history"
)

var ValidCategories = map[Category]bool{
	CategoryScience:    true,
	CategoryLiterature: true,
	CategoryReligion:   true,
	CategoryGeography:  true,
	CategoryHistory:    true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// NumOptions is the fixed option count the generator contract requires.
const NumOptions = 4

// Question is a validated multiple-choice question. Immutable once created;
// the quiz session owns it for the lifetime of a run.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"answer"`
	Explanation  string   `json:"explanation,omitempty"`
}
