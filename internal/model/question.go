package model

// QuestionType tags the question variant
type QuestionType string

const (
	QuestionTypeSquare     QuestionType = "square"
	QuestionTypeSquareRoot QuestionType = "square_root"
)

// QuestionTypes lists every variant; selection is uniform over this list
var QuestionTypes = []QuestionType{QuestionTypeSquare, QuestionTypeSquareRoot}

// Question is a generated question with its numeric answer
type Question struct {
	Type       QuestionType
	Difficulty Mode
	Text       string
	Hint       string
	Answer     int
}
