package session

import (
	"math"
	"strconv"
	"strings"

	"github.com/mcoot/brainplay/internal/model"
)

// AnswerTolerance is the largest difference still accepted as correct
const AnswerTolerance = 0.01

var quitTokens = map[string]bool{
	"quit": true,
	"exit": true,
	"n":    true,
	"no":   true,
}

// IsQuitToken reports whether raw asks to end the session
func IsQuitToken(raw string) bool {
	return quitTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// CheckAnswer compares raw numerically against answer. Malformed input is
// reported as an InputError and counts as incorrect.
func CheckAnswer(raw string, answer int) (bool, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return false, &model.InputError{Input: raw, Err: model.ErrInvalidAnswer}
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return false, &model.InputError{Input: raw, Err: err}
	}
	return math.Abs(value-float64(answer)) < AnswerTolerance, nil
}
