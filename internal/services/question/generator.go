package question

import (
	"fmt"

	"github.com/mcoot/brainplay/internal/dependencies/random"
	"github.com/mcoot/brainplay/internal/model"
)

// Generator builds one variant of question for a difficulty
type Generator interface {
	Type() model.QuestionType
	Generate(mode model.Mode) (model.Question, error)
}

// numberRange is an inclusive integer range
type numberRange struct {
	min int
	max int
}

func (r numberRange) pick(rnd random.Random) int {
	return r.min + rnd.Intn(r.max-r.min+1)
}

// SquareGenerator asks for the square of a base number
type SquareGenerator struct {
	random random.Random
}

// NewSquareGenerator creates a SquareGenerator
func NewSquareGenerator(random random.Random) *SquareGenerator {
	return &SquareGenerator{random: random}
}

// squareBases is the base range per mode: normal is 1..20, easy caps at 60% and hard reaches 150%
var squareBases = map[model.Mode]numberRange{
	model.ModeEasy:   {min: 1, max: 12},
	model.ModeNormal: {min: 1, max: 20},
	model.ModeHard:   {min: 1, max: 30},
}

func (g *SquareGenerator) Type() model.QuestionType {
	return model.QuestionTypeSquare
}

func (g *SquareGenerator) Generate(mode model.Mode) (model.Question, error) {
	bases, ok := squareBases[mode]
	if !ok {
		return model.Question{}, &model.ConfigurationError{Field: "mode", Value: string(mode)}
	}

	base := bases.pick(g.random)
	answer := base * base
	return model.Question{
		Type:       model.QuestionTypeSquare,
		Difficulty: mode,
		Text:       fmt.Sprintf("What is %d²? (What is %d squared?)", base, base),
		Hint:       fmt.Sprintf("The answer ends in %d", answer%10),
		Answer:     answer,
	}, nil
}

// SquareRootGenerator asks for the root of a perfect square
type SquareRootGenerator struct {
	random random.Random
}

// NewSquareRootGenerator creates a SquareRootGenerator
func NewSquareRootGenerator(random random.Random) *SquareRootGenerator {
	return &SquareRootGenerator{random: random}
}

// squareRoots bounds the root of the perfect squares offered per mode
var squareRoots = map[model.Mode]numberRange{
	model.ModeEasy:   {min: 1, max: 10},
	model.ModeNormal: {min: 1, max: 50},
	model.ModeHard:   {min: 1, max: 100},
}

func (g *SquareRootGenerator) Type() model.QuestionType {
	return model.QuestionTypeSquareRoot
}

func (g *SquareRootGenerator) Generate(mode model.Mode) (model.Question, error) {
	roots, ok := squareRoots[mode]
	if !ok {
		return model.Question{}, &model.ConfigurationError{Field: "mode", Value: string(mode)}
	}

	root := roots.pick(g.random)
	square := root * root
	lower := root / 10 * 10
	return model.Question{
		Type:       model.QuestionTypeSquareRoot,
		Difficulty: mode,
		Text:       fmt.Sprintf("What is √%d? (What is the square root of %d?)", square, square),
		Hint:       fmt.Sprintf("The root is at least %d and below %d", lower, lower+10),
		Answer:     root,
	}, nil
}
