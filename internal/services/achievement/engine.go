package achievement

import (
	"github.com/mcoot/brainplay/internal/model"
)

// StreakLength is the number of consecutive correct rounds for "Hot Streak"
const StreakLength = 3

// State is the view of a session that rules are evaluated against
type State struct {
	Rounds   []model.Round
	Score    int
	Unlocked []model.AchievementLabel
}

// NewState builds the rule input from a session and its current ledger score
func NewState(session *model.Session, score int) State {
	unlocked := make([]model.AchievementLabel, 0, len(session.Achievements))
	for _, a := range session.Achievements {
		unlocked = append(unlocked, a.Label)
	}
	return State{
		Rounds:   session.Rounds,
		Score:    score,
		Unlocked: unlocked,
	}
}

func (s State) has(label model.AchievementLabel) bool {
	for _, l := range s.Unlocked {
		if l == label {
			return true
		}
	}
	return false
}

// Rule unlocks Label when Predicate first holds
type Rule struct {
	Name      string
	Label     model.AchievementLabel
	Predicate func(State) bool
}

// DefaultRules returns the catalog in priority order
func DefaultRules() []Rule {
	return []Rule{
		{Name: "first_correct", Label: model.AchievementFirstPoints, Predicate: firstCorrect},
		{Name: "streak", Label: model.AchievementHotStreak, Predicate: streak},
		{Name: "half_century", Label: model.AchievementHalfCentury, Predicate: halfCentury},
	}
}

func firstCorrect(s State) bool {
	correct := 0
	for _, r := range s.Rounds {
		if r.IsCorrect {
			correct++
		}
	}
	return correct == 1
}

func streak(s State) bool {
	if len(s.Rounds) < StreakLength {
		return false
	}
	for _, r := range s.Rounds[len(s.Rounds)-StreakLength:] {
		if !r.IsCorrect {
			return false
		}
	}
	return true
}

func halfCentury(s State) bool {
	return s.Score >= model.WinningScore
}

// Engine evaluates an ordered rule list. It keeps no state of its own: what
// has already been unlocked is read from the session being evaluated.
type Engine struct {
	rules []Rule
}

// New creates an Engine with the default catalog
func New() *Engine {
	return NewWithRules(DefaultRules())
}

// NewWithRules creates an Engine with a custom catalog
func NewWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the catalog in evaluation order
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate returns the labels that unlock now, in rule order. A label already
// unlocked in the session is never returned again.
func (e *Engine) Evaluate(state State) []model.AchievementLabel {
	var unlocked []model.AchievementLabel
	for _, rule := range e.rules {
		if state.has(rule.Label) {
			continue
		}
		if !rule.Predicate(state) {
			continue
		}
		unlocked = append(unlocked, rule.Label)
		state.Unlocked = append(state.Unlocked, rule.Label)
	}
	return unlocked
}
