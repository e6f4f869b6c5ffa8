package model

import (
	"strings"
	"time"
)

// SessionID uniquely identifies one play-through
type SessionID string

// Mode selects question difficulty for a session
type Mode string

const (
	ModeEasy   Mode = "easy"
	ModeNormal Mode = "normal"
	ModeHard   Mode = "hard"
)

// Modes lists every valid mode in display order
var Modes = []Mode{ModeEasy, ModeNormal, ModeHard}

// ParseMode validates a mode name, case-insensitively
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, m := range Modes {
		if m == mode {
			return m, nil
		}
	}
	return "", &ConfigurationError{Field: "mode", Value: raw}
}

// SessionState is the phase of the round state machine
type SessionState string

const (
	SessionStateInit        SessionState = "init"
	SessionStateAsk         SessionState = "round_ask"
	SessionStateAwaitAnswer SessionState = "round_await_answer"
	SessionStateEvaluate    SessionState = "round_evaluate"
	SessionStateWon         SessionState = "won"
	SessionStateQuit        SessionState = "quit"
)

// IsTerminal reports whether no further rounds can be played
func (s SessionState) IsTerminal() bool {
	return s == SessionStateWon || s == SessionStateQuit
}

// Scoring rules
const (
	PointsCorrect = 10
	PointsWrong   = -5
	WinningScore  = 50
)

// Round is one asked-and-answered question
type Round struct {
	RoundNumber   int          `json:"round_number"`
	QuestionType  QuestionType `json:"question_type"`
	QuestionText  string       `json:"question_text"`
	CorrectAnswer int          `json:"correct_answer"`
	UserAnswer    string       `json:"user_answer"`
	IsCorrect     bool         `json:"is_correct"`
	PointsEarned  int          `json:"points_earned"`
	TotalScore    int          `json:"total_score"`
	Timestamp     time.Time    `json:"timestamp"`
}

// Session is one play-through, owned by the session controller until it ends
type Session struct {
	ID           SessionID
	PlayerID     PlayerID
	PlayerName   string
	Mode         Mode
	StartTime    time.Time
	EndTime      time.Time
	FinalScore   int
	Won          bool
	Rounds       []Round
	Achievements []Achievement
}

// HasAchievement reports whether label was already unlocked in this session
func (s *Session) HasAchievement(label AchievementLabel) bool {
	for _, a := range s.Achievements {
		if a.Label == label {
			return true
		}
	}
	return false
}

// CorrectCount returns the number of correctly answered rounds
func (s *Session) CorrectCount() int {
	n := 0
	for _, r := range s.Rounds {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// Duration returns how long the session lasted, 0 while it is still running
func (s *Session) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Record returns the durable session summary
func (s *Session) Record() SessionRecord {
	achievements := make([]Achievement, len(s.Achievements))
	copy(achievements, s.Achievements)
	return SessionRecord{
		SessionID:    s.ID,
		PlayerName:   s.PlayerName,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		FinalScore:   s.FinalScore,
		Won:          s.Won,
		Mode:         s.Mode,
		Achievements: achievements,
	}
}

// History returns the durable round-history record
func (s *Session) History() RoundHistory {
	rounds := make([]Round, len(s.Rounds))
	copy(rounds, s.Rounds)
	return RoundHistory{
		SessionID:  s.ID,
		PlayerName: s.PlayerName,
		Mode:       s.Mode,
		FinalScore: s.FinalScore,
		Rounds:     rounds,
	}
}

// SessionRecord is an entry of the sessions collection
type SessionRecord struct {
	SessionID    SessionID     `json:"session_id"`
	PlayerName   string        `json:"player_name"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	FinalScore   int           `json:"final_score"`
	Won          bool          `json:"won"`
	Mode         Mode          `json:"mode"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// RoundHistory is an entry of the round-histories collection
type RoundHistory struct {
	SessionID  SessionID `json:"session_id"`
	PlayerName string    `json:"player_name"`
	Mode       Mode      `json:"mode"`
	FinalScore int       `json:"final_score"`
	Rounds     []Round   `json:"rounds"`
}
