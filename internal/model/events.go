package model

import "time"

// EventType identifies the type of lifecycle event
type EventType string

const (
	EventSessionStarted      EventType = "session_started"
	EventQuestionGenerated   EventType = "question_generated"
	EventRoundCompleted      EventType = "round_completed"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventSessionEnded        EventType = "session_ended"
	EventPersistenceFailed   EventType = "persistence_failed"
)

// Event is the base structure for all lifecycle events
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	PlayerID  PlayerID
	Payload   any // Type-specific data
}

// SessionStartedPayload contains data for session started events
type SessionStartedPayload struct {
	PlayerName string
	Mode       Mode
	TotalGames int
}

// QuestionGeneratedPayload contains data for question generated events
type QuestionGeneratedPayload struct {
	RoundNumber  int
	QuestionType QuestionType
	Difficulty   Mode
}

// RoundCompletedPayload contains data for round completed events
type RoundCompletedPayload struct {
	Round Round
}

// AchievementUnlockedPayload contains data for achievement unlocked events
type AchievementUnlockedPayload struct {
	Achievement Achievement
}

// SessionEndedPayload contains data for session ended events
type SessionEndedPayload struct {
	FinalScore int
	Won        bool
	Rounds     int
	Duration   time.Duration
}

// PersistenceFailedPayload contains data for persistence failed events
type PersistenceFailedPayload struct {
	Collection Collection
	Error      string
}
