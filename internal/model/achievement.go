package model

import "time"

// AchievementLabel names an entry in the achievement catalog
type AchievementLabel string

const (
	AchievementFirstPoints AchievementLabel = "First Points"
	AchievementHotStreak   AchievementLabel = "Hot Streak"
	AchievementHalfCentury AchievementLabel = "Half Century"
)

// Achievement is an unlocked label within one session
type Achievement struct {
	Label      AchievementLabel `json:"label"`
	UnlockedAt time.Time        `json:"unlocked_at"`
}
