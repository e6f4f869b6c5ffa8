package stats

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// DefaultHistoryLimit is how many round histories --history shows
const DefaultHistoryLimit = 10

// Overview aggregates every stored session and profile
type Overview struct {
	TotalSessions int     `json:"total_sessions"`
	WonSessions   int     `json:"won_sessions"`
	WinRate       float64 `json:"win_rate"`
	AverageScore  float64 `json:"average_score"`
	TotalPlayers  int     `json:"total_players"`
}

// RoundStats summarizes the rounds of one session
type RoundStats struct {
	Rounds        int                        `json:"rounds"`
	Correct       int                        `json:"correct"`
	Wrong         int                        `json:"wrong"`
	Accuracy      float64                    `json:"accuracy"`
	TotalPoints   int                        `json:"total_points"`
	AveragePoints float64                    `json:"average_points"`
	ByType        map[model.QuestionType]int `json:"by_type"`
}

// Service provides read-only reporting over the store
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// New creates a new stats Service
func New(store *storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Overview computes totals over all sessions and profiles
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	sessions, err := s.store.Sessions.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	profiles, err := s.store.Profiles.Load(ctx)
	if err != nil {
		return Overview{}, err
	}

	result := Overview{
		TotalSessions: len(sessions),
		TotalPlayers:  len(profiles),
	}
	if len(sessions) == 0 {
		return result, nil
	}

	total := 0
	for _, rec := range sessions {
		if rec.Won {
			result.WonSessions++
		}
		total += rec.FinalScore
	}
	result.WinRate = float64(result.WonSessions) / float64(len(sessions)) * 100
	result.AverageScore = float64(total) / float64(len(sessions))
	return result, nil
}

// RecentHistories returns up to limit round histories, newest first
func (s *Service) RecentHistories(ctx context.Context, limit int) ([]model.RoundHistory, error) {
	histories, err := s.store.Histories.Load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(histories) > limit {
		histories = histories[len(histories)-limit:]
	}

	recent := make([]model.RoundHistory, 0, len(histories))
	for i := len(histories) - 1; i >= 0; i-- {
		recent = append(recent, histories[i])
	}

	s.logger.Debug("loaded round histories",
		slog.Int("returned", len(recent)),
		slog.Int("limit", limit),
	)
	return recent, nil
}

// Standings returns every profile ranked best first
func (s *Service) Standings(ctx context.Context) ([]model.PlayerProfile, error) {
	profiles, err := s.store.Profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.RankPlayers(profiles), nil
}

// SummarizeRounds computes per-session round statistics
func (s *Service) SummarizeRounds(rounds []model.Round) RoundStats {
	result := RoundStats{
		Rounds: len(rounds),
		ByType: make(map[model.QuestionType]int),
	}
	for _, r := range rounds {
		if r.IsCorrect {
			result.Correct++
		} else {
			result.Wrong++
		}
		result.TotalPoints += r.PointsEarned
		result.ByType[r.QuestionType]++
	}
	if len(rounds) > 0 {
		result.Accuracy = float64(result.Correct) / float64(len(rounds)) * 100
		result.AveragePoints = float64(result.TotalPoints) / float64(len(rounds))
	}
	return result
}

// RankPlayers sorts profiles by best score, then wins, then name
func (s *Service) RankPlayers(profiles []model.PlayerProfile) []model.PlayerProfile {
	ranked := make([]model.PlayerProfile, len(profiles))
	copy(ranked, profiles)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].BestScore != ranked[j].BestScore {
			return ranked[i].BestScore > ranked[j].BestScore
		}
		if ranked[i].TotalWins != ranked[j].TotalWins {
			return ranked[i].TotalWins > ranked[j].TotalWins
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}

// Leader returns the top player's ID, or empty string if tie
func (s *Service) Leader(ranked []model.PlayerProfile) model.PlayerID {
	if len(ranked) == 0 {
		return ""
	}

	top := ranked[0]
	tieCount := 0
	for _, p := range ranked {
		if p.BestScore == top.BestScore && p.TotalWins == top.TotalWins {
			tieCount++
		}
	}

	if tieCount > 1 {
		return "" // Tie
	}

	return top.ID
}

// Interface for dependency injection
type ServiceInterface interface {
	Overview(ctx context.Context) (Overview, error)
	RecentHistories(ctx context.Context, limit int) ([]model.RoundHistory, error)
	Standings(ctx context.Context) ([]model.PlayerProfile, error)
	SummarizeRounds(rounds []model.Round) RoundStats
	RankPlayers(profiles []model.PlayerProfile) []model.PlayerProfile
	Leader(ranked []model.PlayerProfile) model.PlayerID
}

var _ ServiceInterface = (*Service)(nil)
