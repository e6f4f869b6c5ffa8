package journal

import (
	"context"
	"log/slog"

	"github.com/mcoot/brainplay/internal/model"
)

// Journal writes session lifecycle events to the append-only game log
type Journal struct {
	logger *slog.Logger
}

// New creates a Journal writing through logger
func New(logger *slog.Logger) *Journal {
	return &Journal{
		logger: logger.With(slog.String("component", "journal")),
	}
}

// Record writes one event. Unknown payloads are logged with the base fields only.
func (j *Journal) Record(ctx context.Context, ev model.Event) {
	attrs := []slog.Attr{
		slog.String("event", string(ev.Type)),
		slog.Time("at", ev.Timestamp),
		slog.String("session_id", string(ev.SessionID)),
		slog.String("player_id", string(ev.PlayerID)),
	}
	level := slog.LevelInfo

	switch p := ev.Payload.(type) {
	case model.SessionStartedPayload:
		attrs = append(attrs,
			slog.String("player_name", p.PlayerName),
			slog.String("mode", string(p.Mode)),
			slog.Int("total_games", p.TotalGames),
		)
	case model.QuestionGeneratedPayload:
		attrs = append(attrs,
			slog.Int("round_number", p.RoundNumber),
			slog.String("question_type", string(p.QuestionType)),
			slog.String("difficulty", string(p.Difficulty)),
		)
	case model.RoundCompletedPayload:
		attrs = append(attrs,
			slog.Int("round_number", p.Round.RoundNumber),
			slog.String("question_type", string(p.Round.QuestionType)),
			slog.Bool("correct", p.Round.IsCorrect),
			slog.Int("points", p.Round.PointsEarned),
			slog.Int("total_score", p.Round.TotalScore),
		)
	case model.AchievementUnlockedPayload:
		attrs = append(attrs,
			slog.String("label", string(p.Achievement.Label)),
		)
	case model.SessionEndedPayload:
		attrs = append(attrs,
			slog.Int("final_score", p.FinalScore),
			slog.Bool("won", p.Won),
			slog.Int("rounds", p.Rounds),
			slog.Duration("duration", p.Duration),
		)
	case model.PersistenceFailedPayload:
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("collection", string(p.Collection)),
			slog.String("error", p.Error),
		)
	}

	j.logger.LogAttrs(ctx, level, "session event", attrs...)
}
