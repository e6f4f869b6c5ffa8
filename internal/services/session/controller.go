package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/brainplay/internal/dependencies/clock"
	"github.com/mcoot/brainplay/internal/dependencies/random"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/services/achievement"
	"github.com/mcoot/brainplay/internal/services/journal"
	"github.com/mcoot/brainplay/internal/services/ledger"
	"github.com/mcoot/brainplay/internal/services/profile"
	"github.com/mcoot/brainplay/internal/services/question"
	"github.com/mcoot/brainplay/internal/storage"
)

// Controller drives the round state machine of a single-player session
type Controller struct {
	store        *storage.Store
	profiles     *profile.Registry
	questions    *question.Provider
	achievements *achievement.Engine
	journal      *journal.Journal
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	store *storage.Store,
	profiles *profile.Registry,
	questions *question.Provider,
	achievements *achievement.Engine,
	journal *journal.Journal,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:        store,
		profiles:     profiles,
		questions:    questions,
		achievements: achievements,
		journal:      journal,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// Run is one in-progress session. It is owned by a single caller and is not
// safe for concurrent use.
type Run struct {
	state    model.SessionState
	session  *model.Session
	ledger   *ledger.Ledger
	profile  *model.PlayerProfile
	question *model.Question
	outcome  *Outcome
}

// State returns the current state machine state
func (r *Run) State() model.SessionState {
	return r.state
}

// Score returns the running score
func (r *Run) Score() int {
	return r.ledger.Current()
}

// Profile returns the player's profile as last seen by the session
func (r *Run) Profile() model.PlayerProfile {
	return *r.profile
}

// Session returns a copy of the session so far
func (r *Run) Session() model.Session {
	s := *r.session
	s.Rounds = make([]model.Round, len(r.session.Rounds))
	copy(s.Rounds, r.session.Rounds)
	s.Achievements = make([]model.Achievement, len(r.session.Achievements))
	copy(s.Achievements, r.session.Achievements)
	return s
}

// Outcome returns the final result once the session has ended
func (r *Run) Outcome() *Outcome {
	return r.outcome
}

// Turn is the result of answering one question
type Turn struct {
	Round    *model.Round
	Unlocked []model.Achievement
	State    model.SessionState
	Score    int
	Outcome  *Outcome // set when the turn ended the session
}

// Outcome is a completed session with the player's updated profile
type Outcome struct {
	Session model.Session
	Profile model.PlayerProfile
}

// Begin resolves the player and starts a session in the ask state
func (c *Controller) Begin(ctx context.Context, playerName string, mode model.Mode) (*Run, error) {
	mode, err := model.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	p, err := c.profiles.ResolveOrCreate(ctx, playerName)
	if err != nil {
		return nil, err
	}

	run := &Run{
		state: model.SessionStateInit,
		session: &model.Session{
			ID:         model.SessionID(c.random.UUID()),
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Mode:       mode,
			StartTime:  c.clock.Now(),
			Rounds:     []model.Round{},
		},
		ledger:  ledger.New(),
		profile: p,
	}
	run.state = model.SessionStateAsk

	c.logger.Info("session started",
		slog.String("session_id", string(run.session.ID)),
		slog.String("player_id", string(p.ID)),
		slog.String("mode", string(mode)),
	)
	c.record(ctx, run, model.EventSessionStarted, model.SessionStartedPayload{
		PlayerName: p.Name,
		Mode:       mode,
		TotalGames: p.TotalGames,
	})

	return run, nil
}

// NextQuestion asks the next question and moves to awaiting an answer
func (c *Controller) NextQuestion(ctx context.Context, run *Run) (model.Question, error) {
	if err := run.expect(model.SessionStateAsk); err != nil {
		return model.Question{}, err
	}

	q, err := c.questions.Next(ctx, run.session.Mode)
	if err != nil {
		return model.Question{}, err
	}

	run.question = &q
	run.state = model.SessionStateAwaitAnswer

	c.record(ctx, run, model.EventQuestionGenerated, model.QuestionGeneratedPayload{
		RoundNumber:  len(run.session.Rounds) + 1,
		QuestionType: q.Type,
		Difficulty:   q.Difficulty,
	})
	return q, nil
}

// SubmitAnswer evaluates raw against the pending question. A quit token ends
// the session without scoring. When the turn ends the session the outcome is
// persisted and returned in the Turn; a persistence failure is returned as the
// error alongside it.
func (c *Controller) SubmitAnswer(ctx context.Context, run *Run, raw string) (Turn, error) {
	if err := run.expect(model.SessionStateAwaitAnswer); err != nil {
		return Turn{}, err
	}

	if IsQuitToken(raw) {
		c.logger.Info("player chose to quit",
			slog.String("session_id", string(run.session.ID)),
			slog.String("input", raw),
		)
		run.state = model.SessionStateQuit
		outcome, err := c.finish(ctx, run)
		return Turn{State: run.state, Score: run.ledger.Current(), Outcome: outcome}, err
	}

	run.state = model.SessionStateEvaluate
	q := run.question

	correct, inputErr := CheckAnswer(raw, q.Answer)
	if inputErr != nil {
		c.logger.Warn("invalid answer",
			slog.String("session_id", string(run.session.ID)),
			slog.String("error", inputErr.Error()),
		)
	}

	points := model.PointsWrong
	if correct {
		points = model.PointsCorrect
	}
	score := run.ledger.Apply(points)
	now := c.clock.Now()

	round := model.Round{
		RoundNumber:   len(run.session.Rounds) + 1,
		QuestionType:  q.Type,
		QuestionText:  q.Text,
		CorrectAnswer: q.Answer,
		UserAnswer:    raw,
		IsCorrect:     correct,
		PointsEarned:  points,
		TotalScore:    score,
		Timestamp:     now,
	}
	run.session.Rounds = append(run.session.Rounds, round)
	run.question = nil
	c.record(ctx, run, model.EventRoundCompleted, model.RoundCompletedPayload{Round: round})

	var unlocked []model.Achievement
	for _, label := range c.achievements.Evaluate(achievement.NewState(run.session, score)) {
		if run.session.HasAchievement(label) {
			continue
		}
		a := model.Achievement{Label: label, UnlockedAt: now}
		run.session.Achievements = append(run.session.Achievements, a)
		unlocked = append(unlocked, a)

		c.logger.Info("achievement unlocked",
			slog.String("session_id", string(run.session.ID)),
			slog.String("label", string(label)),
		)
		c.record(ctx, run, model.EventAchievementUnlocked, model.AchievementUnlockedPayload{Achievement: a})
	}

	turn := Turn{
		Round:    &round,
		Unlocked: unlocked,
		Score:    score,
	}

	if score >= model.WinningScore {
		run.state = model.SessionStateWon
		outcome, err := c.finish(ctx, run)
		turn.State = run.state
		turn.Outcome = outcome
		return turn, err
	}

	run.state = model.SessionStateAsk
	turn.State = run.state
	return turn, nil
}

// Quit ends the session voluntarily, e.g. on end of input or an interrupt
func (c *Controller) Quit(ctx context.Context, run *Run) (*Outcome, error) {
	if run.state.IsTerminal() {
		return run.outcome, fmt.Errorf("%w: %w", model.ErrInvalidTransition, model.ErrSessionComplete)
	}

	c.logger.Info("session abandoned",
		slog.String("session_id", string(run.session.ID)),
		slog.String("state", string(run.state)),
	)
	run.state = model.SessionStateQuit
	run.question = nil
	return c.finish(ctx, run)
}

// finish stamps the session, folds it into the profile and appends it to the
// store. Every write is attempted; failures are joined and never undo the
// outcome.
func (c *Controller) finish(ctx context.Context, run *Run) (*Outcome, error) {
	s := run.session
	s.EndTime = c.clock.Now()
	s.FinalScore = run.ledger.Current()
	s.Won = run.state == model.SessionStateWon

	var errs []error

	updated, err := c.profiles.RecordCompletion(ctx, s.PlayerID, s)
	if updated != nil {
		run.profile = updated
	}
	if err != nil {
		errs = append(errs, err)
		c.persistenceFailed(ctx, run, model.CollectionProfiles, err)
	}

	if err := c.store.Sessions.Append(ctx, s.Record()); err != nil {
		errs = append(errs, err)
		c.persistenceFailed(ctx, run, model.CollectionSessions, err)
	}

	if err := c.store.Histories.Append(ctx, s.History()); err != nil {
		errs = append(errs, err)
		c.persistenceFailed(ctx, run, model.CollectionRoundHistories, err)
	}

	c.logger.Info("session ended",
		slog.String("session_id", string(s.ID)),
		slog.String("player_id", string(s.PlayerID)),
		slog.Int("final_score", s.FinalScore),
		slog.Bool("won", s.Won),
		slog.Int("rounds", len(s.Rounds)),
		slog.Int("correct", s.CorrectCount()),
	)
	c.record(ctx, run, model.EventSessionEnded, model.SessionEndedPayload{
		FinalScore: s.FinalScore,
		Won:        s.Won,
		Rounds:     len(s.Rounds),
		Duration:   s.Duration(),
	})

	run.outcome = &Outcome{
		Session: run.Session(),
		Profile: *run.profile,
	}
	return run.outcome, errors.Join(errs...)
}

func (c *Controller) persistenceFailed(ctx context.Context, run *Run, collection model.Collection, err error) {
	c.logger.Error("failed to persist session",
		slog.String("session_id", string(run.session.ID)),
		slog.String("collection", string(collection)),
		slog.String("error", err.Error()),
	)
	c.record(ctx, run, model.EventPersistenceFailed, model.PersistenceFailedPayload{
		Collection: collection,
		Error:      err.Error(),
	})
}

func (c *Controller) record(ctx context.Context, run *Run, eventType model.EventType, payload any) {
	c.journal.Record(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		SessionID: run.session.ID,
		PlayerID:  run.session.PlayerID,
		Payload:   payload,
	})
}

// expect guards every transition
func (r *Run) expect(state model.SessionState) error {
	if r.state.IsTerminal() {
		return fmt.Errorf("%w: %w", model.ErrInvalidTransition, model.ErrSessionComplete)
	}
	if r.state != state {
		return fmt.Errorf("%w: in %s, need %s", model.ErrInvalidTransition, r.state, state)
	}
	return nil
}
