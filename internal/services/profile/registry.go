package profile

import (
	"context"
	"log/slog"

	"github.com/mcoot/brainplay/internal/dependencies/clock"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
)

// Registry resolves player names to durable profiles and is the only
// component that writes profile fields
type Registry struct {
	store  *storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Registry
func New(store *storage.Store, clock clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// ResolveOrCreate returns the profile for name, creating and persisting it on
// first sight. Any failure here is a ProfileError: the game cannot start.
func (r *Registry) ResolveOrCreate(ctx context.Context, name string) (*model.PlayerProfile, error) {
	displayName := model.DisplayName(name)
	id := model.NewPlayerID(displayName)

	profiles, err := r.store.Profiles.Load(ctx)
	if err != nil {
		r.logger.Error("failed to load profiles",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, &model.ProfileError{PlayerID: id, Name: displayName, Err: err}
	}

	if i := indexOf(profiles, id); i >= 0 {
		found := profiles[i]
		r.logger.Info("found existing player",
			slog.String("player_id", string(id)),
			slog.String("name", found.Name),
			slog.Int("total_games", found.TotalGames),
		)
		return &found, nil
	}

	now := r.clock.Now()
	created := model.PlayerProfile{
		ID:          id,
		Name:        displayName,
		CreatedDate: now,
		LastPlayed:  now,
	}
	if err := r.store.Profiles.Save(ctx, append(profiles, created)); err != nil {
		return nil, &model.ProfileError{PlayerID: id, Name: displayName, Err: err}
	}

	r.logger.Info("created new player",
		slog.String("player_id", string(id)),
		slog.String("name", displayName),
	)
	return &created, nil
}

// RecordCompletion folds a finished session into the player's aggregates and
// persists the profile. The updated profile is returned even when the save
// fails, so the caller can still show it.
func (r *Registry) RecordCompletion(ctx context.Context, id model.PlayerID, session *model.Session) (*model.PlayerProfile, error) {
	profiles, err := r.store.Profiles.Load(ctx)
	if err != nil {
		return nil, &model.ProfileError{PlayerID: id, Name: session.PlayerName, Err: err}
	}

	i := indexOf(profiles, id)
	if i < 0 {
		return nil, &model.ProfileError{PlayerID: id, Name: session.PlayerName, Err: model.ErrProfileNotFound}
	}

	p := &profiles[i]
	if p.TotalGames == 0 || session.FinalScore > p.BestScore {
		p.BestScore = session.FinalScore
	}
	p.TotalGames++
	if session.Won {
		p.TotalWins++
	}
	p.LastPlayed = r.clock.Now()
	updated := *p

	if err := r.store.Profiles.Save(ctx, profiles); err != nil {
		r.logger.Error("failed to save player profile",
			slog.String("player_id", string(id)),
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return &updated, &model.ProfileError{PlayerID: id, Name: updated.Name, Err: err}
	}

	r.logger.Info("player profile updated",
		slog.String("player_id", string(id)),
		slog.Int("total_games", updated.TotalGames),
		slog.Int("total_wins", updated.TotalWins),
		slog.Int("best_score", updated.BestScore),
	)
	return &updated, nil
}

// Get looks a player up by name without creating it
func (r *Registry) Get(ctx context.Context, name string) (*model.PlayerProfile, error) {
	profiles, err := r.store.Profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(profiles, model.NewPlayerID(name))
	if i < 0 {
		return nil, model.ErrProfileNotFound
	}
	found := profiles[i]
	return &found, nil
}

// List returns every profile in creation order
func (r *Registry) List(ctx context.Context) ([]model.PlayerProfile, error) {
	return r.store.Profiles.Load(ctx)
}

func indexOf(profiles []model.PlayerProfile, id model.PlayerID) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}
