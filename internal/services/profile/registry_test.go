package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/brainplay/internal/dependencies/mocks"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
	"github.com/mcoot/brainplay/internal/storage/memory"
	"github.com/mcoot/brainplay/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	backend  *testutil.FlakyBackend
	store    *storage.Store
	clock    *mocks.MockClock
	registry *Registry
	ctx      context.Context
	start    time.Time
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.backend = testutil.NewFlakyBackend(memory.New())
	s.store = storage.New(s.backend, storage.DefaultOptions())
	s.clock = mocks.NewMockClock(s.start)
	s.registry = New(s.store, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RegistrySuite) finished(p *model.PlayerProfile, score int, won bool) *model.Session {
	return &model.Session{
		ID:         "session-1",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Mode:       model.ModeNormal,
		StartTime:  s.clock.CurrentTime,
		EndTime:    s.clock.CurrentTime.Add(time.Minute),
		FinalScore: score,
		Won:        won,
	}
}

// ResolveOrCreate tests

func (s *RegistrySuite) TestResolveOrCreateCreatesNewProfile() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Equal(model.NewPlayerID("Alice"), p.ID)
	s.Equal("Alice", p.Name)
	s.Equal(0, p.TotalGames)
	s.Equal(0, p.TotalWins)
	s.Equal(0, p.BestScore)
	s.Equal(s.start, p.CreatedDate)
	s.Equal(s.start, p.LastPlayed)
}

func (s *RegistrySuite) TestResolveOrCreatePersistsImmediately() {
	_, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	profiles, err := s.store.Profiles.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 1)
	s.Equal("Alice", profiles[0].Name)
}

func (s *RegistrySuite) TestResolveOrCreateIsCaseInsensitive() {
	first, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	second, err := s.registry.ResolveOrCreate(s.ctx, "  ALICE ")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("Alice", second.Name, "the first display name is kept")
	s.Equal(s.start, second.CreatedDate)

	profiles, err := s.registry.List(s.ctx)
	s.Require().NoError(err)
	s.Len(profiles, 1)
}

func (s *RegistrySuite) TestResolveOrCreateBlankNameIsAnonymous() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "   ")
	s.Require().NoError(err)
	s.Equal(model.AnonymousName, p.Name)
	s.Equal(model.NewPlayerID(model.AnonymousName), p.ID)
}

func (s *RegistrySuite) TestResolveOrCreateKeepsCreationOrder() {
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := s.registry.ResolveOrCreate(s.ctx, name)
		s.Require().NoError(err)
	}

	profiles, err := s.registry.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 3)
	s.Equal("Carol", profiles[0].Name)
	s.Equal("Alice", profiles[1].Name)
	s.Equal("Bob", profiles[2].Name)
}

func (s *RegistrySuite) TestResolveOrCreateFailsOnCorruptProfiles() {
	s.Require().NoError(s.backend.Write(s.ctx, model.CollectionProfiles, []byte("[{broken")))

	_, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrProfile)
	s.ErrorIs(err, model.ErrCorruptCollection)
}

func (s *RegistrySuite) TestResolveOrCreateFailsWhenSaveFails() {
	s.backend.FailWrites(model.CollectionProfiles, errors.New("read-only file system"))

	_, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrProfile)
	s.ErrorIs(err, model.ErrPersistence)
}

// RecordCompletion tests

func (s *RegistrySuite) TestRecordCompletionCountsGamesAndWins() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, 50, true))
	s.Require().NoError(err)
	s.Equal(1, updated.TotalGames)
	s.Equal(1, updated.TotalWins)
	s.Equal(50, updated.BestScore)

	updated, err = s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, 20, false))
	s.Require().NoError(err)
	s.Equal(2, updated.TotalGames)
	s.Equal(1, updated.TotalWins)
	s.Equal(50, updated.BestScore)
	s.Equal(0.5, updated.WinRate())
}

func (s *RegistrySuite) TestRecordCompletionFirstNegativeScoreBecomesBest() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Dave")
	s.Require().NoError(err)

	updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, -15, false))
	s.Require().NoError(err)
	s.Equal(-15, updated.BestScore)
	s.Equal(1, updated.TotalGames)
	s.Equal(0, updated.TotalWins)
}

func (s *RegistrySuite) TestRecordCompletionBestScoreNeverDecreases() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	best := 0
	for i, score := range []int{-5, 30, 10, 55, -20, 40} {
		updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, score, score >= model.WinningScore))
		s.Require().NoError(err)
		if i == 0 || score > best {
			best = score
		}
		s.Equal(best, updated.BestScore)
		s.Equal(i+1, updated.TotalGames)
		s.LessOrEqual(updated.TotalWins, updated.TotalGames)
	}
}

func (s *RegistrySuite) TestRecordCompletionUpdatesLastPlayed() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Minute)
	updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, 10, false))
	s.Require().NoError(err)
	s.Equal(s.start.Add(10*time.Minute), updated.LastPlayed)
	s.Equal(s.start, updated.CreatedDate)
}

func (s *RegistrySuite) TestRecordCompletionUnknownPlayer() {
	ghost := &model.PlayerProfile{ID: model.NewPlayerID("Ghost"), Name: "Ghost"}

	_, err := s.registry.RecordCompletion(s.ctx, ghost.ID, s.finished(ghost, 10, false))
	s.ErrorIs(err, model.ErrProfile)
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *RegistrySuite) TestRecordCompletionSaveFailureStillReturnsProfile() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	s.backend.FailWrites(model.CollectionProfiles, errors.New("disk full"))
	updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, 30, false))
	s.ErrorIs(err, model.ErrPersistence)
	s.ErrorIs(err, model.ErrProfile)
	s.Contains(err.Error(), string(p.ID))
	s.Require().NotNil(updated)
	s.Equal(1, updated.TotalGames)

	s.backend.Heal()
	stored, err := s.registry.Get(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(0, stored.TotalGames, "the stored profile is unchanged after a failed save")
}

func (s *RegistrySuite) TestRecordCompletionLoadFailureNamesThePlayer() {
	p, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)

	s.backend.FailReads(model.CollectionProfiles, errors.New("i/o timeout"))
	updated, err := s.registry.RecordCompletion(s.ctx, p.ID, s.finished(p, 30, false))
	s.Nil(updated)
	s.ErrorIs(err, model.ErrProfile)
	s.ErrorIs(err, model.ErrPersistence)

	var profileErr *model.ProfileError
	s.Require().ErrorAs(err, &profileErr)
	s.Equal(p.ID, profileErr.PlayerID)
}

func (s *RegistrySuite) TestRecordCompletionLeavesOtherProfilesAlone() {
	alice, err := s.registry.ResolveOrCreate(s.ctx, "Alice")
	s.Require().NoError(err)
	_, err = s.registry.ResolveOrCreate(s.ctx, "Bob")
	s.Require().NoError(err)

	_, err = s.registry.RecordCompletion(s.ctx, alice.ID, s.finished(alice, 50, true))
	s.Require().NoError(err)

	bob, err := s.registry.Get(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(0, bob.TotalGames)
}

// Get tests

func (s *RegistrySuite) TestGetMissingPlayer() {
	_, err := s.registry.Get(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrProfileNotFound)
}
