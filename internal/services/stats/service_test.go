package stats

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
	"github.com/mcoot/brainplay/internal/storage/memory"
	"github.com/mcoot/brainplay/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *storage.Store
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = storage.New(memory.New(), storage.DefaultOptions())
	s.service = New(s.store, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) profile(name string, best, wins int) model.PlayerProfile {
	return model.PlayerProfile{ID: model.NewPlayerID(name), Name: name, BestScore: best, TotalWins: wins, TotalGames: wins + 1}
}

// Overview tests

func (s *ServiceSuite) TestOverviewEmptyStore() {
	o, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)
	s.Equal(Overview{}, o)
}

func (s *ServiceSuite) TestOverviewTotals() {
	s.Require().NoError(s.store.Sessions.Save(s.ctx, []model.SessionRecord{
		{SessionID: "s-1", FinalScore: 50, Won: true},
		{SessionID: "s-2", FinalScore: 20},
		{SessionID: "s-3", FinalScore: -10},
		{SessionID: "s-4", FinalScore: 60, Won: true},
	}))
	s.Require().NoError(s.store.Profiles.Save(s.ctx, []model.PlayerProfile{s.profile("Alice", 60, 2), s.profile("Bob", 20, 0)}))

	o, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, o.TotalSessions)
	s.Equal(2, o.WonSessions)
	s.InDelta(50.0, o.WinRate, 0.001)
	s.InDelta(30.0, o.AverageScore, 0.001)
	s.Equal(2, o.TotalPlayers)
}

func (s *ServiceSuite) TestOverviewCorruptSessions() {
	s.Require().NoError(s.store.Backend().Write(s.ctx, model.CollectionSessions, []byte("nope")))

	_, err := s.service.Overview(s.ctx)
	s.ErrorIs(err, model.ErrCorruptCollection)
}

// RecentHistories tests

func (s *ServiceSuite) TestRecentHistoriesNewestFirstAndLimited() {
	for i := 1; i <= 12; i++ {
		s.Require().NoError(s.store.Histories.Append(s.ctx, model.RoundHistory{SessionID: model.SessionID(fmt.Sprintf("s-%d", i))}))
	}

	recent, err := s.service.RecentHistories(s.ctx, DefaultHistoryLimit)
	s.Require().NoError(err)
	s.Require().Len(recent, 10)
	s.Equal(model.SessionID("s-12"), recent[0].SessionID)
	s.Equal(model.SessionID("s-3"), recent[9].SessionID)
}

func (s *ServiceSuite) TestRecentHistoriesWithoutLimit() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.store.Histories.Append(s.ctx, model.RoundHistory{SessionID: model.SessionID(fmt.Sprintf("s-%d", i))}))
	}

	recent, err := s.service.RecentHistories(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(recent, 3)
}

// SummarizeRounds tests

func (s *ServiceSuite) TestSummarizeRounds() {
	rounds := []model.Round{
		{RoundNumber: 1, QuestionType: model.QuestionTypeSquare, PointsEarned: -5},
		{RoundNumber: 2, QuestionType: model.QuestionTypeSquare, IsCorrect: true, PointsEarned: 10},
		{RoundNumber: 3, QuestionType: model.QuestionTypeSquareRoot, IsCorrect: true, PointsEarned: 10},
		{RoundNumber: 4, QuestionType: model.QuestionTypeSquareRoot, IsCorrect: true, PointsEarned: 10},
	}

	st := s.service.SummarizeRounds(rounds)
	s.Equal(4, st.Rounds)
	s.Equal(3, st.Correct)
	s.Equal(1, st.Wrong)
	s.InDelta(75.0, st.Accuracy, 0.001)
	s.Equal(25, st.TotalPoints)
	s.InDelta(6.25, st.AveragePoints, 0.001)
	s.Equal(2, st.ByType[model.QuestionTypeSquare])
	s.Equal(2, st.ByType[model.QuestionTypeSquareRoot])
}

func (s *ServiceSuite) TestSummarizeNoRounds() {
	st := s.service.SummarizeRounds(nil)
	s.Equal(0, st.Rounds)
	s.Zero(st.Accuracy)
	s.Zero(st.AveragePoints)
}

// Ranking tests

func (s *ServiceSuite) TestRankPlayersByBestThenWins() {
	ranked := s.service.RankPlayers([]model.PlayerProfile{
		s.profile("Carol", 30, 0),
		s.profile("Alice", 60, 1),
		s.profile("Bob", 60, 3),
	})

	s.Require().Len(ranked, 3)
	s.Equal("Bob", ranked[0].Name)
	s.Equal("Alice", ranked[1].Name)
	s.Equal("Carol", ranked[2].Name)
}

func (s *ServiceSuite) TestRankPlayersDoesNotModifyInput() {
	profiles := []model.PlayerProfile{s.profile("Carol", 10, 0), s.profile("Alice", 60, 1)}
	s.service.RankPlayers(profiles)
	s.Equal("Carol", profiles[0].Name)
}

func (s *ServiceSuite) TestLeaderSinglePlayer() {
	alice := s.profile("Alice", 60, 1)
	s.Equal(alice.ID, s.service.Leader([]model.PlayerProfile{alice}))
}

func (s *ServiceSuite) TestLeaderTie() {
	ranked := s.service.RankPlayers([]model.PlayerProfile{s.profile("Alice", 60, 1), s.profile("Bob", 60, 1)})
	s.Equal(model.PlayerID(""), s.service.Leader(ranked))
}

func (s *ServiceSuite) TestLeaderEmpty() {
	s.Equal(model.PlayerID(""), s.service.Leader(nil))
}

func (s *ServiceSuite) TestStandingsLoadsFromStore() {
	s.Require().NoError(s.store.Profiles.Save(s.ctx, []model.PlayerProfile{s.profile("Alice", 10, 0), s.profile("Bob", 40, 0)}))

	standings, err := s.service.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 2)
	s.Equal("Bob", standings[0].Name)
}
