package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/brainplay/internal/model"
	redisstorage "github.com/mcoot/brainplay/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete game flow from first question to win
func (s *IntegrationSuite) TestCompleteWinningGame() {
	s.app.MockRandom.QueueUUID("session-win")
	for base := 2; base <= 6; base++ {
		s.app.QueueSquare(base)
	}

	sess, err := s.app.PlayAnswers(s.ctx, "Alice", model.ModeNormal, "4", "9", "16", "25", "36")
	s.Require().NoError(err)
	s.True(sess.Won)
	s.Equal(50, sess.FinalScore)
	s.Equal("What is 6²? (What is 6 squared?)", sess.Rounds[4].QuestionText)

	// Profile updated
	p, err := s.app.Profiles.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, p.TotalGames)
	s.Equal(1, p.TotalWins)
	s.Equal(50, p.BestScore)

	// Reporting sees the session
	overview, err := s.app.Stats.Overview(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, overview.TotalSessions)
	s.Equal(1, overview.WonSessions)
	s.Equal(1, overview.TotalPlayers)

	recent, err := s.app.Stats.RecentHistories(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(model.SessionID("session-win"), recent[0].SessionID)
	s.Len(recent[0].Rounds, 5)
}

// Test: Mixed question variants are scored and recorded
func (s *IntegrationSuite) TestMixedQuestionTypes() {
	s.app.QueueSquare(3)
	s.app.QueueSquareRoot(12)
	s.app.QueueSquare(5)

	sess, err := s.app.PlayAnswers(s.ctx, "Bob", model.ModeNormal, "9", "12", "24")
	s.Require().NoError(err)
	s.False(sess.Won)
	s.Equal(15, sess.FinalScore)

	summary := s.app.Stats.SummarizeRounds(sess.Rounds)
	s.Equal(2, summary.Correct)
	s.Equal(1, summary.Wrong)
	s.Equal(2, summary.ByType[model.QuestionTypeSquare])
	s.Equal(1, summary.ByType[model.QuestionTypeSquareRoot])
	s.Equal("What is √144? (What is the square root of 144?)", sess.Rounds[1].QuestionText)
}

// Test: A returning player accumulates across sessions
func (s *IntegrationSuite) TestReturningPlayer() {
	s.app.QueueSquare(2)
	_, err := s.app.PlayAnswers(s.ctx, "Carol", model.ModeEasy, "5")
	s.Require().NoError(err)

	s.app.QueueSquare(2)
	s.app.QueueSquare(3)
	_, err = s.app.PlayAnswers(s.ctx, "  CAROL", model.ModeEasy, "4", "9")
	s.Require().NoError(err)

	profiles, err := s.app.Profiles.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 1)
	s.Equal("Carol", profiles[0].Name)
	s.Equal(2, profiles[0].TotalGames)
	s.Equal(0, profiles[0].TotalWins)
	s.Equal(20, profiles[0].BestScore)
}

// Test: Standings rank players by best score
func (s *IntegrationSuite) TestStandingsAcrossPlayers() {
	s.app.QueueSquare(2)
	_, err := s.app.PlayAnswers(s.ctx, "Dave", model.ModeNormal, "4")
	s.Require().NoError(err)

	s.app.QueueSquare(2)
	s.app.QueueSquare(2)
	_, err = s.app.PlayAnswers(s.ctx, "Erin", model.ModeNormal, "4", "4")
	s.Require().NoError(err)

	standings, err := s.app.Stats.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 2)
	s.Equal("Erin", standings[0].Name)
	s.Equal(standings[0].ID, s.app.Stats.Leader(standings))
}

// Test: The file backend keeps state across application instances
func (s *IntegrationSuite) TestFileBackendSurvivesRestart() {
	dir := s.T().TempDir()

	app, err := New(Config{StorageType: StorageTypeFile, DataDir: dir})
	s.Require().NoError(err)
	s.playOneCorrectRound(app, "Frank")
	s.Require().NoError(app.Close())

	for _, c := range model.Collections {
		_, err := os.Stat(filepath.Join(dir, string(c)+".json"))
		s.NoError(err, c)
	}

	reopened, err := New(Config{StorageType: StorageTypeFile, DataDir: dir})
	s.Require().NoError(err)
	p, err := reopened.Profiles.Get(s.ctx, "Frank")
	s.Require().NoError(err)
	s.Equal(1, p.TotalGames)
	s.Equal(10, p.BestScore)
}

// Test: The redis backend serves the same flow
func (s *IntegrationSuite) TestRedisBackend() {
	mr := miniredis.RunT(s.T())
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg})
	s.Require().NoError(err)
	defer app.Close()

	s.playOneCorrectRound(app, "Grace")

	s.True(mr.Exists("brainplay:collection:profiles"))
	s.True(mr.Exists("brainplay:collection:sessions"))
	s.True(mr.Exists("brainplay:collection:round_histories"))
}

func (s *IntegrationSuite) TestRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestInvalidStorageType() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)
}

func (s *IntegrationSuite) TestMemoryBackend() {
	app, err := New(Config{StorageType: StorageTypeMemory})
	s.Require().NoError(err)
	s.playOneCorrectRound(app, "Heidi")

	sessions, err := app.Store.Sessions.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 1)
}

// playOneCorrectRound answers one real question correctly, then quits
func (s *IntegrationSuite) playOneCorrectRound(app *App, name string) {
	run, err := app.SessionController.Begin(s.ctx, name, model.ModeNormal)
	s.Require().NoError(err)

	q, err := app.SessionController.NextQuestion(s.ctx, run)
	s.Require().NoError(err)
	turn, err := app.SessionController.SubmitAnswer(s.ctx, run, fmt.Sprint(q.Answer))
	s.Require().NoError(err)
	s.True(turn.Round.IsCorrect)

	_, err = app.SessionController.Quit(s.ctx, run)
	s.Require().NoError(err)
}
