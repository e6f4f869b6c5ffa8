package factory

import (
	"context"
	"time"

	"github.com/mcoot/brainplay/internal/dependencies/mocks"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/storage"
	"github.com/mcoot/brainplay/internal/storage/memory"
	"github.com/mcoot/brainplay/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := storage.New(memory.New(), storage.DefaultOptions())
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := testutil.NopLogger()

	app := newWithDependencies(store, mockClock, mockRandom, logger, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueSquare makes the next question "What is base²?"
func (t *TestApp) QueueSquare(base int) {
	// first pick selects the variant, second the base
	t.MockRandom.QueueIntn(0, base-1)
}

// QueueSquareRoot makes the next question "What is √(root²)?"
func (t *TestApp) QueueSquareRoot(root int) {
	t.MockRandom.QueueIntn(1, root-1)
}

// PlayAnswers runs a full session for name, answering each queued question with
// the matching entry of answers. The session is quit when answers run out
// before it is won.
func (t *TestApp) PlayAnswers(ctx context.Context, name string, mode model.Mode, answers ...string) (*model.Session, error) {
	run, err := t.SessionController.Begin(ctx, name, mode)
	if err != nil {
		return nil, err
	}

	for _, answer := range answers {
		if run.State().IsTerminal() {
			break
		}
		if _, err := t.SessionController.NextQuestion(ctx, run); err != nil {
			return nil, err
		}
		if _, err := t.SessionController.SubmitAnswer(ctx, run, answer); err != nil {
			return nil, err
		}
	}

	if !run.State().IsTerminal() {
		if _, err := t.SessionController.Quit(ctx, run); err != nil {
			return nil, err
		}
	}

	outcome := run.Outcome()
	return &outcome.Session, nil
}
