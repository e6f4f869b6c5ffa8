package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/brainplay/internal/factory"
	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/services/session"
)

// game runs one interactive session against an input stream
type game struct {
	app    *factory.App
	cfg    *Config
	out    *Output
	in     *lineReader
	logger *slog.Logger
}

func (g *game) play(ctx context.Context) error {
	name := g.cfg.Player
	if strings.TrimSpace(name) == "" {
		g.out.Prompt(fmt.Sprintf("Enter your name (or press Enter for '%s'): ", model.AnonymousName))
		line, ok := g.in.Next(ctx)
		if !ok && ctx.Err() != nil {
			return nil
		}
		name = line
	}

	// Only waiting for input observes an interrupt; everything after it,
	// including the final save, runs to completion
	persistCtx := context.WithoutCancel(ctx)

	controller := g.app.SessionController
	run, err := controller.Begin(persistCtx, name, g.cfg.GameMode())
	if err != nil {
		return err
	}

	p := run.Profile()
	g.out.Print(WelcomeView{
		Event:      "welcome",
		SessionID:  string(run.Session().ID),
		Player:     p.Name,
		Mode:       string(run.Session().Mode),
		TotalGames: p.TotalGames,
		TotalWins:  p.TotalWins,
	})

	var finishErr error
	for !run.State().IsTerminal() {
		q, err := controller.NextQuestion(persistCtx, run)
		if err != nil {
			g.logger.Error("failed to generate question", slog.String("error", err.Error()))
			_, quitErr := controller.Quit(persistCtx, run)
			finishErr = errors.Join(err, quitErr)
			break
		}

		view := QuestionView{
			Event: "question",
			Round: len(run.Session().Rounds) + 1,
			Type:  string(q.Type),
			Text:  q.Text,
		}
		if g.cfg.Hints {
			view.Hint = q.Hint
		}
		g.out.Print(view)
		g.out.Prompt("Your answer: ")

		line, ok := g.in.Next(ctx)
		if !ok {
			g.logger.Info("input closed, ending session")
			g.out.Prompt("\n")
			_, finishErr = controller.Quit(persistCtx, run)
			break
		}

		turn, err := controller.SubmitAnswer(persistCtx, run, line)
		if turn.Round != nil {
			g.out.Print(newTurnView(turn))
		}
		if err != nil {
			finishErr = err
		}
	}

	g.printOutcome(run)
	if finishErr != nil {
		return fmt.Errorf("saving game: %w", finishErr)
	}
	return nil
}

func (g *game) printOutcome(run *session.Run) {
	outcome := run.Outcome()
	if outcome == nil {
		return
	}
	g.out.Print(newOutcomeView(outcome, g.app.Stats.SummarizeRounds(outcome.Session.Rounds)))
}
