package cli

import (
	"context"

	"github.com/mcoot/brainplay/internal/factory"
	"github.com/mcoot/brainplay/internal/services/stats"
)

func showHistory(ctx context.Context, app *factory.App, out *Output) error {
	histories, err := app.Stats.RecentHistories(ctx, stats.DefaultHistoryLimit)
	if err != nil {
		return err
	}
	out.Print(HistoryView{Histories: histories})
	return nil
}

func showStats(ctx context.Context, app *factory.App, out *Output) error {
	overview, err := app.Stats.Overview(ctx)
	if err != nil {
		return err
	}
	standings, err := app.Stats.Standings(ctx)
	if err != nil {
		return err
	}

	view := StatsView{
		Overview: overview,
		Players:  make([]ProfileView, 0, len(standings)),
	}
	for _, p := range standings {
		view.Players = append(view.Players, newProfileView(p))
	}
	if leader := app.Stats.Leader(standings); leader != "" {
		view.Leader = standings[0].Name
	}

	out.Print(view)
	return nil
}
