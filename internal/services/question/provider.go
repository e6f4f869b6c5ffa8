package question

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/brainplay/internal/dependencies/random"
	"github.com/mcoot/brainplay/internal/model"
)

// Provider picks a question variant uniformly and delegates to its generator
type Provider struct {
	generators []Generator
	random     random.Random
	logger     *slog.Logger
}

// New creates a Provider over the square and square-root variants
func New(random random.Random, logger *slog.Logger) *Provider {
	return NewWithGenerators(random, logger,
		NewSquareGenerator(random),
		NewSquareRootGenerator(random),
	)
}

// NewWithGenerators creates a Provider over an explicit set of variants
func NewWithGenerators(random random.Random, logger *slog.Logger, generators ...Generator) *Provider {
	return &Provider{
		generators: generators,
		random:     random,
		logger:     logger,
	}
}

// Types lists the variants this provider can produce
func (p *Provider) Types() []model.QuestionType {
	types := make([]model.QuestionType, 0, len(p.generators))
	for _, g := range p.generators {
		types = append(types, g.Type())
	}
	return types
}

// Next generates a question for mode
func (p *Provider) Next(ctx context.Context, mode model.Mode) (model.Question, error) {
	if err := ctx.Err(); err != nil {
		return model.Question{}, err
	}
	if len(p.generators) == 0 {
		return model.Question{}, fmt.Errorf("no question generators configured")
	}

	g := p.generators[p.random.Intn(len(p.generators))]
	q, err := g.Generate(mode)
	if err != nil {
		return model.Question{}, err
	}

	p.logger.Debug("question generated",
		slog.String("question_type", string(q.Type)),
		slog.String("difficulty", string(q.Difficulty)),
		slog.Int("answer", q.Answer),
	)
	return q, nil
}
