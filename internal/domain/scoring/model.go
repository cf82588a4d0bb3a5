// Package scoring rates how relevant each piece of advice is for a job
// seeker. A Model scores a Project on a 0 to 3 scale: 0 not relevant, 1 weakly
// relevant, 2 relevant, 3 strongly relevant.
package scoring

import "context"

// Model scores a project for one piece of advice.
type Model interface {
	// Score rates the project. It is deterministic for a given Project.
	// Negative values mark advice that should be actively avoided.
	Score(ctx context.Context, p *Project) (float64, error)
	// ExtraData returns the facts backing a match, or nil when there are
	// none, including for projects the model scores 0.
	ExtraData(ctx context.Context, p *Project) (any, error)
}

// CardDataProvider is implemented by models that expose the data for the
// expanded advice card.
type CardDataProvider interface {
	CardData(ctx context.Context, p *Project) (any, error)
}

type noExtraData struct{}

func (noExtraData) ExtraData(context.Context, *Project) (any, error) { return nil, nil }
