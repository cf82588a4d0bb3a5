package scoring

import (
	"context"
	"math"

	"github.com/okian/advisor/internal/domain/model"
)

const (
	minScore = 0
	maxScore = 3
)

// Constant scores every project with the same value.
type Constant struct {
	noExtraData
	value float64
}

// NewConstant creates a model that always returns k.
func NewConstant(k int) *Constant {
	return &Constant{value: float64(k)}
}

// Score returns the constant.
func (c *Constant) Score(context.Context, *Project) (float64, error) {
	return c.value, nil
}

// Aggregation blends signals, each in [0,3], into one score.
type Aggregation func(signals []float64) float64

// WeightedMean averages signals with the given weights. Signals beyond the
// last weight count with weight 1.
func WeightedMean(weights ...float64) Aggregation {
	return func(signals []float64) float64 {
		var sum, total float64
		for i, s := range signals {
			w := 1.0
			if i < len(weights) {
				w = weights[i]
			}
			sum += w * s
			total += w
		}
		if total == 0 {
			return 0
		}
		return sum / total
	}
}

// DefaultModel is the baseline used when no specific advice applies. It
// rates the general health of the project from a few signals.
type DefaultModel struct {
	noExtraData
	aggregate Aggregation
}

// DefaultOption applies a configuration option to the DefaultModel.
type DefaultOption func(*DefaultModel)

// WithAggregation sets how the signals are blended.
func WithAggregation(agg Aggregation) DefaultOption {
	return func(m *DefaultModel) {
		if agg != nil {
			m.aggregate = agg
		}
	}
}

// NewDefaultModel creates the baseline model. Search freshness weighs twice
// as much as offers and morale by default.
func NewDefaultModel(opts ...DefaultOption) *DefaultModel {
	m := &DefaultModel{
		aggregate: WeightedMean(2, 1, 1),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Score blends the signals and clamps the result to [0,3].
func (m *DefaultModel) Score(_ context.Context, p *Project) (float64, error) {
	signals := []float64{
		searchFreshness(p.Details().JobSearchLengthMonths),
		offersSignal(p.Details().WeeklyOffersEstimate),
		moraleSignal(p.Profile()),
	}
	score := m.aggregate(signals)
	if math.IsNaN(score) {
		return minScore, nil
	}
	return math.Max(minScore, math.Min(maxScore, score)), nil
}

func searchFreshness(months int) float64 {
	switch {
	case months < 3:
		return 3
	case months < 6:
		return 2
	case months < 12:
		return 1
	default:
		return 0
	}
}

func offersSignal(v model.Volume) float64 {
	switch v {
	case model.VolumeALot:
		return 3
	case model.VolumeDecent:
		return 2
	case model.VolumeSome, model.UnknownVolume:
		return 1
	default:
		return 0
	}
}

func moraleSignal(profile model.Profile) float64 {
	return maxScore - math.Min(maxScore, float64(len(profile.Frustrations)))
}
