package scoring

import (
	"context"

	"github.com/okian/advisor/internal/domain/filter"
	"github.com/okian/advisor/internal/domain/model"
)

//nolint:gochecknoglobals // persisted filter expressions
var wowBakerFilters = []string{"for-job-group(D1102)", "not-for-job(12006)"}

// filteredModel scores a fixed value when its filters match the project.
type filteredModel struct {
	noExtraData
	filters filter.List
	score   float64
}

func newFilteredModel(filters []string, score float64) (filteredModel, error) {
	list, err := filter.ParseAll(filters)
	if err != nil {
		return filteredModel{}, err
	}
	return filteredModel{filters: list, score: score}, nil
}

func (m filteredModel) Score(_ context.Context, p *Project) (float64, error) {
	if m.filters.Matches(p) {
		return m.score, nil
	}
	return 0, nil
}

// specificToJobModel shows the first job specific advice whose filters match.
type specificToJobModel struct{}

func firstSpecificToJobAdvice(ctx context.Context, p *Project) (model.SpecificToJobAdvice, bool, error) {
	all, err := p.SpecificToJobAdvice(ctx)
	if err != nil {
		return model.SpecificToJobAdvice{}, false, err
	}
	for _, advice := range all {
		ok, err := filter.Matches(advice.Filters, p)
		if err != nil {
			return model.SpecificToJobAdvice{}, false, err
		}
		if ok {
			return advice, true, nil
		}
	}
	return model.SpecificToJobAdvice{}, false, nil
}

func (specificToJobModel) Score(ctx context.Context, p *Project) (float64, error) {
	_, ok, err := firstSpecificToJobAdvice(ctx, p)
	if err != nil || !ok {
		return 0, err
	}
	return 3, nil
}

func (specificToJobModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	advice, ok, err := firstSpecificToJobAdvice(ctx, p)
	if err != nil || !ok {
		return nil, err
	}
	return advice, nil
}

// AssociationData names the association backing the association advice.
type AssociationData struct {
	AssociationName string `json:"associationName"`
	Link            string `json:"link,omitempty"`
}

type associationHelpModel struct{}

func firstAssociation(ctx context.Context, p *Project) (model.Association, bool, error) {
	all, err := p.Associations(ctx)
	if err != nil {
		return model.Association{}, false, err
	}
	for _, a := range all {
		ok, err := filter.Matches(a.Filters, p)
		if err != nil {
			return model.Association{}, false, err
		}
		if ok {
			return a, true, nil
		}
	}
	return model.Association{}, false, nil
}

func (associationHelpModel) Score(ctx context.Context, p *Project) (float64, error) {
	_, ok, err := firstAssociation(ctx, p)
	if err != nil || !ok {
		return 0, err
	}
	if p.Details().JobSearchLengthMonths >= 6 {
		return 2, nil
	}
	return 1, nil
}

func (associationHelpModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	a, ok, err := firstAssociation(ctx, p)
	if err != nil || !ok {
		return nil, err
	}
	return AssociationData{AssociationName: a.Name, Link: a.Link}, nil
}
