package scoring

import (
	"context"
	"sort"

	"github.com/okian/advisor/internal/domain/model"
)

// MissionsData lists volunteering missions for the seeker's area.
type MissionsData struct {
	Missions []model.VolunteeringMission `json:"missions"`
}

// volunteerModel suggests volunteering to seekers who just started or who
// have been searching for a long time.
type volunteerModel struct{}

func (volunteerModel) Score(ctx context.Context, p *Project) (float64, error) {
	missions, err := p.VolunteeringMissions(ctx)
	if err != nil || len(missions) == 0 {
		return 0, err
	}
	months := p.Details().JobSearchLengthMonths
	switch {
	case months >= 9:
		return 2, nil
	case months < 3:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m volunteerModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	score, err := m.Score(ctx, p)
	if err != nil || score <= 0 {
		return nil, err
	}
	return m.CardData(ctx, p)
}

// CardData lists local missions first, then missions available everywhere.
func (volunteerModel) CardData(ctx context.Context, p *Project) (any, error) {
	missions, err := p.VolunteeringMissions(ctx)
	if err != nil {
		return nil, err
	}
	return MissionsData{Missions: missions}, nil
}

const (
	maxSeasonalDepartements = 3
	seasonalMaxAge          = 36
	seasonalMaxSearchMonths = 6
)

// SeasonalData lists the departements with the most seasonal offers.
type SeasonalData struct {
	Departements []model.SeasonalDepartement `json:"departements"`
}

// seasonalRelocateModel suggests young seekers move for a seasonal job.
type seasonalRelocateModel struct{}

func seasonalDepartements(ctx context.Context, p *Project) ([]model.SeasonalDepartement, error) {
	all, err := p.SeasonalJobbing(ctx)
	if err != nil {
		return nil, err
	}
	var withOffers []model.SeasonalDepartement
	for _, d := range all {
		if d.Offers > 0 {
			withOffers = append(withOffers, d)
		}
	}
	return withOffers, nil
}

func (seasonalRelocateModel) Score(ctx context.Context, p *Project) (float64, error) {
	departements, err := seasonalDepartements(ctx, p)
	if err != nil || len(departements) == 0 {
		return 0, err
	}
	age := p.Age()
	d := p.Details()
	if age > 0 && age < seasonalMaxAge &&
		d.Kind != model.KindReorientation &&
		d.JobSearchLengthMonths <= seasonalMaxSearchMonths {
		return 2, nil
	}
	return 0, nil
}

func (m seasonalRelocateModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	score, err := m.Score(ctx, p)
	if err != nil || score <= 0 {
		return nil, err
	}
	departements, err := seasonalDepartements(ctx, p)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(departements, func(i, j int) bool {
		return departements[i].Offers > departements[j].Offers
	})
	if len(departements) > maxSeasonalDepartements {
		departements = departements[:maxSeasonalDepartements]
	}
	return SeasonalData{Departements: departements}, nil
}
