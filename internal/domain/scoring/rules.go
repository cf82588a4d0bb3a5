package scoring

import (
	"context"

	"github.com/okian/advisor/internal/domain/model"
)

// trainingModel recommends trainings available in the seeker's area.
type trainingModel struct{}

func (trainingModel) Score(ctx context.Context, p *Project) (float64, error) {
	trainings, err := p.Trainings(ctx)
	if err != nil {
		return 0, err
	}
	if len(trainings) == 0 {
		return 0, nil
	}
	months := p.Details().JobSearchLengthMonths
	switch {
	case p.Details().Kind == model.KindReorientation, months >= 3:
		return 3, nil
	case months >= 1:
		return 2, nil
	default:
		return 1, nil
	}
}

// TrainingsData lists the trainings backing the training advice.
type TrainingsData struct {
	Trainings []model.Training `json:"trainings"`
}

func (trainingModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	trainings, err := p.Trainings(ctx)
	if err != nil || len(trainings) == 0 {
		return nil, err
	}
	return TrainingsData{Trainings: trainings}, nil
}

type lifeBalanceModel struct{ noExtraData }

func (lifeBalanceModel) Score(_ context.Context, p *Project) (float64, error) {
	if p.Profile().HasHandicap {
		return 0, nil
	}
	if p.Details().JobSearchLengthMonths > 3 {
		return 1, nil
	}
	return 0, nil
}

// vaeModel suggests validating experience in place of a diploma.
type vaeModel struct{ noExtraData }

func (vaeModel) Score(_ context.Context, p *Project) (float64, error) {
	d := p.Details()
	if d.TrainingFulfillmentEstimate == model.TrainingEnoughDiplomas {
		return 0, nil
	}
	if d.Seniority != model.SenioritySenior && d.Seniority != model.SeniorityExpert {
		return 0, nil
	}
	score := 1
	if d.TrainingFulfillmentEstimate == model.TrainingEnoughExperience {
		score++
	}
	if p.Profile().HasFrustration(model.FrustrationTraining) {
		score++
	}
	if d.Seniority == model.SeniorityExpert {
		score++
	}
	return float64(min(score, maxScore)), nil
}

const (
	seniorAge           = 50
	discriminatedSenior = 40
)

type seniorModel struct{ noExtraData }

func (seniorModel) Score(_ context.Context, p *Project) (float64, error) {
	age := p.Age()
	if age >= seniorAge {
		return 2, nil
	}
	if age >= discriminatedSenior && p.Profile().HasFrustration(model.FrustrationAgeDiscrimination) {
		return 2, nil
	}
	return 0, nil
}

type lessApplicationsModel struct{ noExtraData }

func (lessApplicationsModel) Score(_ context.Context, p *Project) (float64, error) {
	if p.Details().WeeklyApplicationsEstimate >= model.VolumeDecent {
		return 3, nil
	}
	return 0, nil
}

// otherWorkEnvModel points at other kinds of employers hiring for the job.
type otherWorkEnvModel struct{}

func (otherWorkEnvModel) Score(ctx context.Context, p *Project) (float64, error) {
	info, ok, err := p.JobGroupInfo(ctx)
	if err != nil || !ok {
		return 0, err
	}
	keywords := info.WorkEnvironmentKeywords
	if len(keywords.Structures) >= 2 || len(keywords.Sectors) >= 2 {
		return 2, nil
	}
	return 0, nil
}

func (m otherWorkEnvModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	score, err := m.Score(ctx, p)
	if err != nil || score <= 0 {
		return nil, err
	}
	info, _, err := p.JobGroupInfo(ctx)
	if err != nil {
		return nil, err
	}
	return info.WorkEnvironmentKeywords, nil
}
