package scoring_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/domain/reference"
	"github.com/okian/advisor/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

type scoreCase struct {
	name    string
	profile model.Profile
	project func(*model.Project)
	want    float64
}

func runScoreCases(m scoring.Model, r reference.Reader, base model.Project, cases []scoreCase) {
	for _, tc := range cases {
		Convey(tc.name, func() {
			project := base
			if tc.project != nil {
				tc.project(&project)
			}
			So(mustScore(m, newProject(tc.profile, project, r)), ShouldEqual, tc.want)
		})
	}
}

func frustrated(f ...model.Frustration) model.Profile {
	return model.Profile{Frustrations: f}
}

func TestDefaultModel(t *testing.T) {
	Convey("Given the default model", t, func() {
		m := scoring.NewDefaultModel()

		runScoreCases(m, nil, seeker("A1", "69"), []scoreCase{
			{name: "A fresh search with plenty of offers scores 3", project: func(p *model.Project) {
				p.WeeklyOffersEstimate = model.VolumeALot
			}, want: 3},
			{name: "A long search with no offers and many frustrations scores 0",
				profile: frustrated(model.FrustrationNoOffers, model.FrustrationMotivation, model.FrustrationInterview),
				project: func(p *model.Project) {
					p.JobSearchLengthMonths = 18
					p.WeeklyOffersEstimate = model.VolumeNone
				}, want: 0},
			{name: "An unknown offers estimate counts as some offers", project: func(p *model.Project) {
				p.JobSearchLengthMonths = 4
			}, want: 2},
		})

		Convey("When the aggregation is replaced", func() {
			maxOf := func(signals []float64) float64 {
				best := 0.0
				for _, s := range signals {
					best = max(best, s)
				}
				return best
			}
			custom := scoring.NewDefaultModel(scoring.WithAggregation(maxOf))
			project := seeker("A1", "69")
			project.JobSearchLengthMonths = 24

			Convey("Then the score follows it", func() {
				So(mustScore(custom, newProject(model.Profile{}, project, nil)), ShouldEqual, 3)
			})
		})

		Convey("When the aggregation goes out of range", func() {
			wild := scoring.NewDefaultModel(scoring.WithAggregation(func([]float64) float64 { return 12 }))

			Convey("Then the score is clamped", func() {
				So(mustScore(wild, newProject(model.Profile{}, seeker("A1", "69"), nil)), ShouldEqual, 3)
			})
		})

		Convey("Then weighted means weigh extra signals with 1", func() {
			agg := scoring.WeightedMean(2)
			So(agg([]float64{3, 0}), ShouldEqual, 2)
			So(scoring.WeightedMean()(nil), ShouldEqual, 0)
		})
	})
}

func TestTrainingModel(t *testing.T) {
	Convey("Given trainings for bakers in Lyon", t, func() {
		r := newFakeReader().put(reference.Trainings, reference.TrainingsKey("D1102", "69"), model.LocalTrainings{
			ID:        reference.TrainingsKey("D1102", "69"),
			Trainings: []model.Training{{Name: "CAP Boulanger", CityName: "Lyon"}},
		})
		m := mustGet("advice-training")

		runScoreCases(m, r, seeker("D1102", "69"), []scoreCase{
			{name: "A seeker who just started scores 1", want: 1},
			{name: "A seeker searching for a month scores 2", project: func(p *model.Project) {
				p.JobSearchLengthMonths = 1
			}, want: 2},
			{name: "A seeker searching for three months scores 3", project: func(p *model.Project) {
				p.JobSearchLengthMonths = 3
			}, want: 3},
			{name: "A reorientation scores 3", project: func(p *model.Project) {
				p.Kind = model.KindReorientation
			}, want: 3},
			{name: "A seeker elsewhere scores 0", project: func(p *model.Project) {
				p.Mobility.City.DepartementID = "75"
				p.JobSearchLengthMonths = 3
			}, want: 0},
		})

		Convey("Then the trainings are the extra data", func() {
			data, err := m.ExtraData(context.Background(), newProject(model.Profile{}, seeker("D1102", "69"), r))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, scoring.TrainingsData{Trainings: []model.Training{{Name: "CAP Boulanger", CityName: "Lyon"}}})
		})
	})
}

func TestProfileRules(t *testing.T) {
	Convey("Given the life balance model", t, func() {
		runScoreCases(mustGet("advice-life-balance"), nil, seeker("A1", "69"), []scoreCase{
			{name: "A long search scores 1", project: func(p *model.Project) { p.JobSearchLengthMonths = 4 }, want: 1},
			{name: "A three month search scores 0", project: func(p *model.Project) { p.JobSearchLengthMonths = 3 }, want: 0},
			{name: "A seeker with a handicap scores 0", profile: model.Profile{HasHandicap: true},
				project: func(p *model.Project) { p.JobSearchLengthMonths = 12 }, want: 0},
		})
	})

	Convey("Given the VAE model", t, func() {
		runScoreCases(mustGet("advice-vae"), nil, seeker("A1", "69"), []scoreCase{
			{name: "A junior scores 0", project: func(p *model.Project) { p.Seniority = model.SeniorityJunior }, want: 0},
			{name: "A senior scores 1", project: func(p *model.Project) { p.Seniority = model.SenioritySenior }, want: 1},
			{name: "An expert scores 2", project: func(p *model.Project) { p.Seniority = model.SeniorityExpert }, want: 2},
			{name: "An experienced expert frustrated by training caps at 3",
				profile: frustrated(model.FrustrationTraining),
				project: func(p *model.Project) {
					p.Seniority = model.SeniorityExpert
					p.TrainingFulfillmentEstimate = model.TrainingEnoughExperience
				}, want: 3},
			{name: "A senior with enough diplomas scores 0", project: func(p *model.Project) {
				p.Seniority = model.SenioritySenior
				p.TrainingFulfillmentEstimate = model.TrainingEnoughDiplomas
			}, want: 0},
		})
	})

	Convey("Given the senior model", t, func() {
		runScoreCases(mustGet("advice-senior"), nil, seeker("A1", "69"), []scoreCase{
			{name: "A 50 year old scores 2", profile: model.Profile{YearOfBirth: testNow.Year() - 50}, want: 2},
			{name: "A 45 year old scores 0", profile: model.Profile{YearOfBirth: testNow.Year() - 45}, want: 0},
			{name: "A 45 year old reporting age discrimination scores 2", profile: model.Profile{
				YearOfBirth:  testNow.Year() - 45,
				Frustrations: []model.Frustration{model.FrustrationAgeDiscrimination},
			}, want: 2},
			{name: "A 30 year old reporting age discrimination scores 0", profile: model.Profile{
				YearOfBirth:  testNow.Year() - 30,
				Frustrations: []model.Frustration{model.FrustrationAgeDiscrimination},
			}, want: 0},
			{name: "An unknown age scores 0", want: 0},
		})
	})

	Convey("Given the less applications model", t, func() {
		runScoreCases(mustGet("advice-less-applications"), nil, seeker("A1", "69"), []scoreCase{
			{name: "Many applications score 3", project: func(p *model.Project) { p.WeeklyApplicationsEstimate = model.VolumeALot }, want: 3},
			{name: "A decent amount scores 3", project: func(p *model.Project) { p.WeeklyApplicationsEstimate = model.VolumeDecent }, want: 3},
			{name: "Some applications score 0", project: func(p *model.Project) { p.WeeklyApplicationsEstimate = model.VolumeSome }, want: 0},
			{name: "An unknown estimate scores 0", want: 0},
		})
	})
}

func TestOtherWorkEnvModel(t *testing.T) {
	Convey("Given job groups with various work environments", t, func() {
		r := newFakeReader().
			put(reference.JobGroupInfo, "A1", model.JobGroupInfo{RomeID: "A1", WorkEnvironmentKeywords: model.WorkEnvironmentKeywords{
				Structures: []string{"Collectivités", "Entreprises"},
			}}).
			put(reference.JobGroupInfo, "B2", model.JobGroupInfo{RomeID: "B2", WorkEnvironmentKeywords: model.WorkEnvironmentKeywords{
				Structures: []string{"Hôpitaux"},
				Sectors:    []string{"Santé"},
			}})
		m := mustGet("advice-other-work-env")

		runScoreCases(m, r, seeker("A1", "69"), []scoreCase{
			{name: "Two structures score 2", want: 2},
			{name: "One of each scores 0", project: func(p *model.Project) { p.TargetJob.JobGroup.RomeID = "B2" }, want: 0},
			{name: "An unknown job group scores 0", project: func(p *model.Project) { p.TargetJob.JobGroup.RomeID = "Z9" }, want: 0},
		})

		Convey("Then the keywords are the extra data", func() {
			data, err := m.ExtraData(context.Background(), newProject(model.Profile{}, seeker("A1", "69"), r))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, model.WorkEnvironmentKeywords{Structures: []string{"Collectivités", "Entreprises"}})
		})
	})
}

func TestFilteredModels(t *testing.T) {
	Convey("Given the wow baker model", t, func() {
		baker := func(code string) func(*model.Project) {
			return func(p *model.Project) { p.TargetJob.CodeOGR = code }
		}
		runScoreCases(mustGet("advice-wow-baker"), nil, seeker("D1102", "69"), []scoreCase{
			{name: "A baker scores 3", want: 3},
			{name: "A baker with the excluded job scores 0", project: baker("12006"), want: 0},
			{name: "Another job group scores 0", project: func(p *model.Project) { p.TargetJob.JobGroup.RomeID = "D1104" }, want: 0},
		})
	})

	Convey("Given job specific advice", t, func() {
		first := model.SpecificToJobAdvice{Title: "Tournée des vignobles", Filters: []string{"for-job-group(A1405)", "for-departement(69)"}}
		r := newFakeReader().
			put(reference.SpecificToJobAdvice, "0", first).
			put(reference.SpecificToJobAdvice, "1", model.SpecificToJobAdvice{Title: "Vendanges", Filters: []string{"for-job-group(A1405)"}})
		m := mustGet("advice-specific-to-job")

		runScoreCases(m, r, seeker("A1405", "33"), []scoreCase{
			{name: "A matching seeker scores 3", want: 3},
			{name: "Another job group scores 0", project: func(p *model.Project) { p.TargetJob.JobGroup.RomeID = "A1406" }, want: 0},
		})

		Convey("Then the first matching record is the extra data", func() {
			data, err := m.ExtraData(context.Background(), newProject(model.Profile{}, seeker("A1405", "69"), r))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, first)
		})

		Convey("When a record carries a malformed filter", func() {
			broken := newFakeReader().put(reference.SpecificToJobAdvice, "0", model.SpecificToJobAdvice{Filters: []string{"for-job-group"}})

			Convey("Then scoring fails with a configuration error", func() {
				_, err := m.Score(context.Background(), newProject(model.Profile{}, seeker("A1405", "69"), broken))
				So(scoring.IsConfigurationError(err), ShouldBeTrue)
			})
		})
	})

	Convey("Given associations", t, func() {
		r := newFakeReader().
			put(reference.Associations, "0", model.Association{Name: "SNC", Link: "https://snc.asso.fr"}).
			put(reference.Associations, "1", model.Association{Name: "Other", Filters: []string{"for-job-group(A1)"}})
		m := mustGet("advice-association-help")

		runScoreCases(m, r, seeker("A1", "69"), []scoreCase{
			{name: "A recent search scores 1", want: 1},
			{name: "A six month search scores 2", project: func(p *model.Project) { p.JobSearchLengthMonths = 6 }, want: 2},
		})
		runScoreCases(m, newFakeReader(), seeker("A1", "69"), []scoreCase{
			{name: "No association scores 0", want: 0},
		})

		Convey("Then the first matching association is the extra data", func() {
			data, err := m.ExtraData(context.Background(), newProject(model.Profile{}, seeker("A1", "69"), r))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, scoring.AssociationData{AssociationName: "SNC", Link: "https://snc.asso.fr"})
		})
	})
}

func TestVolunteerModel(t *testing.T) {
	Convey("Given missions in Paris and everywhere", t, func() {
		r := newFakeReader().
			put(reference.VolunteeringMissions, "75", model.VolunteeringMissions{
				DepartementID: "75",
				Missions:      []model.VolunteeringMission{{Title: "Soutien scolaire"}},
			}).
			put(reference.VolunteeringMissions, reference.Everywhere, model.VolunteeringMissions{
				Missions: []model.VolunteeringMission{{Title: "Mentorat en ligne"}},
			})
		m := mustGet("advice-volunteer")

		runScoreCases(m, r, seeker("A1", "75"), []scoreCase{
			{name: "A seeker who just started scores 1", want: 1},
			{name: "A seeker searching for six months scores 0", project: func(p *model.Project) { p.JobSearchLengthMonths = 6 }, want: 0},
			{name: "A seeker searching for nine months scores 2", project: func(p *model.Project) { p.JobSearchLengthMonths = 9 }, want: 2},
		})
		runScoreCases(m, newFakeReader(), seeker("A1", "75"), []scoreCase{
			{name: "No mission scores 0", want: 0},
		})

		Convey("When a seeker outside Paris asks for the card", func() {
			data, err := m.(scoring.CardDataProvider).CardData(context.Background(), newProject(model.Profile{}, seeker("A1", "13"), r))

			Convey("Then only missions available everywhere are listed", func() {
				So(err, ShouldBeNil)
				So(data, ShouldResemble, scoring.MissionsData{Missions: []model.VolunteeringMission{
					{Title: "Mentorat en ligne", IsAvailableEverywhere: true},
				}})
			})
		})
	})
}

func TestSeasonalRelocateModel(t *testing.T) {
	Convey("Given seasonal offers in July", t, func() {
		r := newFakeReader().put(reference.SeasonalJobbing, "7", model.SeasonalJobbing{
			Month: "7",
			Departements: []model.SeasonalDepartement{
				{DepartementID: "17", Offers: 400},
				{DepartementID: "06", Offers: 800},
				{DepartementID: "2A", Offers: 0},
				{DepartementID: "83", Offers: 600},
				{DepartementID: "64", Offers: 100},
			},
		})
		m := mustGet("advice-seasonal-relocate")
		young := model.Profile{YearOfBirth: testNow.Year() - 22}

		runScoreCases(m, r, seeker("G1602", "75"), []scoreCase{
			{name: "A young seeker scores 2", profile: young, want: 2},
			{name: "A 36 year old scores 0", profile: model.Profile{YearOfBirth: testNow.Year() - 36}, want: 0},
			{name: "An unknown age scores 0", want: 0},
			{name: "A reorientation scores 0", profile: young, project: func(p *model.Project) { p.Kind = model.KindReorientation }, want: 0},
			{name: "A long search scores 0", profile: young, project: func(p *model.Project) { p.JobSearchLengthMonths = 7 }, want: 0},
		})

		Convey("Then the three departements with the most offers are the extra data", func() {
			data, err := m.ExtraData(context.Background(), newProject(young, seeker("G1602", "75"), r))
			So(err, ShouldBeNil)
			var ids []string
			for _, d := range data.(scoring.SeasonalData).Departements {
				ids = append(ids, d.DepartementID)
			}
			So(ids, ShouldResemble, []string{"06", "83", "17"})
		})

		Convey("When it is December", func() {
			p := scoring.NewProject(young, seeker("G1602", "75"), r,
				scoring.WithNow(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))

			Convey("Then there is no seasonal data", func() {
				So(mustScore(m, p), ShouldEqual, 0)
			})
		})
	})
}

func TestConstantModel(t *testing.T) {
	Convey("Given constant models", t, func() {
		p := newProject(model.Profile{}, seeker("A1", "69"), nil)

		Convey("Then they return their parameter", func() {
			So(mustScore(mustGet("constant(0)"), p), ShouldEqual, 0)
			So(mustScore(mustGet("constant(2)"), p), ShouldEqual, 2)
			So(mustScore(scoring.NewConstant(-1), p), ShouldEqual, -1)
		})

		Convey("Then they share an instance per parameter", func() {
			So(mustGet("constant(2)"), ShouldPointTo, mustGet("constant(2)"))
		})

		Convey("Then they have no extra data", func() {
			data, err := mustGet("constant(3)").ExtraData(context.Background(), p)
			So(err, ShouldBeNil)
			So(data, ShouldBeNil)
		})
	})
}
