package scoring_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	repository "github.com/okian/advisor/internal/adapters/repository"
	"github.com/okian/advisor/internal/domain/reference"
	"github.com/okian/advisor/internal/domain/scoring"
	"github.com/okian/advisor/internal/personas"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	referenceFixture = "../../../testdata/reference.yaml"
	personasFixture  = "../../../testdata/personas.yaml"
)

//nolint:gochecknoglobals // loaded once, read-only afterwards
var regressionStore = sync.OnceValues(func() (*repository.MemoryStore, error) {
	store := repository.NewMemoryStore()
	if _, err := repository.LoadYAML(context.Background(), referenceFixture, store); err != nil {
		return nil, err
	}
	return store, nil
})

func loadRegressionStore(t interface{ Fatalf(string, ...any) }) reference.Reader {
	store, err := regressionStore()
	if err != nil {
		t.Fatalf("load reference fixture: %v", err)
	}
	return store
}

func TestAllModelsOnPersonas(t *testing.T) {
	Convey("Given the sample personas and reference data", t, func() {
		ctx := context.Background()
		store := loadRegressionStore(t)
		list, err := personas.LoadFile(personasFixture)
		So(err, ShouldBeNil)
		So(len(list), ShouldEqual, 5)

		vectors := map[string][]float64{}
		for _, id := range scoring.Identifiers() {
			m := mustGet(id)
			for _, persona := range list {
				p := scoring.NewUserProject(persona.User, store, scoring.WithNow(testNow))
				score, err := m.Score(ctx, p)
				So(err, ShouldBeNil)
				vectors[id] = append(vectors[id], score)
			}
		}

		Convey("Then every model scores as expected", func() {
			So(vectors, ShouldResemble, map[string][]float64{
				"":                               {2, 1, 2, 2, 2.5},
				"advice-training":                {2, 3, 0, 0, 0},
				"advice-life-balance":            {0, 1, 0, 1, 0},
				"advice-vae":                     {0, 3, 0, 0, 0},
				"advice-senior":                  {0, 2, 2, 0, 0},
				"advice-less-applications":       {0, 3, 3, 0, 0},
				"advice-spontaneous-application": {3, 2, 0, 3, 0},
				"advice-job-boards":              {3, 2, 0, 1, 2},
				"advice-other-work-env":          {0, 2, 0, 0, 0},
				"advice-wow-baker":               {3, 0, 0, 0, 0},
				"advice-specific-to-job":         {0, 3, 0, 3, 0},
				"advice-volunteer":               {1, 0, 0, 0, 0},
				"advice-association-help":        {0, 2, 1, 0, 1},
				"advice-seasonal-relocate":       {2, 0, 0, 0, 0},
			})
		})

		Convey("Then no model is inert", func() {
			for _, v := range vectors {
				distinct := map[float64]bool{}
				for _, s := range v {
					distinct[s] = true
				}
				So(len(distinct), ShouldBeGreaterThan, 1)
			}
		})

		Convey("Then no two models share a score vector", func() {
			seen := map[string]string{}
			for id, v := range vectors {
				key := strings.Trim(fmt.Sprint(v), "[]")
				_, dup := seen[key]
				So(dup, ShouldBeFalse)
				seen[key] = id
			}
		})
	})
}

func TestExtraDataOnPersonas(t *testing.T) {
	Convey("Given the sample personas and reference data", t, func() {
		ctx := context.Background()
		store := loadRegressionStore(t)
		list, err := personas.LoadFile(personasFixture)
		So(err, ShouldBeNil)
		project := func(i int) *scoring.Project {
			return scoring.NewUserProject(list[i].User, store, scoring.WithNow(testNow))
		}

		Convey("Then the pastry cook in Lyon gets the departement job board", func() {
			data, err := mustGet("advice-job-boards").ExtraData(ctx, project(3))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, scoring.JobBoardData{JobBoardTitle: "Lyon Jobs", Link: "https://example.org/lyon"})
		})

		Convey("Then the young baker gets the top seasonal departements", func() {
			data, err := mustGet("advice-seasonal-relocate").ExtraData(ctx, project(0))
			So(err, ShouldBeNil)
			seasonal, ok := data.(scoring.SeasonalData)
			So(ok, ShouldBeTrue)
			var ids []string
			for _, d := range seasonal.Departements {
				ids = append(ids, d.DepartementID)
			}
			So(ids, ShouldResemble, []string{"06", "83", "17"})
		})

		Convey("Then the winegrower gets the association name", func() {
			data, err := mustGet("advice-association-help").ExtraData(ctx, project(1))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, scoring.AssociationData{AssociationName: "SNC", Link: "https://www.snc.asso.fr"})
		})

		Convey("Then models scoring 0 return no extra data", func() {
			for _, id := range scoring.Identifiers() {
				m := mustGet(id)
				for i := range list {
					p := project(i)
					if mustScore(m, p) != 0 {
						continue
					}
					data, err := m.ExtraData(ctx, p)
					So(err, ShouldBeNil)
					So(data, ShouldBeNil)
				}
			}
		})
	})
}
