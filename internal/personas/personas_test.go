package personas_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/personas"
	"github.com/okian/advisor/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func TestLoad(t *testing.T) {
	Convey("Given the sample personas file", t, func() {
		list, err := personas.LoadFile("../../testdata/personas.yaml")

		Convey("Then every persona is loaded in order", func() {
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 5)
			So(list[0].Name, ShouldEqual, "young baker in Paris")
			So(list[0].User.Project.TargetJob.JobGroup.RomeID, ShouldEqual, "D1102")
			So(list[0].User.Profile.Frustrations, ShouldResemble, []model.Frustration{model.FrustrationNoOffers})
			So(list[1].User.Project.Seniority, ShouldEqual, model.SeniorityExpert)
			So(list[1].User.Features.Has("alpha"), ShouldBeTrue)
		})
	})

	Convey("Given malformed personas", t, func() {
		cases := map[string]string{
			"a persona without a name":      "- user: {}\n",
			"a duplicated name":             "- name: a\n- name: a\n",
			"an unknown enum value":         "- name: a\n  user:\n    project:\n      seniority: WIZARD\n",
			"a document that is not a list": "name: a\n",
		}
		for name, doc := range cases {
			Convey("When loading "+name, func() {
				_, err := personas.Load(strings.NewReader(doc))

				Convey("Then it is rejected", func() {
					So(errors.Is(err, personas.ErrInvalidPersonas), ShouldBeTrue)
				})
			})
		}
	})

	Convey("Given a missing file", t, func() {
		_, err := personas.LoadFile("does-not-exist.yaml")

		Convey("Then it is rejected", func() {
			So(errors.Is(err, personas.ErrInvalidPersonas), ShouldBeTrue)
		})
	})

	Convey("Given an empty document", t, func() {
		list, err := personas.Load(strings.NewReader(""))

		Convey("Then there is no persona", func() {
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a persona", t, func() {
		p := personas.Persona{Name: "a", User: model.User{
			Profile:  model.Profile{Frustrations: []model.Frustration{model.FrustrationInterview}},
			Features: model.Features{"alpha": true},
		}}

		Convey("When its clone is modified", func() {
			c := p.Clone()
			c.User.Profile.Frustrations[0] = model.FrustrationMotivation
			c.User.Features["beta"] = true

			Convey("Then the original is untouched", func() {
				So(p.User.Profile.Frustrations[0], ShouldEqual, model.FrustrationInterview)
				So(p.User.Features.Has("beta"), ShouldBeFalse)
			})
		})
	})
}

func TestProbe(t *testing.T) {
	Convey("Given a service answering advices", t, func() {
		var calls atomic.Int32
		var gotNow atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.Method != http.MethodPost || r.URL.Path != "/advices" {
				http.NotFound(w, r)
				return
			}
			var req struct {
				User model.User `json:"user"`
				Now  time.Time  `json:"now"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			gotNow.Store(req.Now)
			if req.User.Project.TargetJob.JobGroup.RomeID == "FAIL" {
				http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"advices":[{"adviceId":"` + req.User.Project.TargetJob.JobGroup.RomeID +
				`","model":"constant(2)","score":2,"extraData":{"k":1}}]}`))
		}))
		defer server.Close()

		client := personas.NewClient(server.URL, time.Second)
		now := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
		list := []personas.Persona{
			{Name: "first", User: model.User{Project: model.Project{TargetJob: model.Job{JobGroup: model.JobGroup{RomeID: "A1"}}}}},
			{Name: "second", User: model.User{Project: model.Project{TargetJob: model.Job{JobGroup: model.JobGroup{RomeID: "B2"}}}}},
			{Name: "third", User: model.User{Project: model.Project{TargetJob: model.Job{JobGroup: model.JobGroup{RomeID: "C3"}}}}},
		}

		Convey("When every persona is probed", func() {
			results, err := personas.Probe(context.Background(), client, list, now, 2)

			Convey("Then results follow the personas order", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 3)
				So(calls.Load(), ShouldEqual, 3)
				for i, r := range results {
					So(r.Persona, ShouldEqual, list[i].Name)
					So(len(r.Advices), ShouldEqual, 1)
					So(r.Advices[0].AdviceID, ShouldEqual, list[i].User.Project.TargetJob.JobGroup.RomeID)
					So(r.Advices[0].Score, ShouldEqual, 2)
					So(string(r.Advices[0].ExtraData), ShouldEqual, `{"k":1}`)
				}
				So(gotNow.Load().(time.Time).Equal(now), ShouldBeTrue)
			})
		})

		Convey("When the service fails for one persona", func() {
			list[1].User.Project.TargetJob.JobGroup.RomeID = "FAIL"
			_, err := personas.Probe(context.Background(), client, list, now, 1)

			Convey("Then the probe fails naming the persona", func() {
				So(errors.Is(err, personas.ErrProbeFailed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"second"`)
				So(err.Error(), ShouldContainSubstring, "status 500")
			})
		})
	})

	Convey("Given no service listening", t, func() {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := personas.NewClient(url, 100*time.Millisecond).Advices(context.Background(), model.User{}, time.Time{})

		Convey("Then the call fails", func() {
			So(errors.Is(err, personas.ErrProbeFailed), ShouldBeTrue)
		})
	})
}
