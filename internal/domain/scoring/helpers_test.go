package scoring_test

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/domain/reference"
	"github.com/okian/advisor/internal/domain/scoring"
)

// fakeReader serves documents from memory and counts reads per key.
type fakeReader struct {
	docs  map[string]map[string][]byte
	lists map[string][][]byte
	reads map[string]int
	err   error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		docs:  map[string]map[string][]byte{},
		lists: map[string][][]byte{},
		reads: map[string]int{},
	}
}

func (r *fakeReader) put(collection, key string, v any) *fakeReader {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return r.putRaw(collection, key, data)
}

func (r *fakeReader) putRaw(collection, key string, data []byte) *fakeReader {
	if r.docs[collection] == nil {
		r.docs[collection] = map[string][]byte{}
	}
	r.docs[collection][key] = data
	r.lists[collection] = append(r.lists[collection], data)
	return r
}

func (r *fakeReader) Get(_ context.Context, collection, key string) ([]byte, error) {
	r.reads[collection+"/"+key]++
	if r.err != nil {
		return nil, r.err
	}
	if doc, ok := r.docs[collection][key]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", reference.ErrNotFound, collection, key)
}

func (r *fakeReader) List(_ context.Context, collection string) ([][]byte, error) {
	r.reads[collection]++
	if r.err != nil {
		return nil, r.err
	}
	return r.lists[collection], nil
}

//nolint:gochecknoglobals // fixed clock for every test
var testNow = time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

// seeker builds a project for a seeker targeting jobGroup in departement.
func seeker(jobGroup, departement string) model.Project {
	return model.Project{
		TargetJob: model.Job{
			CodeOGR:  "10000",
			JobGroup: model.JobGroup{RomeID: jobGroup},
		},
		Mobility: model.Mobility{City: model.City{DepartementID: departement}},
	}
}

func newProject(profile model.Profile, project model.Project, r reference.Reader) *scoring.Project {
	return scoring.NewProject(profile, project, r, scoring.WithNow(testNow))
}

func mustScore(m scoring.Model, p *scoring.Project) float64 {
	score, err := m.Score(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return score
}

func mustGet(id string) scoring.Model {
	m, err := scoring.Get(id)
	if err != nil {
		panic(err)
	}
	return m
}
