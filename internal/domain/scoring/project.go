package scoring

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/internal/domain/reference"
)

// Project is the context a model scores: one seeker's profile and project,
// the enabled features, reference data and the clock. A Project is built for
// a single scoring pass and must not be shared between goroutines; the
// lookups it memoizes are only valid for its own profile and project.
type Project struct {
	profile  model.Profile
	details  model.Project
	features model.Features
	reader   reference.Reader

	clock  func() time.Time
	now    time.Time
	hasNow bool

	jobGroupInfo  lazy[model.JobGroupInfo]
	missions      lazy[[]model.VolunteeringMission]
	jobBoards     lazy[[]model.JobBoard]
	specificToJob lazy[[]model.SpecificToJobAdvice]
	associations  lazy[[]model.Association]
	trainings     lazy[[]model.Training]
	seasonal      lazy[[]model.SeasonalDepartement]
}

// ProjectOption applies a configuration option to a Project.
type ProjectOption func(*Project)

// WithFeatures sets the features enabled for the seeker.
func WithFeatures(features model.Features) ProjectOption {
	return func(p *Project) {
		p.features = features
	}
}

// WithNow fixes the current time, making time-dependent models deterministic.
func WithNow(now time.Time) ProjectOption {
	return func(p *Project) {
		if !now.IsZero() {
			p.now = now
			p.hasNow = true
		}
	}
}

// WithClock sets the clock read on the first call to Now.
func WithClock(clock func() time.Time) ProjectOption {
	return func(p *Project) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// NewProject creates a scoring context. A nil reader behaves as an empty
// reference dataset.
func NewProject(profile model.Profile, details model.Project, reader reference.Reader, opts ...ProjectOption) *Project {
	if reader == nil {
		reader = reference.Empty{}
	}
	p := &Project{
		profile:  profile,
		details:  details,
		features: model.Features{},
		reader:   reader,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewUserProject creates a scoring context for a user record.
func NewUserProject(user model.User, reader reference.Reader, opts ...ProjectOption) *Project {
	opts = append([]ProjectOption{WithFeatures(user.Features)}, opts...)
	return NewProject(user.Profile, user.Project, reader, opts...)
}

// Profile returns the seeker's profile.
func (p *Project) Profile() model.Profile { return p.profile }

// Details returns the search project.
func (p *Project) Details() model.Project { return p.details }

// Features returns the enabled features.
func (p *Project) Features() model.Features { return p.features }

// JobGroupID returns the ROME code of the target job group.
func (p *Project) JobGroupID() string { return p.details.TargetJob.JobGroup.RomeID }

// DepartementID returns the departement of the search area.
func (p *Project) DepartementID() string { return p.details.Mobility.City.DepartementID }

// JobCode returns the OGR code of the target job.
func (p *Project) JobCode() string { return p.details.TargetJob.CodeOGR }

// Now returns the fixed time when one was given, else the clock value read on
// the first call.
func (p *Project) Now() time.Time {
	if !p.hasNow {
		p.now = p.clock()
		p.hasNow = true
	}
	return p.now
}

// Age returns the seeker's age in years, or 0 when the birth year is unknown.
func (p *Project) Age() int {
	if p.profile.YearOfBirth <= 0 {
		return 0
	}
	return p.Now().Year() - p.profile.YearOfBirth
}

// JobGroupInfo returns the reference record of the target job group. The
// boolean is false when there is none.
func (p *Project) JobGroupInfo(ctx context.Context) (model.JobGroupInfo, bool, error) {
	return p.jobGroupInfo.get(func() (model.JobGroupInfo, bool, error) {
		if p.JobGroupID() == "" {
			return model.JobGroupInfo{}, false, nil
		}
		return getDocument[model.JobGroupInfo](ctx, p.reader, reference.JobGroupInfo, p.JobGroupID())
	})
}

// VolunteeringMissions returns the missions of the seeker's departement
// followed by the missions available everywhere.
func (p *Project) VolunteeringMissions(ctx context.Context) ([]model.VolunteeringMission, error) {
	missions, _, err := p.missions.get(func() ([]model.VolunteeringMission, bool, error) {
		var missions []model.VolunteeringMission
		if dep := p.DepartementID(); dep != reference.Everywhere {
			local, ok, err := getDocument[model.VolunteeringMissions](ctx, p.reader, reference.VolunteeringMissions, dep)
			if err != nil {
				return nil, false, err
			}
			if ok {
				missions = append(missions, local.Missions...)
			}
		}
		global, ok, err := getDocument[model.VolunteeringMissions](ctx, p.reader, reference.VolunteeringMissions, reference.Everywhere)
		if err != nil {
			return nil, false, err
		}
		if ok {
			for _, m := range global.Missions {
				m.IsAvailableEverywhere = true
				missions = append(missions, m)
			}
		}
		return missions, len(missions) > 0, nil
	})
	return missions, err
}

// JobBoards returns every job board in stored order.
func (p *Project) JobBoards(ctx context.Context) ([]model.JobBoard, error) {
	boards, _, err := p.jobBoards.get(func() ([]model.JobBoard, bool, error) {
		return listDocuments[model.JobBoard](ctx, p.reader, reference.JobBoards)
	})
	return boards, err
}

// SpecificToJobAdvice returns every job specific advice in stored order.
func (p *Project) SpecificToJobAdvice(ctx context.Context) ([]model.SpecificToJobAdvice, error) {
	advice, _, err := p.specificToJob.get(func() ([]model.SpecificToJobAdvice, bool, error) {
		return listDocuments[model.SpecificToJobAdvice](ctx, p.reader, reference.SpecificToJobAdvice)
	})
	return advice, err
}

// Associations returns every association in stored order.
func (p *Project) Associations(ctx context.Context) ([]model.Association, error) {
	associations, _, err := p.associations.get(func() ([]model.Association, bool, error) {
		return listDocuments[model.Association](ctx, p.reader, reference.Associations)
	})
	return associations, err
}

// Trainings returns the trainings for the target job group in the seeker's
// departement.
func (p *Project) Trainings(ctx context.Context) ([]model.Training, error) {
	trainings, _, err := p.trainings.get(func() ([]model.Training, bool, error) {
		if p.JobGroupID() == "" || p.DepartementID() == "" {
			return nil, false, nil
		}
		key := reference.TrainingsKey(p.JobGroupID(), p.DepartementID())
		doc, ok, err := getDocument[model.LocalTrainings](ctx, p.reader, reference.Trainings, key)
		return doc.Trainings, ok, err
	})
	return trainings, err
}

// SeasonalJobbing returns the departements with seasonal offers for the
// month of Now.
func (p *Project) SeasonalJobbing(ctx context.Context) ([]model.SeasonalDepartement, error) {
	departements, _, err := p.seasonal.get(func() ([]model.SeasonalDepartement, bool, error) {
		month := strconv.Itoa(int(p.Now().Month()))
		doc, ok, err := getDocument[model.SeasonalJobbing](ctx, p.reader, reference.SeasonalJobbing, month)
		return doc.Departements, ok, err
	})
	return departements, err
}

type lazyState int

const (
	notFetched lazyState = iota
	fetchedNotFound
	fetchedValue
)

// lazy memoizes one lookup. Errors are not memoized so a later call retries.
type lazy[T any] struct {
	state lazyState
	value T
}

func (l *lazy[T]) get(fetch func() (T, bool, error)) (T, bool, error) {
	switch l.state {
	case fetchedValue:
		return l.value, true, nil
	case fetchedNotFound:
		var zero T
		return zero, false, nil
	}

	v, ok, err := fetch()
	if err != nil {
		var zero T
		return zero, false, err
	}
	if ok {
		l.value, l.state = v, fetchedValue
	} else {
		l.state = fetchedNotFound
	}
	return v, ok, nil
}

func getDocument[T any](ctx context.Context, r reference.Reader, collection, key string) (T, bool, error) {
	var doc T
	data, err := r.Get(ctx, collection, key)
	if errors.Is(err, reference.ErrNotFound) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, fmt.Errorf("read %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, false, fmt.Errorf("%w: %s/%s: %w", ErrInvalidDocument, collection, key, err)
	}
	return doc, true, nil
}

func listDocuments[T any](ctx context.Context, r reference.Reader, collection string) ([]T, bool, error) {
	data, err := r.List(ctx, collection)
	if err != nil {
		return nil, false, fmt.Errorf("list %s: %w", collection, err)
	}
	docs := make([]T, 0, len(data))
	for i, raw := range data {
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, false, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidDocument, collection, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, len(docs) > 0, nil
}
