package scoring

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Kind enumerates the scoring models.
type Kind int

// Scoring model kinds.
const (
	KindDefault Kind = iota
	KindConstant
	KindTraining
	KindLifeBalance
	KindVAE
	KindSenior
	KindLessApplications
	KindSpontaneousApplication
	KindJobBoards
	KindOtherWorkEnv
	KindWowBaker
	KindSpecificToJob
	KindVolunteer
	KindAssociationHelp
	KindSeasonalRelocate
	kindCount
)

var kindNames = [kindCount]string{
	KindDefault:                "",
	KindConstant:               "constant",
	KindTraining:               "advice-training",
	KindLifeBalance:            "advice-life-balance",
	KindVAE:                    "advice-vae",
	KindSenior:                 "advice-senior",
	KindLessApplications:       "advice-less-applications",
	KindSpontaneousApplication: "advice-spontaneous-application",
	KindJobBoards:              "advice-job-boards",
	KindOtherWorkEnv:           "advice-other-work-env",
	KindWowBaker:               "advice-wow-baker",
	KindSpecificToJob:          "advice-specific-to-job",
	KindVolunteer:              "advice-volunteer",
	KindAssociationHelp:        "advice-association-help",
	KindSeasonalRelocate:       "advice-seasonal-relocate",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Parametric reports whether models of this kind take an integer parameter.
func (k Kind) Parametric() bool {
	return k == KindConstant
}

// Ref designates one model: a kind and, for parametric kinds, its parameter.
type Ref struct {
	Kind  Kind
	Param int
}

// String returns the identifier of the model.
func (r Ref) String() string {
	if r.Kind.Parametric() {
		return fmt.Sprintf("%s(%d)", r.Kind, r.Param)
	}
	return r.Kind.String()
}

var identifierPattern = regexp.MustCompile(`^([a-z0-9-]+)\((.*)\)$`)

// ParseIdentifier translates an external model identifier such as
// "advice-vae" or "constant(2)".
func ParseIdentifier(id string) (Ref, error) {
	if m := identifierPattern.FindStringSubmatch(id); m != nil {
		kind, ok := kindByName[m[1]]
		if !ok {
			return Ref{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
		}
		if !kind.Parametric() {
			return Ref{}, fmt.Errorf("%w: %q takes no parameter", ErrMalformedIdentifier, id)
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %q needs an integer parameter", ErrMalformedIdentifier, id)
		}
		return Ref{Kind: kind, Param: n}, nil
	}

	kind, ok := kindByName[id]
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	if kind.Parametric() {
		return Ref{}, fmt.Errorf("%w: %q needs a parameter", ErrMalformedIdentifier, id)
	}
	return Ref{Kind: kind}, nil
}

// New builds the model designated by ref.
func New(ref Ref) (Model, error) {
	switch ref.Kind {
	case KindDefault:
		return NewDefaultModel(), nil
	case KindConstant:
		return NewConstant(ref.Param), nil
	case KindTraining:
		return trainingModel{}, nil
	case KindLifeBalance:
		return lifeBalanceModel{}, nil
	case KindVAE:
		return vaeModel{}, nil
	case KindSenior:
		return seniorModel{}, nil
	case KindLessApplications:
		return lessApplicationsModel{}, nil
	case KindSpontaneousApplication:
		return spontaneousApplicationModel{}, nil
	case KindJobBoards:
		return jobBoardsModel{}, nil
	case KindOtherWorkEnv:
		return otherWorkEnvModel{}, nil
	case KindWowBaker:
		m, err := newFilteredModel(wowBakerFilters, 3)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindSpecificToJob:
		return specificToJobModel{}, nil
	case KindVolunteer:
		return volunteerModel{}, nil
	case KindAssociationHelp:
		return associationHelpModel{}, nil
	case KindSeasonalRelocate:
		return seasonalRelocateModel{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, ref.Kind)
	}
}

//nolint:gochecknoglobals // immutable after init
var staticModels = func() map[Kind]Model {
	models := make(map[Kind]Model, kindCount)
	for k := range kindCount {
		if k.Parametric() {
			continue
		}
		m, err := New(Ref{Kind: k})
		if err != nil {
			panic(fmt.Sprintf("scoring: build %q: %v", k, err))
		}
		models[k] = m
	}
	return models
}()

// Get returns the model for an external identifier. Static models are shared
// instances. Parametric ones are built per call: their parameter comes from
// the caller, so they are not kept.
func Get(identifier string) (Model, error) {
	ref, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	return Resolve(ref)
}

// Resolve returns the model designated by ref.
func Resolve(ref Ref) (Model, error) {
	if !ref.Kind.Parametric() {
		m, ok := staticModels[ref.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, ref.Kind)
		}
		return m, nil
	}
	return New(ref)
}

// Identifiers returns the identifiers of every static model, sorted.
func Identifiers() []string {
	ids := make([]string, 0, len(staticModels))
	for k := range staticModels {
		ids = append(ids, k.String())
	}
	slices.Sort(ids)
	return ids
}
