package model

import (
	"fmt"
	"strings"
)

// Frustration is a difficulty the job seeker reports about their search.
type Frustration int

// Known frustrations.
const (
	UnknownFrustration Frustration = iota
	FrustrationNoOffers
	FrustrationNoOfferAnswers
	FrustrationMotivation
	FrustrationTraining
	FrustrationInterview
	FrustrationAgeDiscrimination
	FrustrationSexDiscrimination
	FrustrationTimeManagement
)

var frustrationNames = []string{
	"UNKNOWN_JOB_SEARCH_FRUSTRATION",
	"NO_OFFERS",
	"NO_OFFER_ANSWERS",
	"MOTIVATION",
	"TRAINING",
	"INTERVIEW",
	"AGE_DISCRIMINATION",
	"SEX_DISCRIMINATION",
	"TIME_MANAGEMENT",
}

func (f Frustration) String() string { return enumName(frustrationNames, int(f)) }

// MarshalText implements encoding.TextMarshaler.
func (f Frustration) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frustration) UnmarshalText(text []byte) error {
	v, err := parseEnum("frustration", frustrationNames, text)
	*f = Frustration(v)
	return err
}

// Seniority is the experience level of the job seeker in the target job.
// Values are ordered from least to most experienced.
type Seniority int

// Seniority levels.
const (
	UnknownSeniority Seniority = iota
	SeniorityInternship
	SeniorityJunior
	SeniorityIntermediary
	SenioritySenior
	SeniorityExpert
)

var seniorityNames = []string{
	"UNKNOWN_SENIORITY",
	"INTERNSHIP",
	"JUNIOR",
	"INTERMEDIARY",
	"SENIOR",
	"EXPERT",
}

func (s Seniority) String() string { return enumName(seniorityNames, int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s Seniority) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seniority) UnmarshalText(text []byte) error {
	v, err := parseEnum("seniority", seniorityNames, text)
	*s = Seniority(v)
	return err
}

// Volume is a weekly count bucket (applications sent, offers seen).
// Buckets are ordered: None < LessThan2 < Some < Decent < ALot. Unknown sorts
// below every known bucket so ordered comparisons never match it.
type Volume int

// Volume buckets.
const (
	UnknownVolume Volume = iota
	VolumeNone
	VolumeLessThan2
	VolumeSome
	VolumeDecent
	VolumeALot
)

var volumeNames = []string{
	"UNKNOWN_NUMBER_ESTIMATE",
	"NONE",
	"LESS_THAN_2",
	"SOME",
	"DECENT_AMOUNT",
	"A_LOT",
}

func (v Volume) String() string { return enumName(volumeNames, int(v)) }

// MarshalText implements encoding.TextMarshaler.
func (v Volume) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Volume) UnmarshalText(text []byte) error {
	n, err := parseEnum("volume", volumeNames, text)
	*v = Volume(n)
	return err
}

// TrainingFulfillment is the seeker's own estimate of whether they hold the
// qualifications the target job requires.
type TrainingFulfillment int

// Training fulfillment estimates.
const (
	UnknownTrainingFulfillment TrainingFulfillment = iota
	TrainingNotSure
	TrainingEnoughExperience
	TrainingEnoughDiplomas
	TrainingCurrentlyInTraining
)

var trainingFulfillmentNames = []string{
	"UNKNOWN_TRAINING_FULFILLMENT",
	"TRAINING_FULFILLMENT_NOT_SURE",
	"ENOUGH_EXPERIENCE",
	"ENOUGH_DIPLOMAS",
	"CURRENTLY_IN_TRAINING",
}

func (t TrainingFulfillment) String() string { return enumName(trainingFulfillmentNames, int(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t TrainingFulfillment) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TrainingFulfillment) UnmarshalText(text []byte) error {
	v, err := parseEnum("training fulfillment", trainingFulfillmentNames, text)
	*t = TrainingFulfillment(v)
	return err
}

// ProjectKind distinguishes an ordinary search from a career change.
type ProjectKind int

// Project kinds.
const (
	UnknownProjectKind ProjectKind = iota
	KindFindJob
	KindReorientation
	KindCreateCompany
)

var projectKindNames = []string{
	"UNKNOWN_PROJECT_KIND",
	"FIND_JOB",
	"REORIENTATION",
	"CREATE_COMPANY",
}

func (k ProjectKind) String() string { return enumName(projectKindNames, int(k)) }

// MarshalText implements encoding.TextMarshaler.
func (k ProjectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ProjectKind) UnmarshalText(text []byte) error {
	v, err := parseEnum("project kind", projectKindNames, text)
	*k = ProjectKind(v)
	return err
}

// ApplicationMode is a channel through which people get hired.
type ApplicationMode int

// Application modes, as published in job group statistics.
const (
	ModeUndefined ApplicationMode = iota
	ModePlacementAgency
	ModePersonalOrProfessionalContacts
	ModeSpontaneousApplication
	ModeOtherChannels
)

var applicationModeNames = []string{
	"UNDEFINED_APPLICATION_MODE",
	"PLACEMENT_AGENCY",
	"PERSONAL_OR_PROFESSIONAL_CONTACTS",
	"SPONTANEOUS_APPLICATION",
	"OTHER_CHANNELS",
}

func (m ApplicationMode) String() string { return enumName(applicationModeNames, int(m)) }

// MarshalText implements encoding.TextMarshaler.
func (m ApplicationMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ApplicationMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("application mode", applicationModeNames, text)
	*m = ApplicationMode(v)
	return err
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return names[0]
	}
	return names[v]
}

// parseEnum maps a name back to its index. The empty string decodes to the
// zero value.
func parseEnum(kind string, names []string, text []byte) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	if s == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownValue, kind, string(text))
}
