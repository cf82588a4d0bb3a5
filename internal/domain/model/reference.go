package model

// JobGroupInfo is the reference record for one job group.
type JobGroupInfo struct {
	RomeID string `json:"_id"`
	Name   string `json:"name,omitempty"`
	// ApplicationModes maps a FAP sub-code to how people got hired in it.
	ApplicationModes        map[string]ModesDistribution `json:"applicationModes,omitempty"`
	WorkEnvironmentKeywords WorkEnvironmentKeywords      `json:"workEnvironmentKeywords"`
}

// ModesDistribution lists hiring channels with their share.
type ModesDistribution struct {
	Modes []ModePercentage `json:"modes"`
}

// ModePercentage is the share of hires made through one channel.
type ModePercentage struct {
	Mode       ApplicationMode `json:"mode"`
	Percentage float64         `json:"percentage"`
}

// WorkEnvironmentKeywords lists the kinds of employers hiring in a job group.
type WorkEnvironmentKeywords struct {
	Structures []string `json:"structures,omitempty"`
	Sectors    []string `json:"sectors,omitempty"`
}

// JobBoard is a job offers website.
type JobBoard struct {
	Title   string   `json:"title"`
	Link    string   `json:"link,omitempty"`
	Filters []string `json:"filters,omitempty"`
	// IsWellKnown marks boards every seeker already knows about.
	IsWellKnown bool `json:"isWellKnown,omitempty"`
}

// VolunteeringMissions groups the missions available in one departement.
type VolunteeringMissions struct {
	DepartementID string                `json:"_id"`
	Missions      []VolunteeringMission `json:"missions,omitempty"`
}

// VolunteeringMission is a volunteering opportunity.
type VolunteeringMission struct {
	Title                 string `json:"title"`
	AssociationName       string `json:"associationName,omitempty"`
	Link                  string `json:"link,omitempty"`
	Description           string `json:"description,omitempty"`
	IsAvailableEverywhere bool   `json:"isAvailableEverywhere,omitempty"`
}

// LocalTrainings groups the trainings for one job group in one departement.
type LocalTrainings struct {
	ID        string     `json:"_id"`
	Trainings []Training `json:"trainings,omitempty"`
}

// Training is a training session.
type Training struct {
	Name     string `json:"name"`
	CityName string `json:"cityName,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SpecificToJobAdvice is a piece of advice targeted through filters.
type SpecificToJobAdvice struct {
	Title              string   `json:"title"`
	Filters            []string `json:"filters,omitempty"`
	CardText           string   `json:"cardText,omitempty"`
	ExpandedCardHeader string   `json:"expandedCardHeader,omitempty"`
	ExpandedCardItems  []string `json:"expandedCardItems,omitempty"`
}

// Association is an organization helping job seekers.
type Association struct {
	Name    string   `json:"name"`
	Link    string   `json:"link,omitempty"`
	Filters []string `json:"filters,omitempty"`
}

// SeasonalJobbing lists the departements with seasonal offers for one month.
type SeasonalJobbing struct {
	Month        string                `json:"_id"`
	Departements []SeasonalDepartement `json:"departementStats,omitempty"`
}

// SeasonalDepartement is a departement with seasonal job offers.
type SeasonalDepartement struct {
	DepartementID string `json:"departementId"`
	Name          string `json:"departementInName,omitempty"`
	Offers        int    `json:"departementSeasonalOffers"`
}

// AdviceModule binds an advice to the scoring model that triggers it.
type AdviceModule struct {
	AdviceID            string `json:"adviceId"`
	TriggerScoringModel string `json:"triggerScoringModel"`
	// RequiredFeature restricts the module to users with this feature enabled.
	RequiredFeature string `json:"requiredFeature,omitempty"`
}
