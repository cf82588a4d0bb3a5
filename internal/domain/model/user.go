// Package model contains domain models passed between layers.
package model

import "slices"

// Profile holds the job seeker's personal attributes.
type Profile struct {
	YearOfBirth  int           `json:"yearOfBirth,omitempty" yaml:"yearOfBirth"`   // 0 when unknown
	Frustrations []Frustration `json:"frustrations,omitempty" yaml:"frustrations"` // self-reported difficulties
	HasHandicap  bool          `json:"hasHandicap,omitempty" yaml:"hasHandicap"`
}

// HasFrustration reports whether the profile carries the given frustration.
func (p Profile) HasFrustration(f Frustration) bool {
	return slices.Contains(p.Frustrations, f)
}

// JobGroup is a family of jobs, identified by its ROME code.
type JobGroup struct {
	RomeID string `json:"romeId,omitempty" yaml:"romeId"`
	Name   string `json:"name,omitempty" yaml:"name"`
}

// Job is a specific job within a job group, identified by its OGR code.
type Job struct {
	CodeOGR  string   `json:"codeOgr,omitempty" yaml:"codeOgr"`
	Name     string   `json:"name,omitempty" yaml:"name"`
	JobGroup JobGroup `json:"jobGroup" yaml:"jobGroup"`
}

// City is where the seeker looks for a job.
type City struct {
	CityID        string `json:"cityId,omitempty" yaml:"cityId"`
	Name          string `json:"name,omitempty" yaml:"name"`
	DepartementID string `json:"departementId,omitempty" yaml:"departementId"`
}

// Mobility describes the search area.
type Mobility struct {
	City City `json:"city" yaml:"city"`
}

// Project is a job search project.
type Project struct {
	TargetJob                   Job                 `json:"targetJob" yaml:"targetJob"`
	Mobility                    Mobility            `json:"mobility" yaml:"mobility"`
	JobSearchLengthMonths       int                 `json:"jobSearchLengthMonths,omitempty" yaml:"jobSearchLengthMonths"`
	Seniority                   Seniority           `json:"seniority,omitempty" yaml:"seniority"`
	WeeklyApplicationsEstimate  Volume              `json:"weeklyApplicationsEstimate,omitempty" yaml:"weeklyApplicationsEstimate"`
	WeeklyOffersEstimate        Volume              `json:"weeklyOffersEstimate,omitempty" yaml:"weeklyOffersEstimate"`
	TrainingFulfillmentEstimate TrainingFulfillment `json:"trainingFulfillmentEstimate,omitempty" yaml:"trainingFulfillmentEstimate"`
	Kind                        ProjectKind         `json:"kind,omitempty" yaml:"kind"`
}

// Features is the set of experimental features enabled for a user.
type Features map[string]bool

// Has reports whether the named feature is enabled.
func (f Features) Has(name string) bool {
	return f[name]
}

// User bundles everything the caller knows about one job seeker.
type User struct {
	Profile  Profile  `json:"profile" yaml:"profile"`
	Project  Project  `json:"project" yaml:"project"`
	Features Features `json:"featuresEnabled,omitempty" yaml:"featuresEnabled"`
}
