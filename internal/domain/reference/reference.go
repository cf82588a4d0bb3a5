// Package reference defines read-only access to the reference datasets
// consulted while scoring.
package reference

import (
	"context"
	"fmt"
)

// Collection names.
const (
	JobGroupInfo         = "job_group_info"
	VolunteeringMissions = "volunteering_missions"
	JobBoards            = "jobboards"
	SpecificToJobAdvice  = "specific_to_job_advice"
	Associations         = "associations"
	Trainings            = "trainings"
	SeasonalJobbing      = "seasonal_jobbing"
	AdviceModules        = "advice_modules"
)

// Everywhere is the reserved key for entries that apply to every departement.
const Everywhere = ""

// Reader gives keyed access to JSON documents grouped in collections.
type Reader interface {
	// Get returns the document stored under key.
	// Returns ErrNotFound if the collection has no such key.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// List returns every document of the collection in stored order.
	// An unknown collection yields an empty list.
	List(ctx context.Context, collection string) ([][]byte, error)
}

// Writer stores JSON documents.
type Writer interface {
	Put(ctx context.Context, collection, key string, doc []byte) error
}

// TrainingsKey builds the key of the trainings collection.
func TrainingsKey(romeID, departementID string) string {
	return fmt.Sprintf("%s:%s", romeID, departementID)
}

// Empty is a Reader without any document.
type Empty struct{}

// Get always returns ErrNotFound.
func (Empty) Get(_ context.Context, collection, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
}

// List always returns an empty list.
func (Empty) List(context.Context, string) ([][]byte, error) {
	return nil, nil
}
