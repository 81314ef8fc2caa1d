package clinicdir

import (
	"context"
	"time"
)

// Run is a single crawl of a clinic directory.
type Run struct {
	ID        string    `json:"id"`
	BaseURL   string    `json:"baseURL"`
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	return nil
}

// RunService represents a service for managing crawl runs.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Limit  int
	Offset int
}

// StoredClinic is a clinic persisted as part of a run.
type StoredClinic struct {
	Clinic

	ID          string    `json:"id"`
	RunID       string    `json:"runID"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the stored clinic contains invalid fields.
func (c *StoredClinic) Validate() error {
	if c.RunID == "" {
		return Errorf(EINVALID, "clinic run ID required")
	}
	return c.Clinic.Validate()
}

// ClinicService represents a service for managing stored clinics.
type ClinicService interface {
	// CreateClinic stores a clinic. ID, ContentHash and FetchedAt are set
	// on success.
	CreateClinic(ctx context.Context, clinic *StoredClinic) error

	// FindClinics retrieves clinics matching the filter in crawl order.
	FindClinics(ctx context.Context, filter ClinicFilter) ([]*StoredClinic, error)
}

// ClinicFilter represents a filter for FindClinics.
type ClinicFilter struct {
	RunID       *string
	Region      *string
	URL         *string
	ContentHash *string

	Limit  int
	Offset int
}
