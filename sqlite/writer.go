package sqlite

import (
	"context"

	"github.com/fwojciec/clinicdir"
)

var _ clinicdir.ClinicWriter = (*ClinicWriter)(nil)

// ClinicWriter streams crawled clinics into a single run.
// The underlying DB is owned by the caller and is not closed by Close.
type ClinicWriter struct {
	Run *clinicdir.Run

	clinics  clinicdir.ClinicService
	position int
}

// NewClinicWriter creates a run for baseURL and returns a writer that
// stores clinics under it.
func NewClinicWriter(ctx context.Context, runs clinicdir.RunService, clinics clinicdir.ClinicService, baseURL string) (*ClinicWriter, error) {
	run := &clinicdir.Run{BaseURL: baseURL}
	if err := runs.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return &ClinicWriter{Run: run, clinics: clinics}, nil
}

// WriteClinic stores the clinic as the next row of the run.
func (w *ClinicWriter) WriteClinic(ctx context.Context, clinic *clinicdir.Clinic) error {
	stored := &clinicdir.StoredClinic{
		Clinic:   *clinic,
		RunID:    w.Run.ID,
		Position: w.position,
	}
	if err := w.clinics.CreateClinic(ctx, stored); err != nil {
		return err
	}
	w.position++
	return nil
}

// Close implements clinicdir.ClinicWriter.
func (w *ClinicWriter) Close() error {
	return nil
}
