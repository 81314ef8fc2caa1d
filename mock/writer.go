package mock

import (
	"context"

	"github.com/fwojciec/clinicdir"
)

var _ clinicdir.ClinicWriter = (*ClinicWriter)(nil)

// ClinicWriter is a mock implementation of clinicdir.ClinicWriter.
// A nil CloseFn is treated as a successful close.
type ClinicWriter struct {
	WriteClinicFn func(ctx context.Context, clinic *clinicdir.Clinic) error
	CloseFn       func() error
}

func (w *ClinicWriter) WriteClinic(ctx context.Context, clinic *clinicdir.Clinic) error {
	return w.WriteClinicFn(ctx, clinic)
}

func (w *ClinicWriter) Close() error {
	if w.CloseFn == nil {
		return nil
	}
	return w.CloseFn()
}
