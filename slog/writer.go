package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clinicdir"
)

// Ensure LoggingWriter implements clinicdir.ClinicWriter.
var _ clinicdir.ClinicWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a ClinicWriter and logs each stored row.
type LoggingWriter struct {
	next   clinicdir.ClinicWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next clinicdir.ClinicWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteClinic delegates to the wrapped writer and logs the outcome.
func (w *LoggingWriter) WriteClinic(ctx context.Context, clinic *clinicdir.Clinic) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write clinic",
			"clinic", clinic.Name,
			"region", clinic.Region,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteClinic(ctx, clinic)
}

// Close delegates to the wrapped writer.
func (w *LoggingWriter) Close() error {
	return w.next.Close()
}
