package sqlite

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/clinicdir"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

var _ clinicdir.ClinicService = (*ClinicService)(nil)

// ClinicService implements clinicdir.ClinicService using SQLite.
type ClinicService struct {
	db *DB
}

// NewClinicService creates a new ClinicService.
func NewClinicService(db *DB) *ClinicService {
	return &ClinicService{db: db}
}

// hashClinic fingerprints every row field except the region.
func hashClinic(c *clinicdir.Clinic) string {
	h := xxhash.New()
	for _, field := range c.Row()[1:] {
		h.WriteString(field)
		h.WriteString("\x1f")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// CreateClinic stores a clinic. Storing the same URL twice in one run
// returns ECONFLICT.
func (s *ClinicService) CreateClinic(ctx context.Context, clinic *clinicdir.StoredClinic) error {
	if err := clinic.Validate(); err != nil {
		return err
	}

	clinic.ID = uuid.New().String()
	clinic.FetchedAt = time.Now().UTC()
	clinic.ContentHash = hashClinic(&clinic.Clinic)

	row := clinic.Row()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clinics (id, run_id, region, name, address, phone, email, services, source_url, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, clinic.ID, clinic.RunID, row[0], row[1], row[2], row[3], row[4], row[5],
		clinic.URL, clinic.ContentHash, clinic.Position, clinic.FetchedAt.Format(timeFormat))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return clinicdir.Errorf(clinicdir.ECONFLICT, "clinic already stored for run: %s", clinic.URL)
	}
	return err
}

// FindClinics retrieves clinics matching the filter in crawl order.
func (s *ClinicService) FindClinics(ctx context.Context, filter clinicdir.ClinicFilter) ([]*clinicdir.StoredClinic, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, region, name, address, phone, email, services, source_url, content_hash, position, fetched_at FROM clinics WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Region != nil {
		query.WriteString(" AND region = ?")
		args = append(args, *filter.Region)
	}
	if filter.URL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY fetched_at ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clinics []*clinicdir.StoredClinic
	for rows.Next() {
		var c clinicdir.StoredClinic
		var fetchedAt string

		if err := rows.Scan(&c.ID, &c.RunID, &c.Region, &c.Name, &c.Address, &c.Phone, &c.Email,
			&c.Services, &c.URL, &c.ContentHash, &c.Position, &fetchedAt); err != nil {
			return nil, err
		}
		if c.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		clinics = append(clinics, &c)
	}

	return clinics, rows.Err()
}
