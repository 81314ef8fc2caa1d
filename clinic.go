package clinicdir

import (
	"context"
	"regexp"
	"strings"
)

// NotFound stands in for any clinic field that could not be extracted.
const NotFound = "Not found"

// Header is the column layout of a clinic row.
var Header = []string{"Region", "Clinic_Name", "Address", "Phone", "Email", "Services"}

// Region is a geographic grouping of clinics with its own listing page.
type Region struct {
	Name string
	URL  string
}

// ClinicLink is a clinic discovered on a region page but not yet fetched.
type ClinicLink struct {
	Name string
	URL  string
}

// Clinic is the record extracted from a single clinic page.
type Clinic struct {
	Region   string `json:"region"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Services string `json:"services"`

	// URL is the page the clinic was extracted from. It is not written to
	// the CSV row.
	URL string `json:"url"`
}

// Validate returns an error if the clinic contains invalid fields.
func (c *Clinic) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "clinic URL required")
	}
	return nil
}

// Row returns the clinic's fields in Header order. Empty fields are
// reported as NotFound.
func (c *Clinic) Row() []string {
	return []string{
		orNotFound(c.Region),
		orNotFound(c.Name),
		orNotFound(c.Address),
		orNotFound(c.Phone),
		orNotFound(c.Email),
		orNotFound(c.Services),
	}
}

func orNotFound(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotFound
	}
	return s
}

var (
	phoneNoise = regexp.MustCompile(`[^\d\-\s()]`)
	emailShape = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w{2,}$`)
)

// NormalizePhone strips everything except digits, hyphens, whitespace and
// parentheses. Returns NotFound when nothing is left.
func NormalizePhone(phone string) string {
	if phone == NotFound {
		return phone
	}
	cleaned := strings.TrimSpace(phoneNoise.ReplaceAllString(phone, ""))
	if cleaned == "" {
		return NotFound
	}
	return cleaned
}

// NormalizeEmail returns the email unchanged if it has a local@domain.tld
// shape. Otherwise it returns NotFound and an EINVALID error describing the
// rejected value.
func NormalizeEmail(email string) (string, error) {
	if email == NotFound {
		return email, nil
	}
	if emailShape.MatchString(email) {
		return email, nil
	}
	return NotFound, Errorf(EINVALID, "invalid email format: %s", email)
}

// JoinServices joins service names with "; ", dropping blanks and repeats
// while keeping first-seen order. Returns NotFound for an empty list.
func JoinServices(names []string) string {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	if len(unique) == 0 {
		return NotFound
	}
	return strings.Join(unique, "; ")
}

// ClinicWriter streams clinic records to storage. Each WriteClinic call must
// be durable before it returns.
type ClinicWriter interface {
	WriteClinic(ctx context.Context, clinic *Clinic) error

	// Close flushes and releases the underlying resource.
	Close() error
}

var _ ClinicWriter = (MultiWriter)(nil)

// MultiWriter fans each clinic out to several writers in order.
type MultiWriter []ClinicWriter

// WriteClinic writes to every writer, stopping at the first error.
func (m MultiWriter) WriteClinic(ctx context.Context, clinic *Clinic) error {
	for _, w := range m {
		if err := w.WriteClinic(ctx, clinic); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer and returns the first error encountered.
func (m MultiWriter) Close() error {
	var first error
	for _, w := range m {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
