// Package clinicdir provides a CLI-based crawler for clinic directories.
// It walks a site's region pages, follows the clinic links found on each,
// extracts contact and service details from every clinic page, and streams
// the results to tabular storage.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, fs/).
package clinicdir
