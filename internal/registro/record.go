package registro

import (
	"fmt"
	"strings"
)

// Status codes mirrored from the record store
const (
	StatusActive   = "SI"
	StatusInactive = "NO"
)

// Record is one person/work-assignment entry as the client sees it.
// A Record with a zero ID is a draft; the staging cache assigns a
// temporary ID on entry and the sync client swaps it for the
// authoritative one after a commit.
type Record struct {
	ID              ID     `json:"id"`
	Proyecto        string `json:"proyecto"`
	CentroOperacion string `json:"centroOperacion"`
	Cargo           string `json:"cargo"`
	Cedula          string `json:"cedula"`
	Nombre          string `json:"nombre"`
	Numero          string `json:"numero"`
	Status          string `json:"status"`
}

// ValidationError reports which required fields were missing from a draft
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the required fields. Proyecto, cedula and nombre must be
// non-empty before a record may enter the staging cache.
func (r Record) Validate() error {
	var missing []string
	if r.Proyecto == "" {
		missing = append(missing, "proyecto")
	}
	if r.Cedula == "" {
		missing = append(missing, "cedula")
	}
	if r.Nombre == "" {
		missing = append(missing, "nombre")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// WithDefaults fills the status when the draft did not set one
func (r Record) WithDefaults() Record {
	if r.Status == "" {
		r.Status = StatusActive
	}
	return r
}
