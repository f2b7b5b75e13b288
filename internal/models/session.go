package models

import "github.com/lib/pq"

// UnknownSessionName is rendered whenever a session id cannot be resolved.
const UnknownSessionName = "Unknown Session"

// SessionCatalogEntry is one row of the static session catalog. Academic
// entries carry a subject grade plus concept/technique lists; non-academic
// entries carry a free-form type label instead.
type SessionCatalogEntry struct {
	ID         string         `db:"id" json:"id"`
	Category   Category       `db:"category" json:"category"`
	Name       string         `db:"name" json:"name"`
	Grade      *int           `db:"grade" json:"grade,omitempty"`
	Concepts   pq.StringArray `db:"concepts" json:"concepts,omitempty"`
	Techniques pq.StringArray `db:"techniques" json:"techniques,omitempty"`
	TypeLabel  *string        `db:"type_label" json:"type,omitempty"`
}
