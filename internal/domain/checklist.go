package domain

import "time"

// Checklist is a reusable list of audit procedures.
type Checklist struct {
	ID          string
	Name        string
	Category    string
	LastUpdated time.Time
}
