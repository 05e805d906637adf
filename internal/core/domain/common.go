package domain

import "time"

// MaxNameLength bounds user-supplied names (cost centers, fundings, item kinds).
const MaxNameLength = 64

// AuditFields holds standard audit information for domain entities.
// Timestamps are system-assigned and monotonic per record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Touch stamps both audit fields for a freshly created record.
func (a *AuditFields) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.LastUpdatedAt = now
}
