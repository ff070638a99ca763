package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy carry the actor id taken from the bearer token subject.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same actor and time.
func NewAuditFields(now time.Time, actorID string) AuditFields {
	return AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
}

// Touch records an update by actorID at now.
func (a *AuditFields) Touch(now time.Time, actorID string) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actorID
}
