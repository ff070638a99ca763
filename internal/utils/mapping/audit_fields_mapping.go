package mapping

import (
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/models"
)

// dbTimePrecision is the resolution of PostgreSQL TIMESTAMPTZ columns.
const dbTimePrecision = time.Microsecond

// ToDBTime normalizes t to what a TIMESTAMPTZ column stores, so a row read
// back compares equal to the one written.
func ToDBTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(dbTimePrecision)
}

// ToDBTimePtr is ToDBTime for nullable columns such as posted_at or voided_at.
func ToDBTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToDBTime(*t)
	return &v
}

// ToModelAuditFields stamps the audit columns of a ledger row.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     ToDBTime(d.CreatedAt),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: ToDBTime(d.LastUpdatedAt),
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields reads the audit columns back in UTC.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt.UTC(),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
