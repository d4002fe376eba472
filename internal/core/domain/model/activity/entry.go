// Package activity models the audit trail of order changes.
package activity

import (
	"time"

	"ordersapi/internal/core/domain/model/kernel"
)

// EventType names an audited action.
type EventType string

const (
	AddNewOrder EventType = "AddNewOrder"
	UpdateOrder EventType = "UpdateOrder"
	DeleteOrder EventType = "DeleteOrder"
)

// Entry is one audit log record about a subject entity.
type Entry struct {
	ID          kernel.UUID
	EventType   EventType
	Comment     string
	SubjectID   kernel.UUID
	SubjectType string
	CreatedAt   time.Time
}

func NewEntry(eventType EventType, comment string, subjectID kernel.UUID, subjectType string, now time.Time) Entry {
	return Entry{
		ID:          kernel.NewUUID(),
		EventType:   eventType,
		Comment:     comment,
		SubjectID:   subjectID,
		SubjectType: subjectType,
		CreatedAt:   now.UTC(),
	}
}
