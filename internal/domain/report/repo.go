package report

import (
	"context"

	"github.com/google/uuid"
)

// Precondition describes the state a report must still be in at the
// moment an update is applied. The store evaluates it against the stored
// row inside the write itself, not at command issuance.
type Precondition struct {
	// Status the stored report must currently have.
	Status Status

	// Unassigned requires that no doctor is assigned yet.
	Unassigned bool

	// DoctorID, when set, requires the stored assignment to match.
	DoctorID *uuid.UUID
}

// Patch is the set of fields a status transition may write. Fields that
// are nil are left untouched. The AI report is deliberately absent: it is
// immutable after creation.
type Patch struct {
	Status       Status
	DoctorID     *uuid.UUID
	CustomReport *CustomReport
	DoctorNotes  *string
}

// Repository is the report store contract. UpdateStatus is the critical
// operation: it applies the patch only if the precondition holds at write
// time and returns ErrPreconditionFailed otherwise, which is what keeps
// concurrent patient/doctor sessions from applying stale transitions.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, pre Precondition, patch Patch) (*Report, error)
}
