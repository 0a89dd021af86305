package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/skindx/skindx/internal/platform/ai"
)

// Status is the lifecycle state of a report.
type Status string

const (
	// StatusPendingPatientInput is the initial state: the AI report exists
	// but the patient has not yet sent it to a doctor.
	StatusPendingPatientInput Status = "pending-patient-input"

	// StatusPendingDoctorReview means a doctor has been assigned and the
	// report is waiting for their action.
	StatusPendingDoctorReview Status = "pending-doctor-review"

	// Terminal states. No transition is defined out of them.
	StatusDoctorApproved Status = "doctor-approved"
	StatusDoctorModified Status = "doctor-modified"
	StatusRejected       Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusPendingPatientInput: true,
	StatusPendingDoctorReview: true,
	StatusDoctorApproved:      true,
	StatusDoctorModified:      true,
	StatusRejected:            true,
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool { return validStatuses[s] }

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDoctorApproved || s == StatusDoctorModified || s == StatusRejected
}

// CustomReport is a doctor-authored override written by the customize
// command. It coexists with the AI report and never replaces it.
type CustomReport struct {
	Report       string `json:"report"`
	Prescription string `json:"prescription"`
}

// Report is one AI-assisted skin assessment tied to one patient and,
// after assignment, one doctor.
//
// AIReport is written once at creation and never mutated; all doctor
// edits land in CustomReport. DoctorID is set exactly once, by a
// successful assignment.
type Report struct {
	ID           uuid.UUID           `db:"id" json:"id"`
	PatientID    uuid.UUID           `db:"patient_id" json:"patient_id"`
	DoctorID     *uuid.UUID          `db:"doctor_id" json:"doctor_id,omitempty"`
	ReportName   string              `db:"report_name" json:"report_name"`
	AIReport     ai.StructuredReport `db:"ai_report" json:"ai_report"`
	CustomReport *CustomReport       `db:"custom_report" json:"custom_report,omitempty"`
	DoctorNotes  *string             `db:"doctor_notes" json:"doctor_notes,omitempty"`
	Status       Status              `db:"status" json:"status"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// Assigned reports whether a doctor has been assigned.
func (r *Report) Assigned() bool { return r.DoctorID != nil }

// AssignedTo reports whether the given doctor is the assigned reviewer.
func (r *Report) AssignedTo(doctorID uuid.UUID) bool {
	return r.DoctorID != nil && *r.DoctorID == doctorID
}
