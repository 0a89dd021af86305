package profile

import (
	"time"

	"github.com/google/uuid"
)

// VerificationStatus gates a doctor's visibility in patient-facing
// doctor listings. Only approved doctors may be assigned reports.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

var validVerificationStatuses = map[VerificationStatus]bool{
	VerificationPending:  true,
	VerificationApproved: true,
	VerificationRejected: true,
}

// Valid reports whether s is a known verification status.
func (s VerificationStatus) Valid() bool { return validVerificationStatuses[s] }

// Patient is a patient identity record. The workflow engine references
// patients by id only; attributes are sent to the analysis service.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Sex       string    `db:"sex" json:"sex"`
	SkinType  string    `db:"skin_type" json:"skin_type,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Doctor is a doctor identity record.
type Doctor struct {
	ID                 uuid.UUID          `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Speciality         string             `db:"speciality" json:"speciality,omitempty"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// Approved reports whether the doctor may receive report assignments.
func (d *Doctor) Approved() bool { return d.VerificationStatus == VerificationApproved }
