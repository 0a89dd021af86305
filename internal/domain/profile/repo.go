package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates the referenced profile does not exist.
var ErrNotFound = errors.New("profile not found")

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	ListApproved(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status VerificationStatus) error
}
