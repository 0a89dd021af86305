package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 130 {
		return fmt.Errorf("invalid age: %d", p.Age)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if d.VerificationStatus == "" {
		d.VerificationStatus = VerificationPending
	}
	if !d.VerificationStatus.Valid() {
		return fmt.Errorf("invalid verification status: %s", d.VerificationStatus)
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// ListApprovedDoctors returns the doctors patients may choose from,
// ordered by name. Unverified doctors are never listed.
func (s *Service) ListApprovedDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListApproved(ctx, limit, offset)
}

// SetDoctorVerification updates the admin-controlled verification gate.
func (s *Service) SetDoctorVerification(ctx context.Context, id uuid.UUID, status VerificationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid verification status: %s", status)
	}
	return s.doctors.UpdateVerification(ctx, id, status)
}
