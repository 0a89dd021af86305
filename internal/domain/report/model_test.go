package report

import (
	"testing"

	"github.com/google/uuid"
)

func TestStatus_Valid(t *testing.T) {
	valid := []Status{
		StatusPendingPatientInput,
		StatusPendingDoctorReview,
		StatusDoctorApproved,
		StatusDoctorModified,
		StatusRejected,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []Status{"", "approved", "pending", "done"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPendingPatientInput, false},
		{StatusPendingDoctorReview, false},
		{StatusDoctorApproved, true},
		{StatusDoctorModified, true},
		{StatusRejected, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestReport_AssignedTo(t *testing.T) {
	doctorID := uuid.New()

	r := &Report{}
	if r.Assigned() {
		t.Error("report without doctor must not be assigned")
	}
	if r.AssignedTo(doctorID) {
		t.Error("unassigned report must not match any doctor")
	}

	r.DoctorID = &doctorID
	if !r.Assigned() {
		t.Error("expected report to be assigned")
	}
	if !r.AssignedTo(doctorID) {
		t.Error("expected report assigned to the doctor")
	}
	if r.AssignedTo(uuid.New()) {
		t.Error("report must not match a different doctor")
	}
}
