package report

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// StatusCounts aggregates a patient's reports into dashboard buckets.
// Approved counts both doctor-approved and doctor-modified reports.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// DoctorGroup is the set of a patient's reports sent to one doctor.
type DoctorGroup struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Reports  []*Report `json:"reports"`
}

// PatientView is the read-side projection backing the patient dashboard.
// It is recomputed from the store on demand and on every observed change;
// it holds no state of its own.
type PatientView struct {
	Unassigned []*Report     `json:"unassigned"`
	ByDoctor   []DoctorGroup `json:"by_doctor"`
	Counts     StatusCounts  `json:"counts"`
}

// PatientView builds the projection for one patient: reports grouped by
// the doctor they were sent to, an unassigned bucket, and status counts.
func (s *Service) PatientView(ctx context.Context, patientID uuid.UUID) (*PatientView, error) {
	items, err := s.reports.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	view := &PatientView{Unassigned: []*Report{}}
	groups := make(map[uuid.UUID][]*Report)

	for _, r := range items {
		switch r.Status {
		case StatusPendingDoctorReview:
			view.Counts.Pending++
		case StatusDoctorApproved, StatusDoctorModified:
			view.Counts.Approved++
		case StatusRejected:
			view.Counts.Rejected++
		}

		if r.DoctorID == nil {
			view.Unassigned = append(view.Unassigned, r)
			continue
		}
		groups[*r.DoctorID] = append(groups[*r.DoctorID], r)
	}

	view.ByDoctor = make([]DoctorGroup, 0, len(groups))
	for doctorID, reports := range groups {
		view.ByDoctor = append(view.ByDoctor, DoctorGroup{DoctorID: doctorID, Reports: reports})
	}
	sort.Slice(view.ByDoctor, func(i, j int) bool {
		return view.ByDoctor[i].DoctorID.String() < view.ByDoctor[j].DoctorID.String()
	})

	return view, nil
}
