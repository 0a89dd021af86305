package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skindx/skindx/internal/platform/ai"
	"github.com/skindx/skindx/internal/platform/ws"
)

// DoctorInfo is the slice of a doctor profile the engine needs to
// validate an assignment.
type DoctorInfo struct {
	ID       uuid.UUID
	Name     string
	Approved bool
}

// DoctorDirectory resolves doctor ids against the profile store.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*DoctorInfo, error)
}

// Service is the report lifecycle workflow engine. It is the only writer
// of report state: every command re-validates the current status at write
// time through the repository's precondition-checked update, so stale
// commands from concurrent sessions fail instead of clobbering state.
type Service struct {
	reports    Repository
	doctors    DoctorDirectory
	analyzer   ai.Analyzer
	translator ai.Translator
	events     ws.EventPublisher
	log        zerolog.Logger
}

// NewService creates the workflow engine.
func NewService(reports Repository, doctors DoctorDirectory, analyzer ai.Analyzer, translator ai.Translator, log zerolog.Logger) *Service {
	return &Service{
		reports:    reports,
		doctors:    doctors,
		analyzer:   analyzer,
		translator: translator,
		log:        log,
	}
}

// SetEventPublisher attaches an optional publisher for report change
// events. Observers converge eventually; no delivery latency is promised.
func (s *Service) SetEventPublisher(p ws.EventPublisher) { s.events = p }

// CreateReport runs the analysis and, only on success, persists a new
// report owned by the patient. A failed analysis writes nothing.
func (s *Service) CreateReport(ctx context.Context, actorID, patientID uuid.UUID, reportName string, input ai.AnalysisInput) (*Report, error) {
	if actorID != patientID {
		return nil, fmt.Errorf("%w: only the patient may create their report", ErrUnauthorized)
	}
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient id is required", ErrValidation)
	}
	if strings.TrimSpace(reportName) == "" {
		return nil, fmt.Errorf("%w: report name is required", ErrValidation)
	}

	aiReport, err := s.analyzer.Analyze(ctx, input)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		PatientID:  patientID,
		ReportName: reportName,
		AIReport:   *aiReport,
		Status:     StatusPendingPatientInput,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", rep.ID.String()).
		Str("patient_id", patientID.String()).
		Msg("report created")
	s.publish(ctx, "created", rep)
	return rep, nil
}

// AssignDoctor sends a report to a verified doctor for review. At most
// one assignment can ever succeed for a report.
func (s *Service) AssignDoctor(ctx context.Context, actorID, reportID, doctorID uuid.UUID) (*Report, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep.PatientID != actorID {
		return nil, fmt.Errorf("%w: report belongs to another patient", ErrUnauthorized)
	}
	if rep.Status != StatusPendingPatientInput || rep.Assigned() {
		return nil, fmt.Errorf("%w: cannot assign a doctor from status %q", ErrInvalidTransition, rep.Status)
	}

	doc, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doc.Approved {
		return nil, fmt.Errorf("%w: doctor %s is not verified", ErrPreconditionFailed, doctorID)
	}

	updated, err := s.reports.UpdateStatus(ctx, reportID,
		Precondition{Status: StatusPendingPatientInput, Unassigned: true},
		Patch{Status: StatusPendingDoctorReview, DoctorID: &doctorID})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", reportID.String()).
		Str("doctor_id", doctorID.String()).
		Msg("report assigned")
	s.publish(ctx, "assigned", updated)
	return updated, nil
}

// Approve marks a report approved as-is by its assigned doctor.
func (s *Service) Approve(ctx context.Context, actorID, reportID uuid.UUID) (*Report, error) {
	return s.doctorAction(ctx, actorID, reportID, "approved",
		Patch{Status: StatusDoctorApproved})
}

// Customize records a doctor-authored override alongside the untouched
// AI report and moves the report to doctor-modified.
func (s *Service) Customize(ctx context.Context, actorID, reportID uuid.UUID, reportText, prescription string) (*Report, error) {
	if strings.TrimSpace(reportText) == "" {
		return nil, fmt.Errorf("%w: report text is required", ErrValidation)
	}
	if strings.TrimSpace(prescription) == "" {
		return nil, fmt.Errorf("%w: prescription is required", ErrValidation)
	}
	return s.doctorAction(ctx, actorID, reportID, "customized",
		Patch{
			Status:       StatusDoctorModified,
			CustomReport: &CustomReport{Report: reportText, Prescription: prescription},
		})
}

// Reject declines a report with a reason the patient can read.
func (s *Service) Reject(ctx context.Context, actorID, reportID uuid.UUID, reason string) (*Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	return s.doctorAction(ctx, actorID, reportID, "rejected",
		Patch{Status: StatusRejected, DoctorNotes: &reason})
}

// doctorAction applies one of the terminal doctor commands. The caller
// must be the assigned doctor, the report must still be in review, and
// the write itself re-checks both conditions so only one terminal
// transition can ever land.
func (s *Service) doctorAction(ctx context.Context, actorID, reportID uuid.UUID, event string, patch Patch) (*Report, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !rep.AssignedTo(actorID) {
		return nil, fmt.Errorf("%w: caller is not the assigned doctor", ErrUnauthorized)
	}
	if rep.Status != StatusPendingDoctorReview {
		return nil, fmt.Errorf("%w: report is in status %q", ErrInvalidTransition, rep.Status)
	}

	updated, err := s.reports.UpdateStatus(ctx, reportID,
		Precondition{Status: StatusPendingDoctorReview, DoctorID: &actorID},
		patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", reportID.String()).
		Str("doctor_id", actorID.String()).
		Str("status", string(updated.Status)).
		Msg("report " + event)
	s.publish(ctx, event, updated)
	return updated, nil
}

// GetReport returns a report visible to its owner or assigned doctor.
func (s *Service) GetReport(ctx context.Context, actorID, reportID uuid.UUID) (*Report, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep.PatientID != actorID && !rep.AssignedTo(actorID) {
		return nil, fmt.Errorf("%w: report is not visible to this user", ErrUnauthorized)
	}
	return rep, nil
}

// PatientReports lists a patient's own reports, newest first.
func (s *Service) PatientReports(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	return s.reports.ListByPatient(ctx, patientID)
}

// DoctorQueue lists a doctor's reports, pending review first.
func (s *Service) DoctorQueue(ctx context.Context, doctorID uuid.UUID) ([]*Report, error) {
	items, err := s.reports.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	ordered := make([]*Report, 0, len(items))
	for _, r := range items {
		if r.Status == StatusPendingDoctorReview {
			ordered = append(ordered, r)
		}
	}
	for _, r := range items {
		if r.Status != StatusPendingDoctorReview {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// TranslateReport renders a report in the requested language for display.
// When preferCustom is set and a custom report exists, the doctor's
// override is translated instead of the AI report. Nothing is stored.
func (s *Service) TranslateReport(ctx context.Context, actorID, reportID uuid.UUID, lang string, preferCustom bool) (*ai.StructuredReport, error) {
	rep, err := s.GetReport(ctx, actorID, reportID)
	if err != nil {
		return nil, err
	}

	source := &rep.AIReport
	if preferCustom && rep.CustomReport != nil {
		source = &ai.StructuredReport{
			Summary:        rep.CustomReport.Report,
			Recommendation: rep.CustomReport.Prescription,
		}
	}
	return s.translator.Translate(ctx, source, lang)
}

func (s *Service) publish(ctx context.Context, eventType string, rep *Report) {
	if s.events == nil {
		return
	}
	topics := []string{"patient/" + rep.PatientID.String() + "/reports"}
	if rep.DoctorID != nil {
		topics = append(topics, "doctor/"+rep.DoctorID.String()+"/reports")
	}
	for _, topic := range topics {
		_ = s.events.Publish(ctx, ws.Event{
			Type:       eventType,
			Topic:      topic,
			ResourceID: rep.ID.String(),
		})
	}
}
