package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

// AppointmentService owns the appointment lifecycle: scheduled is the
// initial state, completed and cancelled are terminal for cancellation.
// UpdateStatus deliberately overwrites without a terminal-state guard.
type AppointmentService struct {
	apptRepo   ports.AppointmentRepository
	doctorRepo ports.DoctorRepository
	now        func() time.Time
}

var _ ports.AppointmentService = (*AppointmentService)(nil)

func NewAppointmentService(apptRepo ports.AppointmentRepository, doctorRepo ports.DoctorRepository) *AppointmentService {
	return &AppointmentService{
		apptRepo:   apptRepo,
		doctorRepo: doctorRepo,
		now:        time.Now,
	}
}

// Book creates a scheduled appointment. There is no past-date check here;
// only cancellation rejects past instants.
func (s *AppointmentService) Book(ctx context.Context, patientID, doctorID, dateTime, reason string) (*domain.Appointment, error) {
	if _, err := s.doctorRepo.FindByID(ctx, doctorID); err != nil {
		return nil, err
	}

	if dateTime == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "Date and time are required")
	}
	at, err := time.Parse(time.RFC3339, dateTime)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidArgument, "Invalid date format")
	}

	if reason == "" {
		reason = domain.DefaultAppointmentReason
	}

	now := s.now()
	appt := domain.Appointment{
		ID:        uuid.NewString(),
		PatientID: patientID,
		DoctorID:  doctorID,
		DateTime:  at,
		Reason:    reason,
		Status:    domain.AppointmentScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := json.Marshal(appointmentEvent(ports.AppointmentBookedEvent, appt))
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to encode appointment event", err)
	}

	if err := s.apptRepo.Create(ctx, appt, ports.AppointmentBookedEvent, payload); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel marks the patient's own appointment cancelled. Terminal statuses
// and past instants are rejected.
func (s *AppointmentService) Cancel(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.apptRepo.FindForPatient(ctx, appointmentID, patientID)
	if err != nil {
		return nil, err
	}

	switch appt.Status {
	case domain.AppointmentCompleted:
		return nil, domain.NewError(domain.KindInvalidState, "Cannot cancel a completed appointment")
	case domain.AppointmentCancelled:
		return nil, domain.NewError(domain.KindInvalidState, "Appointment is already cancelled")
	}

	if appt.DateTime.Before(s.now()) {
		return nil, domain.NewError(domain.KindInvalidState, "Cannot cancel a past appointment")
	}

	appt.Status = domain.AppointmentCancelled
	appt.UpdatedAt = s.now()

	payload, err := json.Marshal(appointmentEvent(ports.AppointmentCancelledEvent, *appt))
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to encode appointment event", err)
	}

	if err := s.apptRepo.Update(ctx, *appt, ports.AppointmentCancelledEvent, payload); err != nil {
		return nil, err
	}
	return appt, nil
}

// UpdateStatus overwrites the status of an appointment assigned to the
// requesting doctor. Any enum member is accepted as the target, including
// moves out of a terminal state; notes replace the stored notes when set.
func (s *AppointmentService) UpdateStatus(ctx context.Context, doctorUserID, appointmentID string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error) {
	if !domain.ValidAppointmentStatus(status) {
		return nil, domain.NewError(domain.KindInvalidArgument, "Invalid status value")
	}

	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	appt, err := s.apptRepo.FindForDoctor(ctx, appointmentID, doctor.ID)
	if err != nil {
		return nil, err
	}

	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	appt.UpdatedAt = s.now()

	payload, err := json.Marshal(appointmentEvent(ports.AppointmentStatusChangedEvent, *appt))
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to encode appointment event", err)
	}

	if err := s.apptRepo.Update(ctx, *appt, ports.AppointmentStatusChangedEvent, payload); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) GetForPatient(ctx context.Context, patientID, appointmentID string) (*domain.Appointment, error) {
	return s.apptRepo.FindForPatient(ctx, appointmentID, patientID)
}

// ListForPatient returns the patient's appointments most recent first.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.apptRepo.ListByPatient(ctx, patientID, false)
}

// ListForDoctor returns the doctor's appointments most recent first.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorUserID string) ([]domain.Appointment, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return s.apptRepo.ListByDoctor(ctx, doctor.ID)
}

func appointmentEvent(eventType string, appt domain.Appointment) ports.AppointmentEvent {
	return ports.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		DateTime:      appt.DateTime,
		Status:        string(appt.Status),
	}
}
