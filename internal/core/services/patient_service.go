package services

import (
	"context"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PatientService struct {
	patientRepo      ports.PatientRepository
	apptRepo         ports.AppointmentRepository
	prescriptionRepo ports.PrescriptionRepository
}

var _ ports.PatientService = (*PatientService)(nil)

func NewPatientService(
	patientRepo ports.PatientRepository,
	apptRepo ports.AppointmentRepository,
	prescriptionRepo ports.PrescriptionRepository,
) *PatientService {
	return &PatientService{
		patientRepo:      patientRepo,
		apptRepo:         apptRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// Dashboard aggregates the patient's appointments (soonest first, unlike
// the plain listing) and prescriptions with summary counts.
func (s *PatientService) Dashboard(ctx context.Context, patientUserID string) (*ports.PatientDashboard, error) {
	appointments, err := s.apptRepo.ListByPatient(ctx, patientUserID, true)
	if err != nil {
		return nil, err
	}

	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	upcoming := 0
	for _, appt := range appointments {
		if appt.Status == domain.AppointmentScheduled {
			upcoming++
		}
	}

	return &ports.PatientDashboard{
		Appointments:  appointments,
		Prescriptions: prescriptions,
		Stats: ports.DashboardStats{
			AppointmentsCount:    len(appointments),
			PrescriptionsCount:   len(prescriptions),
			UpcomingAppointments: upcoming,
		},
	}, nil
}

func (s *PatientService) MedicalRecords(ctx context.Context, patientUserID string) ([]domain.MedicalRecord, error) {
	patient, err := s.patientRepo.FindByUserID(ctx, patientUserID)
	if err != nil {
		return nil, err
	}
	return patient.MedicalRecords, nil
}

func (s *PatientService) List(ctx context.Context, page, limit int) ([]domain.Patient, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.patientRepo.List(ctx, (page-1)*limit, limit)
}
