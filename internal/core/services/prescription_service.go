package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PrescriptionService struct {
	prescriptionRepo ports.PrescriptionRepository
	doctorRepo       ports.DoctorRepository
}

var _ ports.PrescriptionService = (*PrescriptionService)(nil)

func NewPrescriptionService(prescriptionRepo ports.PrescriptionRepository, doctorRepo ports.DoctorRepository) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		doctorRepo:       doctorRepo,
	}
}

func (s *PrescriptionService) Create(ctx context.Context, doctorUserID string, in ports.PrescriptionInput) (*domain.Prescription, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	if in.PatientID == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "Patient is required")
	}
	if len(in.Medications) == 0 {
		return nil, domain.NewError(domain.KindInvalidArgument, "At least one medication is required")
	}
	for _, m := range in.Medications {
		if m.Name == "" || m.Dosage == "" || m.Frequency == "" {
			return nil, domain.NewError(domain.KindInvalidArgument, "Medication name, dosage and frequency are required")
		}
	}

	status := in.Status
	if status == "" {
		status = domain.PrescriptionActive
	}
	if !domain.ValidPrescriptionStatus(status) {
		return nil, domain.NewError(domain.KindInvalidArgument, "Invalid prescription status")
	}

	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	p := domain.Prescription{
		ID:          uuid.NewString(),
		PatientID:   in.PatientID,
		DoctorID:    doctor.ID,
		Medications: in.Medications,
		Diagnosis:   in.Diagnosis,
		StartDate:   start,
		EndDate:     in.EndDate,
		Notes:       in.Notes,
		Status:      status,
		CreatedAt:   time.Now(),
	}

	if err := s.prescriptionRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListFor scopes the listing by role: patients see prescriptions written
// for them, doctors the ones they issued, admins everything.
func (s *PrescriptionService) ListFor(ctx context.Context, subjectID string, role domain.Role) ([]domain.Prescription, error) {
	switch role {
	case domain.RolePatient:
		return s.prescriptionRepo.ListByPatient(ctx, subjectID)
	case domain.RoleDoctor:
		doctor, err := s.doctorRepo.FindByUserID(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		return s.prescriptionRepo.ListByDoctor(ctx, doctor.ID)
	case domain.RoleAdmin:
		return s.prescriptionRepo.ListAll(ctx)
	default:
		return nil, domain.NewError(domain.KindForbidden, "Not authorized to access prescriptions")
	}
}

// Get hides existence from non-participants: anyone who is neither the
// patient, the issuing doctor, nor an admin sees not found.
func (s *PrescriptionService) Get(ctx context.Context, subjectID string, role domain.Role, id string) (*domain.Prescription, error) {
	p, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleAdmin || p.PatientID == subjectID {
		return p, nil
	}
	if role == domain.RoleDoctor {
		if doctor, err := s.doctorRepo.FindByUserID(ctx, subjectID); err == nil && doctor.ID == p.DoctorID {
			return p, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "Prescription not found")
}

func (s *PrescriptionService) Update(ctx context.Context, doctorUserID, id string, in ports.PrescriptionInput) (*domain.Prescription, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	p, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DoctorID != doctor.ID {
		return nil, domain.NewError(domain.KindNotFound, "Prescription not found")
	}

	if len(in.Medications) > 0 {
		p.Medications = in.Medications
	}
	if in.Diagnosis != "" {
		p.Diagnosis = in.Diagnosis
	}
	if !in.StartDate.IsZero() {
		p.StartDate = in.StartDate
	}
	if !in.EndDate.IsZero() {
		p.EndDate = in.EndDate
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}
	if in.Status != "" {
		if !domain.ValidPrescriptionStatus(in.Status) {
			return nil, domain.NewError(domain.KindInvalidArgument, "Invalid prescription status")
		}
		p.Status = in.Status
	}

	if err := s.prescriptionRepo.Update(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, doctorUserID, id string) error {
	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorUserID)
	if err != nil {
		return err
	}

	p, err := s.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.DoctorID != doctor.ID {
		return domain.NewError(domain.KindNotFound, "Prescription not found")
	}

	return s.prescriptionRepo.Delete(ctx, id)
}
