package services

import (
	"context"
	"sort"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type DoctorService struct {
	doctorRepo ports.DoctorRepository
	apptRepo   ports.AppointmentRepository
}

var _ ports.DoctorService = (*DoctorService)(nil)

func NewDoctorService(doctorRepo ports.DoctorRepository, apptRepo ports.AppointmentRepository) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		apptRepo:   apptRepo,
	}
}

func (s *DoctorService) List(ctx context.Context, specialization string, page, limit int) ([]domain.Doctor, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.doctorRepo.List(ctx, specialization, (page-1)*limit, limit)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.doctorRepo.FindByID(ctx, id)
}

func (s *DoctorService) GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	return s.doctorRepo.FindByUserID(ctx, userID)
}

func (s *DoctorService) Specializations(ctx context.Context) ([]string, error) {
	return s.doctorRepo.Specializations(ctx)
}

func (s *DoctorService) Availability(ctx context.Context, doctorID string) ([]domain.AvailabilitySlot, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return doctor.Availability, nil
}

// Update applies profile changes. Admission has exactly three outcomes:
// the owning doctor is allowed, an admin is allowed, anyone else is denied.
func (s *DoctorService) Update(ctx context.Context, subjectID string, role domain.Role, doctorID string, update ports.DoctorUpdate) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if doctor.UserID != subjectID && role != domain.RoleAdmin {
		return nil, domain.NewError(domain.KindForbidden, "Not authorized to update this profile")
	}

	if update.Specialization != nil {
		doctor.Specialization = *update.Specialization
	}
	if update.Qualifications != nil {
		doctor.Qualifications = update.Qualifications
	}
	if update.Experience != nil {
		doctor.Experience = *update.Experience
	}
	if update.ConsultationFee != nil {
		doctor.ConsultationFee = *update.ConsultationFee
	}

	if err := s.doctorRepo.Update(ctx, *doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// UpdateAvailability replaces the weekly open hours. Every entry must have
// startTime strictly before endTime.
func (s *DoctorService) UpdateAvailability(ctx context.Context, subjectID string, role domain.Role, doctorID string, slots []domain.AvailabilitySlot) (*domain.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if doctor.UserID != subjectID && role != domain.RoleAdmin {
		return nil, domain.NewError(domain.KindForbidden, "Not authorized to update availability")
	}

	for _, slot := range slots {
		start, err := time.Parse("15:04", slot.StartTime)
		if err != nil {
			return nil, domain.NewError(domain.KindInvalidArgument, "Invalid availability start time")
		}
		end, err := time.Parse("15:04", slot.EndTime)
		if err != nil {
			return nil, domain.NewError(domain.KindInvalidArgument, "Invalid availability end time")
		}
		if !start.Before(end) {
			return nil, domain.NewError(domain.KindInvalidArgument, "Availability start time must be before end time")
		}
	}

	doctor.Availability = slots
	if err := s.doctorRepo.Update(ctx, *doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Rate records a patient's score for the doctor. A patient rates a doctor
// at most once; rating again replaces the existing entry in place.
func (s *DoctorService) Rate(ctx context.Context, patientID, doctorID string, score int, review string) (*domain.Doctor, error) {
	if score < 1 || score > 5 {
		return nil, domain.NewError(domain.KindInvalidArgument, "Rating must be between 1 and 5")
	}

	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range doctor.Ratings {
		if doctor.Ratings[i].PatientID == patientID {
			doctor.Ratings[i].Score = score
			doctor.Ratings[i].Review = review
			doctor.Ratings[i].Date = time.Now()
			updated = true
			break
		}
	}
	if !updated {
		doctor.Ratings = append(doctor.Ratings, domain.Rating{
			PatientID: patientID,
			Score:     score,
			Review:    review,
			Date:      time.Now(),
		})
	}

	if err := s.doctorRepo.Update(ctx, *doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) Stats(ctx context.Context, doctorID string) (*ports.DoctorStats, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	total, err := s.apptRepo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.Rating, len(doctor.Ratings))
	copy(recent, doctor.Ratings)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &ports.DoctorStats{
		AverageRating:     doctor.AverageRating(),
		TotalReviews:      len(doctor.Ratings),
		RecentReviews:     recent,
		TotalAppointments: total,
	}, nil
}
