package services

import (
	"context"
	"time"

	"github.com/clinicdesk/clinic-service/internal/config"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

// SlotService derives the free 30-minute slots for a doctor on a calendar
// date. Candidates come from the configured day window; the doctor's own
// recurring availability list is not consulted, matching the booking flow.
type SlotService struct {
	doctorRepo ports.DoctorRepository
	apptRepo   ports.AppointmentRepository
	window     config.SlotWindow
}

var _ ports.SlotService = (*SlotService)(nil)

func NewSlotService(doctorRepo ports.DoctorRepository, apptRepo ports.AppointmentRepository, window config.SlotWindow) *SlotService {
	return &SlotService{
		doctorRepo: doctorRepo,
		apptRepo:   apptRepo,
		window:     window,
	}
}

// AvailableSlots returns the ascending "HH:MM" labels still free on date.
// Only scheduled appointments block a slot; a cancelled one frees it again.
func (s *SlotService) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if date == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "Date is required")
	}

	if _, err := s.doctorRepo.FindByID(ctx, doctorID); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, domain.NewError(domain.KindInvalidArgument, "Invalid date format")
	}

	booked, err := s.apptRepo.ListScheduledBetween(ctx, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, appt := range booked {
		taken[appt.DateTime.Format("15:04")] = struct{}{}
	}

	available := []string{}
	for _, label := range s.window.Labels() {
		if _, ok := taken[label]; !ok {
			available = append(available, label)
		}
	}
	return available, nil
}
