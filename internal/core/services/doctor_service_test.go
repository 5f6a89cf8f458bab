package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
	"github.com/clinicdesk/clinic-service/internal/core/services"
	"github.com/clinicdesk/clinic-service/test/mocks"
)

func newDoctorFixture() (*services.DoctorService, *mocks.MockDoctorRepository, *mocks.MockAppointmentRepository) {
	doctorRepo := mocks.NewMockDoctorRepository()
	apptRepo := mocks.NewMockAppointmentRepository()
	return services.NewDoctorService(doctorRepo, apptRepo), doctorRepo, apptRepo
}

func TestDoctorService_Update_Ownership(t *testing.T) {
	tests := []struct {
		name      string
		subjectID string
		role      domain.Role
		wantKind  domain.Kind
	}{
		{"owner_can_update", "user-doc-1", domain.RoleDoctor, ""},
		{"admin_can_update", "user-admin", domain.RoleAdmin, ""},
		{"other_doctor_is_denied", "user-doc-2", domain.RoleDoctor, domain.KindForbidden},
		{"patient_is_denied", "user-patient", domain.RolePatient, domain.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, doctorRepo, _ := newDoctorFixture()
			doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "user-doc-1", Specialization: "General Practice"})

			specialization := "Cardiology"
			updated, err := service.Update(context.Background(), tt.subjectID, tt.role, "doc-1", ports.DoctorUpdate{
				Specialization: &specialization,
			})

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("Update returned error: %v", err)
				}
				if updated.Specialization != "Cardiology" {
					t.Errorf("expected specialization updated, got %q", updated.Specialization)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error")
			}
			if kind := domain.KindOf(err); kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, kind)
			}
		})
	}
}

func TestDoctorService_Update_PartialFields(t *testing.T) {
	service, doctorRepo, _ := newDoctorFixture()
	doctorRepo.SeedDoctor(&domain.Doctor{
		ID: "doc-1", UserID: "user-doc-1",
		Specialization: "General Practice", Experience: 5, ConsultationFee: 50,
	})

	fee := 75.0
	updated, err := service.Update(context.Background(), "user-doc-1", domain.RoleDoctor, "doc-1", ports.DoctorUpdate{
		ConsultationFee: &fee,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ConsultationFee != 75 {
		t.Errorf("expected fee 75, got %v", updated.ConsultationFee)
	}
	if updated.Specialization != "General Practice" || updated.Experience != 5 {
		t.Error("fields absent from the update must keep their stored values")
	}
}

func TestDoctorService_UpdateAvailability(t *testing.T) {
	valid := []domain.AvailabilitySlot{{Day: "Monday", StartTime: "09:00", EndTime: "12:00"}}

	tests := []struct {
		name     string
		slots    []domain.AvailabilitySlot
		wantKind domain.Kind
	}{
		{"valid_slots_are_stored", valid, ""},
		{"malformed_start_time", []domain.AvailabilitySlot{{Day: "Monday", StartTime: "9am", EndTime: "12:00"}}, domain.KindInvalidArgument},
		{"malformed_end_time", []domain.AvailabilitySlot{{Day: "Monday", StartTime: "09:00", EndTime: "noon"}}, domain.KindInvalidArgument},
		{"start_not_before_end", []domain.AvailabilitySlot{{Day: "Monday", StartTime: "12:00", EndTime: "09:00"}}, domain.KindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, doctorRepo, _ := newDoctorFixture()
			doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "user-doc-1"})

			updated, err := service.UpdateAvailability(context.Background(), "user-doc-1", domain.RoleDoctor, "doc-1", tt.slots)

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("UpdateAvailability returned error: %v", err)
				}
				if len(updated.Availability) != len(tt.slots) {
					t.Errorf("expected availability replaced, got %+v", updated.Availability)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error")
			}
			if kind := domain.KindOf(err); kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, kind)
			}
		})
	}
}

func TestDoctorService_Rate(t *testing.T) {
	t.Run("first_rating_is_appended", func(t *testing.T) {
		service, doctorRepo, _ := newDoctorFixture()
		doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "user-doc-1"})

		updated, err := service.Rate(context.Background(), "patient-1", "doc-1", 4, "Very helpful")
		if err != nil {
			t.Fatalf("Rate returned error: %v", err)
		}
		if len(updated.Ratings) != 1 {
			t.Fatalf("expected 1 rating, got %d", len(updated.Ratings))
		}
		if updated.Ratings[0].Score != 4 || updated.Ratings[0].Review != "Very helpful" {
			t.Errorf("unexpected rating: %+v", updated.Ratings[0])
		}
	})

	t.Run("re_rating_replaces_in_place", func(t *testing.T) {
		service, doctorRepo, _ := newDoctorFixture()
		doctorRepo.SeedDoctor(&domain.Doctor{
			ID: "doc-1", UserID: "user-doc-1",
			Ratings: []domain.Rating{
				{PatientID: "patient-1", Score: 2, Review: "Long wait"},
				{PatientID: "patient-2", Score: 5, Review: "Excellent"},
			},
		})

		updated, err := service.Rate(context.Background(), "patient-1", "doc-1", 5, "Much better")
		if err != nil {
			t.Fatalf("Rate returned error: %v", err)
		}
		if len(updated.Ratings) != 2 {
			t.Fatalf("expected rating replaced, not appended; got %d ratings", len(updated.Ratings))
		}
		if updated.Ratings[0].Score != 5 || updated.Ratings[0].Review != "Much better" {
			t.Errorf("expected first rating replaced, got %+v", updated.Ratings[0])
		}
		if updated.Ratings[1].PatientID != "patient-2" {
			t.Error("other patients' ratings must be untouched")
		}
	})

	t.Run("score_outside_range_is_rejected", func(t *testing.T) {
		service, doctorRepo, _ := newDoctorFixture()
		doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "user-doc-1"})

		for _, score := range []int{0, 6, -1} {
			_, err := service.Rate(context.Background(), "patient-1", "doc-1", score, "")
			if err == nil {
				t.Fatalf("expected error for score %d", score)
			}
			if msg := domain.MessageOf(err); msg != "Rating must be between 1 and 5" {
				t.Errorf("unexpected message: %q", msg)
			}
		}
	})
}

func TestDoctorService_Stats(t *testing.T) {
	service, doctorRepo, apptRepo := newDoctorFixture()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var ratings []domain.Rating
	for i := 0; i < 7; i++ {
		ratings = append(ratings, domain.Rating{
			PatientID: "patient-" + string(rune('a'+i)),
			Score:     3,
			Date:      base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	doctorRepo.SeedDoctor(&domain.Doctor{ID: "doc-1", UserID: "user-doc-1", Ratings: ratings})

	for i, id := range []string{"a1", "a2"} {
		apptRepo.SeedAppointment(&domain.Appointment{
			ID: id, PatientID: "patient-1", DoctorID: "doc-1",
			DateTime: base.Add(time.Duration(i) * time.Hour), Status: domain.AppointmentCompleted,
		})
	}

	stats, err := service.Stats(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.AverageRating != 3 {
		t.Errorf("expected average 3, got %v", stats.AverageRating)
	}
	if stats.TotalReviews != 7 {
		t.Errorf("expected 7 reviews, got %d", stats.TotalReviews)
	}
	if len(stats.RecentReviews) != 5 {
		t.Fatalf("expected 5 recent reviews, got %d", len(stats.RecentReviews))
	}
	for i := 1; i < len(stats.RecentReviews); i++ {
		if stats.RecentReviews[i].Date.After(stats.RecentReviews[i-1].Date) {
			t.Fatal("expected recent reviews newest first")
		}
	}
	if stats.TotalAppointments != 2 {
		t.Errorf("expected 2 appointments, got %d", stats.TotalAppointments)
	}
}

func TestDoctorService_List_Defaults(t *testing.T) {
	service, doctorRepo, _ := newDoctorFixture()
	for i := 0; i < 12; i++ {
		doctorRepo.SeedDoctor(&domain.Doctor{
			ID:     "doc-" + string(rune('a'+i)),
			UserID: "user-" + string(rune('a'+i)),
		})
	}

	doctors, total, err := service.List(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	if len(doctors) != 10 {
		t.Errorf("expected default page size 10, got %d", len(doctors))
	}
}
