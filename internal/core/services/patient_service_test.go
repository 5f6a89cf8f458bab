package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/services"
	"github.com/clinicdesk/clinic-service/test/mocks"
)

func TestPatientService_Dashboard(t *testing.T) {
	patientRepo := mocks.NewMockPatientRepository()
	apptRepo := mocks.NewMockAppointmentRepository()
	prescriptionRepo := mocks.NewMockPrescriptionRepository()
	service := services.NewPatientService(patientRepo, apptRepo, prescriptionRepo)

	base := time.Now().Add(24 * time.Hour)
	statuses := []domain.AppointmentStatus{
		domain.AppointmentScheduled,
		domain.AppointmentScheduled,
		domain.AppointmentCompleted,
	}
	for i, status := range statuses {
		apptRepo.SeedAppointment(&domain.Appointment{
			ID: "a" + string(rune('1'+i)), PatientID: "patient-1", DoctorID: "doc-1",
			DateTime: base.Add(time.Duration(len(statuses)-i) * time.Hour), Status: status,
		})
	}
	prescriptionRepo.SeedPrescription(&domain.Prescription{ID: "p1", PatientID: "patient-1", DoctorID: "doc-1"})

	dashboard, err := service.Dashboard(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}

	if dashboard.Stats.AppointmentsCount != 3 {
		t.Errorf("expected 3 appointments, got %d", dashboard.Stats.AppointmentsCount)
	}
	if dashboard.Stats.UpcomingAppointments != 2 {
		t.Errorf("expected 2 upcoming, got %d", dashboard.Stats.UpcomingAppointments)
	}
	if dashboard.Stats.PrescriptionsCount != 1 {
		t.Errorf("expected 1 prescription, got %d", dashboard.Stats.PrescriptionsCount)
	}

	// The dashboard orders appointments soonest first, unlike the plain
	// listing endpoint.
	for i := 1; i < len(dashboard.Appointments); i++ {
		if dashboard.Appointments[i].DateTime.Before(dashboard.Appointments[i-1].DateTime) {
			t.Fatal("expected dashboard appointments soonest first")
		}
	}
}

func TestPatientService_MedicalRecords(t *testing.T) {
	patientRepo := mocks.NewMockPatientRepository()
	service := services.NewPatientService(patientRepo, mocks.NewMockAppointmentRepository(), mocks.NewMockPrescriptionRepository())

	patientRepo.SeedPatient(&domain.Patient{
		ID: "pat-1", UserID: "patient-1",
		MedicalRecords: []domain.MedicalRecord{{DoctorID: "doc-1", Diagnosis: "Flu"}},
	})

	records, err := service.MedicalRecords(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("MedicalRecords returned error: %v", err)
	}
	if len(records) != 1 || records[0].Diagnosis != "Flu" {
		t.Errorf("unexpected records: %+v", records)
	}

	if _, err := service.MedicalRecords(context.Background(), "patient-unknown"); domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not_found for user without patient profile, got %v", err)
	}
}
