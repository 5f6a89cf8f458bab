package domain

import "testing"

func TestValidAppointmentStatus(t *testing.T) {
	for _, status := range []AppointmentStatus{AppointmentScheduled, AppointmentCompleted, AppointmentCancelled} {
		if !ValidAppointmentStatus(status) {
			t.Errorf("expected %s to be valid", status)
		}
	}
	for _, status := range []AppointmentStatus{"", "confirmed", "SCHEDULED"} {
		if ValidAppointmentStatus(status) {
			t.Errorf("expected %s to be invalid", status)
		}
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	if AppointmentScheduled.IsTerminal() {
		t.Error("scheduled must not be terminal")
	}
	if !AppointmentCompleted.IsTerminal() || !AppointmentCancelled.IsTerminal() {
		t.Error("completed and cancelled are terminal")
	}
}
