package ports

import (
	"context"
	"time"
)

const (
	AppointmentBookedEvent        = "appointment.booked"
	AppointmentCancelledEvent     = "appointment.cancelled"
	AppointmentStatusChangedEvent = "appointment.status_changed"
)

type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	DateTime      time.Time `json:"date_time"`
	Status        string    `json:"status"`
}

type AppointmentEventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, evt AppointmentEvent) error
}
