package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type AppointmentRepository struct {
	db *sql.DB
}

var _ ports.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts the appointment and its outbox event in one transaction.
// A partial unique index on (doctor_id, date_time) over scheduled rows
// rejects a second booking of the same slot.
func (r *AppointmentRepository) Create(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to book appointment", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO appointments
		   (id, patient_id, doctor_id, date_time, reason, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		appt.ID,
		appt.PatientID,
		appt.DoctorID,
		appt.DateTime,
		appt.Reason,
		appt.Status,
		appt.Notes,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.NewError(domain.KindInvalidState, "Time slot is already booked")
	}
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to book appointment", err)
	}

	if err := insertOutboxEvent(ctx, tx, eventType, payload); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to book appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to update appointment", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE appointments SET status = $2, notes = $3, updated_at = $4 WHERE id = $1",
		appt.ID,
		appt.Status,
		appt.Notes,
		appt.UpdatedAt,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to update appointment", err)
	}

	if err := insertOutboxEvent(ctx, tx, eventType, payload); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to update appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindForPatient(ctx context.Context, id, patientID string) (*domain.Appointment, error) {
	return scanAppointmentRow(r.db.QueryRowContext(ctx,
		selectAppointment+" WHERE id = $1 AND patient_id = $2", id, patientID))
}

func (r *AppointmentRepository) FindForDoctor(ctx context.Context, id, doctorID string) (*domain.Appointment, error) {
	return scanAppointmentRow(r.db.QueryRowContext(ctx,
		selectAppointment+" WHERE id = $1 AND doctor_id = $2", id, doctorID))
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string, ascending bool) ([]domain.Appointment, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	return r.list(ctx, selectAppointment+" WHERE patient_id = $1 ORDER BY date_time "+order, patientID)
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	return r.list(ctx, selectAppointment+" WHERE doctor_id = $1 ORDER BY date_time DESC", doctorID)
}

func (r *AppointmentRepository) ListScheduledBetween(ctx context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error) {
	return r.list(ctx,
		selectAppointment+" WHERE doctor_id = $1 AND status = $2 AND date_time >= $3 AND date_time < $4 ORDER BY date_time ASC",
		doctorID, domain.AppointmentScheduled, from, to)
}

func (r *AppointmentRepository) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM appointments WHERE doctor_id = $1", doctorID).Scan(&count)
	if err != nil {
		return 0, domain.WrapError(domain.KindInternal, "Failed to count appointments", err)
	}
	return count, nil
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appt, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to list appointments", err)
	}
	return appointments, nil
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO outbox_events (event_type, payload, created_at) VALUES ($1, $2, NOW())",
		eventType, payload)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to record appointment event", err)
	}
	return nil
}

const selectAppointment = `SELECT id, patient_id, doctor_id, date_time, reason, status, notes, created_at, updated_at FROM appointments`

func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.DateTime,
		&appt.Reason,
		&appt.Status,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "Appointment not found")
	}
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to load appointment", err)
	}
	return &appt, nil
}
