package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PrescriptionRepository struct {
	db *sql.DB
}

var _ ports.PrescriptionRepository = (*PrescriptionRepository)(nil)

func NewPrescriptionRepository(db *sql.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p domain.Prescription) error {
	medications, err := json.Marshal(p.Medications)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode medications", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO prescriptions
		   (id, patient_id, doctor_id, medications, diagnosis, start_date, end_date, notes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID,
		p.PatientID,
		p.DoctorID,
		medications,
		p.Diagnosis,
		p.StartDate,
		nullableTime(p.EndDate),
		p.Notes,
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to create prescription", err)
	}
	return nil
}

func (r *PrescriptionRepository) FindByID(ctx context.Context, id string) (*domain.Prescription, error) {
	return scanPrescriptionRow(r.db.QueryRowContext(ctx, selectPrescription+" WHERE id = $1", id))
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	return r.list(ctx, selectPrescription+" WHERE patient_id = $1 ORDER BY created_at DESC", patientID)
}

func (r *PrescriptionRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	return r.list(ctx, selectPrescription+" WHERE doctor_id = $1 ORDER BY created_at DESC", doctorID)
}

func (r *PrescriptionRepository) ListAll(ctx context.Context) ([]domain.Prescription, error) {
	return r.list(ctx, selectPrescription+" ORDER BY created_at DESC")
}

func (r *PrescriptionRepository) Update(ctx context.Context, p domain.Prescription) error {
	medications, err := json.Marshal(p.Medications)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode medications", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE prescriptions SET
		   medications = $2, diagnosis = $3, start_date = $4, end_date = $5, notes = $6, status = $7
		 WHERE id = $1`,
		p.ID,
		medications,
		p.Diagnosis,
		p.StartDate,
		nullableTime(p.EndDate),
		p.Notes,
		p.Status,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to update prescription", err)
	}
	return nil
}

func (r *PrescriptionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM prescriptions WHERE id = $1", id)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to delete prescription", err)
	}
	return nil
}

func (r *PrescriptionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Prescription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to list prescriptions", err)
	}
	defer rows.Close()

	var prescriptions []domain.Prescription
	for rows.Next() {
		p, err := scanPrescriptionRow(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to list prescriptions", err)
	}
	return prescriptions, nil
}

const selectPrescription = `SELECT id, patient_id, doctor_id, medications, diagnosis, start_date, end_date, notes, status, created_at FROM prescriptions`

func scanPrescriptionRow(row rowScanner) (*domain.Prescription, error) {
	var p domain.Prescription
	var medications []byte
	var endDate sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.PatientID,
		&p.DoctorID,
		&medications,
		&p.Diagnosis,
		&p.StartDate,
		&endDate,
		&p.Notes,
		&p.Status,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "Prescription not found")
	}
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to load prescription", err)
	}

	if endDate.Valid {
		p.EndDate = endDate.Time
	}
	if err := json.Unmarshal(medications, &p.Medications); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode medications", err)
	}
	return &p, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
