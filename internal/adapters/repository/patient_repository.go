package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

type PatientRepository struct {
	db *sql.DB
}

var _ ports.PatientRepository = (*PatientRepository)(nil)

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient domain.Patient) error {
	history, err := json.Marshal(patient.MedicalHistory)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode medical history", err)
	}
	records, err := json.Marshal(patient.MedicalRecords)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode medical records", err)
	}
	contact, err := json.Marshal(patient.EmergencyContact)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode emergency contact", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO patients
		   (id, user_id, date_of_birth, blood_group, allergies, medical_history, medical_records, emergency_contact, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		patient.ID,
		patient.UserID,
		patient.DateOfBirth,
		patient.BloodGroup,
		pq.Array(patient.Allergies),
		history,
		records,
		contact,
		patient.CreatedAt,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to create patient profile", err)
	}
	return nil
}

func (r *PatientRepository) FindByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	patient, err := scanPatientRow(r.db.QueryRowContext(ctx, selectPatient+" WHERE user_id = $1", userID))
	if err != nil && domain.KindOf(err) == domain.KindNotFound {
		return nil, domain.NewError(domain.KindNotFound, "Patient profile not found for this user")
	}
	return patient, err
}

func (r *PatientRepository) List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM patients").Scan(&total); err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to count patients", err)
	}

	rows, err := r.db.QueryContext(ctx, selectPatient+" ORDER BY created_at DESC OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to list patients", err)
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		patient, err := scanPatientRow(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, *patient)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to list patients", err)
	}
	return patients, total, nil
}

const selectPatient = `SELECT id, user_id, date_of_birth, blood_group, allergies, medical_history, medical_records, emergency_contact, created_at FROM patients`

func scanPatientRow(row rowScanner) (*domain.Patient, error) {
	var patient domain.Patient
	var history, records, contact []byte
	err := row.Scan(
		&patient.ID,
		&patient.UserID,
		&patient.DateOfBirth,
		&patient.BloodGroup,
		pq.Array(&patient.Allergies),
		&history,
		&records,
		&contact,
		&patient.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "Patient not found")
	}
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to load patient", err)
	}

	if err := json.Unmarshal(history, &patient.MedicalHistory); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode medical history", err)
	}
	if err := json.Unmarshal(records, &patient.MedicalRecords); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode medical records", err)
	}
	if err := json.Unmarshal(contact, &patient.EmergencyContact); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode emergency contact", err)
	}
	return &patient, nil
}
