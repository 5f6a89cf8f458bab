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

type DoctorRepository struct {
	db *sql.DB
}

var _ ports.DoctorRepository = (*DoctorRepository)(nil)

func NewDoctorRepository(db *sql.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor domain.Doctor) error {
	availability, err := json.Marshal(doctor.Availability)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode availability", err)
	}
	ratings, err := json.Marshal(doctor.Ratings)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode ratings", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO doctors
		   (id, user_id, specialization, qualifications, experience, consultation_fee, availability, ratings, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doctor.ID,
		doctor.UserID,
		doctor.Specialization,
		pq.Array(doctor.Qualifications),
		doctor.Experience,
		doctor.ConsultationFee,
		availability,
		ratings,
		doctor.CreatedAt,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to create doctor profile", err)
	}
	return nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectDoctor+" WHERE id = $1", id))
}

func (r *DoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	doctor, err := r.scanOne(r.db.QueryRowContext(ctx, selectDoctor+" WHERE user_id = $1", userID))
	if err != nil && domain.KindOf(err) == domain.KindNotFound {
		return nil, domain.NewError(domain.KindNotFound, "Doctor profile not found for this user")
	}
	return doctor, err
}

func (r *DoctorRepository) List(ctx context.Context, specialization string, offset, limit int) ([]domain.Doctor, int, error) {
	query := selectDoctor
	countQuery := "SELECT COUNT(*) FROM doctors"
	args := []any{}

	if specialization != "" {
		query += " WHERE specialization = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3"
		countQuery += " WHERE specialization = $1"
		args = append(args, specialization)
	} else {
		query += " ORDER BY created_at DESC OFFSET $1 LIMIT $2"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to count doctors", err)
	}

	rows, err := r.db.QueryContext(ctx, query, append(args, offset, limit)...)
	if err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := scanDoctorRow(rows)
		if err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, *doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.WrapError(domain.KindInternal, "Failed to list doctors", err)
	}
	return doctors, total, nil
}

func (r *DoctorRepository) Specializations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT specialization FROM doctors ORDER BY specialization")
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to list specializations", err)
	}
	defer rows.Close()

	var specializations []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, domain.WrapError(domain.KindInternal, "Failed to list specializations", err)
		}
		specializations = append(specializations, s)
	}
	return specializations, rows.Err()
}

func (r *DoctorRepository) Update(ctx context.Context, doctor domain.Doctor) error {
	availability, err := json.Marshal(doctor.Availability)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode availability", err)
	}
	ratings, err := json.Marshal(doctor.Ratings)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to encode ratings", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE doctors SET
		   specialization = $2, qualifications = $3, experience = $4,
		   consultation_fee = $5, availability = $6, ratings = $7
		 WHERE id = $1`,
		doctor.ID,
		doctor.Specialization,
		pq.Array(doctor.Qualifications),
		doctor.Experience,
		doctor.ConsultationFee,
		availability,
		ratings,
	)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Failed to update doctor profile", err)
	}
	return nil
}

const selectDoctor = `SELECT id, user_id, specialization, qualifications, experience, consultation_fee, availability, ratings, created_at FROM doctors`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *DoctorRepository) scanOne(row *sql.Row) (*domain.Doctor, error) {
	doctor, err := scanDoctorRow(row)
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

func scanDoctorRow(row rowScanner) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var availability, ratings []byte
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Specialization,
		pq.Array(&doctor.Qualifications),
		&doctor.Experience,
		&doctor.ConsultationFee,
		&availability,
		&ratings,
		&doctor.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "Doctor not found")
	}
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to load doctor", err)
	}

	if err := json.Unmarshal(availability, &doctor.Availability); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode availability", err)
	}
	if err := json.Unmarshal(ratings, &doctor.Ratings); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Failed to decode ratings", err)
	}
	return &doctor, nil
}
