// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository for testing.
type MockUserRepository struct {
	mu sync.RWMutex

	users map[string]*domain.User // keyed by ID

	// Call tracking for verification
	CreateCalls []domain.User
	DeleteCalls []string

	// Error injection for testing error scenarios
	CreateError      error
	FindByEmailError error
	DeleteError      error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// SeedUser adds a user to the mock repository for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, user)

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domain.NewError(domain.KindInvalidArgument, "User with this email already exists")
		}
	}
	m.users[user.ID] = &user
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "User not found")
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "User not found")
	}
	return user, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.users, id)
	return nil
}

// Count returns the number of stored users.
func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// MockDoctorRepository implements ports.DoctorRepository for testing.
type MockDoctorRepository struct {
	mu sync.RWMutex

	doctors map[string]*domain.Doctor // keyed by profile ID

	CreateCalls []domain.Doctor
	UpdateCalls []domain.Doctor

	CreateError error
	UpdateError error
}

var _ ports.DoctorRepository = (*MockDoctorRepository)(nil)

func NewMockDoctorRepository() *MockDoctorRepository {
	return &MockDoctorRepository{doctors: make(map[string]*domain.Doctor)}
}

// SeedDoctor adds a doctor profile to the mock repository for test setup.
func (m *MockDoctorRepository) SeedDoctor(doctor *domain.Doctor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors[doctor.ID] = doctor
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor domain.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, doctor)

	if m.CreateError != nil {
		return m.CreateError
	}
	m.doctors[doctor.ID] = &doctor
	return nil
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doctor, ok := m.doctors[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "Doctor not found")
	}
	return doctor, nil
}

func (m *MockDoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doctor := range m.doctors {
		if doctor.UserID == userID {
			return doctor, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "Doctor profile not found for this user")
}

func (m *MockDoctorRepository) List(ctx context.Context, specialization string, offset, limit int) ([]domain.Doctor, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []domain.Doctor
	for _, doctor := range m.doctors {
		if specialization == "" || doctor.Specialization == specialization {
			matched = append(matched, *doctor)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *MockDoctorRepository) Specializations(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var specializations []string
	for _, doctor := range m.doctors {
		if !seen[doctor.Specialization] {
			seen[doctor.Specialization] = true
			specializations = append(specializations, doctor.Specialization)
		}
	}
	sort.Strings(specializations)
	return specializations, nil
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor domain.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, doctor)

	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.doctors[doctor.ID]; !ok {
		return domain.NewError(domain.KindNotFound, "Doctor not found")
	}
	m.doctors[doctor.ID] = &doctor
	return nil
}

// MockPatientRepository implements ports.PatientRepository for testing.
type MockPatientRepository struct {
	mu sync.RWMutex

	patients map[string]*domain.Patient // keyed by profile ID

	CreateCalls []domain.Patient

	CreateError error
}

var _ ports.PatientRepository = (*MockPatientRepository)(nil)

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{patients: make(map[string]*domain.Patient)}
}

// SeedPatient adds a patient profile to the mock repository for test setup.
func (m *MockPatientRepository) SeedPatient(patient *domain.Patient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[patient.ID] = patient
}

func (m *MockPatientRepository) Create(ctx context.Context, patient domain.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, patient)

	if m.CreateError != nil {
		return m.CreateError
	}
	m.patients[patient.ID] = &patient
	return nil
}

func (m *MockPatientRepository) FindByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, patient := range m.patients {
		if patient.UserID == userID {
			return patient, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "Patient profile not found for this user")
}

func (m *MockPatientRepository) List(ctx context.Context, offset, limit int) ([]domain.Patient, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var patients []domain.Patient
	for _, patient := range m.patients {
		patients = append(patients, *patient)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })

	total := len(patients)
	if offset >= len(patients) {
		return nil, total, nil
	}
	patients = patients[offset:]
	if limit > 0 && limit < len(patients) {
		patients = patients[:limit]
	}
	return patients, total, nil
}

// MockAppointmentRepository implements ports.AppointmentRepository for testing.
// Outbox payloads are captured alongside the appointment writes so tests can
// verify the event half of the transactional write.
type MockAppointmentRepository struct {
	mu sync.RWMutex

	appointments map[string]*domain.Appointment

	CreateCalls   []domain.Appointment
	UpdateCalls   []domain.Appointment
	OutboxEvents  []MockOutboxEvent

	CreateError error
	UpdateError error
}

// MockOutboxEvent records one captured outbox write.
type MockOutboxEvent struct {
	Type    string
	Payload []byte
}

var _ ports.AppointmentRepository = (*MockAppointmentRepository)(nil)

func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{appointments: make(map[string]*domain.Appointment)}
}

// SeedAppointment adds an appointment to the mock repository for test setup.
func (m *MockAppointmentRepository) SeedAppointment(appt *domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[appt.ID] = appt
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, appt)

	if m.CreateError != nil {
		return m.CreateError
	}

	// Same constraint the partial unique index enforces in Postgres.
	for _, existing := range m.appointments {
		if existing.DoctorID == appt.DoctorID &&
			existing.DateTime.Equal(appt.DateTime) &&
			existing.Status == domain.AppointmentScheduled {
			return domain.NewError(domain.KindInvalidState, "Time slot is already booked")
		}
	}

	m.appointments[appt.ID] = &appt
	m.OutboxEvents = append(m.OutboxEvents, MockOutboxEvent{Type: eventType, Payload: payload})
	return nil
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt domain.Appointment, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, appt)

	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.appointments[appt.ID]; !ok {
		return domain.NewError(domain.KindNotFound, "Appointment not found")
	}

	m.appointments[appt.ID] = &appt
	m.OutboxEvents = append(m.OutboxEvents, MockOutboxEvent{Type: eventType, Payload: payload})
	return nil
}

func (m *MockAppointmentRepository) FindForPatient(ctx context.Context, id, patientID string) (*domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appt, ok := m.appointments[id]
	if !ok || appt.PatientID != patientID {
		return nil, domain.NewError(domain.KindNotFound, "Appointment not found")
	}
	return appt, nil
}

func (m *MockAppointmentRepository) FindForDoctor(ctx context.Context, id, doctorID string) (*domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appt, ok := m.appointments[id]
	if !ok || appt.DoctorID != doctorID {
		return nil, domain.NewError(domain.KindNotFound, "Appointment not found")
	}
	return appt, nil
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string, ascending bool) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var appointments []domain.Appointment
	for _, appt := range m.appointments {
		if appt.PatientID == patientID {
			appointments = append(appointments, *appt)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		if ascending {
			return appointments[i].DateTime.Before(appointments[j].DateTime)
		}
		return appointments[j].DateTime.Before(appointments[i].DateTime)
	})
	return appointments, nil
}

func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var appointments []domain.Appointment
	for _, appt := range m.appointments {
		if appt.DoctorID == doctorID {
			appointments = append(appointments, *appt)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[j].DateTime.Before(appointments[i].DateTime)
	})
	return appointments, nil
}

func (m *MockAppointmentRepository) ListScheduledBetween(ctx context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var appointments []domain.Appointment
	for _, appt := range m.appointments {
		if appt.DoctorID != doctorID || appt.Status != domain.AppointmentScheduled {
			continue
		}
		if appt.DateTime.Before(from) || !appt.DateTime.Before(to) {
			continue
		}
		appointments = append(appointments, *appt)
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].DateTime.Before(appointments[j].DateTime)
	})
	return appointments, nil
}

func (m *MockAppointmentRepository) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, appt := range m.appointments {
		if appt.DoctorID == doctorID {
			count++
		}
	}
	return count, nil
}

// Get returns the stored appointment regardless of ownership, for assertions.
func (m *MockAppointmentRepository) Get(id string) *domain.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.appointments[id]
}

// MockPrescriptionRepository implements ports.PrescriptionRepository for testing.
type MockPrescriptionRepository struct {
	mu sync.RWMutex

	prescriptions map[string]*domain.Prescription

	CreateCalls []domain.Prescription
	DeleteCalls []string

	CreateError error
	UpdateError error
}

var _ ports.PrescriptionRepository = (*MockPrescriptionRepository)(nil)

func NewMockPrescriptionRepository() *MockPrescriptionRepository {
	return &MockPrescriptionRepository{prescriptions: make(map[string]*domain.Prescription)}
}

// SeedPrescription adds a prescription to the mock repository for test setup.
func (m *MockPrescriptionRepository) SeedPrescription(p *domain.Prescription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prescriptions[p.ID] = p
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, p domain.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, p)

	if m.CreateError != nil {
		return m.CreateError
	}
	m.prescriptions[p.ID] = &p
	return nil
}

func (m *MockPrescriptionRepository) FindByID(ctx context.Context, id string) (*domain.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.prescriptions[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "Prescription not found")
	}
	return p, nil
}

func (m *MockPrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var prescriptions []domain.Prescription
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			prescriptions = append(prescriptions, *p)
		}
	}
	sortPrescriptions(prescriptions)
	return prescriptions, nil
}

func (m *MockPrescriptionRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var prescriptions []domain.Prescription
	for _, p := range m.prescriptions {
		if p.DoctorID == doctorID {
			prescriptions = append(prescriptions, *p)
		}
	}
	sortPrescriptions(prescriptions)
	return prescriptions, nil
}

func (m *MockPrescriptionRepository) ListAll(ctx context.Context) ([]domain.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var prescriptions []domain.Prescription
	for _, p := range m.prescriptions {
		prescriptions = append(prescriptions, *p)
	}
	sortPrescriptions(prescriptions)
	return prescriptions, nil
}

func (m *MockPrescriptionRepository) Update(ctx context.Context, p domain.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.prescriptions[p.ID]; !ok {
		return domain.NewError(domain.KindNotFound, "Prescription not found")
	}
	m.prescriptions[p.ID] = &p
	return nil
}

func (m *MockPrescriptionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)
	delete(m.prescriptions, id)
	return nil
}

func sortPrescriptions(prescriptions []domain.Prescription) {
	sort.Slice(prescriptions, func(i, j int) bool {
		return prescriptions[j].CreatedAt.Before(prescriptions[i].CreatedAt)
	})
}

// MockTokenStore implements ports.TokenStore for testing.
type MockTokenStore struct {
	mu sync.RWMutex

	blacklisted map[string]time.Duration

	BlacklistError error
}

var _ ports.TokenStore = (*MockTokenStore)(nil)

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{blacklisted: make(map[string]time.Duration)}
}

func (m *MockTokenStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.BlacklistError != nil {
		return m.BlacklistError
	}
	m.blacklisted[token] = ttl
	return nil
}

func (m *MockTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.blacklisted[token]
	return ok, nil
}
