package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vetclinic/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Appointment

	failExists bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{rows: make(map[int64]domain.Appointment)}
}

func (r *fakeAppointmentRepo) seed(a domain.Appointment) int64 {
	id, _ := r.Create(context.Background(), &a)
	return id
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = *a
	return a.ID, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrResourceNotFound)
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[a.ID]; !ok {
		return fmt.Errorf("appointment %d: %w", a.ID, domain.ErrResourceNotFound)
	}
	r.rows[a.ID] = *a
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Appointment, 0)
	for id := int64(1); id <= r.nextID; id++ {
		a, ok := r.rows[id]
		if !ok {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.Date != nil && !a.Date.Equal(*f.Date) {
			continue
		}
		if f.Time != nil && a.Time != *f.Time {
			continue
		}
		if f.VeterinarianID != nil && a.VeterinarianID != *f.VeterinarianID {
			continue
		}
		if f.PatientID != nil && a.PatientID != *f.PatientID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ExistsOccupying(ctx context.Context, q domain.SlotQuery) (bool, error) {
	if r.failExists {
		return false, errors.New("database unavailable")
	}
	matches, _ := r.ListOccupying(ctx, q)
	for _, a := range matches {
		if a.Time == q.Time {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) ListOccupying(_ context.Context, q domain.SlotQuery) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Appointment, 0)
	for _, a := range r.rows {
		if q.VeterinarianID != "" && a.VeterinarianID != q.VeterinarianID {
			continue
		}
		if q.PatientID != "" && a.PatientID != q.PatientID {
			continue
		}
		if !a.Date.Equal(q.Date) || a.ID == q.ExcludeID {
			continue
		}
		if !statusIn(a.Status, q.Statuses) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func statusIn(s domain.AppointmentStatus, set []domain.AppointmentStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

type fakeServiceRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.ClinicService
}

func newFakeServiceRepo(services ...domain.ClinicService) *fakeServiceRepo {
	r := &fakeServiceRepo{rows: make(map[int64]domain.ClinicService)}
	for _, s := range services {
		r.rows[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeServiceRepo) Create(_ context.Context, dto domain.CreateClinicServiceDTO) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.rows[r.nextID] = domain.ClinicService{
		ID:              r.nextID,
		Type:            dto.Type,
		Description:     dto.Description,
		DurationMinutes: dto.DurationMinutes,
		Requirements:    dto.Requirements,
	}
	return r.nextID, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.ClinicService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
	}
	return &s, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, id int64, dto domain.UpdateClinicServiceDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
	}
	if dto.Type != nil {
		s.Type = *dto.Type
	}
	if dto.Description != nil {
		s.Description = *dto.Description
	}
	if dto.DurationMinutes != nil {
		s.DurationMinutes = *dto.DurationMinutes
	}
	if dto.Requirements != nil {
		s.Requirements = *dto.Requirements
	}
	r.rows[id] = s
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]domain.ClinicService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ClinicService, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if s, ok := r.rows[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeClinicalRecordRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.ClinicalRecord
}

func newFakeClinicalRecordRepo() *fakeClinicalRecordRepo {
	return &fakeClinicalRecordRepo{rows: make(map[int64]domain.ClinicalRecord)}
}

func (r *fakeClinicalRecordRepo) Create(_ context.Context, rec *domain.ClinicalRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	r.rows[rec.ID] = *rec
	return rec.ID, nil
}

func (r *fakeClinicalRecordRepo) GetByID(_ context.Context, id int64) (*domain.ClinicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
	}
	return &rec, nil
}

func (r *fakeClinicalRecordRepo) Update(_ context.Context, id int64, dto domain.UpdateClinicalRecordDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
	}
	rec.Reason = dto.Reason
	rec.Diagnosis = dto.Diagnosis
	rec.Treatment = dto.Treatment
	rec.NextSteps = dto.NextSteps
	rec.Observations = dto.Observations
	r.rows[id] = rec
	return nil
}

func (r *fakeClinicalRecordRepo) SetReportKey(_ context.Context, id int64, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.rows[id]
	rec.ReportKey = key
	r.rows[id] = rec
	return nil
}

func (r *fakeClinicalRecordRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeClinicalRecordRepo) List(_ context.Context, f domain.ClinicalRecordFilter) ([]domain.ClinicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ClinicalRecord, 0)
	for id := int64(1); id <= r.nextID; id++ {
		rec, ok := r.rows[id]
		if !ok {
			continue
		}
		if f.PatientID != nil && rec.PatientID != *f.PatientID {
			continue
		}
		if f.VeterinarianID != nil && rec.VeterinarianID != *f.VeterinarianID {
			continue
		}
		if f.AppointmentID != nil && rec.AppointmentID != *f.AppointmentID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeOracle struct {
	mu        sync.Mutex
	available bool
	err       error
	calls     int
}

func (o *fakeOracle) IsAvailable(context.Context, string, time.Time, string) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	return o.available, o.err
}

func (o *fakeOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

type fakeDirectory struct {
	emails map[string]string
	pets   map[string]string
	vets   map[string]string
}

func (d fakeDirectory) EmailFor(_ context.Context, patientID string) string {
	return d.emails[patientID]
}

func (d fakeDirectory) PetNameFor(_ context.Context, patientID string) string {
	return d.pets[patientID]
}

func (d fakeDirectory) VetNameFor(_ context.Context, vetID string) string {
	return d.vets[vetID]
}

type recordingSender struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (s *recordingSender) Send(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

func (s *recordingSender) notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.sent...)
}

type fakeRenderer struct {
	err error
}

func (r fakeRenderer) Render(rec domain.ClinicalRecord, petName, vetName string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte(fmt.Sprintf("%%PDF record=%d pet=%s vet=%s", rec.ID, petName, vetName)), nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) UploadFile(_ context.Context, data []byte, prefix, filename, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	key := prefix + "/" + filename
	m.objects[key] = data
	return key, nil
}

func (m *memoryStorage) DeleteFile(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) GetFile(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (m *memoryStorage) GetPresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?signature=x", nil
}
