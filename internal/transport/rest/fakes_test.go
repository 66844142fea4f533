package rest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetclinic/internal/domain"
	"vetclinic/pkg/auth"
)

type fakeTokens map[string]auth.Claims

func (f fakeTokens) Parse(token string) (*auth.Claims, error) {
	if token == "expired" {
		return nil, auth.ErrTokenExpired
	}
	claims, ok := f[token]
	if !ok {
		return nil, auth.ErrTokenInvalid
	}
	return &claims, nil
}

var testTokens = fakeTokens{
	"patient": {Subject: "u1", Role: auth.RolePatient},
	"vet":     {Subject: "u2", Role: auth.RoleVeterinarian},
	"admin":   {Subject: "u3", Role: auth.RoleAdmin},
}

// fakeAppointments records the last query method used and returns err when set.
type fakeAppointments struct {
	err       error
	lastQuery string
	lastArg   string
	created   domain.CreateAppointmentDTO
}

func (f *fakeAppointments) result(method, arg string) ([]domain.Appointment, error) {
	f.lastQuery, f.lastArg = method, arg
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Appointment{{ID: 1, VeterinarianID: "V1", PatientID: "P1", Time: "09:00", Status: domain.AppointmentStatusScheduled}}, nil
}

func (f *fakeAppointments) Create(_ context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	f.created = dto
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: 10, VeterinarianID: dto.VeterinarianID, PatientID: dto.PatientID, Time: dto.Time, Status: domain.AppointmentStatusScheduled}, nil
}

func (f *fakeAppointments) Update(_ context.Context, id int64, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id, Time: dto.Time, Status: dto.Status}, nil
}

func (f *fakeAppointments) ChangeStatus(_ context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	f.lastQuery, f.lastArg = "ChangeStatus", string(status)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id, Status: status}, nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id}, nil
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return f.result("List", fmt.Sprintf("%d/%d", filter.Limit, filter.Offset))
}

func (f *fakeAppointments) ListByStatus(_ context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	return f.result("ListByStatus", string(status))
}

func (f *fakeAppointments) ListByDate(_ context.Context, date time.Time) ([]domain.Appointment, error) {
	return f.result("ListByDate", domain.FormatDate(date))
}

func (f *fakeAppointments) ListByTime(_ context.Context, clock string) ([]domain.Appointment, error) {
	return f.result("ListByTime", clock)
}

func (f *fakeAppointments) ListByDateTime(_ context.Context, date time.Time, clock string) ([]domain.Appointment, error) {
	return f.result("ListByDateTime", domain.FormatDate(date)+" "+clock)
}

func (f *fakeAppointments) ListByVeterinarian(_ context.Context, vetID string) ([]domain.Appointment, error) {
	return f.result("ListByVeterinarian", vetID)
}

func (f *fakeAppointments) ListByPatient(_ context.Context, patientID string) ([]domain.Appointment, error) {
	return f.result("ListByPatient", patientID)
}

type fakeCatalog struct {
	err error
}

func (f *fakeCatalog) Create(_ context.Context, dto domain.CreateClinicServiceDTO) (*domain.ClinicService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicService{ID: 1, Type: dto.Type, DurationMinutes: dto.DurationMinutes}, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.ClinicService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicService{ID: id, Type: "Consulta", DurationMinutes: 30}, nil
}

func (f *fakeCatalog) Update(_ context.Context, id int64, _ domain.UpdateClinicServiceDTO) (*domain.ClinicService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicService{ID: id}, nil
}

func (f *fakeCatalog) Delete(context.Context, int64) error {
	return f.err
}

func (f *fakeCatalog) List(context.Context) ([]domain.ClinicService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ClinicService{{ID: 1, Type: "Consulta", DurationMinutes: 30}}, nil
}

type fakeRecords struct {
	err error
}

func (f *fakeRecords) Create(_ context.Context, dto domain.CreateClinicalRecordDTO) (*domain.ClinicalRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicalRecord{ID: 5, AppointmentID: dto.AppointmentID}, nil
}

func (f *fakeRecords) GetByID(_ context.Context, id int64) (*domain.ClinicalRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicalRecord{ID: id}, nil
}

func (f *fakeRecords) List(context.Context, int, int) ([]domain.ClinicalRecord, error) {
	return []domain.ClinicalRecord{}, f.err
}

func (f *fakeRecords) ListByPatient(context.Context, string) ([]domain.ClinicalRecord, error) {
	return []domain.ClinicalRecord{{ID: 1}}, f.err
}

func (f *fakeRecords) ListByVeterinarian(context.Context, string) ([]domain.ClinicalRecord, error) {
	return []domain.ClinicalRecord{{ID: 2}}, f.err
}

func (f *fakeRecords) GetByAppointment(_ context.Context, appointmentID int64) (*domain.ClinicalRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicalRecord{ID: 3, AppointmentID: appointmentID}, nil
}

func (f *fakeRecords) Update(_ context.Context, id int64, _ domain.UpdateClinicalRecordDTO) (*domain.ClinicalRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ClinicalRecord{ID: id}, nil
}

func (f *fakeRecords) Delete(context.Context, int64) error {
	return f.err
}

func (f *fakeRecords) Report(context.Context, int64) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 test"), nil
}

func (f *fakeRecords) ReportURL(context.Context, int64, time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.test/report.pdf", nil
}

var errDatabase = errors.New("connection reset by peer")
