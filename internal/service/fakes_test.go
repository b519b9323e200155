package service

import (
	"context"
	"time"

	"hms/internal/domain"
)

type fakeWeekdayRepo struct {
	weekdays []domain.Weekday
	calls    int
}

func (f *fakeWeekdayRepo) List(ctx context.Context) ([]domain.Weekday, error) {
	f.calls++
	return f.weekdays, nil
}

type appliedSlotDetails struct {
	doctorID       int64
	details        []domain.SlotDayDetailsDTO
	removedSlotIDs []int64
}

type fakeSlotRepo struct {
	slots       []domain.Slot
	daySlots    []domain.DaySlot
	assignments []domain.DoctorSlot
	settings    []domain.SlotDaySetting
	daySetting  *domain.SlotDaySetting
	bookable    []domain.Slot

	calls   int
	applied []appliedSlotDetails
}

func (f *fakeSlotRepo) Create(ctx context.Context, dto domain.CreateSlotDTO) (int64, error) {
	f.calls++
	return 1, nil
}

func (f *fakeSlotRepo) List(ctx context.Context) ([]domain.Slot, error) {
	f.calls++
	return f.slots, nil
}

func (f *fakeSlotRepo) GetDaySlots(ctx context.Context, doctorID, weekdayID int64) ([]domain.DaySlot, error) {
	f.calls++
	return f.daySlots, nil
}

func (f *fakeSlotRepo) GetAssignments(ctx context.Context, doctorID int64, weekdayID *int64) ([]domain.DoctorSlot, error) {
	f.calls++
	if weekdayID == nil {
		return f.assignments, nil
	}
	var filtered []domain.DoctorSlot
	for _, a := range f.assignments {
		if a.WeekdayID == *weekdayID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (f *fakeSlotRepo) GetDaySettings(ctx context.Context, doctorID int64) ([]domain.SlotDaySetting, error) {
	f.calls++
	return f.settings, nil
}

func (f *fakeSlotRepo) GetDaySetting(ctx context.Context, doctorID, weekdayID int64) (*domain.SlotDaySetting, error) {
	f.calls++
	return f.daySetting, nil
}

func (f *fakeSlotRepo) ApplySlotDetails(ctx context.Context, doctorID int64, details []domain.SlotDayDetailsDTO, removedSlotIDs []int64) error {
	f.calls++
	f.applied = append(f.applied, appliedSlotDetails{
		doctorID:       doctorID,
		details:        details,
		removedSlotIDs: removedSlotIDs,
	})
	return nil
}

func (f *fakeSlotRepo) GetBookableSlots(ctx context.Context, doctorID, weekdayID int64, date time.Time) ([]domain.Slot, error) {
	f.calls++
	return f.bookable, nil
}

type fakeDoctorRepo struct {
	doctor *domain.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	return 1, nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return f.doctor, nil
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	return f.doctor, nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	return nil
}

func (f *fakeDoctorRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	return nil, 0, nil
}

func (f *fakeDoctorRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	return nil
}

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	occupied    bool
	created     []domain.CreateAppointmentDTO
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	f.created = append(f.created, dto)
	return 1, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	if f.appointment != nil && dto.Status != nil {
		f.appointment.Status = *dto.Status
	}
	return nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	return 0, nil
}

func (f *fakeAppointmentRepo) HasActiveAppointment(ctx context.Context, doctorID, slotID int64, date time.Time) (bool, error) {
	return f.occupied, nil
}

func testWeekdays() []domain.Weekday {
	return []domain.Weekday{
		{ID: 1, Name: "Monday"},
		{ID: 2, Name: "Tuesday"},
		{ID: 3, Name: "Wednesday"},
		{ID: 4, Name: "Thursday"},
		{ID: 5, Name: "Friday"},
		{ID: 6, Name: "Saturday"},
		{ID: 7, Name: "Sunday"},
	}
}
