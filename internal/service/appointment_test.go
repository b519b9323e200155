package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"hms/internal/domain"
)

func newAppointmentService(slotRepo *fakeSlotRepo, apptRepo *fakeAppointmentRepo, doctorRepo *fakeDoctorRepo, weekdays []domain.Weekday) *AppointmentServiceImpl {
	logger := zap.NewNop()
	catalog := NewCatalogService(&fakeWeekdayRepo{weekdays: weekdays}, slotRepo, nil, logger)
	return NewAppointmentService(apptRepo, doctorRepo, slotRepo, catalog, logger)
}

func TestGetBookableSlotsNoDoctor(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	svc := newAppointmentService(slotRepo, &fakeAppointmentRepo{}, &fakeDoctorRepo{}, testWeekdays())

	availability, err := svc.GetBookableSlots(context.Background(), 0, "2026-09-07")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if availability.IsSlotAvailable {
		t.Error("без выбранного врача флаг доступности должен быть false")
	}
	if len(availability.Slots.Morning) != 0 || len(availability.Slots.Afternoon) != 0 || len(availability.Slots.Evening) != 0 {
		t.Error("без выбранного врача все периоды должны быть пустыми")
	}
	if availability.Slots.Morning == nil || availability.Slots.Afternoon == nil || availability.Slots.Evening == nil {
		t.Error("пустые периоды должны быть не-nil срезами")
	}
	if slotRepo.calls != 0 {
		t.Errorf("без выбранного врача обращений к расписанию быть не должно, было %d", slotRepo.calls)
	}
}

func TestGetBookableSlotsInvalidDate(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	svc := newAppointmentService(slotRepo, &fakeAppointmentRepo{}, &fakeDoctorRepo{}, testWeekdays())

	_, err := svc.GetBookableSlots(context.Background(), 1, "07.09.2026")
	if err == nil {
		t.Fatal("ожидалась ошибка формата даты")
	}
	if slotRepo.calls != 0 {
		t.Errorf("при неверной дате обращений к расписанию быть не должно, было %d", slotRepo.calls)
	}
}

func TestGetBookableSlotsUnmatchedWeekday(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	localized := []domain.Weekday{{ID: 1, Name: "Понедельник"}}
	svc := newAppointmentService(slotRepo, &fakeAppointmentRepo{}, &fakeDoctorRepo{}, localized)

	availability, err := svc.GetBookableSlots(context.Background(), 1, "2026-09-07")
	if err != nil {
		t.Fatalf("несопоставленный день недели не является ошибкой: %v", err)
	}
	if availability.IsSlotAvailable {
		t.Error("при несопоставленном дне недели флаг должен быть false")
	}
	if slotRepo.calls != 0 {
		t.Errorf("при несопоставленном дне недели обращений к расписанию быть не должно, было %d", slotRepo.calls)
	}
}

func TestGetBookableSlotsFlagIndependentOfSlots(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting: &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
		bookable:   []domain.Slot{},
	}
	svc := newAppointmentService(slotRepo, &fakeAppointmentRepo{}, &fakeDoctorRepo{}, testWeekdays())

	availability, err := svc.GetBookableSlots(context.Background(), 1, "2026-09-07")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if !availability.IsSlotAvailable {
		t.Error("флаг дня должен быть true даже при отсутствии свободных окон")
	}
	if len(availability.Slots.Morning)+len(availability.Slots.Afternoon)+len(availability.Slots.Evening) != 0 {
		t.Error("свободных окон быть не должно")
	}
}

func TestGetBookableSlotsBucketsByPeriod(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting: &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
		bookable: []domain.Slot{
			{ID: 1, StartTime: "09:00", EndTime: "09:30", Period: domain.SlotPeriodMorning},
			{ID: 2, StartTime: "13:00", EndTime: "13:30", Period: domain.SlotPeriodAfternoon},
			{ID: 3, StartTime: "18:00", EndTime: "18:30", Period: domain.SlotPeriodEvening},
			{ID: 4, StartTime: "18:30", EndTime: "19:00", Period: domain.SlotPeriodEvening},
		},
	}
	svc := newAppointmentService(slotRepo, &fakeAppointmentRepo{}, &fakeDoctorRepo{}, testWeekdays())

	availability, err := svc.GetBookableSlots(context.Background(), 1, "2026-09-07")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(availability.Slots.Morning) != 1 || len(availability.Slots.Afternoon) != 1 || len(availability.Slots.Evening) != 2 {
		t.Errorf("неверная разбивка по периодам: утро %d, день %d, вечер %d",
			len(availability.Slots.Morning), len(availability.Slots.Afternoon), len(availability.Slots.Evening))
	}
}

func TestCreateAppointmentOccupiedSlot(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting:  &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
		assignments: []domain.DoctorSlot{{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1}},
	}
	apptRepo := &fakeAppointmentRepo{occupied: true}
	doctorRepo := &fakeDoctorRepo{doctor: &domain.Doctor{ID: 1, UserID: 5}}
	svc := newAppointmentService(slotRepo, apptRepo, doctorRepo, testWeekdays())

	_, err := svc.Create(context.Background(), 7, domain.CreateAppointmentDTO{
		DoctorID: 1,
		SlotID:   10,
		Date:     "2026-09-07",
	})
	if err == nil {
		t.Fatal("запись в занятый слот должна отклоняться")
	}
	if len(apptRepo.created) != 0 {
		t.Error("запись не должна создаваться")
	}
}

func TestCreateAppointmentSlotNotAssigned(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting:  &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
		assignments: []domain.DoctorSlot{{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 2}},
	}
	apptRepo := &fakeAppointmentRepo{}
	doctorRepo := &fakeDoctorRepo{doctor: &domain.Doctor{ID: 1, UserID: 5}}
	svc := newAppointmentService(slotRepo, apptRepo, doctorRepo, testWeekdays())

	// 2026-09-07 — понедельник (weekday 1), а слот назначен на weekday 2
	_, err := svc.Create(context.Background(), 7, domain.CreateAppointmentDTO{
		DoctorID: 1,
		SlotID:   10,
		Date:     "2026-09-07",
	})
	if err == nil {
		t.Fatal("запись в слот вне расписания дня должна отклоняться")
	}
}

func TestCreateAppointmentDayUnavailable(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting:  &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: false},
		assignments: []domain.DoctorSlot{{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1}},
	}
	apptRepo := &fakeAppointmentRepo{}
	doctorRepo := &fakeDoctorRepo{doctor: &domain.Doctor{ID: 1, UserID: 5}}
	svc := newAppointmentService(slotRepo, apptRepo, doctorRepo, testWeekdays())

	_, err := svc.Create(context.Background(), 7, domain.CreateAppointmentDTO{
		DoctorID: 1,
		SlotID:   10,
		Date:     "2026-09-07",
	})
	if err == nil {
		t.Fatal("запись к врачу с выключенным днем должна отклоняться")
	}
}

func TestCreateAppointmentOK(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySetting:  &domain.SlotDaySetting{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
		assignments: []domain.DoctorSlot{{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1}},
	}
	apptRepo := &fakeAppointmentRepo{}
	doctorRepo := &fakeDoctorRepo{doctor: &domain.Doctor{ID: 1, UserID: 5}}
	svc := newAppointmentService(slotRepo, apptRepo, doctorRepo, testWeekdays())

	id, err := svc.Create(context.Background(), 7, domain.CreateAppointmentDTO{
		DoctorID: 1,
		SlotID:   10,
		Date:     "2026-09-07",
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, ожидался 1", id)
	}
	if len(apptRepo.created) != 1 {
		t.Fatalf("ожидалась одна созданная запись, получено %d", len(apptRepo.created))
	}
}

func TestCancelAppointmentAlreadyCancelled(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: 1, Status: domain.AppointmentStatusCancelled},
	}
	svc := newAppointmentService(&fakeSlotRepo{}, apptRepo, &fakeDoctorRepo{}, testWeekdays())

	if err := svc.Cancel(context.Background(), 1); err == nil {
		t.Fatal("повторная отмена должна отклоняться")
	}
}
