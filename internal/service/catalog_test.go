package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"hms/internal/domain"
)

func TestWeekdaysLoadedOnce(t *testing.T) {
	weekdayRepo := &fakeWeekdayRepo{weekdays: testWeekdays()}
	svc := NewCatalogService(weekdayRepo, &fakeSlotRepo{}, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		weekdays, err := svc.Weekdays(context.Background())
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if len(weekdays) != 7 {
			t.Fatalf("ожидалось 7 дней недели, получено %d", len(weekdays))
		}
	}

	if weekdayRepo.calls != 1 {
		t.Errorf("справочник дней недели должен загружаться один раз, было %d обращений", weekdayRepo.calls)
	}
}

func TestSlotCatalogBucketsByPeriod(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		slots: []domain.Slot{
			{ID: 1, StartTime: "08:00", EndTime: "08:30", Period: domain.SlotPeriodMorning},
			{ID: 2, StartTime: "12:00", EndTime: "12:30", Period: domain.SlotPeriodAfternoon},
			{ID: 3, StartTime: "17:00", EndTime: "17:30", Period: domain.SlotPeriodEvening},
		},
	}
	svc := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, slotRepo, nil, zap.NewNop())

	catalog, err := svc.SlotCatalog(context.Background())
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(catalog.MorningSlots) != 1 || len(catalog.AfternoonSlots) != 1 || len(catalog.EveningSlots) != 1 {
		t.Errorf("неверная разбивка по периодам: %+v", catalog)
	}
}

func TestCreateSlotValidation(t *testing.T) {
	svc := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, &fakeSlotRepo{}, nil, zap.NewNop())

	cases := []struct {
		name string
		dto  domain.CreateSlotDTO
	}{
		{"неверное время начала", domain.CreateSlotDTO{StartTime: "8am", EndTime: "08:30", Period: domain.SlotPeriodMorning}},
		{"неверное время окончания", domain.CreateSlotDTO{StartTime: "08:00", EndTime: "half nine", Period: domain.SlotPeriodMorning}},
		{"неверный период", domain.CreateSlotDTO{StartTime: "08:00", EndTime: "08:30", Period: "night"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateSlot(context.Background(), tc.dto); err == nil {
				t.Error("ожидалась ошибка валидации")
			}
		})
	}
}

func TestDaySlotsUnknownWeekday(t *testing.T) {
	svc := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, &fakeSlotRepo{}, nil, zap.NewNop())

	if _, err := svc.DaySlots(context.Background(), 0, 99); err == nil {
		t.Fatal("неизвестный день недели должен отклоняться")
	}
}

func TestDaySlotsWithoutDoctor(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySlots: []domain.DaySlot{
			{ID: 1, StartTime: "08:00", EndTime: "08:30", Period: domain.SlotPeriodMorning},
			{ID: 2, StartTime: "12:00", EndTime: "12:30", Period: domain.SlotPeriodAfternoon},
		},
	}
	svc := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, slotRepo, nil, zap.NewNop())

	daySlots, err := svc.DaySlots(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if daySlots.SlotDaySettings.IsDoctorAvailableForTheDay {
		t.Error("без врача флаг доступности дня должен быть false")
	}
	if len(daySlots.MorningSlots) != 1 || len(daySlots.AfternoonSlots) != 1 {
		t.Errorf("неверная разбивка слотов дня: %+v", daySlots)
	}
}

func TestDaySlotsDoctorFlag(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		daySlots: []domain.DaySlot{
			{ID: 1, StartTime: "08:00", EndTime: "08:30", Period: domain.SlotPeriodMorning, IsSlotSelected: true},
		},
		daySetting: &domain.SlotDaySetting{DoctorID: 3, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
	}
	svc := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, slotRepo, nil, zap.NewNop())

	daySlots, err := svc.DaySlots(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if !daySlots.SlotDaySettings.IsDoctorAvailableForTheDay {
		t.Error("сохраненный флаг доступности дня должен попадать в ответ")
	}
	if !daySlots.MorningSlots[0].IsSlotSelected {
		t.Error("аннотация выбора слота должна сохраняться")
	}
}
