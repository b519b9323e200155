package service

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"hms/internal/domain"
)

func newDoctorService(doctorRepo *fakeDoctorRepo, slotRepo *fakeSlotRepo) *DoctorServiceImpl {
	logger := zap.NewNop()
	catalog := NewCatalogService(&fakeWeekdayRepo{weekdays: testWeekdays()}, slotRepo, nil, logger)
	return NewDoctorService(doctorRepo, nil, slotRepo, catalog, nil, nil, logger)
}

func TestUpdateDoctorEmptyDelta(t *testing.T) {
	svc := newDoctorService(&fakeDoctorRepo{doctor: &domain.Doctor{ID: 1}}, &fakeSlotRepo{})

	if err := svc.Update(context.Background(), 1, domain.UpdateDoctorDTO{}); err == nil {
		t.Fatal("пустая дельта должна отклоняться")
	}
}

func TestUpdateDoctorUnknownWeekday(t *testing.T) {
	svc := newDoctorService(&fakeDoctorRepo{doctor: &domain.Doctor{ID: 1}}, &fakeSlotRepo{})

	dto := domain.UpdateDoctorDTO{
		SlotDetails: []domain.SlotDayDetailsDTO{
			{WeekdayID: 99, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{10}},
		},
	}

	if err := svc.Update(context.Background(), 1, dto); err == nil {
		t.Fatal("неизвестный день недели должен отклоняться")
	}
}

func TestUpdateDoctorReplayNormalizesDelta(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		assignments: []domain.DoctorSlot{
			{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
		},
	}
	svc := newDoctorService(&fakeDoctorRepo{doctor: &domain.Doctor{ID: 1}}, slotRepo)

	// слот 10 уже назначен, его повторное добавление должно отброситься,
	// в дельте остается только новый слот 11
	dto := domain.UpdateDoctorDTO{
		SlotDetails: []domain.SlotDayDetailsDTO{
			{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{10, 11}},
		},
	}

	if err := svc.Update(context.Background(), 1, dto); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(slotRepo.applied) != 1 {
		t.Fatalf("ожидался один вызов сохранения, было %d", len(slotRepo.applied))
	}

	applied := slotRepo.applied[0]
	wantDetails := []domain.SlotDayDetailsDTO{
		{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{11}},
	}
	if !reflect.DeepEqual(applied.details, wantDetails) {
		t.Errorf("slot_details = %+v, ожидалось %+v", applied.details, wantDetails)
	}
	if len(applied.removedSlotIDs) != 0 {
		t.Errorf("removed_slot_ids = %v, ожидался пустой список", applied.removedSlotIDs)
	}
}

func TestUpdateDoctorRemovalByAssignmentID(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		assignments: []domain.DoctorSlot{
			{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
			{ID: 200, DoctorID: 1, SlotID: 20, WeekdayID: 2},
		},
	}
	svc := newDoctorService(&fakeDoctorRepo{doctor: &domain.Doctor{ID: 1}}, slotRepo)

	dto := domain.UpdateDoctorDTO{
		RemovedSlotIDs: []int64{100, 999},
	}

	if err := svc.Update(context.Background(), 1, dto); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(slotRepo.applied) != 1 {
		t.Fatalf("ожидался один вызов сохранения, было %d", len(slotRepo.applied))
	}

	applied := slotRepo.applied[0]
	if !reflect.DeepEqual(applied.removedSlotIDs, []int64{100}) {
		t.Errorf("removed_slot_ids = %v, ожидалось [100]: несуществующее назначение отбрасывается", applied.removedSlotIDs)
	}
	if len(applied.details) != 0 {
		t.Errorf("slot_details = %+v, ожидался пустой список", applied.details)
	}
}

func TestUpdateDoctorReaddExistingSlotIsNoop(t *testing.T) {
	slotRepo := &fakeSlotRepo{
		assignments: []domain.DoctorSlot{
			{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
		},
	}
	svc := newDoctorService(&fakeDoctorRepo{doctor: &domain.Doctor{ID: 1}}, slotRepo)

	// повторное добавление уже назначенного слота и удаление чужого
	// назначения отбрасываются, остается только upsert флага дня
	dto := domain.UpdateDoctorDTO{
		SlotDetails: []domain.SlotDayDetailsDTO{
			{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{10}},
		},
		RemovedSlotIDs: []int64{999},
	}

	if err := svc.Update(context.Background(), 1, dto); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(slotRepo.applied) != 1 {
		t.Fatalf("ожидался один вызов сохранения, было %d", len(slotRepo.applied))
	}

	applied := slotRepo.applied[0]
	wantDetails := []domain.SlotDayDetailsDTO{
		{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{}},
	}
	if !reflect.DeepEqual(applied.details, wantDetails) {
		t.Errorf("slot_details = %+v, ожидалось %+v", applied.details, wantDetails)
	}
	if len(applied.removedSlotIDs) != 0 {
		t.Errorf("removed_slot_ids = %v, ожидался пустой список", applied.removedSlotIDs)
	}
}
