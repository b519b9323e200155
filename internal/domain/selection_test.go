package domain

import (
	"reflect"
	"testing"
)

func TestSlotSelectionToggleAddRemove(t *testing.T) {
	s := NewSlotSelection(nil, nil)

	s.Toggle(1, 10)
	if !s.IsSelected(1, 10) {
		t.Fatal("слот должен быть выбран после первого переключения")
	}

	s.Toggle(1, 10)
	if s.IsSelected(1, 10) {
		t.Fatal("слот должен быть снят после второго переключения")
	}

	diff := s.Diff()
	if len(diff.SlotDetails) != 0 || len(diff.RemovedSlotIDs) != 0 {
		t.Fatalf("выбор и снятие того же слота не должны оставлять следа в дельте: %+v", diff)
	}
}

func TestSlotSelectionToggleIsolatedPerWeekday(t *testing.T) {
	s := NewSlotSelection(nil, nil)

	s.Toggle(1, 10)
	s.Toggle(2, 10)
	s.Toggle(2, 10)

	if !s.IsSelected(1, 10) {
		t.Fatal("переключения в другом дне не должны влиять на выбор")
	}
	if s.IsSelected(2, 10) {
		t.Fatal("слот дня 2 должен быть снят")
	}
}

func TestSlotSelectionDiffNewDoctor(t *testing.T) {
	s := NewSlotSelection(nil, nil)

	s.Toggle(1, 10)
	s.Toggle(1, 11)
	s.SetDayAvailability(1, true)

	diff := s.Diff()

	want := []SlotDayDetailsDTO{
		{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{10, 11}},
	}
	if !reflect.DeepEqual(diff.SlotDetails, want) {
		t.Errorf("slot_details = %+v, ожидалось %+v", diff.SlotDetails, want)
	}
	if len(diff.RemovedSlotIDs) != 0 {
		t.Errorf("removed_slot_ids = %v, ожидался пустой список", diff.RemovedSlotIDs)
	}
}

func TestSlotSelectionDiffRemovalUsesAssignmentID(t *testing.T) {
	assignments := []DoctorSlot{
		{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
		{ID: 101, DoctorID: 1, SlotID: 11, WeekdayID: 1},
	}

	s := NewSlotSelection(assignments, nil)
	s.Toggle(1, 10)

	diff := s.Diff()

	if len(diff.SlotDetails) != 0 {
		t.Errorf("снятие сохраненного слота не должно давать добавлений: %+v", diff.SlotDetails)
	}
	if !reflect.DeepEqual(diff.RemovedSlotIDs, []int64{100}) {
		t.Errorf("removed_slot_ids = %v, ожидалось [100] (ID назначения, не слота)", diff.RemovedSlotIDs)
	}
}

func TestSlotSelectionDiffMixed(t *testing.T) {
	assignments := []DoctorSlot{
		{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
		{ID: 200, DoctorID: 1, SlotID: 20, WeekdayID: 2},
	}
	settings := []SlotDaySetting{
		{DoctorID: 1, WeekdayID: 1, IsDoctorAvailableForTheDay: true},
	}

	s := NewSlotSelection(assignments, settings)

	// день 1: снять сохраненный, добавить новый
	s.Toggle(1, 10)
	s.Toggle(1, 12)
	// день 2: не трогаем слоты, только флаг
	s.SetDayAvailability(2, false)

	diff := s.Diff()

	want := []SlotDayDetailsDTO{
		{WeekdayID: 1, IsDoctorAvailableForTheDay: true, SelectedSlots: []int64{12}},
		{WeekdayID: 2, IsDoctorAvailableForTheDay: false, SelectedSlots: []int64{}},
	}
	if !reflect.DeepEqual(diff.SlotDetails, want) {
		t.Errorf("slot_details = %+v, ожидалось %+v", diff.SlotDetails, want)
	}
	if !reflect.DeepEqual(diff.RemovedSlotIDs, []int64{100}) {
		t.Errorf("removed_slot_ids = %v, ожидалось [100]", diff.RemovedSlotIDs)
	}
}

func TestSlotSelectionUnchangedSlotNotInDiff(t *testing.T) {
	assignments := []DoctorSlot{
		{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
	}

	s := NewSlotSelection(assignments, nil)
	s.Toggle(1, 11)

	diff := s.Diff()

	if len(diff.SlotDetails) != 1 {
		t.Fatalf("ожидался один день в дельте, получено %d", len(diff.SlotDetails))
	}
	if !reflect.DeepEqual(diff.SlotDetails[0].SelectedSlots, []int64{11}) {
		t.Errorf("в дельту должен попасть только новый слот: %v", diff.SlotDetails[0].SelectedSlots)
	}
	if len(diff.RemovedSlotIDs) != 0 {
		t.Errorf("нетронутый сохраненный слот не должен удаляться: %v", diff.RemovedSlotIDs)
	}
}

func TestSlotSelectionDayAvailabilityIndependentOfSlots(t *testing.T) {
	s := NewSlotSelection(nil, nil)

	s.Toggle(3, 30)
	if !s.DayAvailability(3) {
		t.Error("флаг дня по умолчанию должен быть true")
	}

	s.SetDayAvailability(3, false)
	if s.DayAvailability(3) {
		t.Error("флаг дня должен быть false после явного выключения")
	}
	if !s.IsSelected(3, 30) {
		t.Error("выключение флага дня не должно снимать выбранные слоты")
	}
}

func TestSlotSelectionDayAvailabilityFromBaseline(t *testing.T) {
	settings := []SlotDaySetting{
		{DoctorID: 1, WeekdayID: 5, IsDoctorAvailableForTheDay: false},
	}

	s := NewSlotSelection(nil, settings)

	if s.DayAvailability(5) {
		t.Error("сохраненный флаг false должен переопределять значение по умолчанию")
	}

	s.SetDayAvailability(5, true)
	if !s.DayAvailability(5) {
		t.Error("измененный в сессии флаг должен переопределять сохраненный")
	}
}

func TestSlotSelectionHasChanges(t *testing.T) {
	assignments := []DoctorSlot{
		{ID: 100, DoctorID: 1, SlotID: 10, WeekdayID: 1},
	}

	s := NewSlotSelection(assignments, nil)
	if s.HasChanges() {
		t.Error("свежий редактор не должен иметь изменений")
	}

	s.Toggle(1, 11)
	if !s.HasChanges() {
		t.Error("добавление слота должно давать изменения")
	}

	s.Toggle(1, 11)
	if s.HasChanges() {
		t.Error("откат добавления должен возвращать пустую дельту")
	}

	s.SetDayAvailability(1, false)
	if !s.HasChanges() {
		t.Error("изменение флага дня без слотов должно давать изменения")
	}
}
