package domain

import (
	"sort"
)

// SlotSelectionDiff — дельта, отправляемая при сохранении недельного шаблона:
// новые выборы по дням недели и ID назначений, подлежащих удалению.
type SlotSelectionDiff struct {
	SlotDetails    []SlotDayDetailsDTO `json:"slot_details"`
	RemovedSlotIDs []int64             `json:"removed_slot_ids"`
}

// SlotSelection — редактор недельного шаблона врача. Хранит сохраненное
// состояние (baseline) и текущий выбор как два множества; дельта всегда
// вычисляется заново их сравнением, а не накапливается по ходу переключений.
type SlotSelection struct {
	// weekdayID -> slotID -> ID назначения в БД
	baseline map[int64]map[int64]int64
	// weekdayID -> множество выбранных slotID
	current map[int64]map[int64]bool
	// weekdayID -> сохраненный флаг доступности дня
	baselineFlags map[int64]bool
	// weekdayID -> флаг, измененный в рамках сессии редактирования
	touchedFlags map[int64]bool
}

// NewSlotSelection создает редактор поверх сохраненных назначений и настроек
// дней. Для создания врача с нуля оба аргумента пустые.
func NewSlotSelection(assignments []DoctorSlot, settings []SlotDaySetting) *SlotSelection {
	s := &SlotSelection{
		baseline:      make(map[int64]map[int64]int64),
		current:       make(map[int64]map[int64]bool),
		baselineFlags: make(map[int64]bool),
		touchedFlags:  make(map[int64]bool),
	}

	for _, a := range assignments {
		if s.baseline[a.WeekdayID] == nil {
			s.baseline[a.WeekdayID] = make(map[int64]int64)
		}
		s.baseline[a.WeekdayID][a.SlotID] = a.ID

		if s.current[a.WeekdayID] == nil {
			s.current[a.WeekdayID] = make(map[int64]bool)
		}
		s.current[a.WeekdayID][a.SlotID] = true
	}

	for _, st := range settings {
		s.baselineFlags[st.WeekdayID] = st.IsDoctorAvailableForTheDay
	}

	return s
}

// Toggle переключает выбор слота для дня недели: добавляет, если слот не
// выбран, и снимает выбор, если выбран. Состояние других дней не меняется.
func (s *SlotSelection) Toggle(weekdayID, slotID int64) {
	if s.current[weekdayID] == nil {
		s.current[weekdayID] = make(map[int64]bool)
	}

	if s.current[weekdayID][slotID] {
		delete(s.current[weekdayID], slotID)
	} else {
		s.current[weekdayID][slotID] = true
	}
}

// IsSelected сообщает текущее состояние выбора слота, используется для подсветки.
func (s *SlotSelection) IsSelected(weekdayID, slotID int64) bool {
	return s.current[weekdayID][slotID]
}

// SetDayAvailability выставляет флаг «врач принимает в этот день». Измененный
// флаг попадает в дельту независимо от того, переключались ли слоты.
func (s *SlotSelection) SetDayAvailability(weekdayID int64, available bool) {
	s.touchedFlags[weekdayID] = available
}

// DayAvailability возвращает действующий флаг дня: измененный в сессии,
// иначе сохраненный, иначе true (день с выбранными слотами считается рабочим).
func (s *SlotSelection) DayAvailability(weekdayID int64) bool {
	if flag, ok := s.touchedFlags[weekdayID]; ok {
		return flag
	}
	if flag, ok := s.baselineFlags[weekdayID]; ok {
		return flag
	}
	return true
}

// Diff сравнивает текущее состояние с сохраненным и возвращает дельту.
// Слот, присутствующий в обоих множествах, в дельту не попадает; слот,
// выбранный и тут же снятый, также не оставляет следа.
func (s *SlotSelection) Diff() SlotSelectionDiff {
	diff := SlotSelectionDiff{
		SlotDetails:    []SlotDayDetailsDTO{},
		RemovedSlotIDs: []int64{},
	}

	for _, weekdayID := range s.weekdayIDs() {
		var added []int64
		for slotID := range s.current[weekdayID] {
			if _, inBaseline := s.baseline[weekdayID][slotID]; !inBaseline {
				added = append(added, slotID)
			}
		}
		sort.Slice(added, func(i, j int) bool { return added[i] < added[j] })

		_, flagTouched := s.touchedFlags[weekdayID]
		if len(added) > 0 || flagTouched {
			if added == nil {
				added = []int64{}
			}
			diff.SlotDetails = append(diff.SlotDetails, SlotDayDetailsDTO{
				WeekdayID:                  weekdayID,
				IsDoctorAvailableForTheDay: s.DayAvailability(weekdayID),
				SelectedSlots:              added,
			})
		}

		for slotID, assignmentID := range s.baseline[weekdayID] {
			if !s.current[weekdayID][slotID] {
				diff.RemovedSlotIDs = append(diff.RemovedSlotIDs, assignmentID)
			}
		}
	}

	sort.Slice(diff.RemovedSlotIDs, func(i, j int) bool {
		return diff.RemovedSlotIDs[i] < diff.RemovedSlotIDs[j]
	})

	return diff
}

// HasChanges сообщает, есть ли что отправлять; при пустой дельте сохранение
// недоступно.
func (s *SlotSelection) HasChanges() bool {
	diff := s.Diff()
	return len(diff.SlotDetails) > 0 || len(diff.RemovedSlotIDs) > 0
}

func (s *SlotSelection) weekdayIDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64

	for weekdayID := range s.current {
		if !seen[weekdayID] {
			seen[weekdayID] = true
			ids = append(ids, weekdayID)
		}
	}
	for weekdayID := range s.baseline {
		if !seen[weekdayID] {
			seen[weekdayID] = true
			ids = append(ids, weekdayID)
		}
	}
	for weekdayID := range s.touchedFlags {
		if !seen[weekdayID] {
			seen[weekdayID] = true
			ids = append(ids, weekdayID)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
