package domain

import (
	"time"
)

type SlotPeriod string

const (
	SlotPeriodMorning   SlotPeriod = "morning"
	SlotPeriodAfternoon SlotPeriod = "afternoon"
	SlotPeriodEvening   SlotPeriod = "evening"
)

func (p SlotPeriod) IsValid() bool {
	return p == SlotPeriodMorning || p == SlotPeriodAfternoon || p == SlotPeriodEvening
}

// Slot — запись общебольничного справочника временных окон.
type Slot struct {
	ID        int64      `json:"id"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Period    SlotPeriod `json:"period"`
	CreatedAt time.Time  `json:"created_at"`
}

// DoctorSlot — назначение: врач доступен в слоте S в день недели W.
// Идентификатор назначения не совпадает с идентификатором слота,
// операции удаления ссылаются именно на ID назначения.
type DoctorSlot struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctor_id"`
	SlotID    int64     `json:"slot_id"`
	WeekdayID int64     `json:"weekday_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotDaySetting — флаг «врач принимает в этот день недели»,
// независимый от набора выбранных слотов.
type SlotDaySetting struct {
	ID                         int64 `json:"id"`
	DoctorID                   int64 `json:"doctor_id"`
	WeekdayID                  int64 `json:"weekday_id"`
	IsDoctorAvailableForTheDay bool  `json:"is_doctor_available_for_the_day"`
}

// DaySlot — слот справочника, аннотированный состоянием выбора для конкретного
// врача. DoctorSlotID заполняется только если назначение уже сохранено.
type DaySlot struct {
	ID             int64      `json:"id"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Period         SlotPeriod `json:"period"`
	IsSlotSelected bool       `json:"is_slot_selected"`
	DoctorSlotID   *int64     `json:"doctor_slot_id,omitempty"`
}

type SlotDaySettingsDTO struct {
	IsDoctorAvailableForTheDay bool `json:"is_doctor_available_for_the_day"`
}

// DaySlots — результат разрешения доступности для пары (врач, день недели).
type DaySlots struct {
	MorningSlots    []DaySlot          `json:"morning_slots"`
	AfternoonSlots  []DaySlot          `json:"afternoon_slots"`
	EveningSlots    []DaySlot          `json:"evening_slots"`
	SlotDaySettings SlotDaySettingsDTO `json:"slot_day_settings"`
}

// SlotCatalog — полный справочник слотов, сгруппированный по периодам дня.
type SlotCatalog struct {
	MorningSlots   []Slot `json:"morning_slots"`
	AfternoonSlots []Slot `json:"afternoon_slots"`
	EveningSlots   []Slot `json:"evening_slots"`
}

// SlotDayDetailsDTO — элемент slot_details в запросах создания/обновления врача.
type SlotDayDetailsDTO struct {
	WeekdayID                  int64   `json:"weekday_id" binding:"required"`
	IsDoctorAvailableForTheDay bool    `json:"is_doctor_available_for_the_day"`
	SelectedSlots              []int64 `json:"selected_slots"`
}

type CreateSlotDTO struct {
	StartTime string     `json:"start_time" binding:"required"`
	EndTime   string     `json:"end_time" binding:"required"`
	Period    SlotPeriod `json:"period" binding:"required,oneof=morning afternoon evening"`
}
