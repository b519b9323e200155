package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patient_id"`
	DoctorID    int64             `json:"doctor_id"`
	SlotID      int64             `json:"slot_id"`
	Date        time.Time         `json:"date"`
	Status      AppointmentStatus `json:"status"`
	Complaint   string            `json:"complaint,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	PatientName string            `json:"patient_name,omitempty"`
	DoctorName  string            `json:"doctor_name,omitempty"`
	StartTime   string            `json:"start_time,omitempty"`
	EndTime     string            `json:"end_time,omitempty"`
}

type CreateAppointmentDTO struct {
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	SlotID    int64  `json:"slot_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Complaint string `json:"complaint"`
}

type UpdateAppointmentDTO struct {
	Status *AppointmentStatus `json:"status" binding:"omitempty,oneof=booked completed cancelled"`
	Date   *string            `json:"date"`
	SlotID *int64             `json:"slot_id"`
}

type AppointmentFilter struct {
	PatientID     *int64             `json:"patient_id"`
	DoctorID      *int64             `json:"doctor_id"`
	Status        *AppointmentStatus `json:"status"`
	ExcludeStatus *AppointmentStatus `json:"exclude_status"`
	StartDate     *time.Time         `json:"start_date"`
	EndDate       *time.Time         `json:"end_date"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}

// PeriodSlots — свободные окна по периодам дня.
type PeriodSlots struct {
	Morning   []Slot `json:"morning"`
	Afternoon []Slot `json:"afternoon"`
	Evening   []Slot `json:"evening"`
}

// TimeSlotAvailability — результат подбора окон для записи на конкретную дату.
// Флаг IsSlotAvailable отражает доступность врача в этот день недели и не
// зависит от того, пусты ли отдельные периоды.
type TimeSlotAvailability struct {
	IsSlotAvailable bool        `json:"is_slot_available"`
	Slots           PeriodSlots `json:"slots"`
}

// NotReadyAvailability — состояние «запрос невозможен»: врач не выбран или дата
// не сопоставлена с днем недели. Отличается от «запрошено, свободных окон нет»
// только способом получения, форма ответа одинаковая.
func NotReadyAvailability() TimeSlotAvailability {
	return TimeSlotAvailability{
		IsSlotAvailable: false,
		Slots: PeriodSlots{
			Morning:   []Slot{},
			Afternoon: []Slot{},
			Evening:   []Slot{},
		},
	}
}
