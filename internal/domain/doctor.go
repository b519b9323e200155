package domain

import (
	"time"
)

type Doctor struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	SpecializationID *int64    `json:"specialization_id"`
	Specialization   string    `json:"specialization,omitempty"`
	Qualification    string    `json:"qualification"`
	ExperienceYears  int       `json:"experience_years"`
	Description      string    `json:"description"`
	AppointmentPrice float64   `json:"appointment_price"`
	ProfilePhotoURL  string    `json:"profile_photo_url"`
	User             User      `json:"user"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateDoctorDTO struct {
	UserID           int64               `json:"user_id,omitempty"`
	SpecializationID *int64              `json:"specialization_id"`
	Qualification    string              `json:"qualification,omitempty"`
	ExperienceYears  int                 `json:"experience_years,omitempty" binding:"min=0"`
	Description      string              `json:"description,omitempty"`
	AppointmentPrice float64             `json:"appointment_price,omitempty" binding:"min=0"`
	SlotDetails      []SlotDayDetailsDTO `json:"slot_details,omitempty"`
}

type UpdateDoctorDTO struct {
	SpecializationID *int64              `json:"specialization_id"`
	Qualification    *string             `json:"qualification"`
	ExperienceYears  *int                `json:"experience_years" binding:"omitempty,min=0"`
	Description      *string             `json:"description"`
	AppointmentPrice *float64            `json:"appointment_price" binding:"omitempty,min=0"`
	SlotDetails      []SlotDayDetailsDTO `json:"slot_details,omitempty"`
	RemovedSlotIDs   []int64             `json:"removed_slot_ids,omitempty"`
}

// IsEmpty — защита от пустого сохранения: дельта обязана содержать хотя бы
// одно измененное поле профиля, slot_details или removed_slot_ids.
func (d UpdateDoctorDTO) IsEmpty() bool {
	return d.SpecializationID == nil &&
		d.Qualification == nil &&
		d.ExperienceYears == nil &&
		d.Description == nil &&
		d.AppointmentPrice == nil &&
		len(d.SlotDetails) == 0 &&
		len(d.RemovedSlotIDs) == 0
}

type DoctorFilter struct {
	SpecializationID *int64  `json:"specialization_id"`
	SearchTerm       *string `json:"search_term"`
	Limit            int     `json:"limit"`
	Offset           int     `json:"offset"`
}
