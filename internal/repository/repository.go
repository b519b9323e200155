package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hms/internal/domain"
)

type Repositories struct {
	User           UserRepository
	Auth           AuthRepository
	Specialization SpecializationRepository
	Doctor         DoctorRepository
	Weekday        WeekdayRepository
	Slot           SlotRepository
	Appointment    AppointmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Auth:           NewAuthRepository(db),
		Specialization: NewSpecializationRepository(db),
		Doctor:         NewDoctorRepository(db),
		Weekday:        NewWeekdayRepository(db),
		Slot:           NewSlotRepository(db),
		Appointment:    NewAppointmentRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type SpecializationRepository interface {
	Create(ctx context.Context, specialization domain.CreateSpecializationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
	Update(ctx context.Context, id int64, specialization domain.UpdateSpecializationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, userID int64, doctor domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, doctor domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)
	UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error
}

type WeekdayRepository interface {
	List(ctx context.Context) ([]domain.Weekday, error)
}

type SlotRepository interface {
	Create(ctx context.Context, dto domain.CreateSlotDTO) (int64, error)
	List(ctx context.Context) ([]domain.Slot, error)
	GetDaySlots(ctx context.Context, doctorID, weekdayID int64) ([]domain.DaySlot, error)
	GetAssignments(ctx context.Context, doctorID int64, weekdayID *int64) ([]domain.DoctorSlot, error)
	GetDaySettings(ctx context.Context, doctorID int64) ([]domain.SlotDaySetting, error)
	GetDaySetting(ctx context.Context, doctorID, weekdayID int64) (*domain.SlotDaySetting, error)
	ApplySlotDetails(ctx context.Context, doctorID int64, details []domain.SlotDayDetailsDTO, removedSlotIDs []int64) error
	GetBookableSlots(ctx context.Context, doctorID, weekdayID int64, date time.Time) ([]domain.Slot, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, patientID int64, appointment domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, appointment domain.UpdateAppointmentDTO) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	HasActiveAppointment(ctx context.Context, doctorID, slotID int64, date time.Time) (bool, error)
}
