package service

import (
	"context"

	"go.uber.org/zap"

	"hms/config"
	"hms/internal/cache"
	"hms/internal/domain"
	"hms/internal/repository"
	"hms/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       cache.Cache
}

type Services struct {
	User           UserService
	Auth           AuthService
	Specialization SpecializationService
	Doctor         DoctorService
	Catalog        CatalogService
	Appointment    AppointmentService
}

func NewServices(deps Deps) *Services {
	catalog := NewCatalogService(deps.Repos.Weekday, deps.Repos.Slot, deps.Cache, deps.Logger)

	return &Services{
		User:           NewUserService(deps.Repos.User, deps.Logger),
		Auth:           NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Specialization: NewSpecializationService(deps.Repos.Specialization, deps.Logger),
		Catalog:        catalog,
		Doctor:         NewDoctorService(deps.Repos.Doctor, deps.Repos.User, deps.Repos.Slot, catalog, deps.FileStorage, deps.Cache, deps.Logger),
		Appointment:    NewAppointmentService(deps.Repos.Appointment, deps.Repos.Doctor, deps.Repos.Slot, catalog, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type SpecializationService interface {
	Create(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error)
}

type CatalogService interface {
	Weekdays(ctx context.Context) ([]domain.Weekday, error)
	SlotCatalog(ctx context.Context) (*domain.SlotCatalog, error)
	CreateSlot(ctx context.Context, dto domain.CreateSlotDTO) (int64, error)
	DaySlots(ctx context.Context, doctorID, weekdayID int64) (*domain.DaySlots, error)
}

type DoctorService interface {
	Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)

	UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error
	DeleteProfilePhoto(ctx context.Context, doctorID int64) error
}

type AppointmentService interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	GetBookableSlots(ctx context.Context, doctorID int64, date string) (domain.TimeSlotAvailability, error)
}
