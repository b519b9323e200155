package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hms/internal/domain"
	"hms/internal/repository"
)

type AppointmentServiceImpl struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	slotRepo   repository.SlotRepository
	catalog    CatalogService
	logger     *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	slotRepo repository.SlotRepository,
	catalog CatalogService,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		slotRepo:   slotRepo,
		catalog:    catalog,
		logger:     logger,
	}
}

// GetBookableSlots подбирает свободные окна врача на дату. Если врач не выбран
// или дата не сопоставилась со справочником дней недели, возвращается пустой
// результат без обращения к расписанию.
func (s *AppointmentServiceImpl) GetBookableSlots(ctx context.Context, doctorID int64, date string) (domain.TimeSlotAvailability, error) {
	if doctorID == 0 {
		return domain.NotReadyAvailability(), nil
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.NotReadyAvailability(), errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	weekdays, err := s.catalog.Weekdays(ctx)
	if err != nil {
		return domain.NotReadyAvailability(), err
	}

	weekday, ok := domain.ResolveWeekday(weekdays, parsedDate)
	if !ok {
		s.logger.Warn("дата не сопоставлена с днем недели", zap.String("date", date))
		return domain.NotReadyAvailability(), nil
	}

	setting, err := s.slotRepo.GetDaySetting(ctx, doctorID, weekday.ID)
	if err != nil {
		s.logger.Error("ошибка загрузки настройки дня", zap.Int64("doctorId", doctorID), zap.Error(err))
		return domain.NotReadyAvailability(), fmt.Errorf("ошибка загрузки настройки дня: %w", err)
	}

	result := domain.NotReadyAvailability()
	if setting != nil {
		result.IsSlotAvailable = setting.IsDoctorAvailableForTheDay
	}

	slots, err := s.slotRepo.GetBookableSlots(ctx, doctorID, weekday.ID, parsedDate)
	if err != nil {
		s.logger.Error("ошибка подбора свободных окон", zap.Int64("doctorId", doctorID), zap.Error(err))
		return domain.NotReadyAvailability(), fmt.Errorf("ошибка подбора свободных окон: %w", err)
	}

	for _, slot := range slots {
		switch slot.Period {
		case domain.SlotPeriodMorning:
			result.Slots.Morning = append(result.Slots.Morning, slot)
		case domain.SlotPeriodAfternoon:
			result.Slots.Afternoon = append(result.Slots.Afternoon, slot)
		case domain.SlotPeriodEvening:
			result.Slots.Evening = append(result.Slots.Evening, slot)
		}
	}

	return result, nil
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("doctorId", dto.DoctorID), zap.Error(err))
		return 0, fmt.Errorf("ошибка получения врача: %w", err)
	}
	if doctor == nil {
		return 0, errors.New("врач не найден")
	}

	parsedDate, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	weekdays, err := s.catalog.Weekdays(ctx)
	if err != nil {
		return 0, err
	}

	weekday, ok := domain.ResolveWeekday(weekdays, parsedDate)
	if !ok {
		return 0, errors.New("дата не сопоставлена с днем недели")
	}

	setting, err := s.slotRepo.GetDaySetting(ctx, dto.DoctorID, weekday.ID)
	if err != nil {
		return 0, fmt.Errorf("ошибка загрузки настройки дня: %w", err)
	}
	if setting == nil || !setting.IsDoctorAvailableForTheDay {
		return 0, errors.New("врач не принимает в этот день")
	}

	assignments, err := s.slotRepo.GetAssignments(ctx, dto.DoctorID, &weekday.ID)
	if err != nil {
		return 0, fmt.Errorf("ошибка загрузки назначений врача: %w", err)
	}

	assigned := false
	for _, assignment := range assignments {
		if assignment.SlotID == dto.SlotID {
			assigned = true
			break
		}
	}
	if !assigned {
		return 0, errors.New("слот не входит в расписание врача на этот день")
	}

	occupied, err := s.repo.HasActiveAppointment(ctx, dto.DoctorID, dto.SlotID, parsedDate)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки занятости слота: %w", err)
	}
	if occupied {
		return 0, errors.New("слот уже занят")
	}

	id, err := s.repo.Create(ctx, patientID, dto)
	if err != nil {
		s.logger.Error("ошибка создания записи на прием", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи на прием", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записи на прием: %w", err)
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения записи на прием: %w", err)
	}
	if appointment == nil {
		return errors.New("запись на прием не найдена")
	}

	if appointment.Status == domain.AppointmentStatusCancelled {
		return errors.New("запись уже отменена")
	}

	status := domain.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, id, domain.UpdateAppointmentDTO{Status: &status}); err != nil {
		s.logger.Error("ошибка отмены записи на прием", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка отмены записи на прием: %w", err)
	}

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка получения списка записей: %w", err)
	}

	return appointments, total, nil
}
