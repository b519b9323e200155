package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hms/internal/cache"
	"hms/internal/domain"
	"hms/internal/repository"
	"hms/internal/storage"
)

type DoctorServiceImpl struct {
	repo     repository.DoctorRepository
	userRepo repository.UserRepository
	slotRepo repository.SlotRepository
	catalog  CatalogService
	storage  storage.FileStorage
	cache    cache.Cache
	logger   *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	userRepo repository.UserRepository,
	slotRepo repository.SlotRepository,
	catalog CatalogService,
	fileStorage storage.FileStorage,
	c cache.Cache,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		slotRepo: slotRepo,
		catalog:  catalog,
		storage:  fileStorage,
		cache:    c,
		logger:   logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("пользователь не найден", zap.Int64("userId", userID), zap.Error(err))
		return 0, errors.New("пользователь не найден")
	}

	if user.Role != domain.UserRoleDoctor {
		return 0, errors.New("пользователь не имеет роли врача")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка проверки профиля врача", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}
	if existing != nil {
		return 0, errors.New("профиль врача уже существует")
	}

	if err := s.validateSlotDetails(ctx, dto.SlotDetails); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, userID, dto)
	if err != nil {
		s.logger.Error("ошибка создания врача", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	if len(dto.SlotDetails) > 0 {
		// Создание с нуля: baseline пустой, дельта совпадает с выбором.
		selection := domain.NewSlotSelection(nil, nil)
		for _, detail := range dto.SlotDetails {
			selection.SetDayAvailability(detail.WeekdayID, detail.IsDoctorAvailableForTheDay)
			for _, slotID := range detail.SelectedSlots {
				if !selection.IsSelected(detail.WeekdayID, slotID) {
					selection.Toggle(detail.WeekdayID, slotID)
				}
			}
		}

		diff := selection.Diff()
		if err := s.slotRepo.ApplySlotDetails(ctx, id, diff.SlotDetails, nil); err != nil {
			s.logger.Error("ошибка сохранения недельного шаблона", zap.Int64("doctorId", id), zap.Error(err))
			return 0, fmt.Errorf("ошибка сохранения недельного шаблона: %w", err)
		}
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}
	return doctor, nil
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("userId", userID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}
	return doctor, nil
}

// Update применяет дельту профиля и недельного шаблона. Пустая дельта
// отклоняется: клиент обязан прислать хотя бы одно изменение. Присланные
// slot_details и removed_slot_ids проигрываются через редактор выбора поверх
// сохраненного состояния, поэтому повторное добавление уже назначенного слота
// и удаление чужого назначения отбрасываются как no-op.
func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	if dto.IsEmpty() {
		return errors.New("нет изменений для сохранения")
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка получения врача: %w", err)
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if err := s.validateSlotDetails(ctx, dto.SlotDetails); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления врача", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления врача: %w", err)
	}

	if len(dto.SlotDetails) > 0 || len(dto.RemovedSlotIDs) > 0 {
		diff, err := s.replaySlotDelta(ctx, id, dto.SlotDetails, dto.RemovedSlotIDs)
		if err != nil {
			return err
		}

		if len(diff.SlotDetails) > 0 || len(diff.RemovedSlotIDs) > 0 {
			if err := s.slotRepo.ApplySlotDetails(ctx, id, diff.SlotDetails, diff.RemovedSlotIDs); err != nil {
				s.logger.Error("ошибка сохранения недельного шаблона", zap.Int64("doctorId", id), zap.Error(err))
				return fmt.Errorf("ошибка сохранения недельного шаблона: %w", err)
			}
		}

		s.invalidateDaySlots(ctx, id)
	}

	return nil
}

// replaySlotDelta восстанавливает редактор выбора из БД и проигрывает по нему
// присланную дельту, получая каноническую дельту относительно настоящего
// baseline.
func (s *DoctorServiceImpl) replaySlotDelta(ctx context.Context, doctorID int64, details []domain.SlotDayDetailsDTO, removedSlotIDs []int64) (domain.SlotSelectionDiff, error) {
	assignments, err := s.slotRepo.GetAssignments(ctx, doctorID, nil)
	if err != nil {
		s.logger.Error("ошибка загрузки назначений врача", zap.Int64("doctorId", doctorID), zap.Error(err))
		return domain.SlotSelectionDiff{}, fmt.Errorf("ошибка загрузки назначений врача: %w", err)
	}

	settings, err := s.slotRepo.GetDaySettings(ctx, doctorID)
	if err != nil {
		s.logger.Error("ошибка загрузки настроек дней", zap.Int64("doctorId", doctorID), zap.Error(err))
		return domain.SlotSelectionDiff{}, fmt.Errorf("ошибка загрузки настроек дней: %w", err)
	}

	assignmentByID := make(map[int64]domain.DoctorSlot, len(assignments))
	for _, assignment := range assignments {
		assignmentByID[assignment.ID] = assignment
	}

	selection := domain.NewSlotSelection(assignments, settings)

	for _, detail := range details {
		selection.SetDayAvailability(detail.WeekdayID, detail.IsDoctorAvailableForTheDay)
		for _, slotID := range detail.SelectedSlots {
			if !selection.IsSelected(detail.WeekdayID, slotID) {
				selection.Toggle(detail.WeekdayID, slotID)
			}
		}
	}

	for _, removedID := range removedSlotIDs {
		assignment, ok := assignmentByID[removedID]
		if !ok {
			continue
		}
		if selection.IsSelected(assignment.WeekdayID, assignment.SlotID) {
			selection.Toggle(assignment.WeekdayID, assignment.SlotID)
		}
	}

	return selection.Diff(), nil
}

func (s *DoctorServiceImpl) validateSlotDetails(ctx context.Context, details []domain.SlotDayDetailsDTO) error {
	if len(details) == 0 {
		return nil
	}

	weekdays, err := s.catalog.Weekdays(ctx)
	if err != nil {
		return err
	}

	knownWeekdays := make(map[int64]bool, len(weekdays))
	for _, weekday := range weekdays {
		knownWeekdays[weekday.ID] = true
	}

	for _, detail := range details {
		if !knownWeekdays[detail.WeekdayID] {
			return fmt.Errorf("неизвестный день недели: %d", detail.WeekdayID)
		}
	}

	return nil
}

func (s *DoctorServiceImpl) invalidateDaySlots(ctx context.Context, doctorID int64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.DeleteByPrefix(ctx, fmt.Sprintf("slots:day:%d:", doctorID)); err != nil {
		s.logger.Warn("ошибка инвалидации кэша слотов дня", zap.Int64("doctorId", doctorID), zap.Error(err))
	}
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка получения врача: %w", err)
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления врача", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}

	s.invalidateDaySlots(ctx, id)

	return nil
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	doctors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка врачей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	return doctors, total, nil
}

func (s *DoctorServiceImpl) UploadProfilePhoto(ctx context.Context, doctorID int64, photo []byte, filename string) error {
	if s.storage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("ошибка получения врача: %w", err)
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if doctor.ProfilePhotoURL != "" {
		if err := s.storage.DeleteFile(ctx, doctor.ProfilePhotoURL); err != nil {
			s.logger.Warn("ошибка удаления старого фото", zap.Error(err))
		}
	}

	url, err := s.storage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return fmt.Errorf("ошибка загрузки фото: %w", err)
	}

	if err := s.repo.UpdateProfilePhoto(ctx, doctorID, url); err != nil {
		s.logger.Error("ошибка сохранения URL фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return fmt.Errorf("ошибка сохранения URL фото: %w", err)
	}

	return nil
}

func (s *DoctorServiceImpl) DeleteProfilePhoto(ctx context.Context, doctorID int64) error {
	if s.storage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("ошибка получения врача: %w", err)
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if doctor.ProfilePhotoURL == "" {
		return nil
	}

	if err := s.storage.DeleteFile(ctx, doctor.ProfilePhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото", zap.Int64("doctorId", doctorID), zap.Error(err))
		return fmt.Errorf("ошибка удаления фото: %w", err)
	}

	if err := s.repo.UpdateProfilePhoto(ctx, doctorID, ""); err != nil {
		return fmt.Errorf("ошибка очистки URL фото: %w", err)
	}

	return nil
}
