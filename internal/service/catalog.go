package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"hms/internal/cache"
	"hms/internal/domain"
	"hms/internal/repository"
)

const (
	slotsCacheKey    = "catalog:slots"
	daySlotsCacheKey = "slots:day:%d:%d"

	catalogCacheTTL  = 24 * time.Hour
	daySlotsCacheTTL = 5 * time.Minute
)

// CatalogServiceImpl обслуживает справочники дней недели и слотов и выполняет
// разрешение доступности врача по дню недели. Справочник дней недели
// загружается один раз и держится в памяти процесса.
type CatalogServiceImpl struct {
	weekdayRepo repository.WeekdayRepository
	slotRepo    repository.SlotRepository
	cache       cache.Cache
	logger      *zap.Logger

	mu       sync.RWMutex
	weekdays []domain.Weekday
}

func NewCatalogService(
	weekdayRepo repository.WeekdayRepository,
	slotRepo repository.SlotRepository,
	c cache.Cache,
	logger *zap.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		weekdayRepo: weekdayRepo,
		slotRepo:    slotRepo,
		cache:       c,
		logger:      logger,
	}
}

func (s *CatalogServiceImpl) Weekdays(ctx context.Context) ([]domain.Weekday, error) {
	s.mu.RLock()
	if s.weekdays != nil {
		defer s.mu.RUnlock()
		return s.weekdays, nil
	}
	s.mu.RUnlock()

	weekdays, err := s.weekdayRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка загрузки справочника дней недели", zap.Error(err))
		return nil, fmt.Errorf("ошибка загрузки справочника дней недели: %w", err)
	}

	if len(weekdays) != 7 {
		s.logger.Warn("справочник дней недели неполный", zap.Int("count", len(weekdays)))
	}

	s.mu.Lock()
	s.weekdays = weekdays
	s.mu.Unlock()

	return weekdays, nil
}

func (s *CatalogServiceImpl) SlotCatalog(ctx context.Context) (*domain.SlotCatalog, error) {
	if s.cache != nil {
		var cached domain.SlotCatalog
		found, err := s.cache.Get(ctx, slotsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("ошибка чтения справочника слотов из кэша", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка загрузки справочника слотов", zap.Error(err))
		return nil, fmt.Errorf("ошибка загрузки справочника слотов: %w", err)
	}

	catalog := &domain.SlotCatalog{
		MorningSlots:   []domain.Slot{},
		AfternoonSlots: []domain.Slot{},
		EveningSlots:   []domain.Slot{},
	}

	for _, slot := range slots {
		switch slot.Period {
		case domain.SlotPeriodMorning:
			catalog.MorningSlots = append(catalog.MorningSlots, slot)
		case domain.SlotPeriodAfternoon:
			catalog.AfternoonSlots = append(catalog.AfternoonSlots, slot)
		case domain.SlotPeriodEvening:
			catalog.EveningSlots = append(catalog.EveningSlots, slot)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, slotsCacheKey, catalog, catalogCacheTTL); err != nil {
			s.logger.Warn("ошибка записи справочника слотов в кэш", zap.Error(err))
		}
	}

	return catalog, nil
}

func (s *CatalogServiceImpl) CreateSlot(ctx context.Context, dto domain.CreateSlotDTO) (int64, error) {
	if _, err := time.Parse("15:04", dto.StartTime); err != nil {
		return 0, errors.New("неверный формат времени начала")
	}

	if _, err := time.Parse("15:04", dto.EndTime); err != nil {
		return 0, errors.New("неверный формат времени окончания")
	}

	if !dto.Period.IsValid() {
		return 0, errors.New("неверный период дня")
	}

	id, err := s.slotRepo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания слота", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания слота: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, slotsCacheKey); err != nil {
			s.logger.Warn("ошибка инвалидации справочника слотов", zap.Error(err))
		}
	}

	return id, nil
}

// DaySlots — разрешение доступности: весь справочник слотов для дня недели,
// аннотированный назначениями врача, плюс флаг доступности дня. При
// doctorID == 0 (создание врача) аннотаций нет, флаг дня false.
func (s *CatalogServiceImpl) DaySlots(ctx context.Context, doctorID, weekdayID int64) (*domain.DaySlots, error) {
	weekdays, err := s.Weekdays(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, weekday := range weekdays {
		if weekday.ID == weekdayID {
			known = true
			break
		}
	}
	if !known {
		return nil, errors.New("неизвестный день недели")
	}

	cacheKey := fmt.Sprintf(daySlotsCacheKey, doctorID, weekdayID)
	if s.cache != nil {
		var cached domain.DaySlots
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("ошибка чтения слотов дня из кэша", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	slots, err := s.slotRepo.GetDaySlots(ctx, doctorID, weekdayID)
	if err != nil {
		s.logger.Error("ошибка загрузки слотов дня", zap.Error(err))
		return nil, fmt.Errorf("ошибка загрузки слотов дня: %w", err)
	}

	result := &domain.DaySlots{
		MorningSlots:   []domain.DaySlot{},
		AfternoonSlots: []domain.DaySlot{},
		EveningSlots:   []domain.DaySlot{},
	}

	for _, slot := range slots {
		switch slot.Period {
		case domain.SlotPeriodMorning:
			result.MorningSlots = append(result.MorningSlots, slot)
		case domain.SlotPeriodAfternoon:
			result.AfternoonSlots = append(result.AfternoonSlots, slot)
		case domain.SlotPeriodEvening:
			result.EveningSlots = append(result.EveningSlots, slot)
		}
	}

	if doctorID != 0 {
		setting, err := s.slotRepo.GetDaySetting(ctx, doctorID, weekdayID)
		if err != nil {
			s.logger.Error("ошибка загрузки настройки дня", zap.Error(err))
			return nil, fmt.Errorf("ошибка загрузки настройки дня: %w", err)
		}
		if setting != nil {
			result.SlotDaySettings.IsDoctorAvailableForTheDay = setting.IsDoctorAvailableForTheDay
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, daySlotsCacheTTL); err != nil {
			s.logger.Warn("ошибка записи слотов дня в кэш", zap.Error(err))
		}
	}

	return result, nil
}
