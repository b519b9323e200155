package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hms/internal/domain"
	"hms/internal/repository"
)

type SpecializationServiceImpl struct {
	repo   repository.SpecializationRepository
	logger *zap.Logger
}

func NewSpecializationService(repo repository.SpecializationRepository, logger *zap.Logger) *SpecializationServiceImpl {
	return &SpecializationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *SpecializationServiceImpl) Create(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания специализации", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания специализации: %w", err)
	}

	return id, nil
}

func (s *SpecializationServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Specialization, error) {
	specialization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения специализации", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения специализации: %w", err)
	}

	if specialization == nil {
		return nil, errors.New("специализация не найдена")
	}

	return specialization, nil
}

func (s *SpecializationServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error {
	specialization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения специализации: %w", err)
	}
	if specialization == nil {
		return errors.New("специализация не найдена")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления специализации", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка обновления специализации: %w", err)
	}

	return nil
}

func (s *SpecializationServiceImpl) Delete(ctx context.Context, id int64) error {
	specialization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения специализации: %w", err)
	}
	if specialization == nil {
		return errors.New("специализация не найдена")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления специализации", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка удаления специализации: %w", err)
	}

	return nil
}

func (s *SpecializationServiceImpl) List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	specializations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка специализаций", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка получения списка специализаций: %w", err)
	}

	return specializations, total, nil
}
