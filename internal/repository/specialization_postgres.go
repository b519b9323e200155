package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hms/internal/domain"
)

type SpecializationRepo struct {
	db *pgxpool.Pool
}

func NewSpecializationRepository(db *pgxpool.Pool) *SpecializationRepo {
	return &SpecializationRepo{db: db}
}

func (r *SpecializationRepo) Create(ctx context.Context, dto domain.CreateSpecializationDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO specializations (name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.Name, dto.Description, dto.IsActive, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания специализации: %w", err)
	}

	return id, nil
}

func (r *SpecializationRepo) GetByID(ctx context.Context, id int64) (*domain.Specialization, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM specializations
		WHERE id = $1
	`

	var specialization domain.Specialization
	err := r.db.QueryRow(ctx, query, id).Scan(
		&specialization.ID,
		&specialization.Name,
		&specialization.Description,
		&specialization.IsActive,
		&specialization.CreatedAt,
		&specialization.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения специализации: %w", err)
	}

	return &specialization, nil
}

func (r *SpecializationRepo) Update(ctx context.Context, id int64, dto domain.UpdateSpecializationDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argId))
		args = append(args, *dto.Description)
		argId++
	}

	if dto.IsActive != nil {
		setValues = append(setValues, fmt.Sprintf("is_active = $%d", argId))
		args = append(args, *dto.IsActive)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE specializations SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления специализации: %w", err)
	}

	return nil
}

func (r *SpecializationRepo) Delete(ctx context.Context, id int64) error {
	query := `
		UPDATE specializations
		SET is_active = false, updated_at = $1
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специализации: %w", err)
	}

	return nil
}

func (r *SpecializationRepo) List(ctx context.Context, filter domain.SpecializationFilter) ([]domain.Specialization, int, error) {
	countQuery := `SELECT COUNT(*) FROM specializations WHERE 1=1`
	selectQuery := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM specializations
		WHERE 1=1
	`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	if filter.SearchTerm != nil {
		conditions += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+*filter.SearchTerm+"%")
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества специализаций: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка специализаций: %w", err)
	}
	defer rows.Close()

	var specializations []domain.Specialization
	for rows.Next() {
		var specialization domain.Specialization
		err := rows.Scan(
			&specialization.ID,
			&specialization.Name,
			&specialization.Description,
			&specialization.IsActive,
			&specialization.CreatedAt,
			&specialization.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования специализации: %w", err)
		}
		specializations = append(specializations, specialization)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return specializations, total, nil
}
