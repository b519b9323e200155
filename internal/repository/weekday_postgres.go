package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hms/internal/domain"
)

type WeekdayRepo struct {
	db *pgxpool.Pool
}

func NewWeekdayRepository(db *pgxpool.Pool) *WeekdayRepo {
	return &WeekdayRepo{db: db}
}

func (r *WeekdayRepo) List(ctx context.Context) ([]domain.Weekday, error) {
	query := `SELECT id, name FROM weekdays ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса справочника дней недели: %w", err)
	}
	defer rows.Close()

	var weekdays []domain.Weekday
	for rows.Next() {
		var weekday domain.Weekday
		if err := rows.Scan(&weekday.ID, &weekday.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования дня недели: %w", err)
		}
		weekdays = append(weekdays, weekday)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return weekdays, nil
}
