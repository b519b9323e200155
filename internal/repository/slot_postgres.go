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

type SlotRepo struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) *SlotRepo {
	return &SlotRepo{db: db}
}

func (r *SlotRepo) Create(ctx context.Context, dto domain.CreateSlotDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO slots (start_time, end_time, period, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dto.StartTime, dto.EndTime, dto.Period, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания слота: %w", err)
	}

	return id, nil
}

func (r *SlotRepo) List(ctx context.Context) ([]domain.Slot, error) {
	query := `
		SELECT id, start_time, end_time, period, created_at
		FROM slots
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса справочника слотов: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		err := rows.Scan(&slot.ID, &slot.StartTime, &slot.EndTime, &slot.Period, &slot.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования слота: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return slots, nil
}

// GetDaySlots возвращает весь справочник слотов, аннотированный назначениями
// врача на указанный день недели. При doctorID == 0 аннотации отсутствуют.
func (r *SlotRepo) GetDaySlots(ctx context.Context, doctorID, weekdayID int64) ([]domain.DaySlot, error) {
	query := `
		SELECT s.id, s.start_time, s.end_time, s.period, ds.id
		FROM slots s
		LEFT JOIN doctor_slots ds
			ON ds.slot_id = s.id AND ds.doctor_id = $1 AND ds.weekday_id = $2
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, doctorID, weekdayID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса слотов дня: %w", err)
	}
	defer rows.Close()

	var slots []domain.DaySlot
	for rows.Next() {
		var slot domain.DaySlot
		var doctorSlotID *int64
		err := rows.Scan(&slot.ID, &slot.StartTime, &slot.EndTime, &slot.Period, &doctorSlotID)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования слота дня: %w", err)
		}
		slot.DoctorSlotID = doctorSlotID
		slot.IsSlotSelected = doctorSlotID != nil
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return slots, nil
}

func (r *SlotRepo) GetAssignments(ctx context.Context, doctorID int64, weekdayID *int64) ([]domain.DoctorSlot, error) {
	query := `
		SELECT id, doctor_id, slot_id, weekday_id, created_at
		FROM doctor_slots
		WHERE doctor_id = $1
	`
	args := []interface{}{doctorID}

	if weekdayID != nil {
		query += ` AND weekday_id = $2`
		args = append(args, *weekdayID)
	}

	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса назначений врача: %w", err)
	}
	defer rows.Close()

	var assignments []domain.DoctorSlot
	for rows.Next() {
		var assignment domain.DoctorSlot
		err := rows.Scan(
			&assignment.ID,
			&assignment.DoctorID,
			&assignment.SlotID,
			&assignment.WeekdayID,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования назначения: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return assignments, nil
}

func (r *SlotRepo) GetDaySettings(ctx context.Context, doctorID int64) ([]domain.SlotDaySetting, error) {
	query := `
		SELECT id, doctor_id, weekday_id, is_available
		FROM slot_day_settings
		WHERE doctor_id = $1
		ORDER BY weekday_id
	`

	rows, err := r.db.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса настроек дней: %w", err)
	}
	defer rows.Close()

	var settings []domain.SlotDaySetting
	for rows.Next() {
		var setting domain.SlotDaySetting
		err := rows.Scan(
			&setting.ID,
			&setting.DoctorID,
			&setting.WeekdayID,
			&setting.IsDoctorAvailableForTheDay,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования настройки дня: %w", err)
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return settings, nil
}

func (r *SlotRepo) GetDaySetting(ctx context.Context, doctorID, weekdayID int64) (*domain.SlotDaySetting, error) {
	query := `
		SELECT id, doctor_id, weekday_id, is_available
		FROM slot_day_settings
		WHERE doctor_id = $1 AND weekday_id = $2
	`

	var setting domain.SlotDaySetting
	err := r.db.QueryRow(ctx, query, doctorID, weekdayID).Scan(
		&setting.ID,
		&setting.DoctorID,
		&setting.WeekdayID,
		&setting.IsDoctorAvailableForTheDay,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения настройки дня: %w", err)
	}

	return &setting, nil
}

// ApplySlotDetails применяет дельту недельного шаблона одной транзакцией:
// добавление назначений, upsert флагов дней и удаление снятых назначений.
// Удаление ссылается на ID назначений и ограничено указанным врачом.
func (r *SlotRepo) ApplySlotDetails(ctx context.Context, doctorID int64, details []domain.SlotDayDetailsDTO, removedSlotIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	for _, detail := range details {
		_, err = tx.Exec(ctx, `
			INSERT INTO slot_day_settings (doctor_id, weekday_id, is_available)
			VALUES ($1, $2, $3)
			ON CONFLICT (doctor_id, weekday_id) DO UPDATE SET is_available = $3
		`, doctorID, detail.WeekdayID, detail.IsDoctorAvailableForTheDay)
		if err != nil {
			return fmt.Errorf("ошибка сохранения настройки дня: %w", err)
		}

		for _, slotID := range detail.SelectedSlots {
			_, err = tx.Exec(ctx, `
				INSERT INTO doctor_slots (doctor_id, slot_id, weekday_id, created_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (doctor_id, slot_id, weekday_id) DO NOTHING
			`, doctorID, slotID, detail.WeekdayID, now)
			if err != nil {
				return fmt.Errorf("ошибка создания назначения: %w", err)
			}
		}
	}

	if len(removedSlotIDs) > 0 {
		_, err = tx.Exec(ctx, `
			DELETE FROM doctor_slots
			WHERE doctor_id = $1 AND id = ANY($2)
		`, doctorID, removedSlotIDs)
		if err != nil {
			return fmt.Errorf("ошибка удаления назначений: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка коммита транзакции: %w", err)
	}

	return nil
}

// GetBookableSlots возвращает назначенные врачу слоты дня недели, не занятые
// активной записью на указанную дату.
func (r *SlotRepo) GetBookableSlots(ctx context.Context, doctorID, weekdayID int64, date time.Time) ([]domain.Slot, error) {
	query := `
		SELECT s.id, s.start_time, s.end_time, s.period, s.created_at
		FROM doctor_slots ds
		JOIN slots s ON s.id = ds.slot_id
		WHERE ds.doctor_id = $1
		AND ds.weekday_id = $2
		AND NOT EXISTS (
			SELECT 1 FROM appointments a
			WHERE a.doctor_id = ds.doctor_id
			AND a.slot_id = ds.slot_id
			AND a.date = $3
			AND a.status != 'cancelled'
		)
		ORDER BY s.start_time
	`

	rows, err := r.db.Query(ctx, query, doctorID, weekdayID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса свободных слотов: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		err := rows.Scan(&slot.ID, &slot.StartTime, &slot.EndTime, &slot.Period, &slot.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования слота: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return slots, nil
}
