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

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO appointments (patient_id, doctor_id, slot_id, date, status, complaint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		patientID,
		dto.DoctorID,
		dto.SlotID,
		dto.Date,
		domain.AppointmentStatusBooked,
		dto.Complaint,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	return id, nil
}

const appointmentSelectQuery = `
	SELECT a.id, a.patient_id, a.doctor_id, a.slot_id, a.date, a.status,
		COALESCE(a.complaint, ''), a.created_at, a.updated_at,
		pu.last_name || ' ' || pu.first_name,
		du.last_name || ' ' || du.first_name,
		s.start_time, s.end_time
	FROM appointments a
	JOIN users pu ON pu.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN users du ON du.id = d.user_id
	JOIN slots s ON s.id = a.slot_id
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.SlotID,
		&appointment.Date,
		&appointment.Status,
		&appointment.Complaint,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.PatientName,
		&appointment.DoctorName,
		&appointment.StartTime,
		&appointment.EndTime,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := appointmentSelectQuery + ` WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения записи на прием: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Status != nil {
		setValues = append(setValues, fmt.Sprintf("status = $%d", argId))
		args = append(args, *dto.Status)
		argId++
	}

	if dto.Date != nil {
		setValues = append(setValues, fmt.Sprintf("date = $%d", argId))
		args = append(args, *dto.Date)
		argId++
	}

	if dto.SlotID != nil {
		setValues = append(setValues, fmt.Sprintf("slot_id = $%d", argId))
		args = append(args, *dto.SlotID)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE appointments SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи на прием: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) buildFilter(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.PatientID != nil {
		conditions += fmt.Sprintf(" AND a.patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND a.doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND a.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.ExcludeStatus != nil {
		conditions += fmt.Sprintf(" AND a.status != $%d", argPos)
		args = append(args, *filter.ExcludeStatus)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND a.date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND a.date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	return conditions, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args := r.buildFilter(filter)
	argPos := len(args) + 1

	query := appointmentSelectQuery + ` WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY a.date DESC, s.start_time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions, args := r.buildFilter(filter)

	query := `SELECT COUNT(*) FROM appointments a WHERE 1=1` + conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	return total, nil
}

// HasActiveAppointment проверяет, занят ли слот врача на дату активной записью.
func (r *AppointmentRepo) HasActiveAppointment(ctx context.Context, doctorID, slotID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND slot_id = $2 AND date = $3 AND status != 'cancelled'
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, doctorID, slotID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки занятости слота: %w", err)
	}

	return exists, nil
}
