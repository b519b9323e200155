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

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{db: db}
}

const doctorSelectQuery = `
	SELECT d.id, d.user_id, d.specialization_id, COALESCE(sp.name, ''),
		d.qualification, d.experience_years, d.description, d.appointment_price,
		COALESCE(d.profile_photo_url, ''), d.created_at, d.updated_at,
		u.id, u.first_name, u.last_name, u.middle_name, u.email, u.phone, u.role, u.is_active
	FROM doctors d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN specializations sp ON sp.id = d.specialization_id
`

func scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var doctor domain.Doctor
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.SpecializationID,
		&doctor.Specialization,
		&doctor.Qualification,
		&doctor.ExperienceYears,
		&doctor.Description,
		&doctor.AppointmentPrice,
		&doctor.ProfilePhotoURL,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&doctor.User.ID,
		&doctor.User.FirstName,
		&doctor.User.LastName,
		&doctor.User.MiddleName,
		&doctor.User.Email,
		&doctor.User.Phone,
		&doctor.User.Role,
		&doctor.User.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO doctors (user_id, specialization_id, qualification, experience_years, description, appointment_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		userID,
		dto.SpecializationID,
		dto.Qualification,
		dto.ExperienceYears,
		dto.Description,
		dto.AppointmentPrice,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	return id, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := doctorSelectQuery + ` WHERE d.id = $1`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	query := doctorSelectQuery + ` WHERE d.user_id = $1`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.SpecializationID != nil {
		setValues = append(setValues, fmt.Sprintf("specialization_id = $%d", argId))
		args = append(args, *dto.SpecializationID)
		argId++
	}

	if dto.Qualification != nil {
		setValues = append(setValues, fmt.Sprintf("qualification = $%d", argId))
		args = append(args, *dto.Qualification)
		argId++
	}

	if dto.ExperienceYears != nil {
		setValues = append(setValues, fmt.Sprintf("experience_years = $%d", argId))
		args = append(args, *dto.ExperienceYears)
		argId++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argId))
		args = append(args, *dto.Description)
		argId++
	}

	if dto.AppointmentPrice != nil {
		setValues = append(setValues, fmt.Sprintf("appointment_price = $%d", argId))
		args = append(args, *dto.AppointmentPrice)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE doctors SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM doctors WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE 1=1
	`
	selectQuery := doctorSelectQuery + ` WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.SpecializationID != nil {
		conditions += fmt.Sprintf(" AND d.specialization_id = $%d", argPos)
		args = append(args, *filter.SpecializationID)
		argPos++
	}

	if filter.SearchTerm != nil {
		conditions += fmt.Sprintf(" AND (u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*filter.SearchTerm+"%")
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY d.id LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества врачей: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования врача: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return doctors, total, nil
}

func (r *DoctorRepo) UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `
		UPDATE doctors
		SET profile_photo_url = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото врача: %w", err)
	}

	return nil
}
