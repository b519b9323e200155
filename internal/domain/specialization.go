package domain

import (
	"time"
)

type Specialization struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSpecializationDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type UpdateSpecializationDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type SpecializationFilter struct {
	IsActive   *bool   `json:"is_active"`
	SearchTerm *string `json:"search_term"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
