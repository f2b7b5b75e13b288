package models

import (
	"time"

	"github.com/lib/pq"
)

// UnknownMentorName is rendered whenever a mentor id cannot be resolved.
const UnknownMentorName = "Unknown Mentor"

// Mentor is a directory record for a staff member who runs sessions.
type Mentor struct {
	ID         string         `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Role       string         `db:"role" json:"role,omitempty"`
	Email      string         `db:"email" json:"email,omitempty"`
	Contact    string         `db:"contact" json:"contact,omitempty"`
	StudentIDs pq.StringArray `db:"student_ids" json:"studentIds"`
	IsActive   bool           `db:"is_active" json:"isActive"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// CreateMentorRequest is the payload accepted when adding a mentor.
type CreateMentorRequest struct {
	Name       string   `json:"name" validate:"required,min=2"`
	Role       string   `json:"role"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Contact    string   `json:"contact"`
	StudentIDs []string `json:"studentIds" validate:"omitempty,dive,uuid"`
}

// UpdateMentorRequest patches mutable mentor fields. Nil means unchanged.
type UpdateMentorRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=2"`
	Role       *string  `json:"role"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Contact    *string  `json:"contact"`
	StudentIDs []string `json:"studentIds" validate:"omitempty,dive,uuid"`
	IsActive   *bool    `json:"isActive"`
}
