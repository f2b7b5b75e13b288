package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// UnknownStudentName is rendered whenever a student id cannot be resolved.
const UnknownStudentName = "Unknown Student"

// SubjectGrades maps academic categories to the grade level the student is
// working at in that subject. Stored as JSONB.
type SubjectGrades map[Category]int

// Value implements driver.Valuer for JSONB columns.
func (g SubjectGrades) Value() (driver.Value, error) {
	if g == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner for JSONB columns.
func (g *SubjectGrades) Scan(src interface{}) error {
	if src == nil {
		*g = SubjectGrades{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for SubjectGrades", src)
	}
	return json.Unmarshal(raw, g)
}

// BatchLabels maps non-academic categories to the batch the student attends.
type BatchLabels map[Category]string

func (b BatchLabels) Value() (driver.Value, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b)
}

func (b *BatchLabels) Scan(src interface{}) error {
	if src == nil {
		*b = BatchLabels{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for BatchLabels", src)
	}
	return json.Unmarshal(raw, b)
}

// ABCProfile is the behavioural antecedent/behaviour/consequence record kept
// for each student.
type ABCProfile struct {
	Antecedent  string `json:"antecedent"`
	Behaviour   string `json:"behaviour"`
	Consequence string `json:"consequence"`
}

func (p ABCProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ABCProfile) Scan(src interface{}) error {
	if src == nil {
		*p = ABCProfile{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for ABCProfile", src)
	}
	return json.Unmarshal(raw, p)
}

// Student is a directory record for an enrolled learner.
type Student struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	MentorID    *string        `db:"mentor_id" json:"mentorId,omitempty"`
	Grade       int            `db:"grade" json:"grade"`
	DateOfBirth *time.Time     `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Address     string         `db:"address" json:"address,omitempty"`
	Contact     string         `db:"contact" json:"contact,omitempty"`
	Grades      SubjectGrades  `db:"grades" json:"grades"`
	Batches     BatchLabels    `db:"batches" json:"batches"`
	ABC         ABCProfile     `db:"abc_profile" json:"abcProfile"`
	Tags        pq.StringArray `db:"tags" json:"tags,omitempty"`
	IsActive    bool           `db:"is_active" json:"isActive"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// GradeFor returns the student's working grade for an academic category,
// falling back to the overall grade when no per-subject entry exists.
func (s *Student) GradeFor(category Category) int {
	if g, ok := s.Grades[category]; ok {
		return g
	}
	return s.Grade
}

// CreateStudentRequest is the payload accepted when enrolling a student.
type CreateStudentRequest struct {
	Name        string         `json:"name" validate:"required,min=2"`
	MentorID    *string        `json:"mentorId" validate:"omitempty,uuid"`
	Grade       int            `json:"grade" validate:"required,min=1,max=12"`
	DateOfBirth *time.Time     `json:"dateOfBirth"`
	Address     string         `json:"address"`
	Contact     string         `json:"contact"`
	Grades      SubjectGrades  `json:"grades"`
	Batches     BatchLabels    `json:"batches"`
	ABC         ABCProfile     `json:"abcProfile"`
	Tags        []string       `json:"tags"`
}

// UpdateStudentRequest patches mutable student fields. Nil means unchanged.
type UpdateStudentRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=2"`
	MentorID    *string        `json:"mentorId" validate:"omitempty,uuid"`
	Grade       *int           `json:"grade" validate:"omitempty,min=1,max=12"`
	DateOfBirth *time.Time     `json:"dateOfBirth"`
	Address     *string        `json:"address"`
	Contact     *string        `json:"contact"`
	Grades      *SubjectGrades `json:"grades"`
	Batches     *BatchLabels   `json:"batches"`
	ABC         *ABCProfile    `json:"abcProfile"`
	Tags        []string       `json:"tags"`
	IsActive    *bool          `json:"isActive"`
}
