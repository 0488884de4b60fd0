package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is the root owner of every piece of authored content.
type Course struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description,omitempty" db:"description"` // Nullable
	InstructorID *string   `json:"instructor_id,omitempty" db:"instructor_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CourseDetails holds free-form course metadata edited from the objectives screen.
type CourseDetails struct {
	CourseID      uuid.UUID `json:"course_id" db:"course_id"`
	MainObjective string    `json:"main_objective" db:"main_objective"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
