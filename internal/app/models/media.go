package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is a course-level uploaded file, optionally tied to a lesson.
type Media struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CourseID  uuid.UUID  `json:"course_id" db:"course_id"`
	LessonID  *uuid.UUID `json:"lesson_id,omitempty" db:"lesson_id"`
	Title     string     `json:"title" db:"title"`
	FileType  string     `json:"file_type" db:"file_type"`
	FileURL   string     `json:"file_url" db:"file_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
