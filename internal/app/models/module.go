package models

import (
	"time"

	"github.com/google/uuid"
)

// Module groups lessons, media and quizzes of a course.
type Module struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CourseID  uuid.UUID `json:"course_id" db:"course_id"`
	Name      string    `json:"name" db:"name"`
	Number    int       `json:"number" db:"number"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Lesson belongs to a module and owns its lesson content items directly.
type Lesson struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ModuleID      uuid.UUID `json:"module_id" db:"module_id"`
	Name          string    `json:"name" db:"name"`
	Number        int       `json:"number" db:"number"`
	VideoURL      *string   `json:"video_url,omitempty" db:"video_url"`
	LessonDetails *string   `json:"lesson_details,omitempty" db:"lesson_details"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// LessonContentType is the kind of a lesson content item
type LessonContentType string

const (
	LessonContentMedia      LessonContentType = "media"
	LessonContentText       LessonContentType = "text"
	LessonContentDiscussion LessonContentType = "discussion"
)

// LessonContent is an item inside a lesson. It is not part of the structural tree.
type LessonContent struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	LessonID    uuid.UUID         `json:"lesson_id" db:"lesson_id"`
	Title       string            `json:"title" db:"title"`
	ContentType LessonContentType `json:"content_type" db:"content_type"`
	Content     string            `json:"content" db:"content"`
	FileType    *string           `json:"file_type,omitempty" db:"file_type"`
	FileURL     *string           `json:"file_url,omitempty" db:"file_url"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}
