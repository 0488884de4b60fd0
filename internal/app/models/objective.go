package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseObjective is a learning objective; ObjectiveOrder is dense per course.
type CourseObjective struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CourseID       uuid.UUID `json:"course_id" db:"course_id"`
	ObjectiveText  string    `json:"objective_text" db:"objective_text"`
	ObjectiveOrder int       `json:"objective_order" db:"objective_order"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// FeedbackSettings controls learner feedback collection for a course.
type FeedbackSettings struct {
	CourseID          uuid.UUID `json:"course_id" db:"course_id"`
	AllowComments     bool      `json:"allow_comments" db:"allow_comments"`
	AllowRatings      bool      `json:"allow_ratings" db:"allow_ratings"`
	RequireCompletion bool      `json:"require_completion" db:"require_completion"`
	Anonymous         bool      `json:"anonymous" db:"anonymous"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultFeedbackSettings is reported when a course has no stored settings.
func DefaultFeedbackSettings(courseID uuid.UUID) *FeedbackSettings {
	return &FeedbackSettings{
		CourseID:      courseID,
		AllowComments: true,
		AllowRatings:  true,
	}
}
