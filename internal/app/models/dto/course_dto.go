package dto

import "github.com/yigit/learnhub/internal/app/models"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title        string  `json:"title" binding:"required,max=255" example:"Intro to Go"`
	Description  *string `json:"description" example:"Types, interfaces and goroutines"`
	InstructorID *string `json:"instructor_id" example:"a1b2c3"`
}

// CourseListResponse is the paginated course list
type CourseListResponse struct {
	Courses    []*models.Course `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FeedbackSettingsRequest replaces the feedback settings of a course
type FeedbackSettingsRequest struct {
	AllowComments     bool `json:"allow_comments"`
	AllowRatings      bool `json:"allow_ratings"`
	RequireCompletion bool `json:"require_completion"`
	Anonymous         bool `json:"anonymous"`
}
