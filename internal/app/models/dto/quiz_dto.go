package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// CreateQuizRequest represents quiz creation data
type CreateQuizRequest struct {
	Name        string    `json:"name" binding:"required,max=255" example:"Checkpoint 1"`
	Number      int       `json:"number" binding:"gte=0" example:"1"`
	CourseOrder int       `json:"course_order" binding:"gte=0" example:"1"`
	ParentID    uuid.UUID `json:"parent_id" binding:"required"`
}

// QuizCreatedResponse is returned after a quiz and its structural entry are stored
type QuizCreatedResponse struct {
	Quiz      *models.Quiz           `json:"quiz"`
	Structure *models.StructureEntry `json:"structure"`
}

// QuizSettingsRequest replaces the settings of a quiz
type QuizSettingsRequest struct {
	MinPassScore     int  `json:"min_pass_score" binding:"gte=0,lte=100" example:"70"`
	IsPassRequired   bool `json:"is_pass_required"`
	TimeLimitMinutes int  `json:"time_limit_minutes" binding:"gte=0" example:"30"`
	AllowRetakes     bool `json:"allow_retakes"`
	MaxAttempts      int  `json:"max_attempts" binding:"gte=0" example:"3"`
}

// CreateQuestionRequest adds a question to a quiz. A zero QuestionOrder appends.
type CreateQuestionRequest struct {
	QuestionText   string              `json:"question_text" binding:"required" example:"What does go vet do?"`
	QuestionType   models.QuestionType `json:"question_type" binding:"required,oneof=single_choice multiple_choice true_false short_answer" example:"single_choice"`
	Options        []string            `json:"options"`
	CorrectAnswers []string            `json:"correct_answers" binding:"required,min=1"`
	Points         int                 `json:"points" binding:"gte=0" example:"1"`
	QuestionOrder  int                 `json:"question_order" binding:"gte=0"`
}
