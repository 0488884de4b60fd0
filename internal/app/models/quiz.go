package models

import (
	"time"

	"github.com/google/uuid"
)

// Quiz is an assessment placed in the course tree.
type Quiz struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"course_id" db:"course_id"`
	Name        string    `json:"name" db:"name"`
	Number      int       `json:"number" db:"number"`
	CourseOrder int       `json:"course_order" db:"course_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// QuizSettings is stored at most once per quiz and created on first save.
type QuizSettings struct {
	QuizID           uuid.UUID `json:"quiz_id" db:"quiz_id"`
	MinPassScore     int       `json:"min_pass_score" db:"min_pass_score"`
	IsPassRequired   bool      `json:"is_pass_required" db:"is_pass_required"`
	TimeLimitMinutes int       `json:"time_limit_minutes" db:"time_limit_minutes"`
	AllowRetakes     bool      `json:"allow_retakes" db:"allow_retakes"`
	MaxAttempts      int       `json:"max_attempts" db:"max_attempts"`
}

// DefaultQuizSettings returns the settings reported for a quiz that has none stored.
func DefaultQuizSettings(quizID uuid.UUID) *QuizSettings {
	return &QuizSettings{
		QuizID:           quizID,
		MinPassScore:     70,
		IsPassRequired:   false,
		TimeLimitMinutes: 0,
		AllowRetakes:     true,
		MaxAttempts:      0,
	}
}

// QuestionType enumerates supported quiz question kinds
type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

// QuizQuestion is a single question of a quiz.
type QuizQuestion struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	QuizID         uuid.UUID    `json:"quiz_id" db:"quiz_id"`
	QuestionText   string       `json:"question_text" db:"question_text"`
	QuestionType   QuestionType `json:"question_type" db:"question_type"`
	Options        []string     `json:"options" db:"options"`
	CorrectAnswers []string     `json:"correct_answers" db:"correct_answers"`
	Points         int          `json:"points" db:"points"`
	QuestionOrder  int          `json:"question_order" db:"question_order"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}
