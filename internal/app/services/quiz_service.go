package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// QuizService defines the interface for quiz operations
type QuizService interface {
	CreateQuiz(ctx context.Context, courseID uuid.UUID, req *dto.CreateQuizRequest) (*dto.QuizCreatedResponse, error)
	GetQuiz(ctx context.Context, courseID, quizID uuid.UUID) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, courseID uuid.UUID) ([]*models.Quiz, error)
	DeleteQuiz(ctx context.Context, courseID, quizID uuid.UUID) error

	GetSettings(ctx context.Context, courseID, quizID uuid.UUID) (*models.QuizSettings, error)
	UpdateSettings(ctx context.Context, courseID, quizID uuid.UUID, req *dto.QuizSettingsRequest) (*models.QuizSettings, error)

	ListQuestions(ctx context.Context, courseID, quizID uuid.UUID) ([]*models.QuizQuestion, error)
	CreateQuestion(ctx context.Context, courseID, quizID uuid.UUID, req *dto.CreateQuestionRequest) (*models.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, courseID, quizID, questionID uuid.UUID) error
}

type quizServiceImpl struct {
	store    repositories.Store
	notifier StructureNotifier
}

// NewQuizService creates a new QuizService
func NewQuizService(store repositories.Store, notifier StructureNotifier) QuizService {
	return &quizServiceImpl{
		store:    store,
		notifier: notifierOrNop(notifier),
	}
}

// CreateQuiz stores the quiz and places it under a module or lesson
func (s *quizServiceImpl) CreateQuiz(ctx context.Context, courseID uuid.UUID, req *dto.CreateQuizRequest) (*dto.QuizCreatedResponse, error) {
	name, err := requiredName("name", req.Name)
	if err != nil {
		return nil, err
	}
	if req.ParentID == uuid.Nil {
		return nil, apperrors.NewValidationError("parent_id is required")
	}

	quiz := &models.Quiz{
		ID:          uuid.New(),
		CourseID:    courseID,
		Name:        name,
		Number:      req.Number,
		CourseOrder: req.CourseOrder,
		CreatedAt:   now(),
	}

	var entry *models.StructureEntry
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := requireCourse(ctx, tx, courseID); err != nil {
			return err
		}
		if _, err := resolveParent(ctx, tx, courseID, req.ParentID); err != nil {
			return err
		}
		if err := tx.Quizzes().Create(ctx, quiz); err != nil {
			return fmt.Errorf("error creating quiz: %w", err)
		}
		parentID := req.ParentID
		entry, err = placeEntry(ctx, tx, courseID, models.ContentQuiz, quiz.ID, &parentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StructureChanged(courseID, "quiz.created")
	return &dto.QuizCreatedResponse{Quiz: quiz, Structure: entry}, nil
}

// GetQuiz retrieves a quiz of the course
func (s *quizServiceImpl) GetQuiz(ctx context.Context, courseID, quizID uuid.UUID) (*models.Quiz, error) {
	return s.store.Quizzes().GetByID(ctx, courseID, quizID)
}

// ListQuizzes returns the quizzes of a course
func (s *quizServiceImpl) ListQuizzes(ctx context.Context, courseID uuid.UUID) ([]*models.Quiz, error) {
	if err := requireCourse(ctx, s.store, courseID); err != nil {
		return nil, err
	}
	return s.store.Quizzes().ListByCourse(ctx, courseID)
}

// DeleteQuiz removes settings, questions, structural entries and the quiz in
// that order. A failing step rolls every earlier one back.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, courseID, quizID uuid.UUID) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
			return err
		}
		if _, err := tx.Quizzes().DeleteSettings(ctx, quizID); err != nil {
			return fmt.Errorf("error deleting quiz settings: %w", err)
		}
		n, err := tx.Quizzes().DeleteQuestions(ctx, quizID)
		if err != nil {
			return fmt.Errorf("error deleting quiz questions: %w", err)
		}
		if _, err := tx.Structure().DeleteSubtree(ctx, courseID, quizID); err != nil {
			return fmt.Errorf("error deleting structure entry: %w", err)
		}
		if err := tx.Quizzes().Delete(ctx, courseID, quizID); err != nil {
			return fmt.Errorf("error deleting quiz: %w", err)
		}
		logger.Debug().Str("quizID", quizID.String()).Int64("questions", n).Msg("Quiz rows deleted")
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.StructureChanged(courseID, "quiz.deleted")
	return nil
}

// GetSettings returns the stored settings or the defaults
func (s *quizServiceImpl) GetSettings(ctx context.Context, courseID, quizID uuid.UUID) (*models.QuizSettings, error) {
	if _, err := s.store.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
		return nil, err
	}

	settings, err := s.store.Quizzes().GetSettings(ctx, quizID)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return models.DefaultQuizSettings(quizID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading quiz settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings creates the settings on first save and replaces them afterwards
func (s *quizServiceImpl) UpdateSettings(ctx context.Context, courseID, quizID uuid.UUID, req *dto.QuizSettingsRequest) (*models.QuizSettings, error) {
	if req.MinPassScore < 0 || req.MinPassScore > 100 {
		return nil, apperrors.NewValidationError("min_pass_score must be between 0 and 100")
	}
	if req.TimeLimitMinutes < 0 || req.MaxAttempts < 0 {
		return nil, apperrors.NewValidationError("time_limit_minutes and max_attempts cannot be negative")
	}
	if _, err := s.store.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
		return nil, err
	}

	settings := &models.QuizSettings{
		QuizID:           quizID,
		MinPassScore:     req.MinPassScore,
		IsPassRequired:   req.IsPassRequired,
		TimeLimitMinutes: req.TimeLimitMinutes,
		AllowRetakes:     req.AllowRetakes,
		MaxAttempts:      req.MaxAttempts,
	}
	if err := s.store.Quizzes().UpsertSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error saving quiz settings: %w", err)
	}
	return settings, nil
}

// ListQuestions returns the questions of a quiz in order
func (s *quizServiceImpl) ListQuestions(ctx context.Context, courseID, quizID uuid.UUID) ([]*models.QuizQuestion, error) {
	if _, err := s.store.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
		return nil, err
	}
	return s.store.Quizzes().ListQuestions(ctx, quizID)
}

// validateQuestion checks answers against the question type
func validateQuestion(req *dto.CreateQuestionRequest) error {
	switch req.QuestionType {
	case models.QuestionSingleChoice, models.QuestionMultipleChoice:
		if len(req.Options) < 2 {
			return apperrors.NewValidationError("choice questions need at least two options")
		}
		options := make(map[string]bool, len(req.Options))
		for _, o := range req.Options {
			options[o] = true
		}
		for _, a := range req.CorrectAnswers {
			if !options[a] {
				return apperrors.NewValidationError(fmt.Sprintf("correct answer %q is not one of the options", a))
			}
		}
		if req.QuestionType == models.QuestionSingleChoice && len(req.CorrectAnswers) != 1 {
			return apperrors.NewValidationError("single choice questions have exactly one correct answer")
		}
	case models.QuestionTrueFalse:
		if len(req.CorrectAnswers) != 1 || (req.CorrectAnswers[0] != "true" && req.CorrectAnswers[0] != "false") {
			return apperrors.NewValidationError(`true/false questions take "true" or "false" as the answer`)
		}
	case models.QuestionShortAnswer:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown question type %q", req.QuestionType))
	}
	if len(req.CorrectAnswers) == 0 {
		return apperrors.NewValidationError("at least one correct answer is required")
	}
	return nil
}

// CreateQuestion adds a question; a zero order appends it
func (s *quizServiceImpl) CreateQuestion(ctx context.Context, courseID, quizID uuid.UUID, req *dto.CreateQuestionRequest) (*models.QuizQuestion, error) {
	text, err := requiredName("question_text", req.QuestionText)
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	question := &models.QuizQuestion{
		ID:             uuid.New(),
		QuizID:         quizID,
		QuestionText:   text,
		QuestionType:   req.QuestionType,
		Options:        append([]string{}, req.Options...),
		CorrectAnswers: append([]string{}, req.CorrectAnswers...),
		Points:         req.Points,
		QuestionOrder:  req.QuestionOrder,
		CreatedAt:      now(),
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
			return err
		}
		if question.QuestionOrder == 0 {
			next, err := tx.Quizzes().NextQuestionOrder(ctx, quizID)
			if err != nil {
				return fmt.Errorf("error computing question order: %w", err)
			}
			question.QuestionOrder = next
		}
		return tx.Quizzes().CreateQuestion(ctx, question)
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes one question of a quiz
func (s *quizServiceImpl) DeleteQuestion(ctx context.Context, courseID, quizID, questionID uuid.UUID) error {
	if _, err := s.store.Quizzes().GetByID(ctx, courseID, quizID); err != nil {
		return err
	}
	return s.store.Quizzes().DeleteQuestion(ctx, quizID, questionID)
}
