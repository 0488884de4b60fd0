package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type quizRepo struct {
	q DBTX
}

var (
	quizColumns         = []string{"id", "course_id", "name", "number", "course_order", "created_at"}
	quizSettingsColumns = []string{"quiz_id", "min_pass_score", "is_pass_required", "time_limit_minutes", "allow_retakes", "max_attempts"}
	quizQuestionColumns = []string{"id", "quiz_id", "question_text", "question_type", "options", "correct_answers", "points", "question_order", "created_at"}
)

// Create inserts a quiz
func (r *quizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	_, err := execStmt(ctx, r.q, psql.Insert("quizzes").
		Columns(quizColumns...).
		Values(quiz.ID, quiz.CourseID, quiz.Name, quiz.Number, quiz.CourseOrder, quiz.CreatedAt),
		"create quiz")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}

// GetByID retrieves a quiz of the given course
func (r *quizRepo) GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := selectOne[models.Quiz](ctx, r.q,
		psql.Select(quizColumns...).From("quizzes").
			Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"get quiz")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrQuizNotFound)
	}
	return quiz, nil
}

// ListByCourse returns the quizzes of a course by course order
func (r *quizRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Quiz, error) {
	return selectAll[models.Quiz](ctx, r.q,
		psql.Select(quizColumns...).From("quizzes").
			Where(eqID("course_id", courseID)).
			OrderBy("course_order", "number", "created_at"),
		"list quizzes")
}

// Delete removes a quiz scoped by its course
func (r *quizRepo) Delete(ctx context.Context, courseID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("quizzes").
		Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"delete quiz")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrQuizNotFound)
	}
	if n == 0 {
		return apperrors.ErrQuizNotFound
	}
	return nil
}

// GetSettings returns ErrResourceNotFound when the quiz has no stored settings
func (r *quizRepo) GetSettings(ctx context.Context, quizID uuid.UUID) (*models.QuizSettings, error) {
	settings, err := selectOne[models.QuizSettings](ctx, r.q,
		psql.Select(quizSettingsColumns...).From("quiz_settings").Where(eqID("quiz_id", quizID)),
		"get quiz settings")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrResourceNotFound)
	}
	return settings, nil
}

// UpsertSettings creates the settings row on first save and replaces it afterwards
func (r *quizRepo) UpsertSettings(ctx context.Context, s *models.QuizSettings) error {
	_, err := execStmt(ctx, r.q, psql.Insert("quiz_settings").
		Columns(quizSettingsColumns...).
		Values(s.QuizID, s.MinPassScore, s.IsPassRequired, s.TimeLimitMinutes, s.AllowRetakes, s.MaxAttempts).
		Suffix(`ON CONFLICT (quiz_id) DO UPDATE SET
			min_pass_score = EXCLUDED.min_pass_score,
			is_pass_required = EXCLUDED.is_pass_required,
			time_limit_minutes = EXCLUDED.time_limit_minutes,
			allow_retakes = EXCLUDED.allow_retakes,
			max_attempts = EXCLUDED.max_attempts`),
		"upsert quiz settings")
	return dberrors.Translate(err, apperrors.ErrQuizNotFound)
}

// DeleteSettings removes the settings row of a quiz if present
func (r *quizRepo) DeleteSettings(ctx context.Context, quizID uuid.UUID) (int64, error) {
	return execStmt(ctx, r.q, psql.Delete("quiz_settings").Where(eqID("quiz_id", quizID)),
		"delete quiz settings")
}

// CreateQuestion inserts a quiz question
func (r *quizRepo) CreateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	_, err := execStmt(ctx, r.q, psql.Insert("quiz_questions").
		Columns(quizQuestionColumns...).
		Values(q.ID, q.QuizID, q.QuestionText, q.QuestionType, q.Options, q.CorrectAnswers,
			q.Points, q.QuestionOrder, q.CreatedAt),
		"create quiz question")
	return dberrors.Translate(err, apperrors.ErrQuizNotFound)
}

// ListQuestions returns the questions of a quiz in order
func (r *quizRepo) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*models.QuizQuestion, error) {
	return selectAll[models.QuizQuestion](ctx, r.q,
		psql.Select(quizQuestionColumns...).From("quiz_questions").
			Where(eqID("quiz_id", quizID)).
			OrderBy("question_order", "created_at"),
		"list quiz questions")
}

// NextQuestionOrder returns max(question_order)+1, or 1
func (r *quizRepo) NextQuestionOrder(ctx context.Context, quizID uuid.UUID) (int, error) {
	return scalarInt(ctx, r.q,
		psql.Select("COALESCE(MAX(question_order), 0) + 1").From("quiz_questions").
			Where(eqID("quiz_id", quizID)),
		"next question order")
}

// DeleteQuestion removes one question scoped by its quiz
func (r *quizRepo) DeleteQuestion(ctx context.Context, quizID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("quiz_questions").
		Where(eqID("id", id)).Where(eqID("quiz_id", quizID)),
		"delete quiz question")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrQuestionNotFound)
	}
	if n == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// DeleteQuestions removes every question of a quiz
func (r *quizRepo) DeleteQuestions(ctx context.Context, quizID uuid.UUID) (int64, error) {
	n, err := execStmt(ctx, r.q, psql.Delete("quiz_questions").Where(eqID("quiz_id", quizID)),
		"delete quiz questions")
	return n, dberrors.Translate(err, apperrors.ErrQuizNotFound)
}
