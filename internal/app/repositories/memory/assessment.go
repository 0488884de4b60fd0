package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

type mediaRepo struct {
	s *Store
}

func (r *mediaRepo) Create(_ context.Context, media *models.Media) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[media.CourseID]; !ok {
			return violation("media_course_id_fkey")
		}
		if media.LessonID != nil {
			if _, ok := t.lessons[*media.LessonID]; !ok {
				return violation("media_lesson_id_fkey")
			}
		}
		t.media[media.ID] = *media
		return nil
	})
}

func (r *mediaRepo) GetByID(_ context.Context, courseID, id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := r.s.view(func(t *tables) error {
		m, ok := t.media[id]
		if !ok || m.CourseID != courseID {
			return apperrors.ErrMediaNotFound
		}
		media = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.Media, error) {
	var media []*models.Media
	err := r.s.view(func(t *tables) error {
		media = rows(t.media,
			func(m models.Media) bool { return m.CourseID == courseID },
			func(a, b models.Media) bool { return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID) })
		return nil
	})
	return media, err
}

func (r *mediaRepo) SetLesson(_ context.Context, id uuid.UUID, lessonID *uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		m, ok := t.media[id]
		if !ok {
			return apperrors.ErrMediaNotFound
		}
		if lessonID != nil {
			if _, ok := t.lessons[*lessonID]; !ok {
				return violation("media_lesson_id_fkey")
			}
			l := *lessonID
			lessonID = &l
		}
		m.LessonID = lessonID
		t.media[id] = m
		return nil
	})
}

func (r *mediaRepo) Delete(_ context.Context, courseID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		m, ok := t.media[id]
		if !ok || m.CourseID != courseID {
			return apperrors.ErrMediaNotFound
		}
		delete(t.media, id)
		return nil
	})
}

type quizRepo struct {
	s *Store
}

func (r *quizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[quiz.CourseID]; !ok {
			return violation("quizzes_course_id_fkey")
		}
		t.quizzes[quiz.ID] = *quiz
		return nil
	})
}

func (r *quizRepo) GetByID(_ context.Context, courseID, id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.s.view(func(t *tables) error {
		q, ok := t.quizzes[id]
		if !ok || q.CourseID != courseID {
			return apperrors.ErrQuizNotFound
		}
		quiz = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	err := r.s.view(func(t *tables) error {
		quizzes = rows(t.quizzes,
			func(q models.Quiz) bool { return q.CourseID == courseID },
			func(a, b models.Quiz) bool {
				if a.CourseOrder != b.CourseOrder {
					return a.CourseOrder < b.CourseOrder
				}
				if a.Number != b.Number {
					return a.Number < b.Number
				}
				return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
			})
		return nil
	})
	return quizzes, err
}

// Delete refuses to orphan settings or questions, like the foreign keys do
func (r *quizRepo) Delete(_ context.Context, courseID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		q, ok := t.quizzes[id]
		if !ok || q.CourseID != courseID {
			return apperrors.ErrQuizNotFound
		}
		if _, ok := t.settings[id]; ok {
			return violation("quiz_settings_quiz_id_fkey")
		}
		for _, question := range t.questions {
			if question.QuizID == id {
				return violation("quiz_questions_quiz_id_fkey")
			}
		}
		delete(t.quizzes, id)
		return nil
	})
}

func (r *quizRepo) GetSettings(_ context.Context, quizID uuid.UUID) (*models.QuizSettings, error) {
	var settings models.QuizSettings
	err := r.s.view(func(t *tables) error {
		s, ok := t.settings[quizID]
		if !ok {
			return apperrors.ErrResourceNotFound
		}
		settings = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *quizRepo) UpsertSettings(_ context.Context, settings *models.QuizSettings) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.quizzes[settings.QuizID]; !ok {
			return violation("quiz_settings_quiz_id_fkey")
		}
		t.settings[settings.QuizID] = *settings
		return nil
	})
}

func (r *quizRepo) DeleteSettings(_ context.Context, quizID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.update(func(t *tables) error {
		if _, ok := t.settings[quizID]; ok {
			delete(t.settings, quizID)
			n = 1
		}
		return nil
	})
	return n, err
}

func (r *quizRepo) CreateQuestion(_ context.Context, question *models.QuizQuestion) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.quizzes[question.QuizID]; !ok {
			return violation("quiz_questions_quiz_id_fkey")
		}
		q := *question
		q.Options = append([]string(nil), question.Options...)
		q.CorrectAnswers = append([]string(nil), question.CorrectAnswers...)
		t.questions[q.ID] = q
		return nil
	})
}

func (r *quizRepo) ListQuestions(_ context.Context, quizID uuid.UUID) ([]*models.QuizQuestion, error) {
	var questions []*models.QuizQuestion
	err := r.s.view(func(t *tables) error {
		questions = rows(t.questions,
			func(q models.QuizQuestion) bool { return q.QuizID == quizID },
			func(a, b models.QuizQuestion) bool {
				if a.QuestionOrder != b.QuestionOrder {
					return a.QuestionOrder < b.QuestionOrder
				}
				return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
			})
		return nil
	})
	return questions, err
}

func (r *quizRepo) NextQuestionOrder(_ context.Context, quizID uuid.UUID) (int, error) {
	next := 1
	err := r.s.view(func(t *tables) error {
		for _, q := range t.questions {
			if q.QuizID == quizID && q.QuestionOrder >= next {
				next = q.QuestionOrder + 1
			}
		}
		return nil
	})
	return next, err
}

func (r *quizRepo) DeleteQuestion(_ context.Context, quizID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		q, ok := t.questions[id]
		if !ok || q.QuizID != quizID {
			return apperrors.ErrQuestionNotFound
		}
		delete(t.questions, id)
		return nil
	})
}

func (r *quizRepo) DeleteQuestions(_ context.Context, quizID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.update(func(t *tables) error {
		for k, q := range t.questions {
			if q.QuizID == quizID {
				delete(t.questions, k)
				n++
			}
		}
		return nil
	})
	return n, err
}

type objectiveRepo struct {
	s *Store
}

func (r *objectiveRepo) Create(_ context.Context, objective *models.CourseObjective) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[objective.CourseID]; !ok {
			return violation("course_objectives_course_id_fkey")
		}
		t.objectives[objective.ID] = *objective
		return nil
	})
}

func (r *objectiveRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.CourseObjective, error) {
	var objectives []*models.CourseObjective
	err := r.s.view(func(t *tables) error {
		objectives = rows(t.objectives,
			func(o models.CourseObjective) bool { return o.CourseID == courseID },
			func(a, b models.CourseObjective) bool {
				if a.ObjectiveOrder != b.ObjectiveOrder {
					return a.ObjectiveOrder < b.ObjectiveOrder
				}
				return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
			})
		return nil
	})
	return objectives, err
}

func (r *objectiveRepo) NextOrder(_ context.Context, courseID uuid.UUID) (int, error) {
	next := 1
	err := r.s.view(func(t *tables) error {
		for _, o := range t.objectives {
			if o.CourseID == courseID && o.ObjectiveOrder >= next {
				next = o.ObjectiveOrder + 1
			}
		}
		return nil
	})
	return next, err
}

// UpdateOrder is checked for order uniqueness when the transaction commits
func (r *objectiveRepo) UpdateOrder(_ context.Context, courseID, id uuid.UUID, order int) error {
	return r.s.update(func(t *tables) error {
		o, ok := t.objectives[id]
		if !ok || o.CourseID != courseID {
			return apperrors.ErrObjectiveNotFound
		}
		o.ObjectiveOrder = order
		t.objectives[id] = o
		return nil
	})
}

func (r *objectiveRepo) Delete(_ context.Context, courseID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		o, ok := t.objectives[id]
		if !ok || o.CourseID != courseID {
			return apperrors.ErrObjectiveNotFound
		}
		delete(t.objectives, id)
		return nil
	})
}
