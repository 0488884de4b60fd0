package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

type courseRepo struct {
	s *Store
}

func (r *courseRepo) Create(_ context.Context, course *models.Course) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[course.ID]; ok {
			return violation("courses_pkey")
		}
		t.courses[course.ID] = *course
		return nil
	})
}

func (r *courseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.s.view(func(t *tables) error {
		c, ok := t.courses[id]
		if !ok {
			return apperrors.ErrCourseNotFound
		}
		course = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List orders newest first like the SQL repository
func (r *courseRepo) List(_ context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	var (
		page  []*models.Course
		total int64
	)
	err := r.s.view(func(t *tables) error {
		all := rows(t.courses, func(models.Course) bool { return true }, func(a, b models.Course) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID.String() < b.ID.String()
		})
		total = int64(len(all))
		if offset >= uint64(len(all)) {
			page = []*models.Course{}
			return nil
		}
		end := len(all)
		if limit > 0 && int(offset)+limit < end {
			end = int(offset) + limit
		}
		page = all[offset:end]
		return nil
	})
	return page, total, err
}

func (r *courseRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.s.view(func(t *tables) error {
		_, ok = t.courses[id]
		return nil
	})
	return ok, err
}

// Delete removes the course together with everything it owns
func (r *courseRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[id]; !ok {
			return apperrors.ErrCourseNotFound
		}

		for k, e := range t.structure {
			if e.CourseID == id {
				delete(t.structure, k)
			}
		}
		for k, m := range t.media {
			if m.CourseID == id {
				delete(t.media, k)
			}
		}
		delete(t.feedback, id)
		for k, o := range t.objectives {
			if o.CourseID == id {
				delete(t.objectives, k)
			}
		}
		delete(t.details, id)
		for k, q := range t.quizzes {
			if q.CourseID != id {
				continue
			}
			for qk, question := range t.questions {
				if question.QuizID == k {
					delete(t.questions, qk)
				}
			}
			delete(t.settings, k)
			delete(t.quizzes, k)
		}
		for k, m := range t.modules {
			if m.CourseID != id {
				continue
			}
			for lk, l := range t.lessons {
				if l.ModuleID != k {
					continue
				}
				for ck, c := range t.content {
					if c.LessonID == lk {
						delete(t.content, ck)
					}
				}
				delete(t.lessons, lk)
			}
			delete(t.modules, k)
		}
		delete(t.courses, id)
		return nil
	})
}

// GetDetails returns an empty record when none is stored
func (r *courseRepo) GetDetails(_ context.Context, courseID uuid.UUID) (*models.CourseDetails, error) {
	details := models.CourseDetails{CourseID: courseID}
	err := r.s.view(func(t *tables) error {
		if d, ok := t.details[courseID]; ok {
			details = d
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *courseRepo) UpsertDetails(_ context.Context, details *models.CourseDetails) error {
	if details.UpdatedAt.IsZero() {
		details.UpdatedAt = time.Now().UTC()
	}
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[details.CourseID]; !ok {
			return violation("course_details_course_id_fkey")
		}
		t.details[details.CourseID] = *details
		return nil
	})
}

type feedbackRepo struct {
	s *Store
}

func (r *feedbackRepo) Get(_ context.Context, courseID uuid.UUID) (*models.FeedbackSettings, error) {
	var settings models.FeedbackSettings
	err := r.s.view(func(t *tables) error {
		f, ok := t.feedback[courseID]
		if !ok {
			return apperrors.ErrResourceNotFound
		}
		settings = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *feedbackRepo) Upsert(_ context.Context, settings *models.FeedbackSettings) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[settings.CourseID]; !ok {
			return violation("course_feedback_settings_course_id_fkey")
		}
		t.feedback[settings.CourseID] = *settings
		return nil
	})
}
