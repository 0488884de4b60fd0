package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

type moduleRepo struct {
	s *Store
}

func (r *moduleRepo) Create(_ context.Context, module *models.Module) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.courses[module.CourseID]; !ok {
			return violation("modules_course_id_fkey")
		}
		t.modules[module.ID] = *module
		return nil
	})
}

func (r *moduleRepo) GetByID(_ context.Context, courseID, id uuid.UUID) (*models.Module, error) {
	var module models.Module
	err := r.s.view(func(t *tables) error {
		m, ok := t.modules[id]
		if !ok || m.CourseID != courseID {
			return apperrors.ErrModuleNotFound
		}
		module = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.Module, error) {
	var modules []*models.Module
	err := r.s.view(func(t *tables) error {
		modules = rows(t.modules,
			func(m models.Module) bool { return m.CourseID == courseID },
			func(a, b models.Module) bool {
				if a.Number != b.Number {
					return a.Number < b.Number
				}
				return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
			})
		return nil
	})
	return modules, err
}

func (r *moduleRepo) Update(_ context.Context, module *models.Module) error {
	return r.s.update(func(t *tables) error {
		m, ok := t.modules[module.ID]
		if !ok || m.CourseID != module.CourseID {
			return apperrors.ErrModuleNotFound
		}
		m.Name = module.Name
		m.Number = module.Number
		t.modules[m.ID] = m
		return nil
	})
}

// Delete refuses to orphan lessons, like the foreign key does
func (r *moduleRepo) Delete(_ context.Context, courseID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		m, ok := t.modules[id]
		if !ok || m.CourseID != courseID {
			return apperrors.ErrModuleNotFound
		}
		for _, l := range t.lessons {
			if l.ModuleID == id {
				return violation("lessons_module_id_fkey")
			}
		}
		delete(t.modules, id)
		return nil
	})
}

type lessonRepo struct {
	s *Store
}

func (t *tables) lessonInCourse(courseID uuid.UUID, l models.Lesson) bool {
	m, ok := t.modules[l.ModuleID]
	return ok && m.CourseID == courseID
}

func lessonLess(a, b models.Lesson) bool {
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

func (r *lessonRepo) Create(_ context.Context, lesson *models.Lesson) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.modules[lesson.ModuleID]; !ok {
			return violation("lessons_module_id_fkey")
		}
		t.lessons[lesson.ID] = *lesson
		return nil
	})
}

func (r *lessonRepo) GetByID(_ context.Context, moduleID, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.s.view(func(t *tables) error {
		l, ok := t.lessons[id]
		if !ok || l.ModuleID != moduleID {
			return apperrors.ErrLessonNotFound
		}
		lesson = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) GetInCourse(_ context.Context, courseID, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.s.view(func(t *tables) error {
		l, ok := t.lessons[id]
		if !ok || !t.lessonInCourse(courseID, l) {
			return apperrors.ErrLessonNotFound
		}
		lesson = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByModule(_ context.Context, moduleID uuid.UUID) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := r.s.view(func(t *tables) error {
		lessons = rows(t.lessons, func(l models.Lesson) bool { return l.ModuleID == moduleID }, lessonLess)
		return nil
	})
	return lessons, err
}

func (r *lessonRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := r.s.view(func(t *tables) error {
		lessons = rows(t.lessons, func(l models.Lesson) bool { return t.lessonInCourse(courseID, l) }, lessonLess)
		return nil
	})
	return lessons, err
}

func (r *lessonRepo) Update(_ context.Context, lesson *models.Lesson) error {
	return r.s.update(func(t *tables) error {
		l, ok := t.lessons[lesson.ID]
		if !ok || l.ModuleID != lesson.ModuleID {
			return apperrors.ErrLessonNotFound
		}
		l.Name = lesson.Name
		l.Number = lesson.Number
		l.VideoURL = lesson.VideoURL
		l.LessonDetails = lesson.LessonDetails
		t.lessons[l.ID] = l
		return nil
	})
}

func (r *lessonRepo) SetModule(_ context.Context, id, moduleID uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		l, ok := t.lessons[id]
		if !ok {
			return apperrors.ErrLessonNotFound
		}
		if _, ok := t.modules[moduleID]; !ok {
			return violation("lessons_module_id_fkey")
		}
		l.ModuleID = moduleID
		t.lessons[id] = l
		return nil
	})
}

// Delete refuses to orphan lesson content. Media pointing at the lesson is
// detached, matching ON DELETE SET NULL.
func (r *lessonRepo) Delete(_ context.Context, moduleID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		l, ok := t.lessons[id]
		if !ok || l.ModuleID != moduleID {
			return apperrors.ErrLessonNotFound
		}
		for _, c := range t.content {
			if c.LessonID == id {
				return violation("lesson_content_lesson_id_fkey")
			}
		}
		for k, m := range t.media {
			if m.LessonID != nil && *m.LessonID == id {
				m.LessonID = nil
				t.media[k] = m
			}
		}
		delete(t.lessons, id)
		return nil
	})
}

type lessonContentRepo struct {
	s *Store
}

func contentLess(a, b models.LessonContent) bool {
	return earlier(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

func (r *lessonContentRepo) Create(_ context.Context, content *models.LessonContent) error {
	return r.s.update(func(t *tables) error {
		if _, ok := t.lessons[content.LessonID]; !ok {
			return violation("lesson_content_lesson_id_fkey")
		}
		switch content.ContentType {
		case models.LessonContentMedia, models.LessonContentText, models.LessonContentDiscussion:
		default:
			return violation("lesson_content_content_type_check")
		}
		t.content[content.ID] = *content
		return nil
	})
}

func (r *lessonContentRepo) ListByLesson(_ context.Context, lessonID uuid.UUID) ([]*models.LessonContent, error) {
	var items []*models.LessonContent
	err := r.s.view(func(t *tables) error {
		items = rows(t.content, func(c models.LessonContent) bool { return c.LessonID == lessonID }, contentLess)
		return nil
	})
	return items, err
}

func (r *lessonContentRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.LessonContent, error) {
	var items []*models.LessonContent
	err := r.s.view(func(t *tables) error {
		items = rows(t.content, func(c models.LessonContent) bool {
			l, ok := t.lessons[c.LessonID]
			return ok && t.lessonInCourse(courseID, l)
		}, contentLess)
		return nil
	})
	return items, err
}

func (r *lessonContentRepo) Delete(_ context.Context, lessonID, id uuid.UUID) error {
	return r.s.update(func(t *tables) error {
		c, ok := t.content[id]
		if !ok || c.LessonID != lessonID {
			return apperrors.ErrContentNotFound
		}
		delete(t.content, id)
		return nil
	})
}

func (r *lessonContentRepo) DeleteByLesson(_ context.Context, lessonID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.update(func(t *tables) error {
		for k, c := range t.content {
			if c.LessonID == lessonID {
				delete(t.content, k)
				n++
			}
		}
		return nil
	})
	return n, err
}
