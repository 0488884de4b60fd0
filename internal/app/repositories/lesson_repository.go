package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type lessonRepo struct {
	q DBTX
}

var lessonColumns = []string{"id", "module_id", "name", "number", "video_url", "lesson_details", "created_at"}

// prefixed returns the columns qualified with a table alias
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// Create inserts a lesson
func (r *lessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	_, err := execStmt(ctx, r.q, psql.Insert("lessons").
		Columns(lessonColumns...).
		Values(lesson.ID, lesson.ModuleID, lesson.Name, lesson.Number, lesson.VideoURL, lesson.LessonDetails, lesson.CreatedAt),
		"create lesson")
	return dberrors.Translate(err, apperrors.ErrModuleNotFound)
}

// GetByID retrieves a lesson of the given module
func (r *lessonRepo) GetByID(ctx context.Context, moduleID, id uuid.UUID) (*models.Lesson, error) {
	lesson, err := selectOne[models.Lesson](ctx, r.q,
		psql.Select(lessonColumns...).From("lessons").
			Where(eqID("id", id)).Where(eqID("module_id", moduleID)),
		"get lesson")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrLessonNotFound)
	}
	return lesson, nil
}

// GetInCourse retrieves a lesson whose module belongs to the course
func (r *lessonRepo) GetInCourse(ctx context.Context, courseID, id uuid.UUID) (*models.Lesson, error) {
	lesson, err := selectOne[models.Lesson](ctx, r.q,
		psql.Select(prefixed("l", lessonColumns)...).From("lessons l").
			Join("modules m ON m.id = l.module_id").
			Where(eqID("l.id", id)).Where(eqID("m.course_id", courseID)),
		"get lesson in course")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrLessonNotFound)
	}
	return lesson, nil
}

// ListByModule returns the lessons of a module by number
func (r *lessonRepo) ListByModule(ctx context.Context, moduleID uuid.UUID) ([]*models.Lesson, error) {
	return selectAll[models.Lesson](ctx, r.q,
		psql.Select(lessonColumns...).From("lessons").
			Where(eqID("module_id", moduleID)).
			OrderBy("number", "created_at"),
		"list lessons")
}

// ListByCourse returns every lesson of every module in the course
func (r *lessonRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Lesson, error) {
	return selectAll[models.Lesson](ctx, r.q,
		psql.Select(prefixed("l", lessonColumns)...).From("lessons l").
			Join("modules m ON m.id = l.module_id").
			Where(eqID("m.course_id", courseID)).
			OrderBy("l.number", "l.created_at"),
		"list course lessons")
}

// Update saves the editable lesson fields
func (r *lessonRepo) Update(ctx context.Context, lesson *models.Lesson) error {
	n, err := execStmt(ctx, r.q, psql.Update("lessons").
		Set("name", lesson.Name).
		Set("number", lesson.Number).
		Set("video_url", lesson.VideoURL).
		Set("lesson_details", lesson.LessonDetails).
		Where(eqID("id", lesson.ID)).Where(eqID("module_id", lesson.ModuleID)),
		"update lesson")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrLessonNotFound)
	}
	if n == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// SetModule moves a lesson to another module
func (r *lessonRepo) SetModule(ctx context.Context, id, moduleID uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Update("lessons").
		Set("module_id", moduleID).
		Where(eqID("id", id)),
		"move lesson")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrLessonNotFound)
	}
	if n == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// Delete removes a lesson scoped by its module
func (r *lessonRepo) Delete(ctx context.Context, moduleID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("lessons").
		Where(eqID("id", id)).Where(eqID("module_id", moduleID)),
		"delete lesson")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrLessonNotFound)
	}
	if n == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}
