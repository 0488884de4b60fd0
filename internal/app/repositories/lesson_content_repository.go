package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type lessonContentRepo struct {
	q DBTX
}

var lessonContentColumns = []string{"id", "lesson_id", "title", "content_type", "content", "file_type", "file_url", "created_at"}

// Create inserts a lesson content item
func (r *lessonContentRepo) Create(ctx context.Context, content *models.LessonContent) error {
	_, err := execStmt(ctx, r.q, psql.Insert("lesson_content").
		Columns(lessonContentColumns...).
		Values(content.ID, content.LessonID, content.Title, content.ContentType, content.Content,
			content.FileType, content.FileURL, content.CreatedAt),
		"create lesson content")
	return dberrors.Translate(err, apperrors.ErrLessonNotFound)
}

// ListByLesson returns the items of a lesson, oldest first
func (r *lessonContentRepo) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*models.LessonContent, error) {
	return selectAll[models.LessonContent](ctx, r.q,
		psql.Select(lessonContentColumns...).From("lesson_content").
			Where(eqID("lesson_id", lessonID)).
			OrderBy("created_at", "id"),
		"list lesson content")
}

// ListByCourse returns the items of every lesson in the course, oldest first
func (r *lessonContentRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.LessonContent, error) {
	return selectAll[models.LessonContent](ctx, r.q,
		psql.Select(prefixed("c", lessonContentColumns)...).From("lesson_content c").
			Join("lessons l ON l.id = c.lesson_id").
			Join("modules m ON m.id = l.module_id").
			Where(eqID("m.course_id", courseID)).
			OrderBy("c.created_at", "c.id"),
		"list course lesson content")
}

// Delete removes one item scoped by its lesson
func (r *lessonContentRepo) Delete(ctx context.Context, lessonID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("lesson_content").
		Where(eqID("id", id)).Where(eqID("lesson_id", lessonID)),
		"delete lesson content")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrContentNotFound)
	}
	if n == 0 {
		return apperrors.ErrContentNotFound
	}
	return nil
}

// DeleteByLesson removes every item of a lesson
func (r *lessonContentRepo) DeleteByLesson(ctx context.Context, lessonID uuid.UUID) (int64, error) {
	return execStmt(ctx, r.q, psql.Delete("lesson_content").Where(eqID("lesson_id", lessonID)),
		"delete lesson content by lesson")
}
