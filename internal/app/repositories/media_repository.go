package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type mediaRepo struct {
	q DBTX
}

var mediaColumns = []string{"id", "course_id", "lesson_id", "title", "file_type", "file_url", "created_at"}

// Create inserts a media row
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	_, err := execStmt(ctx, r.q, psql.Insert("media").
		Columns(mediaColumns...).
		Values(media.ID, media.CourseID, media.LessonID, media.Title, media.FileType, media.FileURL, media.CreatedAt),
		"create media")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}

// GetByID retrieves a media row of the given course
func (r *mediaRepo) GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Media, error) {
	media, err := selectOne[models.Media](ctx, r.q,
		psql.Select(mediaColumns...).From("media").
			Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"get media")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrMediaNotFound)
	}
	return media, nil
}

// ListByCourse returns the media of a course, oldest first
func (r *mediaRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Media, error) {
	return selectAll[models.Media](ctx, r.q,
		psql.Select(mediaColumns...).From("media").
			Where(eqID("course_id", courseID)).
			OrderBy("created_at", "id"),
		"list media")
}

// SetLesson attaches media to a lesson, or detaches it when lessonID is nil
func (r *mediaRepo) SetLesson(ctx context.Context, id uuid.UUID, lessonID *uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Update("media").
		Set("lesson_id", lessonID).
		Where(eqID("id", id)),
		"set media lesson")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrMediaNotFound)
	}
	if n == 0 {
		return apperrors.ErrMediaNotFound
	}
	return nil
}

// Delete removes a media row scoped by its course
func (r *mediaRepo) Delete(ctx context.Context, courseID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("media").
		Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"delete media")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrMediaNotFound)
	}
	if n == 0 {
		return apperrors.ErrMediaNotFound
	}
	return nil
}
