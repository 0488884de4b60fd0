package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type feedbackRepo struct {
	q DBTX
}

var feedbackColumns = []string{"course_id", "allow_comments", "allow_ratings", "require_completion", "anonymous", "updated_at"}

// Get returns ErrResourceNotFound when the course has no stored settings
func (r *feedbackRepo) Get(ctx context.Context, courseID uuid.UUID) (*models.FeedbackSettings, error) {
	settings, err := selectOne[models.FeedbackSettings](ctx, r.q,
		psql.Select(feedbackColumns...).From("course_feedback_settings").Where(eqID("course_id", courseID)),
		"get feedback settings")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrResourceNotFound)
	}
	return settings, nil
}

// Upsert stores the settings of a course
func (r *feedbackRepo) Upsert(ctx context.Context, s *models.FeedbackSettings) error {
	_, err := execStmt(ctx, r.q, psql.Insert("course_feedback_settings").
		Columns(feedbackColumns...).
		Values(s.CourseID, s.AllowComments, s.AllowRatings, s.RequireCompletion, s.Anonymous, s.UpdatedAt).
		Suffix(`ON CONFLICT (course_id) DO UPDATE SET
			allow_comments = EXCLUDED.allow_comments,
			allow_ratings = EXCLUDED.allow_ratings,
			require_completion = EXCLUDED.require_completion,
			anonymous = EXCLUDED.anonymous,
			updated_at = EXCLUDED.updated_at`),
		"upsert feedback settings")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}
