package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type objectiveRepo struct {
	q DBTX
}

var objectiveColumns = []string{"id", "course_id", "objective_text", "objective_order", "created_at"}

// Create inserts an objective
func (r *objectiveRepo) Create(ctx context.Context, o *models.CourseObjective) error {
	_, err := execStmt(ctx, r.q, psql.Insert("course_objectives").
		Columns(objectiveColumns...).
		Values(o.ID, o.CourseID, o.ObjectiveText, o.ObjectiveOrder, o.CreatedAt),
		"create objective")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}

// ListByCourse returns the objectives of a course in order
func (r *objectiveRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.CourseObjective, error) {
	return selectAll[models.CourseObjective](ctx, r.q,
		psql.Select(objectiveColumns...).From("course_objectives").
			Where(eqID("course_id", courseID)).
			OrderBy("objective_order", "created_at"),
		"list objectives")
}

// NextOrder returns max(objective_order)+1, or 1
func (r *objectiveRepo) NextOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	return scalarInt(ctx, r.q,
		psql.Select("COALESCE(MAX(objective_order), 0) + 1").From("course_objectives").
			Where(eqID("course_id", courseID)),
		"next objective order")
}

// UpdateOrder moves one objective. The order uniqueness constraint is deferred,
// so a batch of updates only has to be consistent at commit.
func (r *objectiveRepo) UpdateOrder(ctx context.Context, courseID, id uuid.UUID, order int) error {
	n, err := execStmt(ctx, r.q, psql.Update("course_objectives").
		Set("objective_order", order).
		Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"update objective order")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrObjectiveNotFound)
	}
	if n == 0 {
		return apperrors.ErrObjectiveNotFound
	}
	return nil
}

// Delete removes an objective scoped by its course
func (r *objectiveRepo) Delete(ctx context.Context, courseID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("course_objectives").
		Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"delete objective")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrObjectiveNotFound)
	}
	if n == 0 {
		return apperrors.ErrObjectiveNotFound
	}
	return nil
}
