package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
)

type moduleRepo struct {
	q DBTX
}

var moduleColumns = []string{"id", "course_id", "name", "number", "created_at"}

// Create inserts a module
func (r *moduleRepo) Create(ctx context.Context, module *models.Module) error {
	_, err := execStmt(ctx, r.q, psql.Insert("modules").
		Columns(moduleColumns...).
		Values(module.ID, module.CourseID, module.Name, module.Number, module.CreatedAt),
		"create module")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}

// GetByID retrieves a module of the given course
func (r *moduleRepo) GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Module, error) {
	module, err := selectOne[models.Module](ctx, r.q,
		psql.Select(moduleColumns...).From("modules").
			Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"get module")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrModuleNotFound)
	}
	return module, nil
}

// ListByCourse returns the modules of a course by number
func (r *moduleRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Module, error) {
	return selectAll[models.Module](ctx, r.q,
		psql.Select(moduleColumns...).From("modules").
			Where(eqID("course_id", courseID)).
			OrderBy("number", "created_at"),
		"list modules")
}

// Update saves name and number
func (r *moduleRepo) Update(ctx context.Context, module *models.Module) error {
	n, err := execStmt(ctx, r.q, psql.Update("modules").
		Set("name", module.Name).
		Set("number", module.Number).
		Where(eqID("id", module.ID)).Where(eqID("course_id", module.CourseID)),
		"update module")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrModuleNotFound)
	}
	if n == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// Delete removes a module scoped by its course
func (r *moduleRepo) Delete(ctx context.Context, courseID, id uuid.UUID) error {
	n, err := execStmt(ctx, r.q, psql.Delete("modules").
		Where(eqID("id", id)).Where(eqID("course_id", courseID)),
		"delete module")
	if err != nil {
		return dberrors.Translate(err, apperrors.ErrModuleNotFound)
	}
	if n == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
