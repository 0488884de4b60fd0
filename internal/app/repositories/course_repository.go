package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

type courseRepo struct {
	q DBTX
}

var courseColumns = []string{"id", "title", "description", "instructor_id", "created_at", "updated_at"}

// Create inserts a new course
func (r *courseRepo) Create(ctx context.Context, course *models.Course) error {
	_, err := execStmt(ctx, r.q, psql.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Title, course.Description, course.InstructorID, course.CreatedAt, course.UpdatedAt),
		"create course")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}

// GetByID retrieves a course by ID
func (r *courseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := selectOne[models.Course](ctx, r.q,
		psql.Select(courseColumns...).From("courses").Where(eqID("id", id)), "get course")
	if err != nil {
		return nil, dberrors.Translate(err, apperrors.ErrCourseNotFound)
	}
	return course, nil
}

// List returns one page of courses, newest first, and the total count
func (r *courseRepo) List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	total, err := scalarInt(ctx, r.q, psql.Select("COUNT(*)").From("courses"), "count courses")
	if err != nil {
		return nil, 0, err
	}

	courses, err := selectAll[models.Course](ctx, r.q,
		psql.Select(courseColumns...).From("courses").
			OrderBy("created_at DESC", "id").
			Offset(offset).Limit(uint64(limit)),
		"list courses")
	if err != nil {
		return nil, 0, err
	}
	return courses, int64(total), nil
}

// Exists reports whether a course with the given id exists
func (r *courseRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	sql, args, err := psql.Select("1").Prefix("SELECT EXISTS(").
		From("courses").Where(eqID("id", id)).Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course exists query: %w", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error checking course existence")
		return false, err
	}
	return exists, nil
}

// Delete runs the course cascade. It must be called inside a transaction so a
// failing step leaves every table untouched.
func (r *courseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for _, step := range CourseCascade(id) {
		n, err := execStmt(ctx, r.q, step.Stmt, "cascade "+step.Table)
		if err != nil {
			logger.Error().Err(err).Str("courseID", id.String()).Str("table", step.Table).Msg("Course cascade step failed")
			return fmt.Errorf("deleting %s: %w", step.Table, dberrors.Translate(err, apperrors.ErrCourseNotFound))
		}
		if step.Table == "courses" && n == 0 {
			return apperrors.ErrCourseNotFound
		}
		logger.Debug().Str("courseID", id.String()).Str("table", step.Table).Int64("rows", n).Msg("Cascade step done")
	}
	return nil
}

// GetDetails returns the stored details, or an empty record when none exist
func (r *courseRepo) GetDetails(ctx context.Context, courseID uuid.UUID) (*models.CourseDetails, error) {
	details, err := selectOne[models.CourseDetails](ctx, r.q,
		psql.Select("course_id", "main_objective", "updated_at").From("course_details").
			Where(eqID("course_id", courseID)),
		"get course details")
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.CourseDetails{CourseID: courseID}, nil
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

// UpsertDetails inserts or replaces the course details row
func (r *courseRepo) UpsertDetails(ctx context.Context, details *models.CourseDetails) error {
	if details.UpdatedAt.IsZero() {
		details.UpdatedAt = time.Now().UTC()
	}
	_, err := execStmt(ctx, r.q, psql.Insert("course_details").
		Columns("course_id", "main_objective", "updated_at").
		Values(details.CourseID, details.MainObjective, details.UpdatedAt).
		Suffix("ON CONFLICT (course_id) DO UPDATE SET main_objective = EXCLUDED.main_objective, updated_at = EXCLUDED.updated_at"),
		"upsert course details")
	return dberrors.Translate(err, apperrors.ErrCourseNotFound)
}
