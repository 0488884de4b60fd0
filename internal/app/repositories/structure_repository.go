package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/dberrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

type structureRepo struct {
	q DBTX
}

var structureColumns = []string{"id", "course_id", "content_type", "content_id", "parent_id", "display_order"}

// subtreeCTE selects the content ids of a node and all of its structural descendants
const subtreeCTE = `
	WITH RECURSIVE subtree AS (
		SELECT $2::uuid AS content_id
		UNION
		SELECT cs.content_id FROM course_structure cs
		JOIN subtree s ON cs.parent_id = s.content_id
		WHERE cs.course_id = $1
	)`

// ListByCourse returns every structural entry of a course ordered for display
func (r *structureRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.StructureEntry, error) {
	return selectAll[models.StructureEntry](ctx, r.q,
		psql.Select(structureColumns...).From("course_structure").
			Where(eqID("course_id", courseID)).
			OrderBy("display_order", "id"),
		"list structure")
}

// NextDisplayOrder takes a transaction-scoped advisory lock on the course before
// reading max(display_order), so concurrent adds under one course serialize.
func (r *structureRepo) NextDisplayOrder(ctx context.Context, courseID uuid.UUID, parentID *uuid.UUID) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, courseID.String()); err != nil {
		logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Error acquiring structure lock")
		return 0, fmt.Errorf("failed to lock course structure: %w", err)
	}

	return scalarInt(ctx, r.q,
		psql.Select("COALESCE(MAX(display_order), 0) + 1").From("course_structure").
			Where(eqID("course_id", courseID)).
			Where(eqParent("parent_id", parentID)),
		"next display order")
}

// Create inserts a structural entry
func (r *structureRepo) Create(ctx context.Context, entry *models.StructureEntry) error {
	_, err := execStmt(ctx, r.q, psql.Insert("course_structure").
		Columns(structureColumns...).
		Values(entry.ID, entry.CourseID, entry.ContentType, entry.ContentID, entry.ParentID, entry.DisplayOrder),
		"create structure entry")
	return dberrors.Translate(err, apperrors.ErrResourceNotFound)
}

// Subtree returns the entry for contentID and all entries below it. Children
// are found even when contentID itself has no entry.
func (r *structureRepo) Subtree(ctx context.Context, courseID, contentID uuid.UUID) ([]*models.StructureEntry, error) {
	sql := subtreeCTE + `
	SELECT id, course_id, content_type, content_id, parent_id, display_order
	FROM course_structure
	WHERE course_id = $1 AND content_id IN (SELECT content_id FROM subtree)`

	rows, err := r.q.Query(ctx, sql, courseID, contentID)
	if err != nil {
		logger.Error().Err(err).Str("contentID", contentID.String()).Msg("Error loading structure subtree")
		return nil, err
	}
	return collect[models.StructureEntry](rows)
}

// DeleteSubtree removes the entry for contentID and all entries below it
func (r *structureRepo) DeleteSubtree(ctx context.Context, courseID, contentID uuid.UUID) (int64, error) {
	sql := subtreeCTE + `
	DELETE FROM course_structure
	WHERE course_id = $1 AND content_id IN (SELECT content_id FROM subtree)`

	tag, err := r.q.Exec(ctx, sql, courseID, contentID)
	if err != nil {
		logger.Error().Err(err).Str("contentID", contentID.String()).Msg("Error deleting structure subtree")
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ReplaceAll swaps every entry of the course for the given set
func (r *structureRepo) ReplaceAll(ctx context.Context, courseID uuid.UUID, entries []*models.StructureEntry) error {
	if _, err := execStmt(ctx, r.q, psql.Delete("course_structure").Where(eqID("course_id", courseID)),
		"clear structure"); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	insert := psql.Insert("course_structure").Columns(structureColumns...)
	for _, e := range entries {
		insert = insert.Values(e.ID, courseID, e.ContentType, e.ContentID, e.ParentID, e.DisplayOrder)
	}
	_, err := execStmt(ctx, r.q, insert, "insert structure")
	return dberrors.Translate(err, apperrors.ErrResourceNotFound)
}
