package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

type structureRepo struct {
	s *Store
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (t *tables) structureOf(courseID uuid.UUID) []*models.StructureEntry {
	return rows(t.structure,
		func(e models.StructureEntry) bool { return e.CourseID == courseID },
		func(a, b models.StructureEntry) bool {
			if a.DisplayOrder != b.DisplayOrder {
				return a.DisplayOrder < b.DisplayOrder
			}
			return a.ID.String() < b.ID.String()
		})
}

// insertEntry enforces the unique indexes of course_structure
func (t *tables) insertEntry(e models.StructureEntry) error {
	if _, ok := t.courses[e.CourseID]; !ok {
		return violation("course_structure_course_id_fkey")
	}
	if _, ok := t.structure[e.ID]; ok {
		return violation("course_structure_pkey")
	}
	for _, other := range t.structure {
		if other.CourseID != e.CourseID {
			continue
		}
		if other.ContentID == e.ContentID {
			return violation("uq_structure_content")
		}
		if sameParent(other.ParentID, e.ParentID) && other.DisplayOrder == e.DisplayOrder {
			return violation("uq_structure_order")
		}
	}
	t.structure[e.ID] = e
	return nil
}

// subtree collects the content ids below and including contentID
func (t *tables) subtree(courseID, contentID uuid.UUID) map[uuid.UUID]bool {
	found := map[uuid.UUID]bool{contentID: true}
	for grew := true; grew; {
		grew = false
		for _, e := range t.structure {
			if e.CourseID != courseID || e.ParentID == nil || found[e.ContentID] {
				continue
			}
			if found[*e.ParentID] {
				found[e.ContentID] = true
				grew = true
			}
		}
	}
	return found
}

func (r *structureRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*models.StructureEntry, error) {
	var entries []*models.StructureEntry
	err := r.s.view(func(t *tables) error {
		entries = t.structureOf(courseID)
		return nil
	})
	return entries, err
}

// NextDisplayOrder is serialized by the store lock
func (r *structureRepo) NextDisplayOrder(_ context.Context, courseID uuid.UUID, parentID *uuid.UUID) (int, error) {
	next := 1
	err := r.s.view(func(t *tables) error {
		for _, e := range t.structure {
			if e.CourseID == courseID && sameParent(e.ParentID, parentID) && e.DisplayOrder >= next {
				next = e.DisplayOrder + 1
			}
		}
		return nil
	})
	return next, err
}

func (r *structureRepo) Create(_ context.Context, entry *models.StructureEntry) error {
	return r.s.update(func(t *tables) error {
		return t.insertEntry(*entry)
	})
}

func (r *structureRepo) Subtree(_ context.Context, courseID, contentID uuid.UUID) ([]*models.StructureEntry, error) {
	var entries []*models.StructureEntry
	err := r.s.view(func(t *tables) error {
		ids := t.subtree(courseID, contentID)
		entries = rows(t.structure,
			func(e models.StructureEntry) bool { return e.CourseID == courseID && ids[e.ContentID] },
			func(a, b models.StructureEntry) bool { return a.ID.String() < b.ID.String() })
		return nil
	})
	return entries, err
}

func (r *structureRepo) DeleteSubtree(_ context.Context, courseID, contentID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.update(func(t *tables) error {
		ids := t.subtree(courseID, contentID)
		for k, e := range t.structure {
			if e.CourseID == courseID && ids[e.ContentID] {
				delete(t.structure, k)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *structureRepo) ReplaceAll(_ context.Context, courseID uuid.UUID, entries []*models.StructureEntry) error {
	return r.s.update(func(t *tables) error {
		for k, e := range t.structure {
			if e.CourseID == courseID {
				delete(t.structure, k)
			}
		}
		for _, e := range entries {
			entry := *e
			entry.CourseID = courseID
			if err := t.insertEntry(entry); err != nil {
				return err
			}
		}
		return nil
	})
}
