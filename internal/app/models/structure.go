package models

import "github.com/google/uuid"

// StructureEntry records one node's position in a course content tree.
// ParentID references the content id of the parent node; nil marks a root module.
type StructureEntry struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	CourseID     uuid.UUID   `json:"course_id" db:"course_id"`
	ContentType  ContentType `json:"content_type" db:"content_type"`
	ContentID    uuid.UUID   `json:"content_id" db:"content_id"`
	ParentID     *uuid.UUID  `json:"parent_id" db:"parent_id"`
	DisplayOrder int         `json:"display_order" db:"display_order"`
}

// IsRoot reports whether the entry is a top-level module entry.
func (e *StructureEntry) IsRoot() bool {
	return e.ParentID == nil && e.ContentType == ContentModule
}
