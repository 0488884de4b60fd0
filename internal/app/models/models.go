package models

// RoleType defines the role carried in the auth provider's token
type RoleType string

const (
	RoleAdmin      RoleType = "admin"
	RoleInstructor RoleType = "instructor"
	RoleProvider   RoleType = "provider"
	RoleStudent    RoleType = "student"
)

// CanAuthor reports whether the role may change course content.
func (r RoleType) CanAuthor() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleProvider:
		return true
	}
	return false
}

// ContentType identifies the kind of node a structural entry points to
type ContentType string

const (
	ContentModule ContentType = "module"
	ContentLesson ContentType = "lesson"
	ContentMedia  ContentType = "media"
	ContentQuiz   ContentType = "quiz"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentModule, ContentLesson, ContentMedia, ContentQuiz:
		return true
	}
	return false
}

// IsContainer reports whether nodes of this type carry children.
func (t ContentType) IsContainer() bool {
	return t == ContentModule || t == ContentLesson
}

// CanContain reports whether a node of type t may be the structural parent of child.
// Modules hold lessons, media and quizzes; lessons hold media and quizzes.
func (t ContentType) CanContain(child ContentType) bool {
	switch t {
	case ContentModule:
		return child == ContentLesson || child == ContentMedia || child == ContentQuiz
	case ContentLesson:
		return child == ContentMedia || child == ContentQuiz
	}
	return false
}
