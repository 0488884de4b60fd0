package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// CascadeStep is one delete issued while removing a course
type CascadeStep struct {
	Table string
	Stmt  squirrel.Sqlizer
}

// CourseCascade lists, child before parent, every delete needed to remove a
// course. Tables keyed by quiz, lesson or module are reached through their owner.
func CourseCascade(courseID uuid.UUID) []CascadeStep {
	byCourse := eqID("course_id", courseID)

	quizIDs := psql.Select("id").From("quizzes").Where(byCourse)
	moduleIDs := psql.Select("id").From("modules").Where(byCourse)
	lessonIDs := psql.Select("l.id").From("lessons l").
		Join("modules m ON m.id = l.module_id").
		Where(eqID("m.course_id", courseID))

	in := func(column string, sub squirrel.SelectBuilder) squirrel.Sqlizer {
		sql, args, _ := sub.PlaceholderFormat(squirrel.Question).ToSql()
		return squirrel.Expr(column+" IN ("+sql+")", args...)
	}

	steps := []CascadeStep{
		{"course_structure", psql.Delete("course_structure").Where(byCourse)},
		{"media", psql.Delete("media").Where(byCourse)},
		{"course_feedback_settings", psql.Delete("course_feedback_settings").Where(byCourse)},
		{"course_pricing", psql.Delete("course_pricing").Where(byCourse)},
		{"course_objectives", psql.Delete("course_objectives").Where(byCourse)},
		{"course_details", psql.Delete("course_details").Where(byCourse)},
		{"discussion_posts", psql.Delete("discussion_posts").Where(byCourse)},
		{"quiz_attempts", psql.Delete("quiz_attempts").Where(in("quiz_id", quizIDs))},
		{"quiz_answers", psql.Delete("quiz_answers").Where(in("question_id",
			psql.Select("q.id").From("quiz_questions q").Join("quizzes z ON z.id = q.quiz_id").
				Where(eqID("z.course_id", courseID))))},
		{"quiz_questions", psql.Delete("quiz_questions").Where(in("quiz_id", quizIDs))},
		{"quiz_settings", psql.Delete("quiz_settings").Where(in("quiz_id", quizIDs))},
		{"quizzes", psql.Delete("quizzes").Where(byCourse)},
		{"lesson_progress", psql.Delete("lesson_progress").Where(in("lesson_id", lessonIDs))},
		{"lesson_content", psql.Delete("lesson_content").Where(in("lesson_id", lessonIDs))},
		{"lessons", psql.Delete("lessons").Where(in("module_id", moduleIDs))},
		{"modules", psql.Delete("modules").Where(byCourse)},
		{"enrollments", psql.Delete("enrollments").Where(byCourse)},
		{"courses", psql.Delete("courses").Where(eqID("id", courseID))},
	}
	return steps
}

// eqID compares a uuid column. squirrel.Eq would expand the [16]byte array into an IN list.
func eqID(column string, id uuid.UUID) squirrel.Sqlizer {
	return squirrel.Expr(column+" = ?", id)
}

// eqParent matches a nullable parent column
func eqParent(column string, parentID *uuid.UUID) squirrel.Sqlizer {
	if parentID == nil {
		return squirrel.Eq{column: nil}
	}
	return eqID(column, *parentID)
}
