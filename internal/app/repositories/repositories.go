package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/learnhub/internal/app/models"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can
// run inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CourseRepository persists courses and their free-form details.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the course and every dependent row. Callers run it in a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	GetDetails(ctx context.Context, courseID uuid.UUID) (*models.CourseDetails, error)
	UpsertDetails(ctx context.Context, details *models.CourseDetails) error
}

// StructureRepository persists the flat course_structure table.
type StructureRepository interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.StructureEntry, error)
	// NextDisplayOrder returns max(sibling display_order)+1, or 1. Inside a
	// transaction it serializes concurrent callers for the same course.
	NextDisplayOrder(ctx context.Context, courseID uuid.UUID, parentID *uuid.UUID) (int, error)
	Create(ctx context.Context, entry *models.StructureEntry) error
	// Subtree returns the entry of contentID and every entry below it.
	Subtree(ctx context.Context, courseID, contentID uuid.UUID) ([]*models.StructureEntry, error)
	DeleteSubtree(ctx context.Context, courseID, contentID uuid.UUID) (int64, error)
	ReplaceAll(ctx context.Context, courseID uuid.UUID, entries []*models.StructureEntry) error
}

// ModuleRepository persists modules scoped by course.
type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Module, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, courseID, id uuid.UUID) error
}

// LessonRepository persists lessons scoped by module.
type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, moduleID, id uuid.UUID) (*models.Lesson, error)
	// GetInCourse resolves a lesson through its module's course.
	GetInCourse(ctx context.Context, courseID, id uuid.UUID) (*models.Lesson, error)
	ListByModule(ctx context.Context, moduleID uuid.UUID) ([]*models.Lesson, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	SetModule(ctx context.Context, id, moduleID uuid.UUID) error
	Delete(ctx context.Context, moduleID, id uuid.UUID) error
}

// LessonContentRepository persists lesson content items, ordered by creation time.
type LessonContentRepository interface {
	Create(ctx context.Context, content *models.LessonContent) error
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*models.LessonContent, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.LessonContent, error)
	Delete(ctx context.Context, lessonID, id uuid.UUID) error
	DeleteByLesson(ctx context.Context, lessonID uuid.UUID) (int64, error)
}

// MediaRepository persists course media rows.
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Media, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Media, error)
	SetLesson(ctx context.Context, id uuid.UUID, lessonID *uuid.UUID) error
	Delete(ctx context.Context, courseID, id uuid.UUID) error
}

// QuizRepository persists quizzes together with their settings and questions.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, courseID, id uuid.UUID) (*models.Quiz, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Quiz, error)
	Delete(ctx context.Context, courseID, id uuid.UUID) error

	GetSettings(ctx context.Context, quizID uuid.UUID) (*models.QuizSettings, error)
	UpsertSettings(ctx context.Context, settings *models.QuizSettings) error
	DeleteSettings(ctx context.Context, quizID uuid.UUID) (int64, error)

	CreateQuestion(ctx context.Context, question *models.QuizQuestion) error
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*models.QuizQuestion, error)
	NextQuestionOrder(ctx context.Context, quizID uuid.UUID) (int, error)
	DeleteQuestion(ctx context.Context, quizID, id uuid.UUID) error
	DeleteQuestions(ctx context.Context, quizID uuid.UUID) (int64, error)
}

// ObjectiveRepository persists learning objectives.
type ObjectiveRepository interface {
	Create(ctx context.Context, objective *models.CourseObjective) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.CourseObjective, error)
	NextOrder(ctx context.Context, courseID uuid.UUID) (int, error)
	UpdateOrder(ctx context.Context, courseID, id uuid.UUID, order int) error
	Delete(ctx context.Context, courseID, id uuid.UUID) error
}

// FeedbackRepository persists per-course feedback settings.
type FeedbackRepository interface {
	Get(ctx context.Context, courseID uuid.UUID) (*models.FeedbackSettings, error)
	Upsert(ctx context.Context, settings *models.FeedbackSettings) error
}

// TxFn runs against a Store bound to one transaction.
type TxFn func(ctx context.Context, tx Store) error

// Store groups the repositories behind one transactional boundary.
type Store interface {
	Courses() CourseRepository
	Structure() StructureRepository
	Modules() ModuleRepository
	Lessons() LessonRepository
	LessonContent() LessonContentRepository
	Media() MediaRepository
	Quizzes() QuizRepository
	Objectives() ObjectiveRepository
	Feedback() FeedbackRepository

	// WithTransaction commits when fn returns nil and rolls back otherwise.
	// Calling it on a transaction-bound Store joins the running transaction.
	WithTransaction(ctx context.Context, fn TxFn) error
}
