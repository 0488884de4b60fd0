// Package memory is an in-process implementation of repositories.Store used by
// the "memory" database driver and as the store double in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

type (
	// DB holds the committed tables behind a single mutex.
	DB struct {
		mu sync.Mutex
		t  *tables
	}

	tables struct {
		courses    map[uuid.UUID]models.Course
		details    map[uuid.UUID]models.CourseDetails
		structure  map[uuid.UUID]models.StructureEntry
		modules    map[uuid.UUID]models.Module
		lessons    map[uuid.UUID]models.Lesson
		content    map[uuid.UUID]models.LessonContent
		media      map[uuid.UUID]models.Media
		quizzes    map[uuid.UUID]models.Quiz
		settings   map[uuid.UUID]models.QuizSettings
		questions  map[uuid.UUID]models.QuizQuestion
		objectives map[uuid.UUID]models.CourseObjective
		feedback   map[uuid.UUID]models.FeedbackSettings
	}
)

// Open creates an empty database
func Open() *DB {
	return &DB{t: newTables()}
}

func newTables() *tables {
	return &tables{
		courses:    make(map[uuid.UUID]models.Course),
		details:    make(map[uuid.UUID]models.CourseDetails),
		structure:  make(map[uuid.UUID]models.StructureEntry),
		modules:    make(map[uuid.UUID]models.Module),
		lessons:    make(map[uuid.UUID]models.Lesson),
		content:    make(map[uuid.UUID]models.LessonContent),
		media:      make(map[uuid.UUID]models.Media),
		quizzes:    make(map[uuid.UUID]models.Quiz),
		settings:   make(map[uuid.UUID]models.QuizSettings),
		questions:  make(map[uuid.UUID]models.QuizQuestion),
		objectives: make(map[uuid.UUID]models.CourseObjective),
		feedback:   make(map[uuid.UUID]models.FeedbackSettings),
	}
}

func copyMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies every table so a transaction can work on it and be discarded.
// Rows are stored by value and slices inside rows are never mutated in place.
func (t *tables) clone() *tables {
	return &tables{
		courses:    copyMap(t.courses),
		details:    copyMap(t.details),
		structure:  copyMap(t.structure),
		modules:    copyMap(t.modules),
		lessons:    copyMap(t.lessons),
		content:    copyMap(t.content),
		media:      copyMap(t.media),
		quizzes:    copyMap(t.quizzes),
		settings:   copyMap(t.settings),
		questions:  copyMap(t.questions),
		objectives: copyMap(t.objectives),
		feedback:   copyMap(t.feedback),
	}
}

// checkDeferred validates the constraints Postgres checks at commit time.
func (t *tables) checkDeferred() error {
	seen := make(map[string]bool)
	for _, o := range t.objectives {
		key := fmt.Sprintf("%s/%d", o.CourseID, o.ObjectiveOrder)
		if seen[key] {
			return fmt.Errorf("%w: uq_objective_order", apperrors.ErrConflict)
		}
		seen[key] = true
	}
	return nil
}

// Store implements repositories.Store. A Store returned inside WithTransaction
// works on a private copy of the tables that is swapped in on success.
type Store struct {
	db *DB
	tx *tables
}

var _ repositories.Store = (*Store)(nil)

// NewStore opens a new empty in-memory store
func NewStore() *Store {
	return &Store{db: Open()}
}

// view runs a read against the transaction tables, or the committed tables
func (s *Store) view(fn func(t *tables) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.t)
}

// update runs a write. Outside a transaction it works on a copy that replaces
// the committed tables only when fn and the deferred checks succeed.
func (s *Store) update(fn func(t *tables) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	work := s.db.t.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := work.checkDeferred(); err != nil {
		return err
	}
	s.db.t = work
	return nil
}

// WithTransaction holds the database lock for the duration of fn
func (s *Store) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	work := s.db.t.clone()
	if err := fn(ctx, &Store{db: s.db, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := work.checkDeferred(); err != nil {
		return err
	}
	s.db.t = work
	return nil
}

func (s *Store) Courses() repositories.CourseRepository             { return &courseRepo{s} }
func (s *Store) Structure() repositories.StructureRepository         { return &structureRepo{s} }
func (s *Store) Modules() repositories.ModuleRepository              { return &moduleRepo{s} }
func (s *Store) Lessons() repositories.LessonRepository              { return &lessonRepo{s} }
func (s *Store) LessonContent() repositories.LessonContentRepository { return &lessonContentRepo{s} }
func (s *Store) Media() repositories.MediaRepository                 { return &mediaRepo{s} }
func (s *Store) Quizzes() repositories.QuizRepository                { return &quizRepo{s} }
func (s *Store) Objectives() repositories.ObjectiveRepository        { return &objectiveRepo{s} }
func (s *Store) Feedback() repositories.FeedbackRepository           { return &feedbackRepo{s} }

// violation mirrors the error a failing constraint produces in Postgres
func violation(constraint string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrConflict, constraint)
}

// rows copies the matching rows of a table and sorts them
func rows[T any](m map[uuid.UUID]T, keep func(T) bool, less func(a, b T) bool) []*T {
	out := make([]*T, 0)
	for _, v := range m {
		if keep(v) {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(*out[i], *out[j]) })
	return out
}

// earlier orders by creation time with the id as tiebreak
func earlier(x, y time.Time, a, b uuid.UUID) bool {
	if !x.Equal(y) {
		return x.Before(y)
	}
	return a.String() < b.String()
}
