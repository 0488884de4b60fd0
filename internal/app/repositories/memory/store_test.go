package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func seedCourse(t *testing.T, s *Store) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, s.Courses().Create(context.Background(), &models.Course{
		ID: id, Title: "Go", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return id
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	boom := errors.New("boom")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		require.NoError(t, tx.Modules().Create(ctx, &models.Module{ID: uuid.New(), CourseID: courseID, Name: "M1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	modules, err := s.Modules().ListByCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)

	err := s.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		return tx.WithTransaction(ctx, func(ctx context.Context, inner repositories.Store) error {
			return inner.Modules().Create(ctx, &models.Module{ID: uuid.New(), CourseID: courseID, Name: "M1"})
		})
	})
	require.NoError(t, err)

	modules, err := s.Modules().ListByCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Len(t, modules, 1)
}

func TestStructure_UniqueIndexes(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	moduleID := uuid.New()

	entry := &models.StructureEntry{ID: uuid.New(), CourseID: courseID, ContentType: models.ContentModule, ContentID: moduleID, DisplayOrder: 1}
	require.NoError(t, s.Structure().Create(ctx, entry))

	sameOrder := &models.StructureEntry{ID: uuid.New(), CourseID: courseID, ContentType: models.ContentModule, ContentID: uuid.New(), DisplayOrder: 1}
	assert.ErrorIs(t, s.Structure().Create(ctx, sameOrder), apperrors.ErrConflict)

	sameContent := &models.StructureEntry{ID: uuid.New(), CourseID: courseID, ContentType: models.ContentModule, ContentID: moduleID, DisplayOrder: 2}
	assert.ErrorIs(t, s.Structure().Create(ctx, sameContent), apperrors.ErrConflict)

	next, err := s.Structure().NextDisplayOrder(ctx, courseID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	next, err = s.Structure().NextDisplayOrder(ctx, courseID, &moduleID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestStructure_SubtreeAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	moduleID, lessonID, quizID, otherID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	for _, e := range []*models.StructureEntry{
		{ID: uuid.New(), ContentType: models.ContentModule, ContentID: moduleID, DisplayOrder: 1},
		{ID: uuid.New(), ContentType: models.ContentLesson, ContentID: lessonID, ParentID: &moduleID, DisplayOrder: 1},
		{ID: uuid.New(), ContentType: models.ContentQuiz, ContentID: quizID, ParentID: &lessonID, DisplayOrder: 1},
		{ID: uuid.New(), ContentType: models.ContentModule, ContentID: otherID, DisplayOrder: 2},
	} {
		e.CourseID = courseID
		require.NoError(t, s.Structure().Create(ctx, e))
	}

	sub, err := s.Structure().Subtree(ctx, courseID, moduleID)
	require.NoError(t, err)
	assert.Len(t, sub, 3)

	n, err := s.Structure().DeleteSubtree(ctx, courseID, lessonID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := s.Structure().ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, moduleID, left[0].ContentID)
	assert.Equal(t, otherID, left[1].ContentID)
}

func TestObjectives_SwapNeedsTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	a := &models.CourseObjective{ID: uuid.New(), CourseID: courseID, ObjectiveText: "A", ObjectiveOrder: 1}
	b := &models.CourseObjective{ID: uuid.New(), CourseID: courseID, ObjectiveText: "B", ObjectiveOrder: 2}
	require.NoError(t, s.Objectives().Create(ctx, a))
	require.NoError(t, s.Objectives().Create(ctx, b))

	assert.ErrorIs(t, s.Objectives().UpdateOrder(ctx, courseID, a.ID, 2), apperrors.ErrConflict)

	err := s.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Objectives().UpdateOrder(ctx, courseID, a.ID, 2); err != nil {
			return err
		}
		return tx.Objectives().UpdateOrder(ctx, courseID, b.ID, 1)
	})
	require.NoError(t, err)

	list, err := s.Objectives().ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].ObjectiveText)
	assert.Equal(t, "A", list[1].ObjectiveText)
}

func TestCourseDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	keepID := seedCourse(t, s)

	moduleID, lessonID, quizID := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, s.Modules().Create(ctx, &models.Module{ID: moduleID, CourseID: courseID, Name: "M"}))
	require.NoError(t, s.Lessons().Create(ctx, &models.Lesson{ID: lessonID, ModuleID: moduleID, Name: "L"}))
	require.NoError(t, s.LessonContent().Create(ctx, &models.LessonContent{ID: uuid.New(), LessonID: lessonID, ContentType: models.LessonContentText}))
	require.NoError(t, s.Quizzes().Create(ctx, &models.Quiz{ID: quizID, CourseID: courseID, Name: "Q"}))
	require.NoError(t, s.Quizzes().UpsertSettings(ctx, models.DefaultQuizSettings(quizID)))
	require.NoError(t, s.Quizzes().CreateQuestion(ctx, &models.QuizQuestion{ID: uuid.New(), QuizID: quizID, QuestionText: "?"}))
	require.NoError(t, s.Media().Create(ctx, &models.Media{ID: uuid.New(), CourseID: courseID, LessonID: &lessonID}))
	require.NoError(t, s.Objectives().Create(ctx, &models.CourseObjective{ID: uuid.New(), CourseID: courseID, ObjectiveOrder: 1}))
	require.NoError(t, s.Objectives().Create(ctx, &models.CourseObjective{ID: uuid.New(), CourseID: keepID, ObjectiveOrder: 1}))

	// a module with lessons cannot be removed on its own
	assert.ErrorIs(t, s.Modules().Delete(ctx, courseID, moduleID), apperrors.ErrConflict)

	require.NoError(t, s.Courses().Delete(ctx, courseID))

	exists, err := s.Courses().Exists(ctx, courseID)
	require.NoError(t, err)
	assert.False(t, exists)

	s.db.mu.Lock()
	assert.Empty(t, s.db.t.modules)
	assert.Empty(t, s.db.t.lessons)
	assert.Empty(t, s.db.t.content)
	assert.Empty(t, s.db.t.quizzes)
	assert.Empty(t, s.db.t.settings)
	assert.Empty(t, s.db.t.questions)
	assert.Empty(t, s.db.t.media)
	assert.Len(t, s.db.t.objectives, 1)
	s.db.mu.Unlock()

	assert.ErrorIs(t, s.Courses().Delete(ctx, courseID), apperrors.ErrCourseNotFound)
}

func TestCourseList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Courses().Create(ctx, &models.Course{
			ID: uuid.New(), Title: string(rune('A' + i)), CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	page, total, err := s.Courses().List(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0].Title)
	assert.Equal(t, "B", page[1].Title)

	page, _, err = s.Courses().List(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestStructure_SubtreeOfUnplacedRoot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	courseID := seedCourse(t, s)
	lessonID, mediaID := uuid.New(), uuid.New()

	e := &models.StructureEntry{ID: uuid.New(), CourseID: courseID, ContentType: models.ContentMedia, ContentID: mediaID, ParentID: &lessonID, DisplayOrder: 1}
	require.NoError(t, s.Structure().Create(ctx, e))

	sub, err := s.Structure().Subtree(ctx, courseID, lessonID)
	require.NoError(t, err)
	require.Len(t, sub, 1)
	assert.Equal(t, mediaID, sub[0].ContentID)

	n, err := s.Structure().DeleteSubtree(ctx, courseID, lessonID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
