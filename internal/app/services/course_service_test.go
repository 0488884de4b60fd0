package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func TestListCourses_Paginates(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.course(t)
	}

	page, err := f.courses.ListCourses(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Courses, 1)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestCreateCourse_TrimsOptionalFields(t *testing.T) {
	f := newFixture(t)
	blank := "  "
	c, err := f.courses.CreateCourse(context.Background(), &dto.CreateCourseRequest{Title: " Go ", Description: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Go", c.Title)
	assert.Nil(t, c.Description)

	_, err = f.courses.CreateCourse(context.Background(), &dto.CreateCourseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteCourse_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")
	lessonID := l1.Lesson.ID
	_, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{Title: "a", FileType: "image/png", FileURL: "https://files.test/courses/a.png", LessonID: &lessonID})
	require.NoError(t, err)
	q := f.quiz(t, courseID, lessonID, "Q1")
	addQuestions(t, f, courseID, q.Quiz.ID, 1)
	createObjectives(t, f, courseID, "A")

	require.NoError(t, f.courses.DeleteCourse(ctx, courseID))

	_, err = f.courses.GetCourse(ctx, courseID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, f.structureOf(t, courseID))
	questions, err := f.store.Quizzes().ListQuestions(ctx, q.Quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Equal(t, []string{"courses/a.png"}, f.storage.deleted)
	assert.Contains(t, f.notifier.all(), "course.deleted")

	err = f.courses.DeleteCourse(ctx, courseID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestFeedbackSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)

	settings, err := f.feedback.GetSettings(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFeedbackSettings(courseID), settings)

	_, err = f.feedback.UpdateSettings(ctx, courseID, &dto.FeedbackSettingsRequest{Anonymous: true})
	require.NoError(t, err)

	settings, err = f.feedback.GetSettings(ctx, courseID)
	require.NoError(t, err)
	assert.True(t, settings.Anonymous)
	assert.False(t, settings.AllowComments)
}
