package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

func addQuestions(t *testing.T, f *fixture, courseID, quizID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.quizzes.CreateQuestion(context.Background(), courseID, quizID, &dto.CreateQuestionRequest{
			QuestionText:   "Is Go compiled?",
			QuestionType:   models.QuestionTrueFalse,
			CorrectAnswers: []string{"true"},
			Points:         1,
		})
		require.NoError(t, err)
	}
}

func TestCreateQuiz_RequiresKnownParent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")

	_, err := f.quizzes.CreateQuiz(ctx, courseID, &dto.CreateQuizRequest{Name: "Q"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.quizzes.CreateQuiz(ctx, courseID, &dto.CreateQuizRequest{Name: "Q", ParentID: uuid.New()})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParent)

	quizzes, err := f.quizzes.ListQuizzes(ctx, courseID)
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	q := f.quiz(t, courseID, m1.Module.ID, "Q1")
	require.NotNil(t, q.Structure.ParentID)
	assert.Equal(t, m1.Module.ID, *q.Structure.ParentID)
	assert.Equal(t, 1, q.Structure.DisplayOrder)
}

func TestDeleteQuiz_RemovesSettingsAndQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	q := f.quiz(t, courseID, m1.Module.ID, "Q1")
	_, err := f.quizzes.UpdateSettings(ctx, courseID, q.Quiz.ID, &dto.QuizSettingsRequest{MinPassScore: 80, AllowRetakes: true})
	require.NoError(t, err)
	addQuestions(t, f, courseID, q.Quiz.ID, 3)

	require.NoError(t, f.quizzes.DeleteQuiz(ctx, courseID, q.Quiz.ID))

	_, err = f.quizzes.GetQuiz(ctx, courseID, q.Quiz.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = f.store.Quizzes().GetSettings(ctx, q.Quiz.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	questions, err := f.store.Quizzes().ListQuestions(ctx, q.Quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)

	entries := f.structureOf(t, courseID)
	require.Len(t, entries, 1)
	assert.Equal(t, m1.Module.ID, entries[0].ContentID)
}

func TestDeleteQuiz_FailureLeavesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	q := f.quiz(t, courseID, m1.Module.ID, "Q1")
	_, err := f.quizzes.UpdateSettings(ctx, courseID, q.Quiz.ID, &dto.QuizSettingsRequest{MinPassScore: 80})
	require.NoError(t, err)
	addQuestions(t, f, courseID, q.Quiz.ID, 3)

	failing := NewQuizService(&failingStore{Store: f.store, err: errInjected}, nil)
	err = failing.DeleteQuiz(ctx, courseID, q.Quiz.ID)
	require.ErrorIs(t, err, errInjected)

	quiz, err := f.quizzes.GetQuiz(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1", quiz.Name)
	settings, err := f.quizzes.GetSettings(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, settings.MinPassScore)
	questions, err := f.quizzes.ListQuestions(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 3)
	assert.Len(t, f.structureOf(t, courseID), 2)
}

func TestQuizSettings_DefaultsThenUpsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	q := f.quiz(t, courseID, m1.Module.ID, "Q1")

	settings, err := f.quizzes.GetSettings(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuizSettings(q.Quiz.ID), settings)

	_, err = f.quizzes.UpdateSettings(ctx, courseID, q.Quiz.ID, &dto.QuizSettingsRequest{MinPassScore: 101})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	for _, score := range []int{60, 90} {
		_, err = f.quizzes.UpdateSettings(ctx, courseID, q.Quiz.ID, &dto.QuizSettingsRequest{MinPassScore: score, MaxAttempts: 2})
		require.NoError(t, err)
	}
	settings, err = f.quizzes.GetSettings(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, settings.MinPassScore)
	assert.Equal(t, 2, settings.MaxAttempts)
}

func TestCreateQuestion_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateQuestionRequest
		wantErr bool
	}{
		{
			name: "single choice",
			req: dto.CreateQuestionRequest{QuestionType: models.QuestionSingleChoice,
				Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}},
		},
		{
			name: "single choice with two answers",
			req: dto.CreateQuestionRequest{QuestionType: models.QuestionSingleChoice,
				Options: []string{"a", "b"}, CorrectAnswers: []string{"a", "b"}},
			wantErr: true,
		},
		{
			name: "answer not an option",
			req: dto.CreateQuestionRequest{QuestionType: models.QuestionMultipleChoice,
				Options: []string{"a", "b"}, CorrectAnswers: []string{"c"}},
			wantErr: true,
		},
		{
			name:    "true false with other answer",
			req:     dto.CreateQuestionRequest{QuestionType: models.QuestionTrueFalse, CorrectAnswers: []string{"yes"}},
			wantErr: true,
		},
		{
			name: "short answer",
			req:  dto.CreateQuestionRequest{QuestionType: models.QuestionShortAnswer, CorrectAnswers: []string{"goroutine"}},
		},
		{
			name:    "short answer without answer",
			req:     dto.CreateQuestionRequest{QuestionType: models.QuestionShortAnswer},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     dto.CreateQuestionRequest{QuestionType: "essay", CorrectAnswers: []string{"x"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestion(&tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateQuestion_AppendsOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	q := f.quiz(t, courseID, m1.Module.ID, "Q1")
	addQuestions(t, f, courseID, q.Quiz.ID, 2)

	questions, err := f.quizzes.ListQuestions(ctx, courseID, q.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].QuestionOrder)
	assert.Equal(t, 2, questions[1].QuestionOrder)

	require.NoError(t, f.quizzes.DeleteQuestion(ctx, courseID, q.Quiz.ID, questions[0].ID))
	err = f.quizzes.DeleteQuestion(ctx, courseID, q.Quiz.ID, questions[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
