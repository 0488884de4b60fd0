package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/coursetree"
)

func TestGetStructure_ModuleWithLesson(t *testing.T) {
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")

	tree, err := f.structure.GetStructure(context.Background(), courseID)
	require.NoError(t, err)

	raw, err := json.Marshal(tree)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, m1.Module.ID.String(), got[0]["id"])
	assert.Equal(t, "module", got[0]["type"])
	assert.Equal(t, "M1", got[0]["name"])
	assert.EqualValues(t, 1, got[0]["display_order"])

	children := got[0]["children"].([]interface{})
	require.Len(t, children, 1)
	lesson := children[0].(map[string]interface{})
	assert.Equal(t, l1.Lesson.ID.String(), lesson["id"])
	assert.Equal(t, "lesson", lesson["type"])
	assert.EqualValues(t, 1, lesson["display_order"])
	assert.Equal(t, []interface{}{}, lesson["children"])
	assert.Equal(t, []interface{}{}, lesson["content"])
}

func TestGetStructure_EmptyCourse(t *testing.T) {
	f := newFixture(t)
	courseID := f.course(t)

	tree, err := f.structure.GetStructure(context.Background(), courseID)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)

	_, err = f.structure.GetStructure(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetStructure_DeletingLastChildLeavesEmptyChildren(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")

	require.NoError(t, f.lessons.DeleteLesson(ctx, courseID, m1.Module.ID, l1.Lesson.ID))

	tree, err := f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"children":[]`)
}

func TestGetStructure_MediaAndQuizUnderLesson(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")
	lessonID := l1.Lesson.ID

	media, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{
		Title:    "Slides",
		FileType: "application/pdf",
		FileURL:  "https://files.test/a.pdf",
		LessonID: &lessonID,
	})
	require.NoError(t, err)
	quiz := f.quiz(t, courseID, lessonID, "Q1")
	assert.Equal(t, 1, media.Structure.DisplayOrder)
	assert.Equal(t, 2, quiz.Structure.DisplayOrder)

	tree, err := f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	leaves := tree[0].Children[0].Children
	require.Len(t, leaves, 2)
	assert.Equal(t, models.ContentMedia, leaves[0].Type)
	assert.Equal(t, "Slides", leaves[0].Title)
	assert.Equal(t, models.ContentQuiz, leaves[1].Type)
}

func TestReplaceStructure_MovesLessonToOtherModule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	m2 := f.module(t, courseID, "M2")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")

	tree, err := f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	tree, err = coursetree.Move(tree, l1.Lesson.ID, &m2.Module.ID, 0)
	require.NoError(t, err)
	// swap the modules as well
	tree[0], tree[1] = tree[1], tree[0]

	saved, err := f.structure.ReplaceStructure(ctx, courseID, tree)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, m2.Module.ID, saved[0].ID)
	assert.Equal(t, 1, saved[0].DisplayOrder)
	require.Len(t, saved[0].Children, 1)
	assert.Equal(t, l1.Lesson.ID, saved[0].Children[0].ID)
	assert.Empty(t, saved[1].Children)

	lesson, err := f.lessons.GetLesson(ctx, courseID, m2.Module.ID, l1.Lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, m2.Module.ID, lesson.ModuleID)

	reloaded, err := f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, saved[0].ID, reloaded[0].ID)
	assert.Contains(t, f.notifier.all(), "structure.replaced")
}

func TestReplaceStructure_MediaFollowsEnclosingLesson(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")
	l2 := f.lesson(t, courseID, m1.Module.ID, "L2")
	lessonID := l1.Lesson.ID

	created, err := f.media.CreateMedia(ctx, courseID, &dto.CreateMediaRequest{
		Title:    "Slides",
		FileType: "application/pdf",
		FileURL:  "https://files.test/a.pdf",
		LessonID: &lessonID,
	})
	require.NoError(t, err)
	mediaID := created.Media.ID

	tree, err := f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	tree, err = coursetree.Move(tree, mediaID, &l2.Lesson.ID, 0)
	require.NoError(t, err)
	_, err = f.structure.ReplaceStructure(ctx, courseID, tree)
	require.NoError(t, err)

	media, err := f.media.GetMedia(ctx, courseID, mediaID)
	require.NoError(t, err)
	require.NotNil(t, media.LessonID)
	assert.Equal(t, l2.Lesson.ID, *media.LessonID)

	tree, err = f.structure.GetStructure(ctx, courseID)
	require.NoError(t, err)
	tree, err = coursetree.Move(tree, mediaID, &m1.Module.ID, 0)
	require.NoError(t, err)
	_, err = f.structure.ReplaceStructure(ctx, courseID, tree)
	require.NoError(t, err)

	media, err = f.media.GetMedia(ctx, courseID, mediaID)
	require.NoError(t, err)
	assert.Nil(t, media.LessonID)
}

func TestReplaceStructure_RejectsInvalidTrees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	l1 := f.lesson(t, courseID, m1.Module.ID, "L1")

	tests := []struct {
		name string
		tree []*coursetree.Node
	}{
		{
			name: "lesson at root",
			tree: []*coursetree.Node{{ID: l1.Lesson.ID, Type: models.ContentLesson}},
		},
		{
			name: "foreign content",
			tree: []*coursetree.Node{{ID: uuid.New(), Type: models.ContentModule}},
		},
		{
			name: "wrong type",
			tree: []*coursetree.Node{{ID: m1.Module.ID, Type: models.ContentModule, Children: []*coursetree.Node{
				{ID: l1.Lesson.ID, Type: models.ContentQuiz},
			}}},
		},
		{
			name: "duplicate node",
			tree: []*coursetree.Node{
				{ID: m1.Module.ID, Type: models.ContentModule},
				{ID: m1.Module.ID, Type: models.ContentModule},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.structure.ReplaceStructure(ctx, courseID, tt.tree)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	// nothing was written
	entries := f.structureOf(t, courseID)
	assert.Len(t, entries, 2)
}

func TestReplaceStructure_OmittedContentIsDetached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courseID := f.course(t)
	m1 := f.module(t, courseID, "M1")
	m2 := f.module(t, courseID, "M2")

	saved, err := f.structure.ReplaceStructure(ctx, courseID, []*coursetree.Node{{ID: m2.Module.ID, Type: models.ContentModule}})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	module, err := f.modules.GetModule(ctx, courseID, m1.Module.ID)
	require.NoError(t, err)
	assert.Equal(t, "M1", module.Name)
}
