package coursetree

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
)

func entry(courseID uuid.UUID, t models.ContentType, contentID uuid.UUID, parent *uuid.UUID, order int) *models.StructureEntry {
	return &models.StructureEntry{
		ID:           uuid.New(),
		CourseID:     courseID,
		ContentType:  t,
		ContentID:    contentID,
		ParentID:     parent,
		DisplayOrder: order,
	}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestBuild_SortsEveryLevelByDisplayOrder(t *testing.T) {
	course := uuid.New()
	m1 := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	m2 := &models.Module{ID: uuid.New(), CourseID: course, Name: "M2"}
	l1 := &models.Lesson{ID: uuid.New(), ModuleID: m1.ID, Name: "L1"}
	l2 := &models.Lesson{ID: uuid.New(), ModuleID: m1.ID, Name: "L2"}
	q := &models.Quiz{ID: uuid.New(), CourseID: course, Name: "Q"}
	md := &models.Media{ID: uuid.New(), CourseID: course, Title: "Slides"}

	entries := []*models.StructureEntry{
		entry(course, models.ContentLesson, l2.ID, ptr(m1.ID), 1),
		entry(course, models.ContentModule, m2.ID, nil, 1),
		entry(course, models.ContentQuiz, q.ID, ptr(m1.ID), 3),
		entry(course, models.ContentLesson, l1.ID, ptr(m1.ID), 2),
		entry(course, models.ContentModule, m1.ID, nil, 2),
		entry(course, models.ContentMedia, md.ID, ptr(l1.ID), 1),
	}

	roots := Build(entries, []*models.Module{m1, m2}, []*models.Lesson{l1, l2}, nil, []*models.Media{md}, []*models.Quiz{q})

	require.Len(t, roots, 2)
	assert.Equal(t, "M2", roots[0].Name)
	assert.Equal(t, "M1", roots[1].Name)

	children := roots[1].Children
	require.Len(t, children, 3)
	assert.Equal(t, []string{"L2", "L1", "Q"}, []string{children[0].Label(), children[1].Label(), children[2].Label()})
	for i := 1; i < len(children); i++ {
		assert.Less(t, children[i-1].DisplayOrder, children[i].DisplayOrder)
	}

	require.Len(t, children[1].Children, 1)
	assert.Equal(t, "Slides", children[1].Children[0].Label())
}

func TestBuild_SkipsEntriesWithoutContent(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	entries := []*models.StructureEntry{
		entry(course, models.ContentModule, m.ID, nil, 1),
		entry(course, models.ContentModule, uuid.New(), nil, 2),
		entry(course, models.ContentLesson, uuid.New(), ptr(m.ID), 1),
		entry(course, models.ContentQuiz, uuid.New(), ptr(uuid.New()), 1),
	}

	var roots []*Node
	require.NotPanics(t, func() {
		roots = Build(entries, []*models.Module{m}, nil, nil, nil, nil)
	})
	require.Len(t, roots, 1)
	assert.Equal(t, m.ID, roots[0].ID)
	assert.Empty(t, roots[0].Children)
}

func TestBuild_ExcludesContentWithoutEntry(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	orphan := &models.Module{ID: uuid.New(), CourseID: course, Name: "orphan"}
	entries := []*models.StructureEntry{entry(course, models.ContentModule, m.ID, nil, 1)}

	roots := Build(entries, []*models.Module{m, orphan}, nil, nil, nil, nil)

	require.Len(t, roots, 1)
	assert.Equal(t, "M1", roots[0].Name)
}

func TestBuild_AttachesDuplicatedContentOnce(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	l := &models.Lesson{ID: uuid.New(), ModuleID: m.ID, Name: "L1"}
	entries := []*models.StructureEntry{
		entry(course, models.ContentModule, m.ID, nil, 1),
		entry(course, models.ContentLesson, l.ID, ptr(m.ID), 1),
		entry(course, models.ContentLesson, l.ID, ptr(m.ID), 2),
	}

	roots := Build(entries, []*models.Module{m}, []*models.Lesson{l}, nil, nil, nil)

	require.Len(t, roots, 1)
	assert.Len(t, roots[0].Children, 1)
}

func TestBuild_IgnoresInvalidPlacement(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	l := &models.Lesson{ID: uuid.New(), ModuleID: m.ID, Name: "L1"}
	q := &models.Quiz{ID: uuid.New(), CourseID: course, Name: "Q"}
	entries := []*models.StructureEntry{
		entry(course, models.ContentModule, m.ID, nil, 1),
		entry(course, models.ContentLesson, l.ID, nil, 2),
		entry(course, models.ContentQuiz, q.ID, ptr(q.ID), 1),
	}

	roots := Build(entries, []*models.Module{m}, []*models.Lesson{l}, nil, nil, []*models.Quiz{q})

	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

func TestBuild_EmptyInputYieldsEmptyForest(t *testing.T) {
	roots := Build(nil, nil, nil, nil, nil, nil)
	require.NotNil(t, roots)

	raw, err := json.Marshal(roots)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestBuild_ModuleWithLessonSerialisesEmptyContent(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1", Number: 1}
	l := &models.Lesson{ID: uuid.New(), ModuleID: m.ID, Name: "L1", Number: 1}
	entries := []*models.StructureEntry{
		entry(course, models.ContentModule, m.ID, nil, 1),
		entry(course, models.ContentLesson, l.ID, ptr(m.ID), 1),
	}

	raw, err := json.Marshal(Build(entries, []*models.Module{m}, []*models.Lesson{l}, nil, nil, nil))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "M1", got[0]["name"])

	children, ok := got[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	lesson := children[0].(map[string]any)
	assert.Equal(t, "L1", lesson["name"])
	assert.Equal(t, []any{}, lesson["content"])
	assert.Equal(t, []any{}, lesson["children"])
}

func TestBuild_LessonCarriesContentInGivenOrder(t *testing.T) {
	course := uuid.New()
	m := &models.Module{ID: uuid.New(), CourseID: course, Name: "M1"}
	l := &models.Lesson{ID: uuid.New(), ModuleID: m.ID, Name: "L1"}
	c1 := &models.LessonContent{ID: uuid.New(), LessonID: l.ID, Title: "intro", ContentType: models.LessonContentText}
	c2 := &models.LessonContent{ID: uuid.New(), LessonID: l.ID, Title: "talk", ContentType: models.LessonContentDiscussion}
	entries := []*models.StructureEntry{
		entry(course, models.ContentModule, m.ID, nil, 1),
		entry(course, models.ContentLesson, l.ID, ptr(m.ID), 1),
	}

	roots := Build(entries, []*models.Module{m}, []*models.Lesson{l},
		map[uuid.UUID][]*models.LessonContent{l.ID: {c1, c2}}, nil, nil)

	require.Len(t, roots[0].Children, 1)
	content := roots[0].Children[0].Content
	require.Len(t, content, 2)
	assert.Equal(t, "intro", content[0].Title)
	assert.Equal(t, "talk", content[1].Title)
}

func TestNode_LeafOmitsChildren(t *testing.T) {
	raw, err := json.Marshal(&Node{ID: uuid.New(), Type: models.ContentQuiz, Name: "Q", DisplayOrder: 1})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	_, hasChildren := got["children"]
	assert.False(t, hasChildren)
	assert.Equal(t, "quiz", got["type"])
}
