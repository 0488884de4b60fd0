package coursetree

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
)

func sampleForest() (m1, m2, l1, q *Node, roots []*Node) {
	l1 = &Node{ID: uuid.New(), Type: models.ContentLesson, Name: "L1", Children: []*Node{}}
	q = &Node{ID: uuid.New(), Type: models.ContentQuiz, Name: "Q"}
	m1 = &Node{ID: uuid.New(), Type: models.ContentModule, Name: "M1", Children: []*Node{l1, q}}
	m2 = &Node{ID: uuid.New(), Type: models.ContentModule, Name: "M2", Children: []*Node{}}
	return m1, m2, l1, q, []*Node{m1, m2}
}

func TestFlatten_NumbersSiblingsFromOne(t *testing.T) {
	course := uuid.New()
	m1, m2, l1, q, roots := sampleForest()

	entries, err := Flatten(course, roots)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	byContent := make(map[uuid.UUID]*models.StructureEntry)
	for _, e := range entries {
		assert.Equal(t, course, e.CourseID)
		byContent[e.ContentID] = e
	}
	assert.Nil(t, byContent[m1.ID].ParentID)
	assert.Equal(t, 1, byContent[m1.ID].DisplayOrder)
	assert.Equal(t, 2, byContent[m2.ID].DisplayOrder)
	assert.Equal(t, m1.ID, *byContent[l1.ID].ParentID)
	assert.Equal(t, 1, byContent[l1.ID].DisplayOrder)
	assert.Equal(t, 2, byContent[q.ID].DisplayOrder)
}

func TestFlatten_RebuildsSameForest(t *testing.T) {
	course := uuid.New()
	_, _, _, _, roots := sampleForest()

	entries, err := Flatten(course, roots)
	require.NoError(t, err)

	var modules []*models.Module
	var lessons []*models.Lesson
	var quizzes []*models.Quiz
	for _, m := range roots {
		modules = append(modules, &models.Module{ID: m.ID, Name: m.Name})
		for _, c := range m.Children {
			switch c.Type {
			case models.ContentLesson:
				lessons = append(lessons, &models.Lesson{ID: c.ID, ModuleID: m.ID, Name: c.Name})
			case models.ContentQuiz:
				quizzes = append(quizzes, &models.Quiz{ID: c.ID, Name: c.Name})
			}
		}
	}

	rebuilt := Build(entries, modules, lessons, nil, nil, quizzes)
	require.Len(t, rebuilt, 2)
	assert.Equal(t, "M1", rebuilt[0].Name)
	require.Len(t, rebuilt[0].Children, 2)
	assert.Equal(t, "L1", rebuilt[0].Children[0].Name)
	assert.Equal(t, "Q", rebuilt[0].Children[1].Name)
}

func TestFlatten_RejectsInvalidTrees(t *testing.T) {
	course := uuid.New()
	lesson := &Node{ID: uuid.New(), Type: models.ContentLesson}
	media := &Node{ID: uuid.New(), Type: models.ContentMedia}
	module := &Node{ID: uuid.New(), Type: models.ContentModule}

	tests := []struct {
		name  string
		roots []*Node
	}{
		{"lesson at root", []*Node{lesson}},
		{"module nested in module", []*Node{{ID: uuid.New(), Type: models.ContentModule, Children: []*Node{module}}}},
		{"leaf with children", []*Node{{ID: uuid.New(), Type: models.ContentModule, Children: []*Node{
			{ID: uuid.New(), Type: models.ContentQuiz, Children: []*Node{media}},
		}}}},
		{"duplicate id", []*Node{module, module}},
		{"unknown type", []*Node{{ID: uuid.New(), Type: "chapter"}}},
		{"missing id", []*Node{{Type: models.ContentModule}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(course, tt.roots)
			assert.ErrorIs(t, err, ErrInvalidTree)
		})
	}
}

func TestMove_ReordersAndReparents(t *testing.T) {
	m1, m2, l1, q, roots := sampleForest()

	roots, err := Move(roots, l1.ID, &m2.ID, 0)
	require.NoError(t, err)

	require.Len(t, m1.Children, 1)
	assert.Equal(t, q.ID, m1.Children[0].ID)
	assert.Equal(t, 1, q.DisplayOrder)
	require.Len(t, m2.Children, 1)
	assert.Equal(t, l1.ID, m2.Children[0].ID)

	roots, err = Move(roots, m2.ID, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{m2.ID, m1.ID}, []uuid.UUID{roots[0].ID, roots[1].ID})
	assert.Equal(t, 1, roots[0].DisplayOrder)
	assert.Equal(t, 2, roots[1].DisplayOrder)
}

func TestMove_RejectsInvalidTargets(t *testing.T) {
	m1, m2, l1, q, roots := sampleForest()

	_, err := Move(roots, l1.ID, &q.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, err = Move(roots, m1.ID, &m2.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, err = Move(roots, q.ID, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, err = Move(roots, uuid.New(), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)

	assert.Len(t, m1.Children, 2)
}

func TestClone_IsIndependent(t *testing.T) {
	m1, _, _, _, roots := sampleForest()
	copied := Clone(roots)

	copied[0].Name = "changed"
	copied[0].Children = copied[0].Children[:1]

	assert.Equal(t, "M1", m1.Name)
	assert.Len(t, m1.Children, 2)

	found, parent := Find(copied, m1.Children[0].ID)
	require.NotNil(t, found)
	assert.Equal(t, copied[0], parent)
}
