// Package coursetree rebuilds the nested course content tree from the flat
// course_structure table and flattens an edited tree back into entries.
package coursetree

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// Node is one hydrated node of the course tree.
type Node struct {
	ID            uuid.UUID              `json:"id"`
	Type          models.ContentType     `json:"type"`
	DisplayOrder  int                    `json:"display_order"`
	Name          string                 `json:"name,omitempty"`
	Title         string                 `json:"title,omitempty"`
	Number        int                    `json:"number,omitempty"`
	VideoURL      *string                `json:"video_url,omitempty"`
	LessonDetails *string                `json:"lesson_details,omitempty"`
	FileType      string                 `json:"file_type,omitempty"`
	FileURL       string                 `json:"file_url,omitempty"`
	Children      []*Node                `json:"children,omitempty"`
	Content       []models.LessonContent `json:"content,omitempty"`
}

// MarshalJSON always emits children for modules and lessons, and content for
// lessons, so an emptied container serialises as [] rather than disappearing.
func (n Node) MarshalJSON() ([]byte, error) {
	type alias Node
	a := alias(n)
	switch n.Type {
	case models.ContentModule:
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		return json.Marshal(struct {
			alias
			Children []*Node `json:"children"`
		}{a, children})
	case models.ContentLesson:
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		content := n.Content
		if content == nil {
			content = []models.LessonContent{}
		}
		return json.Marshal(struct {
			alias
			Children []*Node                `json:"children"`
			Content  []models.LessonContent `json:"content"`
		}{a, children, content})
	}
	return json.Marshal(a)
}

// Label returns the display name of the node regardless of its type.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Title
}

// Build assembles the forest of root modules from the structural entries and the
// content rows they point at. Entries whose content is missing, and content rows
// without an entry, are skipped. Every level is sorted by display order.
func Build(
	entries []*models.StructureEntry,
	modules []*models.Module,
	lessons []*models.Lesson,
	contentByLesson map[uuid.UUID][]*models.LessonContent,
	media []*models.Media,
	quizzes []*models.Quiz,
) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(modules)+len(lessons)+len(media)+len(quizzes))

	for _, m := range modules {
		nodes[m.ID] = &Node{ID: m.ID, Type: models.ContentModule, Name: m.Name, Number: m.Number, Children: []*Node{}}
	}
	for _, l := range lessons {
		content := make([]models.LessonContent, 0, len(contentByLesson[l.ID]))
		for _, c := range contentByLesson[l.ID] {
			content = append(content, *c)
		}
		nodes[l.ID] = &Node{
			ID:            l.ID,
			Type:          models.ContentLesson,
			Name:          l.Name,
			Number:        l.Number,
			VideoURL:      l.VideoURL,
			LessonDetails: l.LessonDetails,
			Children:      []*Node{},
			Content:       content,
		}
	}
	for _, m := range media {
		nodes[m.ID] = &Node{ID: m.ID, Type: models.ContentMedia, Title: m.Title, FileType: m.FileType, FileURL: m.FileURL}
	}
	for _, q := range quizzes {
		nodes[q.ID] = &Node{ID: q.ID, Type: models.ContentQuiz, Name: q.Name, Number: q.Number}
	}

	seenEntries := make(map[uuid.UUID]bool, len(entries))
	seenContent := make(map[uuid.UUID]bool, len(entries))
	var roots []*Node

	for _, e := range entries {
		if seenEntries[e.ID] || seenContent[e.ContentID] {
			continue
		}
		child, ok := nodes[e.ContentID]
		if !ok || child.Type != e.ContentType {
			continue
		}

		if e.ParentID == nil {
			if e.ContentType != models.ContentModule {
				continue
			}
			seenEntries[e.ID] = true
			seenContent[e.ContentID] = true
			child.DisplayOrder = e.DisplayOrder
			roots = append(roots, child)
			continue
		}

		parent, ok := nodes[*e.ParentID]
		if !ok || !parent.Type.CanContain(child.Type) {
			continue
		}
		seenEntries[e.ID] = true
		seenContent[e.ContentID] = true
		child.DisplayOrder = e.DisplayOrder
		parent.Children = append(parent.Children, child)
	}

	for _, n := range nodes {
		if len(n.Children) > 1 {
			sortByOrder(n.Children)
		}
	}
	sortByOrder(roots)

	if roots == nil {
		roots = []*Node{}
	}
	return roots
}

func sortByOrder(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].DisplayOrder != nodes[j].DisplayOrder {
			return nodes[i].DisplayOrder < nodes[j].DisplayOrder
		}
		return nodes[i].ID.String() < nodes[j].ID.String()
	})
}
