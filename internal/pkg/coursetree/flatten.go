package coursetree

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models"
)

// ErrInvalidTree is wrapped by every placement error returned from this package.
var ErrInvalidTree = errors.New("invalid course tree")

// Flatten walks the forest depth first and returns one structural entry per node,
// numbering display_order 1..n under every parent in slice order.
func Flatten(courseID uuid.UUID, roots []*Node) ([]*models.StructureEntry, error) {
	var entries []*models.StructureEntry
	seen := make(map[uuid.UUID]bool)

	var walk func(parent *Node, nodes []*Node) error
	walk = func(parent *Node, nodes []*Node) error {
		for i, n := range nodes {
			if n == nil {
				return fmt.Errorf("%w: null node", ErrInvalidTree)
			}
			if n.ID == uuid.Nil {
				return fmt.Errorf("%w: node without id", ErrInvalidTree)
			}
			if !n.Type.Valid() {
				return fmt.Errorf("%w: node %s has unknown type %q", ErrInvalidTree, n.ID, n.Type)
			}
			if seen[n.ID] {
				return fmt.Errorf("%w: node %s appears more than once", ErrInvalidTree, n.ID)
			}
			seen[n.ID] = true

			entry := &models.StructureEntry{
				ID:           uuid.New(),
				CourseID:     courseID,
				ContentType:  n.Type,
				ContentID:    n.ID,
				DisplayOrder: i + 1,
			}
			if parent == nil {
				if n.Type != models.ContentModule {
					return fmt.Errorf("%w: %s %s cannot be a root", ErrInvalidTree, n.Type, n.ID)
				}
			} else {
				if !parent.Type.CanContain(n.Type) {
					return fmt.Errorf("%w: %s cannot contain %s", ErrInvalidTree, parent.Type, n.Type)
				}
				pid := parent.ID
				entry.ParentID = &pid
			}
			if !n.Type.IsContainer() && len(n.Children) > 0 {
				return fmt.Errorf("%w: %s %s cannot have children", ErrInvalidTree, n.Type, n.ID)
			}
			entries = append(entries, entry)

			if err := walk(n, n.Children); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(nil, roots); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clone returns a deep copy of the forest.
func Clone(roots []*Node) []*Node {
	if roots == nil {
		return nil
	}
	out := make([]*Node, len(roots))
	for i, n := range roots {
		c := *n
		c.Children = Clone(n.Children)
		if n.Content != nil {
			c.Content = append([]models.LessonContent(nil), n.Content...)
		}
		out[i] = &c
	}
	return out
}

// Find returns the node with the given id and its parent (nil for roots).
func Find(roots []*Node, id uuid.UUID) (node, parent *Node) {
	var search func(p *Node, nodes []*Node) (*Node, *Node)
	search = func(p *Node, nodes []*Node) (*Node, *Node) {
		for _, n := range nodes {
			if n.ID == id {
				return n, p
			}
			if found, fp := search(n, n.Children); found != nil {
				return found, fp
			}
		}
		return nil, nil
	}
	return search(nil, roots)
}

// Move detaches node id and reinserts it under parentID (nil for the root level)
// at index, clamped to the sibling count. The returned forest shares nodes with
// roots; callers wanting to keep the original should Clone first. Display orders
// are renumbered on the affected levels.
func Move(roots []*Node, id uuid.UUID, parentID *uuid.UUID, index int) ([]*Node, error) {
	node, oldParent := Find(roots, id)
	if node == nil {
		return roots, fmt.Errorf("%w: node %s not found", ErrInvalidTree, id)
	}

	var newParent *Node
	if parentID != nil {
		newParent, _ = Find(roots, *parentID)
		if newParent == nil {
			return roots, fmt.Errorf("%w: parent %s not found", ErrInvalidTree, *parentID)
		}
		if !newParent.Type.CanContain(node.Type) {
			return roots, fmt.Errorf("%w: %s cannot contain %s", ErrInvalidTree, newParent.Type, node.Type)
		}
		if inSubtree(node, newParent.ID) {
			return roots, fmt.Errorf("%w: cannot move %s into its own subtree", ErrInvalidTree, id)
		}
	} else if node.Type != models.ContentModule {
		return roots, fmt.Errorf("%w: %s %s cannot be a root", ErrInvalidTree, node.Type, id)
	}

	if oldParent == nil {
		roots = remove(roots, id)
	} else {
		oldParent.Children = remove(oldParent.Children, id)
		renumber(oldParent.Children)
	}

	if newParent == nil {
		roots = insert(roots, node, index)
		renumber(roots)
	} else {
		newParent.Children = insert(newParent.Children, node, index)
		renumber(newParent.Children)
	}
	renumber(roots)
	return roots, nil
}

func inSubtree(n *Node, id uuid.UUID) bool {
	if n.ID == id {
		return true
	}
	for _, c := range n.Children {
		if inSubtree(c, id) {
			return true
		}
	}
	return false
}

func remove(nodes []*Node, id uuid.UUID) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func insert(nodes []*Node, n *Node, index int) []*Node {
	if index < 0 {
		index = 0
	}
	if index > len(nodes) {
		index = len(nodes)
	}
	out := make([]*Node, 0, len(nodes)+1)
	out = append(out, nodes[:index]...)
	out = append(out, n)
	return append(out, nodes[index:]...)
}

func renumber(nodes []*Node) {
	for i, n := range nodes {
		n.DisplayOrder = i + 1
	}
}
