package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/pkg/coursetree"
)

// Render writes the tree as an indented outline. Children of nodes for which
// expanded returns false are folded into a "+" marker; a nil expanded shows
// everything.
func Render(w io.Writer, roots []*coursetree.Node, expanded func(uuid.UUID) bool) error {
	var walk func(nodes []*coursetree.Node, depth int) error
	walk = func(nodes []*coursetree.Node, depth int) error {
		for _, n := range nodes {
			open := expanded == nil || expanded(n.ID)
			marker := " "
			if len(n.Children) > 0 || len(n.Content) > 0 {
				marker = "-"
				if !open {
					marker = "+"
				}
			}
			if _, err := fmt.Fprintf(w, "%s%s %d. [%s] %s  %s\n",
				strings.Repeat("  ", depth), marker, n.DisplayOrder, n.Type, n.Label(), n.ID); err != nil {
				return err
			}
			if !open {
				continue
			}
			for _, c := range n.Content {
				if _, err := fmt.Fprintf(w, "%s    * (%s) %s\n", strings.Repeat("  ", depth), c.ContentType, c.Title); err != nil {
					return err
				}
			}
			if err := walk(n.Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(roots, 0)
}

// Render writes the session's working tree honouring its expand state
func (s *Session) Render(w io.Writer) error {
	tree := s.Tree()
	return Render(w, tree, s.IsExpanded)
}
