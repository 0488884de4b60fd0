package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/pkg/coursetree"
)

// ErrNotLoaded is returned by Save before a successful Load
var ErrNotLoaded = errors.New("structure not loaded")

// Session is one editor's working copy of a course tree. Moves are applied
// locally first; Save sends the whole tree and rolls back to the last saved
// tree when the server refuses it.
type Session struct {
	client   StructureClient
	courseID uuid.UUID

	mu       sync.Mutex
	loaded   bool
	tree     []*coursetree.Node
	snapshot []*coursetree.Node // last tree known to match the server
	expanded map[uuid.UUID]bool
	dirty    bool
	gen      uint64 // bumped by every local change to tree
}

// NewSession creates an empty session for the course
func NewSession(client StructureClient, courseID uuid.UUID) *Session {
	return &Session{
		client:   client,
		courseID: courseID,
		tree:     []*coursetree.Node{},
		snapshot: []*coursetree.Node{},
		expanded: make(map[uuid.UUID]bool),
	}
}

// CourseID returns the course being edited
func (s *Session) CourseID() uuid.UUID {
	return s.courseID
}

// Load fetches the tree from the server, discarding local changes. When the
// fetch fails the session holds an empty tree and the error is returned.
func (s *Session) Load(ctx context.Context) error {
	roots, err := s.client.GetStructure(ctx, s.courseID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.loaded = false
		s.tree = []*coursetree.Node{}
		s.snapshot = []*coursetree.Node{}
		s.dirty = false
		return err
	}
	s.setSavedLocked(roots)
	return nil
}

// Tree returns a copy of the current working tree
func (s *Session) Tree() []*coursetree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return coursetree.Clone(s.tree)
}

// Dirty reports whether there are unsaved moves
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Move places node id under parentID (nil for the root level) at index. The
// working tree is left untouched when the move is not allowed.
func (s *Session) Move(id uuid.UUID, parentID *uuid.UUID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, err := coursetree.Move(coursetree.Clone(s.tree), id, parentID, index)
	if err != nil {
		return err
	}
	s.tree = moved
	s.dirty = true
	s.gen++
	if parentID != nil {
		s.expanded[*parentID] = true
	}
	return nil
}

// Save sends the working tree. On failure the working tree is reverted to the
// last saved one and the error is returned. Moves made while the request is in
// flight survive a successful save and leave the session dirty.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	pending := coursetree.Clone(s.tree)
	gen := s.gen
	s.mu.Unlock()

	saved, err := s.client.PutStructure(ctx, s.courseID, pending)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tree = coursetree.Clone(s.snapshot)
		s.dirty = false
		s.gen++
		return err
	}
	if saved == nil {
		saved = pending
	}
	if s.gen != gen {
		s.snapshot = coursetree.Clone(saved)
		return nil
	}
	s.setSavedLocked(saved)
	return nil
}

// Discard drops unsaved moves
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = coursetree.Clone(s.snapshot)
	s.dirty = false
	s.gen++
}

// Toggle flips the expanded state of a module or lesson and returns the new state
func (s *Session) Toggle(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = !s.expanded[id]
	return s.expanded[id]
}

// IsExpanded reports whether the node's children are shown
func (s *Session) IsExpanded(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

func (s *Session) setSavedLocked(roots []*coursetree.Node) {
	if roots == nil {
		roots = []*coursetree.Node{}
	}
	s.loaded = true
	s.tree = roots
	s.snapshot = coursetree.Clone(roots)
	s.dirty = false

	// forget expand state of nodes that no longer exist
	for id := range s.expanded {
		if n, _ := coursetree.Find(roots, id); n == nil {
			delete(s.expanded, id)
		}
	}
}
