package notes

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a note with the requested name does not exist.
var ErrNotFound = errors.New("note not found")

// Note is a named piece of text held for the lifetime of the process.
type Note struct {
	Name    string
	Content string
}

// Store is an in-memory note store with stable insertion-order enumeration.
// It is the only mutable state in the server and is injected into the MCP
// layer at construction so tests can substitute their own instance.
//
// Mutations are observable via Subscribe. A subscriber is called after the
// mutation is visible to readers; whatever the subscriber does (or fails to
// do) has no effect on the mutation itself.
type Store struct {
	mu     sync.Mutex
	order  []string
	byName map[string]string
	subs   []func(name string)
}

// NewStore returns an empty note store.
func NewStore() *Store {
	return &Store{byName: make(map[string]string)}
}

// Put inserts or overwrites a note. Overwriting keeps the note's original
// position in enumeration order.
func (s *Store) Put(name, content string) {
	s.mu.Lock()
	if _, ok := s.byName[name]; !ok {
		s.order = append(s.order, name)
	}
	s.byName[name] = content
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(name)
	}
}

// Get returns the content of the named note, or ErrNotFound.
func (s *Store) Get(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.byName[name]
	if !ok {
		return "", ErrNotFound
	}
	return content, nil
}

// List returns all notes in insertion order.
func (s *Store) List() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Note{Name: name, Content: s.byName[name]})
	}
	return out
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Subscribe registers fn to be called with the note name after every Put.
func (s *Store) Subscribe(fn func(name string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
