package todo

import (
	"sync"

	"github.com/benbjohnson/clock"
)

// Store holds the process-lifetime todo collection. Every connection
// goroutine shares one Store, so all access goes through the mutex. Ids come
// from a counter that only ever increases; an id is never reused, even
// after its todo is deleted.
type Store struct {
	clock clock.Clock

	mu     sync.Mutex
	todos  []Todo
	nextID int
}

func NewStore(clk clock.Clock) *Store {
	return &Store{clock: clk, nextID: 1}
}

// Create appends a new todo with the next id and returns it.
func (s *Store) Create(text string) Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Todo{
		ID:        s.nextID,
		Text:      text,
		CreatedAt: epochSeconds(s.clock.Now()),
	}
	s.nextID++
	s.todos = append(s.todos, t)
	return t
}

// List returns a copy of the collection in insertion order. Never nil.
func (s *Store) List() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

func (s *Store) Exists(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0
}

// Update applies a partial update: nil fields are left untouched. Reports
// whether the id existed.
func (s *Store) Update(id int, text *string, done *bool) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return Todo{}, false
	}

	if text != nil {
		s.todos[idx].Text = *text
	}
	if done != nil {
		s.todos[idx].Done = *done
	}
	return s.todos[idx], true
}

// Delete removes the todo and reports whether it existed. The id counter is
// not rolled back.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return false
	}

	s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
	return true
}

// index must be called with the mutex held.
func (s *Store) index(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
