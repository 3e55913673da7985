package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo/internal/storage"
)

// DefaultKey is the storage slot holding the serialized list.
const DefaultKey = "todos"

// MinPrefixLen is the shortest id prefix Find accepts.
const MinPrefixLen = 6

// Store is the in-memory task list, hydrated once from storage and written
// back in full after every mutation. A Store is not safe for concurrent use.
type Store struct {
	tasks   []Task
	storage storage.Storage
	key     string
	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage slot. The default is DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the id source. Generated ids must be unique.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open hydrates a Store from st. An absent or unparsable slot yields an empty
// list; a failed read is returned as a *PersistenceError.
func Open(ctx context.Context, st storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: st,
		key:     DefaultKey,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := st.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no stored tasks", zap.String("key", s.key))
		return s, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Key: s.key, Err: err}
	}

	tasks, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable task data",
			zap.String("key", s.key), zap.Int("bytes", len(data)), zap.Error(err))
		return s, nil
	}
	s.tasks = s.sanitize(tasks)
	s.logger.Debug("loaded tasks", zap.String("key", s.key), zap.Int("count", len(s.tasks)))
	return s, nil
}

// sanitize drops records that would break the list invariants: blank ids,
// blank text and repeated ids (the first occurrence wins).
func (s *Store) sanitize(tasks []Task) []Task {
	seen := make(map[string]bool, len(tasks))
	kept := make([]Task, 0, len(tasks))
	for i, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		switch {
		case t.ID == "":
			s.logger.Warn("dropping stored task without id", zap.Int("index", i))
		case t.Text == "":
			s.logger.Warn("dropping stored task without text", zap.String("id", t.ID))
		case seen[t.ID]:
			s.logger.Warn("dropping stored task with duplicate id", zap.String("id", t.ID))
		default:
			seen[t.ID] = true
			kept = append(kept, t)
		}
	}
	return kept
}

// Add creates a pending task from text and puts it first in the list.
func (s *Store) Add(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, emptyTextError()
	}

	id := s.newID()
	if _, ok := s.index(id); ok {
		return Task{}, fmt.Errorf("id generator returned duplicate id %s", id)
	}

	t := Task{
		ID:        id,
		Text:      text,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = append([]Task{t}, s.tasks...)
	return t, s.persist(ctx)
}

// Update replaces the text of the task with the given id. Position,
// completion and creation time are unchanged.
func (s *Store) Update(ctx context.Context, id, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, emptyTextError()
	}
	i, ok := s.index(id)
	if !ok {
		return Task{}, &NotFoundError{Ref: id}
	}

	s.tasks[i].Text = text
	return s.tasks[i], s.persist(ctx)
}

// Toggle flips the completion flag of the task with the given id and returns
// the task in its new state.
func (s *Store) Toggle(ctx context.Context, id string) (Task, error) {
	i, ok := s.index(id)
	if !ok {
		return Task{}, &NotFoundError{Ref: id}
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], s.persist(ctx)
}

// Remove deletes the task with the given id. Removing an absent id is a
// no-op and writes nothing.
func (s *Store) Remove(ctx context.Context, id string) error {
	i, ok := s.index(id)
	if !ok {
		return nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.persist(ctx)
}

// ClearCompleted deletes every completed task and returns how many were
// removed. Nothing is written when the count is zero.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.persist(ctx)
}

// Filter returns the tasks matching status in list order.
func (s *Store) Filter(status Status) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if status.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns every task in list order.
func (s *Store) Tasks() []Task {
	return s.Filter(StatusAll)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Stats returns counts over the whole list.
func (s *Store) Stats() Stats {
	var st Stats
	st.Total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// Get returns the task with exactly the given id.
func (s *Store) Get(id string) (Task, error) {
	i, ok := s.index(id)
	if !ok {
		return Task{}, &NotFoundError{Ref: id}
	}
	return s.tasks[i], nil
}

// Find resolves ref to a task: an exact id first, then a unique id prefix of
// at least MinPrefixLen characters.
func (s *Store) Find(ref string) (Task, error) {
	if i, ok := s.index(ref); ok {
		return s.tasks[i], nil
	}
	if len(ref) < MinPrefixLen {
		return Task{}, &NotFoundError{Ref: ref}
	}

	var matches []Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return Task{}, &NotFoundError{Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return Task{}, &NotFoundError{
			Ref:    ref,
			Reason: fmt.Sprintf("ambiguous prefix matches %d tasks", len(matches)),
		}
	}
}

func (s *Store) index(id string) (int, bool) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// persist writes the whole list. The in-memory state is kept on failure.
func (s *Store) persist(ctx context.Context) error {
	data, err := Encode(s.tasks)
	if err != nil {
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.logger.Warn("task list not saved", zap.String("key", s.key), zap.Error(err))
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	s.logger.Debug("saved tasks",
		zap.String("key", s.key), zap.Int("count", len(s.tasks)), zap.Int("bytes", len(data)))
	return nil
}
