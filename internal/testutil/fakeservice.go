// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"todo/internal/config"
	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr   error
	ListListsErr     error
	ResolveListErr   error
	ListOpenTasksErr map[string]error // listID -> error
	CreateTaskErr    error
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:            make(map[string][]service.Task),
		ListOpenTasksErr: make(map[string]error),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// Factory returns a service.Factory that always yields f.
func (f *FakeService) Factory() service.Factory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return f, nil
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.addTask(listID, taskID, title, service.StatusNeedsAction)
}

// AddCompletedTask adds a completed task to a list.
func (f *FakeService) AddCompletedTask(listID, taskID, title string) {
	f.addTask(listID, taskID, title, service.StatusCompleted)
}

func (f *FakeService) addTask(listID, taskID, title, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{ID: taskID, Title: title, Status: status})
}

// Titles returns the titles of every task in a list, in insertion order.
func (f *FakeService) Titles(listID string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var titles []string
	for _, t := range f.tasks[listID] {
		titles = append(titles, t.Title)
	}
	return titles
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, fmt.Errorf("%w: default", service.ErrListNotFound)
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	name = strings.TrimSpace(name)
	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrAmbiguousList, name)
	}
}

// ListOpenTasks implements service.Service.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrListNotFound, listID)
	}

	var open []service.Task
	for _, t := range tasks {
		if t.Status == service.StatusNeedsAction {
			open = append(open, t)
		}
	}
	return open, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return fmt.Errorf("%w: %s", service.ErrListNotFound, listID)
	}

	id := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     id,
		Title:  title,
		Status: service.StatusNeedsAction,
	})
	return nil
}

// FakeAuth is a service.Authenticator that records calls.
type FakeAuth struct {
	Valid    bool
	LoginErr error
	Logins   int
}

var _ service.Authenticator = (*FakeAuth)(nil)

// Login implements service.Authenticator. On success it writes a token file
// so later HasToken checks pass.
func (a *FakeAuth) Login(ctx context.Context, cfg *config.Config, prompt io.Writer) error {
	a.Logins++
	if a.LoginErr != nil {
		return a.LoginErr
	}
	fmt.Fprintln(prompt, "Open this URL in your browser:")
	fmt.Fprintln(prompt, "https://example.invalid/auth")
	if err := cfg.EnsureDir(); err != nil {
		return err
	}
	return writeFile(cfg.TokenPath(), `{"refresh_token":"fake"}`)
}

// TokenValid implements service.Authenticator.
func (a *FakeAuth) TokenValid(ctx context.Context, cfg *config.Config) bool {
	return a.Valid && cfg.HasToken()
}
