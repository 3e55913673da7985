// Package service defines the backend-agnostic interface of the remote task
// service that local tasks can be pushed to.
package service

import (
	"context"
	"errors"
	"io"

	"todo/internal/config"
)

// Errors returned by Service implementations, possibly wrapped.
var (
	// ErrAuth means the stored credentials are missing, expired or revoked.
	ErrAuth = errors.New("not authorized")

	// ErrListNotFound means no list matched a name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList means more than one list matched a name.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrTimeout means a request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")
)

// Service defines the remote operations push needs.
// Commands never import the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrListNotFound or ErrAmbiguousList.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns every open task of a list in API order,
	// fetched PageSize at a time.
	ListOpenTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}

// PageSize is the number of tasks requested per page.
const PageSize = 100

// Factory creates a Service from config.
type Factory func(ctx context.Context, cfg *config.Config) (Service, error)

// Authenticator obtains and checks stored credentials.
type Authenticator interface {
	// Login runs the interactive authorization flow, writing instructions
	// to prompt, and stores the resulting token.
	Login(ctx context.Context, cfg *config.Config, prompt io.Writer) error

	// TokenValid reports whether the stored token can still be used.
	TokenValid(ctx context.Context, cfg *config.Config) bool
}
