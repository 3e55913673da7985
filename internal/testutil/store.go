package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"todo/internal/storage"
	"todo/internal/task"
)

// Epoch is the creation time of the first task made by NewStore.
var Epoch = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// IDFor returns the id NewStore gives its n-th task (1-based).
func IDFor(n int) string {
	return fmt.Sprintf("a%07d-0000-4000-8000-000000000000", n)
}

// StoreOptions returns deterministic id and clock options. Task n gets
// IDFor(n) and Epoch plus n-1 minutes.
func StoreOptions() []task.Option {
	n := 0
	return []task.Option{
		task.WithIDGenerator(func() string {
			n++
			return IDFor(n)
		}),
		task.WithClock(func() time.Time {
			return Epoch.Add(time.Duration(n-1) * time.Minute)
		}),
		task.WithLogger(zap.NewNop()),
	}
}

// NewStore opens a deterministic store over fresh memory storage and adds
// texts oldest first, so the last text is listed first.
func NewStore(t testing.TB, texts ...string) (*task.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	s, err := task.Open(context.Background(), mem, StoreOptions()...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, text := range texts {
		if _, err := s.Add(context.Background(), text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}
	return s, mem
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
