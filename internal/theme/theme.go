// Package theme stores the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo/internal/storage"
)

// Key is the storage slot holding the preference.
const Key = "todo-theme"

// Theme is a display palette name.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse maps user input to a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme: %s (use light or dark)", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Load reads the stored preference. An absent or unrecognized value is Light;
// only a storage failure is returned as an error, together with Light.
func Load(ctx context.Context, st storage.Storage) (Theme, error) {
	data, err := st.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, fmt.Errorf("load theme: %w", err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return Light, nil
	}
	return t, nil
}

// Save stores the preference.
func Save(ctx context.Context, st storage.Storage, t Theme) error {
	if err := st.Set(ctx, Key, []byte(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
