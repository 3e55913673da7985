package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"todo/internal/task"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Raw      string // as typed
	Position int    // 1-based position in the full list, 0 for an id reference
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses one task reference.
//
// An all-digit reference is a position in the full list as printed by list.
// Anything else is an id or id prefix.
func ParseTaskRef(s string) (TaskRef, error) {
	if s == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if !isAllDigits(s) {
		return TaskRef{Raw: s}, nil
	}

	num, err := strconv.Atoi(s)
	if err != nil || num < 1 {
		return TaskRef{}, fmt.Errorf("task number out of range: %s", s)
	}
	return TaskRef{Raw: s, Position: num}, nil
}

// ParseTaskRefs parses every argument as a task reference.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Resolve finds the task ref points to.
func (r TaskRef) Resolve(s *task.Store) (task.Task, error) {
	if r.Position == 0 {
		return s.Find(r.Raw)
	}
	tasks := s.Tasks()
	if r.Position > len(tasks) {
		return task.Task{}, &task.NotFoundError{Ref: r.Raw, Reason: "task number out of range"}
	}
	return tasks[r.Position-1], nil
}

// resolveAll resolves every ref against the list as it is now, before any
// change, dropping repeats.
func resolveAll(s *task.Store, refs []TaskRef) ([]task.Task, error) {
	seen := make(map[string]bool, len(refs))
	var out []task.Task
	for _, ref := range refs {
		t, err := ref.Resolve(s)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
