package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"todo/internal/task"
	"todo/internal/theme"
)

var created = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task task.Task
		want string
	}{
		{"pending", 1, task.Task{Text: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"completed", 12, task.Task{Text: "Walk dog", Completed: true}, "  12  [x] Walk dog\n"},
		{"newlines", 3, task.Task{Text: "a\nb\r\nc"}, "   3  [ ] a b  c\n"},
		{"wide number", 12345, task.Task{Text: "x"}, "12345  [ ] x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, theme.Light).FormatTask(tt.num, tt.task)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTaskLong(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, theme.Dark, WithLocation(time.UTC))

	p.FormatTaskLong(1, task.Task{ID: "0f8e2c4a-9b1d-4e1a", Text: "Buy milk", CreatedAt: created})
	p.FormatTaskLong(2, task.Task{ID: "id-1", Text: "Done", Completed: true, CreatedAt: created.Add(time.Hour)})

	want := "   1  [ ] 0f8e2c4a  2026/10/19 09:30  Buy milk\n" +
		"   2  [x] id-1      2026/10/19 10:30  Done\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, theme.Light).FormatStats(task.Stats{Total: 3, Completed: 1, Pending: 2})
	if got, want := buf.String(), "total 3  completed 1  pending 2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, theme.Light).FormatEmpty()
	if got := buf.String(); got != "no tasks found\n" {
		t.Errorf("got %q", got)
	}
}

func TestColorKeepsText(t *testing.T) {
	for _, th := range []theme.Theme{theme.Light, theme.Dark} {
		var buf bytes.Buffer
		NewPrinter(&buf, th, WithColor(true)).FormatTask(1, task.Task{Text: "Buy milk", Completed: true})
		if !strings.Contains(buf.String(), "Buy milk") {
			t.Errorf("%s: styled output lost the text: %q", th, buf.String())
		}
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}
