package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WarnByDefault(t *testing.T) {
	var buf bytes.Buffer
	log, level := New(&buf, false)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("task list not saved", zap.String("key", "todos"))

	out := buf.String()
	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, "task list not saved")
	assert.Contains(t, out, `"key": "todos"`)
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(&buf, true)

	log.Debug("saved tasks")
	assert.Contains(t, buf.String(), "saved tasks")
}

func TestNew_LevelReachesDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	log, level := New(&buf, false)
	child := log.Named("store")

	child.Debug("before")
	level.SetLevel(zapcore.DebugLevel)
	child.Debug("during")
	level.SetLevel(zapcore.WarnLevel)
	child.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "during")
	assert.NotContains(t, out, "after")
}
