package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Level: slog.LevelInfo})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("commit", "label", "John")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "commit", rec["msg"])
	assert.Equal(t, "John", rec["label"])
	assert.Equal(t, "", l.Path())
}

func TestRecent_KeepsWarningsInOrder(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, RingSize: 2})
	require.NoError(t, err)

	l.With("component", "editor").Warn("one")
	l.Info("skip")
	l.Error("two")
	l.Warn("three")

	got := l.Recent()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
	assert.Contains(t, got[1].Format(), "WARN")

	warn, errs := l.Counts()
	assert.Equal(t, 2, warn)
	assert.Equal(t, 1, errs)

	l.ClearCounts()
	warn, errs = l.Counts()
	assert.Zero(t, warn)
	assert.Zero(t, errs)
}

func TestNew_FileRotationTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "atmention.log")
	l, err := New(Options{Path: path})
	require.NoError(t, err)
	defer l.Close()

	l.Warn("to file")
	assert.Equal(t, path, l.Path())
	assert.FileExists(t, path)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
