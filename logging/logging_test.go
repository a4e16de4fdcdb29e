package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogErrorIncludesRunIDAndMessage(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nopWriter{}) })

	LogError("Failed to read images: %s, %s", "a.png", "b.png")

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "Failed to read images: a.png, b.png")
	assert.Contains(t, out, "run_id="+RunID())
}

func TestDebugLogRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nopWriter{}) })

	require.NoError(t, SetupLogger("", false))
	DebugLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	require.NoError(t, SetupLogger("", true))
	t.Cleanup(func() { _ = SetupLogger("", false) })
	DebugLog("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLogImageMovedDryRun(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nopWriter{}) })

	LogImageMoved("c1-200.png", 12.5, true)
	assert.Contains(t, buf.String(), `msg="WOULD MOVE"`)
	assert.Contains(t, buf.String(), "file=c1-200.png")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
