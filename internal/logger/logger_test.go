package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(string, ...any)
		expected string
	}{
		{"debug", Debug, "[DEBUG] tier local returned 3 results\n"},
		{"info", Info, "[INFO] tier local returned 3 results\n"},
		{"warn", Warn, "[WARN] tier local returned 3 results\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log("tier %s returned %d results", "local", 3)
			assert.Equal(t, tt.expected, buf.String())
		})

		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log("tier %s returned %d results", "local", 3)
			assert.Empty(t, buf.String())
		})
	}
}

func TestError_AlwaysPrints(t *testing.T) {
	buf := capture(t, false)

	Error("ingest failed: %s", "permission denied")

	assert.Equal(t, "[ERROR] ingest failed: permission denied\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Retrieval")
	assert.Equal(t, "\n=== Retrieval ===\n", buf.String())

	quiet := capture(t, false)
	Section("Retrieval")
	assert.Empty(t, quiet.String())
}

func TestConcurrentWrites(t *testing.T) {
	buf := capture(t, true)

	done := make(chan struct{})
	for i := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			Debug("worker %d", i)
		}()
	}
	for range 8 {
		<-done
	}

	assert.Equal(t, 8, bytes.Count(buf.Bytes(), []byte("[DEBUG] worker ")))
}
