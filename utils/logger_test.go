package utils

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose_And_IsVerbose(t *testing.T) {
	// save original state and restore after test
	original := IsVerbose()
	defer SetVerbose(original)

	SetVerbose(true)
	assert.True(t, IsVerbose(), "expected IsVerbose() = true after SetVerbose(true)")

	SetVerbose(false)
	assert.False(t, IsVerbose(), "expected IsVerbose() = false after SetVerbose(false)")
}

func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func TestVerbose_SilentWhenDisabled(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)

	buf := captureOutput(t)
	SetVerbose(false)
	Verbose("test message %s %d", "arg", 42)

	assert.Empty(t, buf.String())
}

func TestVerbose_WritesWhenEnabled(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)

	buf := captureOutput(t)
	SetVerbose(true)
	Verbose("test message %s %d", "arg", 42)

	assert.Contains(t, buf.String(), "test message arg 42")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestInfo_AndWarn(t *testing.T) {
	buf := captureOutput(t)

	Info("test info %s", "message")
	Warn("test warn %s", "message")

	assert.Contains(t, buf.String(), "test info message")
	assert.Contains(t, buf.String(), "level=warning")
}
