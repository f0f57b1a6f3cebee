package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Info("removed board", "snr", "683123456")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="removed board"`)
	assert.Contains(t, out, "snr=683123456")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "time=")
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("recovering", "snr", "1")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestOrDiscard(t *testing.T) {
	l := New(&bytes.Buffer{}, false)
	assert.Same(t, l, OrDiscard(l))
	assert.NotNil(t, OrDiscard(nil))
	OrDiscard(nil).Error("dropped")
}
