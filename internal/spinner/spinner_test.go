package spinner

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStart_NonTerminalDrawsNothing(t *testing.T) {
	var buf bytes.Buffer

	s := Start(&buf, "Computing validation metrics")
	s.Update("Rendering report")
	s.Stop()
	s.Stop()

	assert.Empty(t, buf.String())
}

func TestRun_ClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{
		w:       &buf,
		message: "Importing",
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	go s.run()

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.width > 0
	}, time.Second, 10*time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Importing")
	assert.True(t, len(out) > 0 && out[len(out)-1] == '\r')
}
