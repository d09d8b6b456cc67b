package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering svg...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerAnimates(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering svg...")
	s.animate = true
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering svg...") {
		t.Errorf("output = %q, want the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output = %q, want the line cleared", out)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Rendering pdf...")
	s.animate = true
	s.Start()

	cancel()
	time.Sleep(2 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer

	unstarted := newSpinner(context.Background(), &buf, "never started")
	unstarted.Stop()
	unstarted.Stop()

	s := newSpinner(context.Background(), &buf, "Rendering png...")
	s.animate = true
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerNilContext(t *testing.T) {
	s := newSpinner(nil, &bytes.Buffer{}, "Test")
	s.Start()
	s.Stop()
}
