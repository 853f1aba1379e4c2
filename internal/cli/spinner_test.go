package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinner(ctx, message)
	s.w = &buf
	return s, &buf
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Expanding graph...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Expanding graph...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	// Stop cancels the spinner context as well.
	if !s.Cancelled() {
		t.Error("Cancelled() should report true after Stop")
	}
}

func TestSpinnerUpdateWidensClear(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Go")
	s.Update("Step 12/12 (split)...")
	if s.width != len("Step 12/12 (split)...") {
		t.Errorf("width = %d after longer update", s.width)
	}
	s.Update("x")
	if s.width != len("Step 12/12 (split)...") {
		t.Errorf("width shrank to %d", s.width)
	}

	s.Start()
	s.Stop()
	blank := strings.Repeat(" ", s.width+4)
	if !strings.Contains(buf.String(), blank) {
		t.Error("Stop should blank the widest message")
	}
}

func TestSpinnerStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx, "Rendering svg...")
	s.Start()
	<-s.exited

	if !s.Cancelled() {
		t.Error("spinner should be cancelled once its context expires")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Ran 2 steps")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerHooks(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Expanding graph...")
	h := spinnerHooks{spinner: s, steps: 3}

	h.OnStepStart(context.Background(), "b->d", 1, "insert")
	if s.message != "Step 2/3 (insert)..." {
		t.Errorf("message = %q", s.message)
	}

	h.OnRenderStart(context.Background(), []string{"svg", "dot"})
	if s.message != "Rendering svg, dot..." {
		t.Errorf("message = %q", s.message)
	}
}
