package cli

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf strings.Builder
	s := startSpinner(context.Background(), &buf, "Rendering graph")
	time.Sleep(3 * spinnerInterval)
	s.stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering graph") {
		t.Errorf("output %q should contain the message", out)
	}
	clear := "\r" + strings.Repeat(" ", len("Rendering graph")+2) + "\r"
	if !strings.HasSuffix(out, clear) {
		t.Errorf("output %q should end by clearing the line", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	var buf strings.Builder
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &buf, "Rendering graph")
	cancel()

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	s.stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	var buf strings.Builder
	s := startSpinner(context.Background(), &buf, "x")
	s.stop()
	n := buf.Len()
	s.stop()
	if buf.Len() != n {
		t.Error("second stop should not write")
	}
}

func TestSpinnerFail(t *testing.T) {
	var buf strings.Builder
	s := startSpinner(context.Background(), &buf, "Rendering graph")
	s.fail("Rendering failed")
	select {
	case <-s.exited:
	default:
		t.Error("fail should stop the animation")
	}
}
