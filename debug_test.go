package polaroid

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestDebugLoggerThrottles(t *testing.T) {
	var buf bytes.Buffer
	d := newDebugLogger(log.New(&buf, "[polaroid] ", 0), time.Second)
	now := time.Unix(100, 0)
	d.now = func() time.Time { return now }

	d.frame(frameStats{render: RenderStats{Photos: 5, DrawCalls: 10}})
	now = now.Add(500 * time.Millisecond)
	d.frame(frameStats{})
	now = now.Add(600 * time.Millisecond)
	d.frame(frameStats{state: DragDragging})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logged %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "[polaroid] ") || !strings.Contains(lines[0], "photos: 5") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "drag: dragging") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestDebugLoggerNil(t *testing.T) {
	var d *debugLogger
	d.frame(frameStats{})
}

func TestCheckSelection(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	if err := checkSelection(f.stack, f.drag); err != nil {
		t.Fatalf("idle: %v", err)
	}
	f.drag.PointerDown(400, 300)
	if err := checkSelection(f.stack, f.drag); err != nil {
		t.Fatalf("armed: %v", err)
	}
	f.stack.Photo(0).Selected = true
	if err := checkSelection(f.stack, f.drag); err == nil {
		t.Error("two selected photos should be reported")
	}
	f.stack.Photo(0).Selected = false
	f.stack.Deselect()
	if err := checkSelection(f.stack, f.drag); err == nil {
		t.Error("session without selection should be reported")
	}
}
