package polaroid

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// frameStats holds per-frame timing. Only populated when debug is on.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	render     RenderStats
	animating  bool
	state      DragState
}

// debugLogger prints frame stats at most once per interval so the log stays
// readable at 60 TPS.
type debugLogger struct {
	log      *log.Logger
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func newDebugLogger(l *log.Logger, interval time.Duration) *debugLogger {
	return &debugLogger{log: l, interval: interval, now: time.Now}
}

func (d *debugLogger) frame(stats frameStats) {
	if d == nil || d.log == nil {
		return
	}
	now := d.now()
	if now.Sub(d.last) < d.interval {
		return
	}
	d.last = now
	d.log.Printf("update: %v | draw: %v | photos: %d | surfaces: %d | culled: %d | draw calls: %d | drag: %v | animating: %t",
		stats.updateTime, stats.drawTime, stats.render.Photos, stats.render.Surfaces,
		stats.render.Culled, stats.render.DrawCalls, stats.state, stats.animating)
}

// checkSelection verifies that at most one photo is selected and that it is
// the photo held by the drag session, if any.
func checkSelection(s *Stack, d *DragController) error {
	var selected *Photo
	for _, p := range s.Photos() {
		if !p.Selected {
			continue
		}
		if selected != nil {
			return fmt.Errorf("polaroid: photos %d and %d both selected", selected.Index, p.Index)
		}
		selected = p
	}
	if selected != s.Selected() {
		return errors.New("polaroid: stack selection out of sync")
	}
	var held *Photo
	if sess := d.Session(); sess != nil {
		held = sess.Photo
	}
	if held != selected {
		return errors.New("polaroid: drag session and selection disagree")
	}
	return nil
}
