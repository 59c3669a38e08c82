package polaroid

import (
	"testing"
	"time"
)

type dragFixture struct {
	stack  *Stack
	cam    *Camera
	sched  *Scheduler
	reveal *Presenter
	drag   *DragController
}

func newDragFixture(t *testing.T, count int, cfg InteractionConfig) *dragFixture {
	t.Helper()
	pk, s, cam := newTestPicker(t, count)
	sched := NewScheduler()
	rv := NewPresenter(NewCatalog(testMessages, ""), sched, 0)
	return &dragFixture{
		stack:  s,
		cam:    cam,
		sched:  sched,
		reveal: rv,
		drag:   NewDragController(s, cam, pk, rv, cfg),
	}
}

// instantConfig applies lift and return targets immediately.
func instantConfig() InteractionConfig {
	cfg := DefaultInteractionConfig()
	cfg.TransitionDuration = 0
	return cfg
}

func selectedCount(s *Stack) int {
	n := 0
	for _, p := range s.Photos() {
		if p.Selected {
			n++
		}
	}
	return n
}

func TestPointerDownOnNothing(t *testing.T) {
	f := newDragFixture(t, 5, DefaultInteractionConfig())
	if f.drag.PointerDown(5, 5) {
		t.Fatal("PointerDown on empty space should not start a session")
	}
	if f.drag.Session() != nil || f.drag.State() != DragIdle {
		t.Errorf("state = %v, session = %v", f.drag.State(), f.drag.Session())
	}
	if selectedCount(f.stack) != 0 || f.stack.Selected() != nil {
		t.Error("no photo should be selected")
	}
}

func TestPointerUpWithoutSession(t *testing.T) {
	f := newDragFixture(t, 5, DefaultInteractionConfig())
	if got := f.drag.PointerUp(400, 300); got != ReleaseNone {
		t.Errorf("PointerUp = %v, want none", got)
	}
	f.drag.PointerMove(410, 300)
	if f.reveal.Visible() {
		t.Error("no-op release should not reveal")
	}
}

func TestPointerDownLiftsPhoto(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	if !f.drag.PointerDown(400, 300) {
		t.Fatal("expected a session")
	}
	p := f.stack.Photo(4)
	s := f.drag.Session()
	if s.Photo != p || !s.WasTopmost || f.drag.State() != DragArmed {
		t.Fatalf("session = %+v, state = %v", s, f.drag.State())
	}
	if !p.Selected || f.stack.Selected() != p {
		t.Error("picked photo should be selected")
	}
	if !approxEqual(p.Position.Z, f.stack.LiftDepth(), epsilon) {
		t.Errorf("Z = %f, want lift depth %f", p.Position.Z, f.stack.LiftDepth())
	}
	if !approxEqual(p.Scale.X, 1.05, epsilon) || !approxEqual(p.Scale.Y, 1.05, epsilon) {
		t.Errorf("Scale = %+v, want 1.05", p.Scale)
	}
	if f.drag.PointerDown(400, 300) {
		t.Error("a second PointerDown during a session should be ignored")
	}
}

func TestClickOnTopmostReveals(t *testing.T) {
	f := newDragFixture(t, 3, instantConfig())
	f.drag.PointerDown(400, 300)
	f.drag.PointerMove(403, 302)
	if f.drag.State() != DragArmed {
		t.Fatalf("movement under the threshold should stay armed, got %v", f.drag.State())
	}
	if got := f.drag.PointerUp(403, 302); got != ReleaseClick {
		t.Fatalf("PointerUp = %v, want click", got)
	}

	st := f.reveal.State()
	if !st.Active || st.Message != testMessages[2] || st.Index != 2 {
		t.Errorf("reveal = %+v, want message of photo 2", st)
	}
	p := f.stack.Photo(2)
	if p.Selected || f.drag.Session() != nil {
		t.Error("click should clear the selection and the session")
	}
	if !approxEqual(p.Position.Z, p.BaseDepth, epsilon) || p.Scale != (Vec2{1, 1}) {
		t.Errorf("photo should return to rest, got Z=%f scale=%+v", p.Position.Z, p.Scale)
	}
	if p.Position.X != 0 || p.Position.Y != 0 {
		t.Errorf("click should not move the photo, got %+v", p.Position)
	}
}

func TestDragPhotoZero(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	// Clear everything in front of photo 0.
	for _, p := range f.stack.Photos()[1:] {
		p.Position.X = 20
	}

	var released []Release
	f.drag.OnRelease = func(_ *Photo, r Release) { released = append(released, r) }

	if !f.drag.PointerDown(400, 300) || f.drag.Session().Photo.Index != 0 {
		t.Fatal("expected to pick photo 0")
	}
	f.drag.PointerMove(425, 300)
	if f.drag.State() != DragDragging {
		t.Fatalf("state = %v, want dragging", f.drag.State())
	}
	f.drag.PointerMove(450, 300)
	if got := f.drag.PointerUp(450, 300); got != ReleaseDrop {
		t.Fatalf("PointerUp = %v, want drop", got)
	}

	p := f.stack.Photo(0)
	lift := f.stack.LiftDepth()
	want, ok := f.cam.ScreenToPlane(450, 300, lift)
	if !ok {
		t.Fatal("ScreenToPlane failed")
	}
	if !approxEqual(p.Position.X, want.X, epsilon) || !approxEqual(p.Position.Y, want.Y, epsilon) {
		t.Errorf("position = %+v, want drop point %+v", p.Position, want)
	}
	if !approxEqual(p.Position.Z, lift, epsilon) {
		t.Errorf("dropped photo Z = %f, want it to stay at %f", p.Position.Z, lift)
	}
	if p.Selected || selectedCount(f.stack) != 0 {
		t.Error("drop should clear the selection")
	}
	if p.Scale != (Vec2{1, 1}) {
		t.Errorf("Scale = %+v, want 1", p.Scale)
	}
	if f.reveal.Visible() {
		t.Error("a drag should never reveal")
	}
	if len(released) != 1 || released[0] != ReleaseDrop {
		t.Errorf("OnRelease calls = %v", released)
	}
}

func TestDragOffCenterLandsOnDropPoint(t *testing.T) {
	f := newDragFixture(t, 1, DefaultInteractionConfig())
	cam := f.cam
	// Press near the top-right corner, away from the photo center.
	sx, sy := screenOf(t, cam, Vec3{0.8, 1.0, 0})
	if !f.drag.PointerDown(sx, sy) {
		t.Fatal("PointerDown should hit the photo")
	}
	plane := f.drag.Session().PlaneZ

	f.drag.PointerMove(sx+50, sy)
	if got := f.drag.PointerUp(sx+50, sy); got != ReleaseDrop {
		t.Fatalf("PointerUp = %v, want drop", got)
	}

	want, ok := cam.ScreenToPlane(sx+50, sy, plane)
	if !ok {
		t.Fatal("drop point should project onto the drag plane")
	}
	p := f.stack.Photo(0)
	if !approxEqual(p.Position.X, want.X, epsilon) || !approxEqual(p.Position.Y, want.Y, epsilon) {
		t.Errorf("position = (%f, %f), want drop point (%f, %f)", p.Position.X, p.Position.Y, want.X, want.Y)
	}
}

func TestClickDuringRestackFinishesMove(t *testing.T) {
	f := newDragFixture(t, 1, DefaultInteractionConfig())
	p := f.stack.Photo(0)
	p.Position.X, p.Position.Y = 1, -0.5
	f.stack.Restack(0.3, DefaultEase)
	f.stack.Update(0.1)

	sx, sy := screenOf(t, f.cam, p.Position)
	f.drag.PointerDown(sx, sy)
	if got := f.drag.PointerUp(sx, sy); got != ReleaseClick {
		t.Fatalf("PointerUp = %v, want click", got)
	}
	for i := 0; i < 30; i++ {
		f.stack.Update(0.02)
	}
	if p.Animating() {
		t.Fatal("transitions should have finished")
	}
	assertVec3(t, "position", p.Position, Vec3{0, 0, p.BaseDepth})
}

func TestDragDuringRestackStopsMove(t *testing.T) {
	f := newDragFixture(t, 1, DefaultInteractionConfig())
	p := f.stack.Photo(0)
	p.Position.X = 1
	f.stack.Restack(0.3, DefaultEase)
	f.stack.Update(0.1)

	sx, sy := screenOf(t, f.cam, p.Position)
	f.drag.PointerDown(sx, sy)
	plane := f.drag.Session().PlaneZ
	f.drag.PointerMove(sx+60, sy)
	f.drag.PointerUp(sx+60, sy)
	for i := 0; i < 30; i++ {
		f.stack.Update(0.02)
	}

	want, _ := f.cam.ScreenToPlane(sx+60, sy, plane)
	if !approxEqual(p.Position.X, want.X, epsilon) || !approxEqual(p.Position.Y, want.Y, epsilon) {
		t.Errorf("position = (%f, %f), want drop point (%f, %f)", p.Position.X, p.Position.Y, want.X, want.Y)
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	cfg := instantConfig()
	cfg.KeepGrabOffset = true
	f := newDragFixture(t, 1, cfg)
	cam := f.cam
	// Grab the photo near its top-right corner.
	sx, sy := screenOf(t, cam, Vec3{0.8, 1.0, 0})
	f.drag.PointerDown(sx, sy)
	s := f.drag.Session()
	start, _ := cam.ScreenToPlane(sx, sy, s.PlaneZ)

	f.drag.PointerMove(sx-60, sy+40)
	end, _ := cam.ScreenToPlane(sx-60, sy+40, s.PlaneZ)
	f.drag.PointerUp(sx-60, sy+40)

	p := f.stack.Photo(0)
	wantX := end.X - start.X
	wantY := end.Y - start.Y
	if !approxEqual(p.Position.X, wantX, epsilon) || !approxEqual(p.Position.Y, wantY, epsilon) {
		t.Errorf("position = (%f, %f), want (%f, %f)", p.Position.X, p.Position.Y, wantX, wantY)
	}
}

func TestReturningWithinThresholdIsClick(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	f.drag.PointerDown(400, 300)
	f.drag.PointerMove(430, 300)
	f.drag.PointerMove(402, 300)
	if got := f.drag.PointerUp(402, 300); got != ReleaseClick {
		t.Errorf("PointerUp = %v, want click: total displacement is under the threshold", got)
	}
}

func TestPointerDownIgnoredWhileRevealed(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	f.drag.PointerDown(400, 300)
	f.drag.PointerUp(400, 300)
	if !f.reveal.Visible() {
		t.Fatal("expected a reveal")
	}
	if f.drag.PointerDown(400, 300) {
		t.Fatal("PointerDown during a reveal should be ignored")
	}
	if selectedCount(f.stack) != 0 {
		t.Error("no photo should be selected during a reveal")
	}

	f.sched.Advance(2 * time.Second)
	if !f.drag.PointerDown(400, 300) {
		t.Error("picking should resume once the reveal clears")
	}
}

func TestSecondClickReplacesReveal(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	f.drag.PointerDown(400, 300)
	f.drag.PointerUp(400, 300)
	f.sched.Advance(1500 * time.Millisecond)

	// Bypass the pointer guard and click again through the presenter, as a
	// second click would.
	f.reveal.Show(1)
	f.sched.Advance(1000 * time.Millisecond)
	if f.reveal.State().Message != testMessages[1] {
		t.Fatalf("newer message cleared early: %+v", f.reveal.State())
	}
	if f.sched.Pending() != 1 {
		t.Errorf("Pending = %d, want a single hide timer", f.sched.Pending())
	}
}

func TestRevealTopmostOnly(t *testing.T) {
	cfg := instantConfig()
	cfg.RevealTopmostOnly = true
	f := newDragFixture(t, 5, cfg)
	for _, p := range f.stack.Photos()[1:] {
		p.Position.X = 20
	}
	// Photo 0 is on top of nothing at screen center, but it is not the
	// topmost photo of the stack.
	f.drag.PointerDown(400, 300)
	if got := f.drag.PointerUp(400, 300); got != ReleaseDrop {
		t.Errorf("PointerUp = %v, want drop", got)
	}
	if f.reveal.Visible() {
		t.Error("clicking a buried photo should not reveal")
	}
}

func TestAtMostOneSelected(t *testing.T) {
	f := newDragFixture(t, 5, DefaultInteractionConfig())
	points := [][2]float32{{400, 300}, {5, 5}, {420, 320}, {380, 250}}
	for i, pt := range points {
		f.drag.PointerDown(pt[0], pt[1])
		if n := selectedCount(f.stack); n > 1 {
			t.Fatalf("step %d: %d photos selected", i, n)
		}
		f.drag.PointerMove(pt[0]+40, pt[1])
		f.drag.PointerUp(pt[0]+40, pt[1])
		if n := selectedCount(f.stack); n != 0 {
			t.Fatalf("step %d: %d photos selected after release", i, n)
		}
		f.stack.Update(1)
	}
}

func TestCancelDropsWithoutReveal(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	f.drag.PointerDown(400, 300)
	f.drag.Cancel()
	if f.drag.Session() != nil || f.reveal.Visible() {
		t.Error("Cancel should end the session without revealing")
	}
	f.drag.Cancel()
}

func TestPointerTrackerEdges(t *testing.T) {
	f := newDragFixture(t, 5, instantConfig())
	var pt pointerTracker

	pt.feed(f.drag, 400, 300, true)
	if f.drag.State() != DragArmed {
		t.Fatalf("press: state = %v, want armed", f.drag.State())
	}
	pt.feed(f.drag, 400, 300, true)
	pt.feed(f.drag, 460, 300, true)
	if f.drag.State() != DragDragging {
		t.Fatalf("move: state = %v, want dragging", f.drag.State())
	}
	pt.feed(f.drag, 460, 300, false)
	if f.drag.State() != DragIdle {
		t.Errorf("release: state = %v, want idle", f.drag.State())
	}
	pt.feed(f.drag, 470, 300, false)
	if f.drag.Session() != nil {
		t.Error("hover should not start a session")
	}
}
