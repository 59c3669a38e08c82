package polaroid

import "testing"

func TestInjectClick(t *testing.T) {
	a := newTestApp(t, nil)
	a.InjectClick(100, 200)
	if len(a.injectQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(a.injectQueue))
	}
	press, release := a.injectQueue[0], a.injectQueue[1]
	if !press.pressed || release.pressed {
		t.Error("click should queue press then release")
	}
	if press.screenX != 100 || press.screenY != 200 || release.screenX != 100 {
		t.Errorf("coordinates = %+v, %+v", press, release)
	}
}

func TestInjectDrag(t *testing.T) {
	a := newTestApp(t, nil)
	a.InjectDrag(0, 0, 100, 50, 6)
	if len(a.injectQueue) != 6 {
		t.Fatalf("queue len = %d, want 6", len(a.injectQueue))
	}
	for i, evt := range a.injectQueue[:5] {
		if !evt.pressed {
			t.Errorf("event %d should be pressed", i)
		}
	}
	last := a.injectQueue[5]
	if last.pressed || last.screenX != 100 || last.screenY != 50 {
		t.Errorf("last event = %+v", last)
	}
	mid := a.injectQueue[2]
	if !approxEqual(mid.screenX, 40, epsilon) || !approxEqual(mid.screenY, 20, epsilon) {
		t.Errorf("interpolated move = %+v, want (40, 20)", mid)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	a := newTestApp(t, nil)
	a.InjectDrag(0, 0, 10, 10, 0)
	if len(a.injectQueue) != 2 {
		t.Errorf("queue len = %d, want 2", len(a.injectQueue))
	}
}

func TestProcessInjectedInput(t *testing.T) {
	a := newTestApp(t, nil)
	if a.processInjectedInput() {
		t.Fatal("empty queue should not consume")
	}
	a.InjectPress(400, 300)
	if !a.processInjectedInput() {
		t.Fatal("expected an event to be consumed")
	}
	if a.Drag().State() != DragArmed || a.Drag().Session().Photo.Index != 4 {
		t.Errorf("state = %v after injected press", a.Drag().State())
	}
	if a.PendingInput() != 0 {
		t.Errorf("PendingInput = %d", a.PendingInput())
	}
}
