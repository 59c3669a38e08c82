package polaroid

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates. It is fed through the same edge tracker as real input.
type syntheticPointerEvent struct {
	screenX, screenY float32
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next tick.
func (a *App) InjectPress(x, y float32) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (a *App) InjectMove(x, y float32) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (a *App) InjectRelease(x, y float32) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (a *App) InjectClick(x, y float32) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and release at (toX, toY). Minimum frames is 2.
func (a *App) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (a *App) PendingInput() int {
	return len(a.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it to the drag
// controller. Returns true if an event was consumed, in which case real
// pointer input is skipped for the tick.
func (a *App) processInjectedInput() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	a.pointer.feed(a.drag, evt.screenX, evt.screenY, evt.pressed)
	return true
}
