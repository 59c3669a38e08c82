package polaroid

import "time"

const (
	// DefaultFallbackMessage is shown for photos without a catalog entry.
	DefaultFallbackMessage = "You're amazing!"
	// DefaultRevealDelay is how long a revealed message stays visible.
	DefaultRevealDelay = 2000 * time.Millisecond
)

// Catalog maps photo indices to messages. It is read-only once built.
type Catalog struct {
	messages []string
	fallback string
}

// NewCatalog copies messages into a catalog. An empty fallback uses
// DefaultFallbackMessage.
func NewCatalog(messages []string, fallback string) *Catalog {
	if fallback == "" {
		fallback = DefaultFallbackMessage
	}
	return &Catalog{messages: append([]string(nil), messages...), fallback: fallback}
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.messages)
}

// Fallback returns the message used for missing entries.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Message returns the entry for index. Indices outside the catalog and empty
// entries resolve to the fallback.
func (c *Catalog) Message(index int) string {
	if index < 0 || index >= len(c.messages) || c.messages[index] == "" {
		return c.fallback
	}
	return c.messages[index]
}

// RevealState is the currently displayed message, if any.
type RevealState struct {
	Active  bool
	Message string
	// Index is the photo that triggered the reveal.
	Index int
	// VisibleUntil is the scheduler time at which the message clears.
	VisibleUntil time.Duration
}

// Presenter shows a catalog message for a fixed delay after a click.
//
// Showing a new message while one is visible stops the pending hide timer
// and schedules a fresh one, so an older timer can never clear a newer
// message.
type Presenter struct {
	catalog *Catalog
	sched   *Scheduler
	delay   time.Duration

	state RevealState
	timer *Timer

	// OnChange, if set, is called after every show and hide.
	OnChange func(RevealState)
}

// NewPresenter creates a presenter. A non-positive delay uses
// DefaultRevealDelay.
func NewPresenter(catalog *Catalog, sched *Scheduler, delay time.Duration) *Presenter {
	if delay <= 0 {
		delay = DefaultRevealDelay
	}
	return &Presenter{catalog: catalog, sched: sched, delay: delay}
}

// Catalog returns the presenter's message catalog.
func (p *Presenter) Catalog() *Catalog {
	return p.catalog
}

// Delay returns how long a message stays visible.
func (p *Presenter) Delay() time.Duration {
	return p.delay
}

// State returns the current reveal state.
func (p *Presenter) State() RevealState {
	return p.state
}

// Visible reports whether a message is showing.
func (p *Presenter) Visible() bool {
	return p.state.Active
}

// Show displays the message for the photo index and (re)starts the hide
// timer. Returns the message shown.
func (p *Presenter) Show(index int) string {
	if p.timer != nil {
		p.timer.Stop()
	}
	msg := p.catalog.Message(index)
	p.state = RevealState{
		Active:       true,
		Message:      msg,
		Index:        index,
		VisibleUntil: p.sched.Now() + p.delay,
	}
	p.timer = p.sched.AfterFunc(p.delay, p.expire)
	p.notify()
	return msg
}

// Hide clears the message immediately and cancels the pending timer.
func (p *Presenter) Hide() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if !p.state.Active {
		return
	}
	p.state = RevealState{}
	p.notify()
}

func (p *Presenter) expire() {
	p.timer = nil
	p.state = RevealState{}
	p.notify()
}

func (p *Presenter) notify() {
	if p.OnChange != nil {
		p.OnChange(p.state)
	}
}
