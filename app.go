package polaroid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	messageFontSize = 28
	shareCodeMargin = 16
	debugInterval   = time.Second
)

// App owns every piece of scene state: the stack, the camera, the picker,
// the drag controller and the reveal presenter. It implements ebiten.Game.
// All methods run on the game loop goroutine.
type App struct {
	cfg Config
	log *log.Logger

	cam      *Camera
	stack    *Stack
	picker   *Picker
	sched    *Scheduler
	reveal   *Presenter
	drag     *DragController
	renderer *Renderer
	overlay  *MessageOverlay
	fps      *FPSWidget
	share    *ebiten.Image
	debug    *debugLogger

	pointer         pointerTracker
	injectQueue     []syntheticPointerEvent
	runner          *TestRunner
	screenshotQueue []string

	ctx    context.Context
	images <-chan LoadedImage
	stats  frameStats

	// ExitWhenScriptDone ends the game loop once the attached runner has
	// finished.
	ExitWhenScriptDone bool
}

// NewApp builds the scene for album. A nil logger writes to stderr with a
// "[polaroid] " prefix.
func NewApp(cfg Config, album Album, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if album.Len() == 0 {
		return nil, ErrNoPhotos
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[polaroid] ", log.LstdFlags)
	}

	count := album.Len()
	if cfg.PhotoCount > 0 {
		count = cfg.PhotoCount
	}
	stack, err := NewStack(cfg.stackConfig(count))
	if err != nil {
		return nil, fmt.Errorf("polaroid: build stack: %w", err)
	}
	stack.SetSway(cfg.swayConfig())
	sources := album.Sources()
	for i, p := range stack.Photos() {
		if i < len(sources) {
			p.Source = sources[i]
		}
	}

	font, err := DefaultFont(messageFontSize)
	if err != nil {
		return nil, err
	}

	cam := NewCamera(Rect{Width: float32(cfg.Width), Height: float32(cfg.Height)})
	picker := NewPicker(cam, stack)
	sched := NewScheduler()
	reveal := NewPresenter(album.Catalog(), sched, cfg.RevealDelay)

	a := &App{
		cfg:      cfg,
		log:      logger,
		cam:      cam,
		stack:    stack,
		picker:   picker,
		sched:    sched,
		reveal:   reveal,
		drag:     NewDragController(stack, cam, picker, reveal, cfg.interactionConfig()),
		renderer: NewRenderer(cam, stack),
		overlay:  NewMessageOverlay(font),
		ctx:      context.Background(),
	}

	if cfg.ShowFPS {
		a.fps = NewFPSWidget()
	}
	if cfg.ShareURL != "" {
		img, err := ShareCode(cfg.ShareURL, 0)
		if err != nil {
			return nil, err
		}
		a.share = ebiten.NewImageFromImage(img)
	}
	if cfg.Debug {
		a.debug = newDebugLogger(logger, debugInterval)
		a.drag.OnRelease = func(p *Photo, r Release) {
			logger.Printf("photo %d released: %v at (%.2f, %.2f, %.2f)", p.Index, r, p.Position.X, p.Position.Y, p.Position.Z)
		}
		a.reveal.OnChange = func(st RevealState) {
			if st.Active {
				logger.Printf("reveal photo %d: %q", st.Index, st.Message)
			} else {
				logger.Printf("reveal cleared")
			}
		}
	}
	return a, nil
}

// Stack returns the photo stack.
func (a *App) Stack() *Stack { return a.stack }

// Camera returns the scene camera.
func (a *App) Camera() *Camera { return a.cam }

// Drag returns the drag controller.
func (a *App) Drag() *DragController { return a.drag }

// Reveal returns the reveal presenter.
func (a *App) Reveal() *Presenter { return a.reveal }

// Runner returns the attached test runner, or nil.
func (a *App) Runner() *TestRunner { return a.runner }

// Restack animates every photo not currently held back into a neat pile.
func (a *App) Restack() {
	ic := a.drag.cfg
	a.stack.Restack(ic.TransitionDuration, ic.Ease)
}

// StartLoading fetches every photo's image in the background. Textures are
// attached on the loop goroutine as results arrive; photos keep their
// placeholder until then. Cancelling ctx abandons outstanding fetches and
// ends the game loop.
func (a *App) StartLoading(ctx context.Context) {
	a.ctx = ctx
	sources := make([]string, 0, a.stack.Len())
	for _, p := range a.stack.Photos() {
		sources = append(sources, p.Source)
	}
	loader := NewLoader(a.cfg.TextureSize, a.cfg.FetchConcurrency, a.cfg.FetchTimeout, a.log)
	a.images = loader.Start(ctx, sources)
}

// drainImages attaches every image that has arrived since the last tick.
func (a *App) drainImages() {
	for a.images != nil {
		select {
		case r, ok := <-a.images:
			if !ok {
				a.images = nil
				return
			}
			a.attach(r)
		default:
			return
		}
	}
}

func (a *App) attach(r LoadedImage) {
	if r.Err != nil || r.Image == nil {
		return
	}
	p := a.stack.Photo(r.Index)
	if p == nil {
		return
	}
	if p.Texture != nil {
		p.Texture.Deallocate()
	}
	p.Texture = ebiten.NewImageFromImage(r.Image)
}

// pointerLost drops a held photo where the pointer last was and forgets
// the press, so the release that happens outside the window is not needed.
func (a *App) pointerLost() {
	a.drag.Cancel()
	a.pointer.down = false
	a.pointer.touching = false
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	return a.step(1/float64(ebiten.TPS()), true)
}

// step runs one tick of dt seconds. Real pointer input is only polled when
// poll is set and no synthetic event was consumed.
func (a *App) step(dt float64, poll bool) error {
	if err := a.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	start := time.Now()

	a.drainImages()

	if a.runner != nil {
		a.runner.step(a)
		if a.runner.Done() && a.ExitWhenScriptDone && len(a.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	if !a.processInjectedInput() && poll {
		if ebiten.IsFocused() {
			x, y, pressed := a.pointer.read()
			a.pointer.feed(a.drag, x, y, pressed)
			if inpututil.IsKeyJustPressed(ebiten.KeyR) {
				a.Restack()
			}
		} else if a.pointer.down {
			a.pointerLost()
		}
	}

	a.sched.Advance(time.Duration(dt * float64(time.Second)))
	a.stack.Update(float32(dt))
	if a.fps != nil {
		a.fps.Update(dt)
	}

	if a.debug != nil {
		if err := checkSelection(a.stack, a.drag); err != nil {
			a.log.Printf("warning: %v", err)
		}
		a.stats.updateTime = time.Since(start)
		a.stats.animating = a.stack.Animating()
		a.stats.state = a.drag.State()
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	start := time.Now()

	a.renderer.Draw(screen)
	a.overlay.Draw(screen, a.reveal.State().Message)

	if a.share != nil {
		sb, b := a.share.Bounds(), screen.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(b.Dx()-sb.Dx()-shareCodeMargin), float64(b.Dy()-sb.Dy()-shareCodeMargin))
		screen.DrawImage(a.share, &op)
	}
	if a.fps != nil {
		a.fps.Draw(screen, 0, 0)
	}

	a.flushScreenshots(screen)

	if a.debug != nil {
		a.stats.drawTime = time.Since(start)
		a.stats.render = a.renderer.Stats()
		a.debug.frame(a.stats)
	}
}

// Layout implements ebiten.Game. The render surface always matches the
// window, and the camera follows its aspect ratio.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.cam.Resize(float32(outsideWidth), float32(outsideHeight)) && a.debug != nil {
		a.log.Printf("resize: %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and runs the stack until the window closes or ctx is
// cancelled. With cfg.ScriptPath set it plays the script and returns its
// failed expectations.
func Run(ctx context.Context, cfg Config, album Album, logger *log.Logger) error {
	app, err := NewApp(cfg, album, logger)
	if err != nil {
		return err
	}
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("polaroid: read script: %w", err)
		}
		runner, err := LoadTestScript(data)
		if err != nil {
			return err
		}
		app.SetTestRunner(runner)
		app.ExitWhenScriptDone = true
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.StartLoading(ctx)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("polaroid: run: %w", err)
	}
	if app.runner != nil {
		return app.runner.Err()
	}
	return nil
}
