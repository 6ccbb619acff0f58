package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
	"github.com/opd-ai/go-shipsim/pkg/logging"
	"github.com/opd-ai/go-shipsim/pkg/physics"
)

// KeyHold is how long a key press counts as held. Terminals report presses
// and repeats but no releases.
const KeyHold = 150 * time.Millisecond

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// headingGlyphs is indexed by octant, counter-clockwise from +X
var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// TerminalRenderer draws frames onto a tcell screen and samples keyboard and
// mouse input from it.
type TerminalRenderer struct {
	screen tcell.Screen
	aspect float32
	logger *logging.Logger

	mu        sync.Mutex
	held      [dirCount]time.Time
	target    mgl32.Vec3
	hasTarget bool

	done      chan struct{}
	closeOnce sync.Once
	quitOnce  sync.Once
}

// NewTerminalScreen creates and initializes a tcell screen with mouse
// reporting enabled.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	return screen, nil
}

// NewTerminalRenderer wraps an initialized screen. aspect must match the
// camera so mouse positions land where objects are drawn.
func NewTerminalRenderer(screen tcell.Screen, aspect float32, logger *logging.Logger) *TerminalRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &TerminalRenderer{
		screen: screen,
		aspect: aspect,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start polls terminal events until the screen is finalized.
func (r *TerminalRenderer) Start(ctx context.Context) {
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			r.handleEvent(ctx, ev)
		}
	}()
}

// Done is closed when the user asks to quit
func (r *TerminalRenderer) Done() <-chan struct{} {
	return r.done
}

func (r *TerminalRenderer) quit() {
	r.quitOnce.Do(func() { close(r.done) })
}

func (r *TerminalRenderer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			r.quit()
		case tcell.KeyUp:
			r.press(dirUp, now)
		case tcell.KeyDown:
			r.press(dirDown, now)
		case tcell.KeyLeft:
			r.press(dirLeft, now)
		case tcell.KeyRight:
			r.press(dirRight, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'w', 'W':
				r.press(dirUp, now)
			case 's', 'S':
				r.press(dirDown, now)
			case 'a', 'A':
				r.press(dirLeft, now)
			case 'd', 'D':
				r.press(dirRight, now)
			case 'q', 'Q':
				r.quit()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.pointerAt(x, y)
	case *tcell.EventResize:
		w, h := r.screen.Size()
		r.logger.Debug(ctx, "Terminal resized", "width", w, "height", h)
		r.screen.Sync()
	}
}

func (r *TerminalRenderer) press(dir direction, now time.Time) {
	r.mu.Lock()
	r.held[dir] = now.Add(KeyHold)
	r.mu.Unlock()
}

func (r *TerminalRenderer) pointerAt(x, y int) {
	w, h := r.screen.Size()
	if w == 0 || h == 0 {
		return
	}
	target := entity.PointerToWorld(float32(x), float32(y), float32(w), float32(h), r.aspect)

	r.mu.Lock()
	r.target = target
	r.hasTarget = true
	r.mu.Unlock()
}

// Input samples the current control state at now
func (r *TerminalRenderer) Input(now time.Time) entity.Input {
	r.mu.Lock()
	defer r.mu.Unlock()

	in := entity.Input{
		Up:    now.Before(r.held[dirUp]),
		Down:  now.Before(r.held[dirDown]),
		Left:  now.Before(r.held[dirLeft]),
		Right: now.Before(r.held[dirRight]),
	}
	if r.hasTarget {
		in = in.WithTarget(r.target)
	}
	return in
}

// Draw implements Renderer. Each object is drawn as an arrow in the cell its
// origin projects to, pointing the way it faces.
func (r *TerminalRenderer) Draw(ctx context.Context, frame Frame) error {
	r.screen.Clear()
	w, h := r.screen.Size()

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, id := range frame.IDs() {
		m, _ := frame.Matrices(id)
		mvp := m.MVP()

		px, py := NDCToPixel(ProjectToNDC(mvp, mgl32.Vec3{}), float32(w), float32(h))
		x, y := int(math32.Floor(px)), int(math32.Floor(py))
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		facing := mvp.Mul4x1(physics.Forward.Vec4(0))
		r.screen.SetContent(x, y, glyphFor(facing.X(), facing.Y()), nil, style)
	}

	r.drawStatus(w, h, fmt.Sprintf(" objects:%d  wasd/arrows move  mouse aims  q quits ", len(frame.Models)))
	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawStatus(w, h int, text string) {
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, ch := range text {
		if x >= w {
			break
		}
		r.screen.SetContent(x, h-1, ch, nil, style)
		x++
	}
}

func glyphFor(dx, dy float32) rune {
	octant := int(math32.Round(math32.Atan2(dy, dx)/(math32.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// Close implements Renderer.
func (r *TerminalRenderer) Close() error {
	r.closeOnce.Do(func() {
		r.screen.Fini()
		r.quit()
	})
	return nil
}
