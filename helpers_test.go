package sprig

import (
	"image"
	"io"
	"sync"
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// drawOp is one call recorded by recordingSurface.
type drawOp struct {
	kind  string
	rect  Rect
	color Color
	text  string
	clip  Rect
}

// recordingSurface is a Surface that records draw calls and flushes.
// When block is non-nil, Flush signals entered and waits on block.
type recordingSurface struct {
	mu       sync.Mutex
	w, h     int
	clip     Rect
	ops      []drawOp
	flushes  []Rect
	flushErr error

	block   chan struct{}
	entered chan struct{}
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h, clip: Rect{0, 0, w, h}}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) SetClip(r Rect) {
	s.mu.Lock()
	s.clip = r
	s.mu.Unlock()
}

func (s *recordingSurface) record(op drawOp) {
	s.mu.Lock()
	op.clip = s.clip
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

func (s *recordingSurface) FillRect(r Rect, c Color) {
	s.record(drawOp{kind: "fill", rect: r, color: c})
}

func (s *recordingSurface) GradientRect(r Rect, from, to Color, vertical bool) {
	s.record(drawOp{kind: "gradient", rect: r, color: from})
}

func (s *recordingSurface) StrokeRect(r Rect, c Color) {
	s.record(drawOp{kind: "stroke", rect: r, color: c})
}

func (s *recordingSurface) Line(x0, y0, x1, y1 int, c Color) {
	s.record(drawOp{kind: "line", rect: Rect{x0, y0, x1 - x0, y1 - y0}, color: c})
}

func (s *recordingSurface) DrawImage(img image.Image, dst Rect, mode ImageMode) {
	s.record(drawOp{kind: "image", rect: dst})
}

func (s *recordingSurface) DrawText(str string, r Rect, c Color, align Align) {
	s.record(drawOp{kind: "text", rect: r, color: c, text: str})
}

func (s *recordingSurface) TextSize(str string) (int, int) { return 7 * len(str), 13 }

func (s *recordingSurface) Flush(r Rect) error {
	if s.block != nil {
		s.entered <- struct{}{}
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes = append(s.flushes, r)
	return s.flushErr
}

func (s *recordingSurface) flushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flushes)
}

func (s *recordingSurface) lastFlush() Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.flushes) == 0 {
		return Rect{}
	}
	return s.flushes[len(s.flushes)-1]
}

func (s *recordingSurface) reset() {
	s.mu.Lock()
	s.ops = nil
	s.flushes = nil
	s.mu.Unlock()
}

func (s *recordingSurface) opsOfKind(kind string) []drawOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []drawOp
	for _, op := range s.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// newTestDisplay builds a 320x240 display on a manual clock with an active
// screen. Surface records start empty.
func newTestDisplay(t *testing.T) (*Display, *Screen, *recordingSurface) {
	t.Helper()
	return newTestDisplayConfig(t, Config{})
}

func newTestDisplayConfig(t *testing.T, cfg Config) (*Display, *Screen, *recordingSurface) {
	t.Helper()
	surf := newRecordingSurface(320, 240)
	cfg.Clock = NewManualClock(testEpoch)
	d, err := NewDisplay(surf, cfg)
	if err != nil {
		t.Fatalf("NewDisplay: %v", err)
	}
	d.SetLogOutput(io.Discard)
	t.Cleanup(d.Close)
	screen := d.NewScreen("screen")
	surf.reset()
	return d, screen, surf
}

// paintRecorder is a behavior that logs its control's name on every paint.
type paintRecorder struct {
	log *[]string
}

func (p paintRecorder) Paint(c *Control, s Surface, clip Rect) {
	*p.log = append(*p.log, c.Name())
	s.FillRect(c.Bounds(), ColorWhite)
}

// addBox adds a plain leaf control with the given local bounds to parent.
func addBox(parent *Control, name string, x, y, w, h int) *Control {
	c := NewControl(name, nil)
	c.SetBounds(x, y, w, h)
	parent.AddChild(c)
	return c
}

// addPanel adds an empty container with the given local bounds to parent.
func addPanel(parent *Control, name string, x, y, w, h int) *Control {
	c := NewContainer(name, nil)
	c.SetBounds(x, y, w, h)
	parent.AddChild(c)
	return c
}

// tap feeds a touch-down and touch-up at the same point.
func tap(d *Display, x, y int) {
	d.TouchDown(x, y)
	d.TouchUp(x, y)
}

// countEvents registers a listener counting events of type et on c.
func countEvents(c *Control, et EventType) *int {
	n := new(int)
	c.On(et, func(*Event) { *n++ })
	return n
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
