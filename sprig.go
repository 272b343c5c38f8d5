package sprig

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSurfaceAlloc is returned (wrapped) when an offscreen buffer cannot be
// allocated. It is not recoverable by retrying.
var ErrSurfaceAlloc = errors.New("sprig: surface allocation failed")

// ErrRenderTimeout is returned (wrapped) by Render when another render of the
// same control did not finish within Config.RenderWait.
var ErrRenderTimeout = errors.New("sprig: timed out waiting for in-progress render")

// Rect is an axis-aligned pixel rectangle in screen coordinates. The origin
// is the top-left corner with Y increasing downward. A Rect covers the
// half-open ranges [X, X+Width) and [Y, Y+Height).
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the first column to the right of the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

// Intersects reports whether r and other share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).Empty()
}

// Intersect returns the overlap of r and other. The result is the zero Rect
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle covering both r and other. Empty
// operands are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.Right(), other.Right())
	y1 := max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Color is a straight-alpha 8-bit RGBA color. It implements color.Color so
// it can be handed to any drawing backend directly.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color, returning alpha-premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}

// Lerp blends c toward other by t in [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{mix(c.R, other.R), mix(c.G, other.G), mix(c.B, other.B), mix(c.A, other.A)}
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa (the leading # is optional).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// UnmarshalYAML decodes a hex color string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a hex string", value.Line)
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Common colors.
var (
	ColorBlack       = Color{0, 0, 0, 0xff}
	ColorWhite       = Color{0xff, 0xff, 0xff, 0xff}
	ColorTransparent = Color{}
)

// Align controls horizontal text placement inside a rectangle.
type Align uint8

const (
	AlignLeft   Align = iota // flush with the left edge (default)
	AlignCenter              // centered horizontally
	AlignRight               // flush with the right edge
)

// ImageMode selects how DrawImage maps a bitmap onto its destination.
type ImageMode uint8

const (
	ImageNormal  ImageMode = iota // draw at the destination origin, unscaled
	ImageStretch                  // scale to fill the destination
	ImageTile                     // repeat to fill the destination
)

// EventType identifies the kind of event delivered to listeners.
type EventType uint8

const (
	EventTouchDown  EventType = iota // a control started tracking a touch
	EventTouchUp                     // the tracked touch was released
	EventTouchMove                   // the tracked touch moved
	EventTap                         // down and up inside the control
	EventDoubleTap                   // second tap within the double-tap window
	EventTapHold                     // touch held past the tap-hold delay
	EventDragStart                   // movement exceeded the drag threshold
	EventDrag                        // movement while dragging
	EventDragEnd                     // release after dragging
	EventGesture                     // swipe-class gesture routed to the active child
	EventKey                         // key routed to the active child
	EventScroll                      // scroll offset changed
	EventFocus                       // became its container's active child
	EventBlur                        // stopped being its container's active child
	EventSelect                      // item selection changed (ListBox)
	eventTypeCount
)

var eventTypeNames = [...]string{
	EventTouchDown:  "TouchDown",
	EventTouchUp:    "TouchUp",
	EventTouchMove:  "TouchMove",
	EventTap:        "Tap",
	EventDoubleTap:  "DoubleTap",
	EventTapHold:    "TapHold",
	EventDragStart:  "DragStart",
	EventDrag:       "Drag",
	EventDragEnd:    "DragEnd",
	EventGesture:    "Gesture",
	EventKey:        "Key",
	EventScroll:     "Scroll",
	EventFocus:      "Focus",
	EventBlur:       "Blur",
	EventSelect:     "Select",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// GestureDirection is the direction of a swipe-class gesture.
type GestureDirection uint8

const (
	GestureNone GestureDirection = iota
	GestureLeft
	GestureRight
	GestureUp
	GestureDown
)

// Special key runes delivered in Event.Key.
const (
	KeyBackspace rune = '\b'
	KeyEnter     rune = '\n'
	KeyTab       rune = '\t'
	KeyEscape    rune = 0x1b
)
