// Package controller turns the per-tick gesture stream into canvas
// mutations. It is the only gesture-driven mutation path to the stroke
// store; direct UI input calls the same canvas operations.
package controller

import (
	"math"

	"github.com/renderix/aircanvas/internal/canvas"
	"github.com/renderix/aircanvas/internal/gesture"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeMoving
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeMoving:
		return "moving"
	case ModePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Config holds interaction thresholds.
type Config struct {
	// MinMoveDist is the minimum distance in pixels the pointer must
	// travel before another point is appended to the active stroke.
	// Keeps a nearly stationary fingertip from spamming points.
	MinMoveDist float64
}

// DefaultConfig returns the standard interaction thresholds.
func DefaultConfig() Config {
	return Config{MinMoveDist: 4.0}
}

// Controller drives a Canvas from gesture observations. Undo, redo,
// clear, and color-cycle are edge-triggered: they fire once when their
// label first appears and re-arm only after the label changes. The
// previous tick's label is tracked explicitly to keep the state machine
// auditable.
type Controller struct {
	canvas    *canvas.Canvas
	cfg       Config
	mode      Mode
	prevLabel gesture.Label
	lastPoint canvas.Point
	cursor    canvas.Point
	hasCursor bool
}

// New creates a Controller that mutates the given canvas.
func New(cv *canvas.Canvas, cfg Config) *Controller {
	if cfg.MinMoveDist <= 0 {
		cfg.MinMoveDist = DefaultConfig().MinMoveDist
	}
	return &Controller{
		canvas: cv,
		cfg:    cfg,
		mode:   ModeIdle,
	}
}

// Tick processes one frame's observation. hasPointer is false when no
// fingertip position is available this tick (no hand tracked).
func (c *Controller) Tick(label gesture.Label, p canvas.Point, hasPointer bool) {
	edge := label != c.prevLabel

	switch label {
	case gesture.LabelIndexUp:
		if !hasPointer {
			break
		}
		if c.mode != ModeDrawing {
			c.canvas.BeginStroke(p)
			c.mode = ModeDrawing
			c.lastPoint = p
			break
		}
		if dist(c.lastPoint, p) >= c.cfg.MinMoveDist {
			c.canvas.ExtendStroke(p)
			c.lastPoint = p
		}

	case gesture.LabelIndexMiddleUp:
		c.finishStroke()
		c.mode = ModeMoving
		if hasPointer {
			c.cursor = p
			c.hasCursor = true
		}

	case gesture.LabelFist:
		c.finishStroke()
		c.mode = ModePaused

	case gesture.LabelOpenPalm:
		if edge {
			c.canvas.Clear()
			c.mode = ModeIdle
		}

	case gesture.LabelThumbUp:
		c.finishStroke()
		if c.mode == ModeDrawing {
			c.mode = ModeIdle
		}
		if edge {
			c.canvas.Undo()
		}

	case gesture.LabelPinkyUp:
		c.finishStroke()
		if c.mode == ModeDrawing {
			c.mode = ModeIdle
		}
		if edge {
			c.canvas.Redo()
		}

	case gesture.LabelThreeFingersUp:
		c.finishStroke()
		if c.mode == ModeDrawing {
			c.mode = ModeIdle
		}
		if edge {
			c.canvas.CycleColor()
		}

	case gesture.LabelNone:
		// Hand lost: an implicit pause if we were drawing, otherwise
		// no state change.
		if c.mode == ModeDrawing {
			c.finishStroke()
			c.mode = ModePaused
		}
	}

	if label != gesture.LabelIndexMiddleUp {
		c.hasCursor = false
	}

	c.prevLabel = label
}

// finishStroke commits any in-progress stroke.
func (c *Controller) finishStroke() {
	if c.canvas.Drawing() {
		c.canvas.EndStroke()
	}
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Cursor returns the move-mode cursor indicator position, valid only
// while the second value is true.
func (c *Controller) Cursor() (canvas.Point, bool) {
	return c.cursor, c.hasCursor
}

// Reset returns the controller to idle and re-arms all edge triggers,
// committing any in-progress stroke first. Used when tracking is toggled
// off.
func (c *Controller) Reset() {
	c.finishStroke()
	c.mode = ModeIdle
	c.prevLabel = gesture.LabelNone
	c.hasCursor = false
}

func dist(a, b canvas.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
