// Package canvas owns the stroke history of the drawing surface: committed
// strokes, the in-progress stroke, undo/redo stacks, and the active color
// and brush size.
package canvas

import "image/color"

// Point is a 2D coordinate in canvas pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BrushSize selects one of the fixed brush widths.
type BrushSize int

const (
	BrushSmall BrushSize = iota
	BrushMedium
	BrushLarge
)

// Width returns the brush radius in pixels.
func (b BrushSize) Width() int {
	switch b {
	case BrushSmall:
		return 3
	case BrushLarge:
		return 10
	default:
		return 6
	}
}

func (b BrushSize) String() string {
	switch b {
	case BrushSmall:
		return "small"
	case BrushLarge:
		return "large"
	default:
		return "medium"
	}
}

// ParseBrushSize maps a size name to a BrushSize.
func ParseBrushSize(name string) (BrushSize, bool) {
	switch name {
	case "small":
		return BrushSmall, true
	case "medium":
		return BrushMedium, true
	case "large":
		return BrushLarge, true
	}
	return BrushMedium, false
}

// Swatch is one palette entry. The eraser is an ordinary swatch whose
// color matches the canvas background; marking it lets the UI label it.
type Swatch struct {
	Name   string     `json:"name"`
	Color  color.RGBA `json:"-"`
	Eraser bool       `json:"eraser,omitempty"`
}

// Palette is the ordered list of selectable swatches. Color cycling wraps
// around the end.
type Palette []Swatch

// BackgroundColor is the canvas background, which the eraser paints with.
var BackgroundColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// DefaultPalette returns the standard drawing palette, eraser last.
func DefaultPalette() Palette {
	return Palette{
		{Name: "Red", Color: color.RGBA{R: 255, A: 255}},
		{Name: "Green", Color: color.RGBA{G: 255, A: 255}},
		{Name: "Blue", Color: color.RGBA{B: 255, A: 255}},
		{Name: "Yellow", Color: color.RGBA{R: 255, G: 255, A: 255}},
		{Name: "Orange", Color: color.RGBA{R: 255, G: 165, A: 255}},
		{Name: "Purple", Color: color.RGBA{R: 255, B: 255, A: 255}},
		{Name: "White", Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{Name: "Eraser", Color: BackgroundColor, Eraser: true},
	}
}

// Stroke is one continuous freehand path. A stroke is mutable only while
// it is the canvas's in-progress stroke; once committed to history it is
// never modified.
type Stroke struct {
	Points []Point   `json:"points"`
	Color  Swatch    `json:"color"`
	Size   BrushSize `json:"size"`
}

// clone returns a deep copy so snapshots stay valid while the original
// in-progress stroke keeps growing.
func (s *Stroke) clone() *Stroke {
	if s == nil {
		return nil
	}
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	return &Stroke{Points: points, Color: s.Color, Size: s.Size}
}
