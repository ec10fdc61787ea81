// Package ui draws the presentational chrome around the canvas: toolbar,
// gesture guide bar, and camera preview. It consumes canvas state only.
package ui

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/renderix/aircanvas/internal/canvas"
)

// Toolbar layout constants.
const (
	ToolbarHeight     = 80
	toolbarPadding    = 10
	swatchRadius      = 25
	buttonWidth       = 60
	buttonHeight      = 40
	buttonSpacing     = 10
	toolbarButtonTopY = toolbarPadding + 10
)

var (
	toolbarBG      = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	buttonBG       = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	buttonBorder   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	swatchBorder   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	highlightColor = color.RGBA{G: 255, B: 255, A: 255} // cyan
	textColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Button identifies a toolbar control button.
type Button string

const (
	ButtonUndo  Button = "Undo"
	ButtonRedo  Button = "Redo"
	ButtonClear Button = "Clear"
)

var toolbarButtons = []Button{ButtonUndo, ButtonRedo, ButtonClear}

// Toolbar lays out color swatches on the left and control buttons on the
// right of a bar across the top of the canvas.
type Toolbar struct {
	width    int
	palette  canvas.Palette
	swatches []image.Point // swatch centers, one per palette entry
	buttons  map[Button]image.Rectangle
}

// NewToolbar computes the toolbar layout for the given canvas width.
func NewToolbar(width int, palette canvas.Palette) *Toolbar {
	t := &Toolbar{
		width:   width,
		palette: palette,
		buttons: make(map[Button]image.Rectangle),
	}

	buttonSection := len(toolbarButtons)*(buttonWidth+buttonSpacing) + toolbarPadding
	spacing := (width - 2*toolbarPadding - buttonSection) / len(palette)

	startX := toolbarPadding + swatchRadius
	for i := range palette {
		t.swatches = append(t.swatches, image.Pt(startX+i*spacing, ToolbarHeight/2))
	}

	buttonStartX := width - toolbarPadding - len(toolbarButtons)*(buttonWidth+buttonSpacing)
	for i, b := range toolbarButtons {
		x := buttonStartX + i*(buttonWidth+buttonSpacing)
		t.buttons[b] = image.Rect(x, toolbarButtonTopY, x+buttonWidth, toolbarButtonTopY+buttonHeight)
	}

	return t
}

// Draw paints the toolbar onto the display frame, highlighting the
// selected swatch.
func (t *Toolbar) Draw(frame *gocv.Mat, selected int) {
	gocv.Rectangle(frame, image.Rect(0, 0, t.width, ToolbarHeight), toolbarBG, -1)

	for i, center := range t.swatches {
		sw := t.palette[i]
		gocv.Circle(frame, center, swatchRadius, sw.Color, -1)
		gocv.Circle(frame, center, swatchRadius, swatchBorder, 2)

		if i == selected {
			gocv.Circle(frame, center, swatchRadius+5, highlightColor, 3)
		}

		textSize := gocv.GetTextSize(sw.Name, gocv.FontHersheySimplex, 0.4, 1)
		gocv.PutText(frame, sw.Name,
			image.Pt(center.X-textSize.X/2, center.Y+swatchRadius+15),
			gocv.FontHersheySimplex, 0.4, textColor, 1)
	}

	for _, b := range toolbarButtons {
		rect := t.buttons[b]
		gocv.Rectangle(frame, rect, buttonBG, -1)
		gocv.Rectangle(frame, rect, buttonBorder, 2)

		textSize := gocv.GetTextSize(string(b), gocv.FontHersheySimplex, 0.5, 1)
		gocv.PutText(frame, string(b),
			image.Pt(rect.Min.X+(buttonWidth-textSize.X)/2, rect.Min.Y+(buttonHeight+textSize.Y)/2),
			gocv.FontHersheySimplex, 0.5, textColor, 1)
	}
}

// ColorAt returns the palette index of the swatch at (x, y), or -1 when
// the position misses every swatch.
func (t *Toolbar) ColorAt(x, y int) int {
	for i, center := range t.swatches {
		dx := float64(x - center.X)
		dy := float64(y - center.Y)
		if math.Hypot(dx, dy) <= swatchRadius {
			return i
		}
	}
	return -1
}

// ButtonAt returns the button at (x, y), or "" when the position misses
// every button.
func (t *Toolbar) ButtonAt(x, y int) Button {
	for _, b := range toolbarButtons {
		if image.Pt(x, y).In(t.buttons[b]) {
			return b
		}
	}
	return ""
}

// Contains reports whether (x, y) falls within the toolbar strip.
func (t *Toolbar) Contains(x, y int) bool {
	return y >= 0 && y < ToolbarHeight && x >= 0 && x < t.width
}
