package ui

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/renderix/aircanvas/internal/gesture"
)

// Guide bar layout constants.
const (
	GuideBarHeight  = 100
	guideBarPadding = 15
)

var (
	guideBarBG  = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	activeColor = color.RGBA{G: 200, A: 255}
)

// guideEntry pairs a gesture with its hint text.
type guideEntry struct {
	label gesture.Label
	hint  string
}

var guideEntries = []guideEntry{
	{gesture.LabelIndexUp, "Index: draw"},
	{gesture.LabelIndexMiddleUp, "Two fingers: move"},
	{gesture.LabelFist, "Fist: pause"},
	{gesture.LabelThumbUp, "Thumb: undo"},
	{gesture.LabelPinkyUp, "Pinky: redo"},
	{gesture.LabelThreeFingersUp, "Three: color"},
	{gesture.LabelOpenPalm, "Palm: clear"},
}

// GestureGuide renders the gesture hint bar along the bottom edge and
// highlights the currently active gesture.
type GestureGuide struct {
	width  int
	height int
	active gesture.Label
}

// NewGestureGuide creates a guide bar for a surface of the given size.
func NewGestureGuide(width, height int) *GestureGuide {
	return &GestureGuide{width: width, height: height}
}

// SetActive updates which gesture is highlighted.
func (g *GestureGuide) SetActive(label gesture.Label) {
	g.active = label
}

// Active returns the currently highlighted gesture.
func (g *GestureGuide) Active() gesture.Label {
	return g.active
}

// Draw paints the guide bar onto the display frame.
func (g *GestureGuide) Draw(frame *gocv.Mat) {
	top := g.height - GuideBarHeight
	gocv.Rectangle(frame, image.Rect(0, top, g.width, g.height), guideBarBG, -1)

	spacing := (g.width - 2*guideBarPadding) / len(guideEntries)
	y := top + GuideBarHeight/2

	for i, entry := range guideEntries {
		x := guideBarPadding + i*spacing
		c := textColor
		if entry.label == g.active {
			c = activeColor
		}
		gocv.PutText(frame, entry.hint, image.Pt(x, y), gocv.FontHersheySimplex, 0.45, c, 1)
	}
}
