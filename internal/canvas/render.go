package canvas

import (
	"image"

	"gocv.io/x/gocv"
)

// lineThicknessMultiplier scales brush width to drawn line thickness.
const lineThicknessMultiplier = 2

// Renderer paints snapshots onto a gocv Mat. It consumes canvas state
// only and owns no history of its own.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer for the given surface dimensions.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Render draws the background, all committed strokes, and the in-progress
// stroke onto a fresh Mat. The caller owns the returned Mat.
func (r *Renderer) Render(snap Snapshot) gocv.Mat {
	bg := gocv.NewScalar(
		float64(BackgroundColor.B),
		float64(BackgroundColor.G),
		float64(BackgroundColor.R),
		0,
	)
	img := gocv.NewMatWithSizeFromScalar(bg, r.height, r.width, gocv.MatTypeCV8UC3)

	for i := range snap.Committed {
		drawStroke(&img, &snap.Committed[i])
	}
	if snap.Current != nil {
		drawStroke(&img, snap.Current)
	}

	return img
}

// drawStroke renders one stroke: a single point as a filled dot, longer
// paths as connected line segments.
func drawStroke(img *gocv.Mat, s *Stroke) {
	if len(s.Points) == 0 {
		return
	}

	if len(s.Points) == 1 {
		p := s.Points[0]
		gocv.Circle(img, image.Pt(p.X, p.Y), s.Size.Width(), s.Color.Color, -1)
		return
	}

	thickness := s.Size.Width() * lineThicknessMultiplier
	for i := 1; i < len(s.Points); i++ {
		a := s.Points[i-1]
		b := s.Points[i]
		gocv.Line(img, image.Pt(a.X, a.Y), image.Pt(b.X, b.Y), s.Color.Color, thickness)
	}
}
