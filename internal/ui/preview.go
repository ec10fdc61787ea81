package ui

import (
	"image"

	"gocv.io/x/gocv"
)

// Camera preview layout constants.
const (
	PreviewWidth  = 240
	PreviewHeight = 180
	previewMargin = 20
)

// CameraPreview composites a scaled copy of the camera frame into the
// top-right corner of the display so the user can see what the tracker
// sees.
type CameraPreview struct {
	region image.Rectangle
}

// NewCameraPreview positions the preview for a surface of the given width.
func NewCameraPreview(surfaceWidth int) *CameraPreview {
	x := surfaceWidth - PreviewWidth - previewMargin
	y := previewMargin
	return &CameraPreview{
		region: image.Rect(x, y, x+PreviewWidth, y+PreviewHeight),
	}
}

// Draw scales the camera frame and composites it into the display frame
// with a highlight border. A nil or empty camera frame leaves the display
// untouched.
func (p *CameraPreview) Draw(display *gocv.Mat, cameraFrame *gocv.Mat) {
	if cameraFrame == nil || cameraFrame.Empty() {
		return
	}

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(*cameraFrame, &scaled, image.Pt(PreviewWidth, PreviewHeight), 0, 0, gocv.InterpolationLinear)

	gocv.Rectangle(&scaled, image.Rect(0, 0, PreviewWidth-1, PreviewHeight-1), highlightColor, 3)

	region := display.Region(p.region)
	defer region.Close()
	scaled.CopyTo(&region)
}
