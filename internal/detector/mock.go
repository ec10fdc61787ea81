package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic hand geometry used by the pose presets below. Coordinates are
// normalized image space (0..1, Y down) with the wrist near the bottom and
// fingers pointing up, the orientation the classifier expects after the
// mirror flip.
var fingerColumns = [4]float64{0.56, 0.50, 0.44, 0.38} // index, middle, ring, pinky

// HandPose builds deterministic landmarks for a hand with the given fingers
// extended. The geometry clears the classifier's default thresholds with
// margin in both directions, so presets remain stable if thresholds are
// tuned moderately.
func HandPose(thumb, index, middle, ring, pinky bool) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.85}

	if thumb {
		lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.78}
		lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.72}
		lm.Points[ThumbIP] = Point3D{X: 0.67, Y: 0.68}
		lm.Points[ThumbTip] = Point3D{X: 0.75, Y: 0.64}
	} else {
		lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.78}
		lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72}
		lm.Points[ThumbIP] = Point3D{X: 0.57, Y: 0.69}
		lm.Points[ThumbTip] = Point3D{X: 0.555, Y: 0.67}
	}

	extended := [4]bool{index, middle, ring, pinky}
	bases := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

	for f := 0; f < 4; f++ {
		x := fingerColumns[f]
		mcp := bases[f]
		if extended[f] {
			lm.Points[mcp] = Point3D{X: x, Y: 0.66}
			lm.Points[mcp+1] = Point3D{X: x, Y: 0.55}
			lm.Points[mcp+2] = Point3D{X: x, Y: 0.45}
			lm.Points[mcp+3] = Point3D{X: x, Y: 0.35}
		} else {
			lm.Points[mcp] = Point3D{X: x, Y: 0.66}
			lm.Points[mcp+1] = Point3D{X: x, Y: 0.62}
			lm.Points[mcp+2] = Point3D{X: x - 0.02, Y: 0.66}
			lm.Points[mcp+3] = Point3D{X: x - 0.03, Y: 0.70}
		}
	}

	return lm
}

// IndexUpLandmarks returns a hand with only the index finger extended,
// the drawing pose.
func IndexUpLandmarks() HandLandmarks {
	return HandPose(false, true, false, false, false)
}

// IndexMiddleUpLandmarks returns a hand with index and middle fingers
// extended, the move-cursor pose.
func IndexMiddleUpLandmarks() HandLandmarks {
	return HandPose(false, true, true, false, false)
}

// ThreeFingersUpLandmarks returns a hand with index, middle, and ring
// fingers extended, the color-cycle pose.
func ThreeFingersUpLandmarks() HandLandmarks {
	return HandPose(false, true, true, true, false)
}

// FistLandmarks returns a hand with all fingers folded, the pause pose.
func FistLandmarks() HandLandmarks {
	return HandPose(false, false, false, false, false)
}

// ThumbsUpLandmarks returns a hand with only the thumb extended, the
// undo pose.
func ThumbsUpLandmarks() HandLandmarks {
	return HandPose(true, false, false, false, false)
}

// PinkyUpLandmarks returns a hand with only the pinky extended, the
// redo pose.
func PinkyUpLandmarks() HandLandmarks {
	return HandPose(false, false, false, false, true)
}

// OpenPalmLandmarks returns a hand with all five fingers extended, the
// clear-canvas pose.
func OpenPalmLandmarks() HandLandmarks {
	return HandPose(true, true, true, true, true)
}
