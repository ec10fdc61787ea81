package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	detected, percent := m.Detect(&frame)
	if detected {
		t.Error("first frame should establish baseline without detecting motion")
	}
	if percent != 0 {
		t.Errorf("change percent = %f, want 0", percent)
	}
}

func TestMotionDetector_StaticFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	m.Detect(&frame)

	detected, _ := m.Detect(&frame)
	if detected {
		t.Error("identical frames should not register motion")
	}
}

func TestMotionDetector_ChangedFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	dark := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer dark.Close()

	bright := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3,
	)
	defer bright.Close()

	m.Detect(&dark)

	detected, percent := m.Detect(&bright)
	if !detected {
		t.Errorf("expected motion between dark and bright frames, change = %f%%", percent)
	}
}

func TestMotionDetector_NilAndEmptyFrames(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	if detected, _ := m.Detect(nil); detected {
		t.Error("nil frame should not register motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()

	if detected, _ := m.Detect(&empty); detected {
		t.Error("empty frame should not register motion")
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	m.Detect(&frame)
	m.Reset()

	// After reset the next frame is a baseline again.
	detected, _ := m.Detect(&frame)
	if detected {
		t.Error("frame after Reset should establish a new baseline")
	}
}
