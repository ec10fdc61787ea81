package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_Normalize(t *testing.T) {
	t.Run("wrist at origin after normalization", func(t *testing.T) {
		hand := HandLandmarks{
			Handedness: "Right",
			Score:      0.9,
		}

		hand.Points[Wrist] = Point3D{X: 100.0, Y: 200.0, Z: 50.0}
		hand.Points[MiddleMCP] = Point3D{X: 130.0, Y: 240.0, Z: 50.0}

		for i := 1; i < NumLandmarks; i++ {
			if i != MiddleMCP {
				hand.Points[i] = Point3D{
					X: 100.0 + float64(i)*10.0,
					Y: 200.0 + float64(i)*5.0,
					Z: 50.0 + float64(i)*2.0,
				}
			}
		}

		normalized := hand.Normalize()

		if math.Abs(normalized.Points[Wrist].X) > epsilon {
			t.Errorf("expected wrist X to be 0, got %f", normalized.Points[Wrist].X)
		}
		if math.Abs(normalized.Points[Wrist].Y) > epsilon {
			t.Errorf("expected wrist Y to be 0, got %f", normalized.Points[Wrist].Y)
		}
		if math.Abs(normalized.Points[Wrist].Z) > epsilon {
			t.Errorf("expected wrist Z to be 0, got %f", normalized.Points[Wrist].Z)
		}

		if normalized.Handedness != hand.Handedness {
			t.Errorf("expected handedness %s, got %s", hand.Handedness, normalized.Handedness)
		}
		if normalized.Score != hand.Score {
			t.Errorf("expected score %f, got %f", hand.Score, normalized.Score)
		}
	})

	t.Run("distance from wrist to middle MCP is 1.0", func(t *testing.T) {
		hand := HandLandmarks{}
		hand.Points[Wrist] = Point3D{X: 10.0, Y: 20.0, Z: 0.0}
		hand.Points[MiddleMCP] = Point3D{X: 13.0, Y: 24.0, Z: 0.0}

		normalized := hand.Normalize()

		dist := distance3D(Point3D{}, normalized.Points[MiddleMCP])
		if math.Abs(dist-1.0) > epsilon {
			t.Errorf("expected wrist-to-middle-MCP distance 1.0, got %f", dist)
		}
	})

	t.Run("degenerate hand does not divide by zero", func(t *testing.T) {
		hand := HandLandmarks{}
		// All landmarks at the same point.
		normalized := hand.Normalize()
		if normalized == nil {
			t.Fatal("expected non-nil result for degenerate hand")
		}
	})

	t.Run("nil receiver returns nil", func(t *testing.T) {
		var hand *HandLandmarks
		if hand.Normalize() != nil {
			t.Error("expected nil result for nil receiver")
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns configured hands", func(t *testing.T) {
		m := NewMockDetector()
		m.SetHands([]HandLandmarks{IndexUpLandmarks()})

		hands, err := m.Detect(nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		m := NewMockDetector()
		wantErr := errors.New("detector unavailable")
		m.SetError(wantErr)

		if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
			t.Errorf("Detect() error = %v, want %v", err, wantErr)
		}
	})
}

func TestHandPose_Geometry(t *testing.T) {
	// Extended fingers should have their tip well above the PIP joint;
	// folded fingers should not.
	pose := HandPose(false, true, false, false, false)

	if pose.Points[IndexTip].Y >= pose.Points[IndexPIP].Y-0.1 {
		t.Error("extended index tip should sit above the PIP joint")
	}
	if pose.Points[MiddleTip].Y < pose.Points[MiddlePIP].Y-0.1 {
		t.Error("folded middle tip should not sit above the PIP joint")
	}

	thumbsUp := ThumbsUpLandmarks()
	spread := math.Abs(thumbsUp.Points[ThumbTip].X - thumbsUp.Points[ThumbIP].X)
	if spread <= 0.05 {
		t.Errorf("extended thumb spread = %f, want > 0.05", spread)
	}

	fist := FistLandmarks()
	spread = math.Abs(fist.Points[ThumbTip].X - fist.Points[ThumbIP].X)
	if spread >= 0.05 {
		t.Errorf("folded thumb spread = %f, want < 0.05", spread)
	}
}
