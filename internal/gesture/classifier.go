package gesture

import (
	"math"

	"github.com/renderix/aircanvas/internal/detector"
)

// Config holds classification thresholds. Zero values fall back to the
// defaults at construction time so a partially filled Config stays usable.
//
// Thresholds are in normalized hand units: landmarks are normalized to
// the wrist origin and scaled so the wrist-to-middle-MCP distance is 1,
// making classification independent of how far the hand is from the
// camera.
type Config struct {
	// FingerUpThreshold is how far a fingertip must sit above its PIP
	// joint to count as extended.
	FingerUpThreshold float64

	// ThumbOutThreshold is the minimum horizontal spread between thumb
	// tip and thumb IP joint for the thumb to count as extended. The
	// absolute value is used so the test is independent of handedness
	// and of the mirror flip.
	ThumbOutThreshold float64
}

// DefaultConfig returns the standard classification thresholds.
func DefaultConfig() Config {
	return Config{
		FingerUpThreshold: 0.5,
		ThumbOutThreshold: 0.25,
	}
}

// Classifier maps one hand's landmarks to a pose label using per-finger
// extension tests. It holds no mutable state; a single instance may be
// shared across ticks.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.FingerUpThreshold <= 0 {
		cfg.FingerUpThreshold = def.FingerUpThreshold
	}
	if cfg.ThumbOutThreshold <= 0 {
		cfg.ThumbOutThreshold = def.ThumbOutThreshold
	}
	return &Classifier{cfg: cfg}
}

// Classify returns the pose label for the given hand and a confidence
// value. A nil hand yields LabelNone with zero confidence; classification
// never fails, since the absence of a hand is a normal observation.
func (c *Classifier) Classify(hand *detector.HandLandmarks) (Label, float64) {
	if hand == nil {
		return LabelNone, 0
	}

	fingers := c.fingersUp(hand.Normalize())
	return labelForFingers(fingers), hand.Score
}

// fingersUp reports extension for [thumb, index, middle, ring, pinky].
// The hand must already be normalized to wrist origin and palm scale.
//
// The four fingers use the tip-above-PIP test (Y grows downward). The
// thumb extends sideways rather than upward, so it uses horizontal
// spread from its IP joint instead.
func (c *Classifier) fingersUp(hand *detector.HandLandmarks) [5]bool {
	var up [5]bool

	spread := math.Abs(hand.Points[detector.ThumbTip].X - hand.Points[detector.ThumbIP].X)
	up[0] = spread > c.cfg.ThumbOutThreshold

	tips := [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	pips := [4]int{detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}

	for i := 0; i < 4; i++ {
		tip := hand.Points[tips[i]]
		pip := hand.Points[pips[i]]
		up[i+1] = tip.Y < pip.Y-c.cfg.FingerUpThreshold
	}

	return up
}

// labelForFingers applies the fixed precedence rules mapping a finger
// extension pattern to a label. Patterns outside the recognized set
// classify as LabelNone.
func labelForFingers(up [5]bool) Label {
	switch up {
	case [5]bool{false, true, false, false, false}:
		return LabelIndexUp
	case [5]bool{false, true, true, false, false}:
		return LabelIndexMiddleUp
	case [5]bool{false, true, true, true, false}:
		return LabelThreeFingersUp
	case [5]bool{true, true, true, true, true}:
		return LabelOpenPalm
	case [5]bool{false, false, false, false, false}:
		return LabelFist
	case [5]bool{true, false, false, false, false}:
		return LabelThumbUp
	case [5]bool{false, false, false, false, true}:
		return LabelPinkyUp
	}
	return LabelNone
}
