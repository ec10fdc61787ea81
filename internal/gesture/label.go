// Package gesture classifies hand landmark observations into the closed
// set of pose labels that drive the canvas.
package gesture

// Label identifies one hand pose from the closed gesture set.
type Label int

const (
	// LabelNone means no hand or no recognized pose.
	LabelNone Label = iota
	// LabelIndexUp is the drawing pose (only index finger extended).
	LabelIndexUp
	// LabelIndexMiddleUp is the cursor-move pose (index and middle extended).
	LabelIndexMiddleUp
	// LabelFist is the pause pose (no fingers extended).
	LabelFist
	// LabelThumbUp is the undo trigger (only thumb extended).
	LabelThumbUp
	// LabelPinkyUp is the redo trigger (only pinky extended).
	LabelPinkyUp
	// LabelOpenPalm is the clear trigger (all five fingers extended).
	LabelOpenPalm
	// LabelThreeFingersUp is the color-cycle trigger (index, middle,
	// and ring extended).
	LabelThreeFingersUp
)

var labelNames = map[Label]string{
	LabelNone:           "None",
	LabelIndexUp:        "IndexUp",
	LabelIndexMiddleUp:  "IndexMiddleUp",
	LabelFist:           "Fist",
	LabelThumbUp:        "ThumbUp",
	LabelPinkyUp:        "PinkyUp",
	LabelOpenPalm:       "OpenPalm",
	LabelThreeFingersUp: "ThreeFingersUp",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "Unknown"
}
