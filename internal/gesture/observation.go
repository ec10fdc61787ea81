package gesture

import "image"

// Observation is the per-tick result of classification: the smoothed
// label, the fingertip position in canvas space, and whether a hand was
// tracked at all. It is consumed once per tick and not retained.
type Observation struct {
	Label      Label
	Pointer    image.Point
	HasPointer bool
	Confidence float64
}
