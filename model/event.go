package model

// DeltaEvent is one already-decoded note message from the MIDI stream. Delta
// is the time in seconds since the previous event, never an absolute
// timestamp. A note-on with velocity 0 counts as a note-off.
type DeltaEvent struct {
	Delta    float64
	Pitch    uint8
	Velocity uint8
	Off      bool
}

// NoteEvent is a matched note-on/note-off pair with absolute times.
type NoteEvent struct {
	Pitch uint8
	Start float64
	End   float64
}

// GroupedEvent is a single note or a chord cluster. Num is 1-based and
// strictly increasing in chronological order. Start and End come from the
// cluster's first note only.
type GroupedEvent struct {
	Num   int     `json:"num"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
