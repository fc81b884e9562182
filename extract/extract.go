package extract

import (
	"fmt"
	"sort"

	"github.com/ethangriffith2004/midisync/model"
)

// scanState is the fold state of one matching pass: the running clock and
// the pitch -> start-time table of currently sounding notes.
type scanState struct {
	clock  float64
	active map[uint8]float64
	notes  []model.NoteEvent
}

func (st *scanState) step(evt model.DeltaEvent) {
	st.clock += evt.Delta

	switch {
	case !evt.Off && evt.Velocity > 0:
		// A second note-on for an already active pitch overwrites the
		// earlier start; the earlier note is never emitted. Known quirk,
		// kept for compatibility with existing outputs.
		st.active[evt.Pitch] = st.clock
	default:
		// Explicit note-off, or note-on with velocity 0 which means the
		// same thing. Unmatched note-offs are dropped.
		if start, ok := st.active[evt.Pitch]; ok {
			st.notes = append(st.notes, model.NoteEvent{
				Pitch: evt.Pitch,
				Start: start,
				End:   st.clock,
			})
			delete(st.active, evt.Pitch)
		}
	}
}

// Notes matches note-on/note-off pairs in a delta-timed event stream and
// returns the matched notes sorted by start time. Pitches still sounding
// when the stream ends have no end time and are dropped. The sort is stable
// so ties keep emission order.
func Notes(events []model.DeltaEvent) []model.NoteEvent {
	st := scanState{active: make(map[uint8]float64)}
	for _, evt := range events {
		st.step(evt)
	}

	sort.SliceStable(st.notes, func(i, j int) bool {
		return st.notes[i].Start < st.notes[j].Start
	})
	return st.notes
}

// Group sweeps sorted notes left to right and clusters them into chords.
// A note starts a new group only when its start is more than chordThreshold
// after the previous group's start; absorbed notes contribute nothing, so a
// group's Start and End always come from its first note. The threshold is
// measured from the kept anchor, not the immediate predecessor.
func Group(notes []model.NoteEvent, chordThreshold float64) ([]model.GroupedEvent, error) {
	if chordThreshold <= 0 {
		return nil, fmt.Errorf("chord threshold must be positive, got %v", chordThreshold)
	}

	var groups []model.GroupedEvent
	noteNum := 0
	lastStart := -1.0
	haveLast := false

	for _, note := range notes {
		if !haveLast || (note.Start-lastStart) > chordThreshold {
			noteNum++
			lastStart = note.Start
			haveLast = true
			groups = append(groups, model.GroupedEvent{
				Num:   noteNum,
				Start: note.Start,
				End:   note.End,
			})
		}
	}
	return groups, nil
}

// Extract runs the full extraction pass: match pairs, then group chords.
// An empty stream yields an empty result, not an error.
func Extract(events []model.DeltaEvent, chordThreshold float64) ([]model.GroupedEvent, error) {
	return Group(Notes(events), chordThreshold)
}
