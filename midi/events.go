package midi

import (
	"sort"

	"github.com/ethangriffith2004/midisync/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type timedEvent struct {
	micros   int64
	pitch    uint8
	velocity uint8
	off      bool
}

// DecodeEvents flattens all tracks of an SMF into one chronological
// delta-timed note event stream. Ticks are converted to wall time with the
// file's tempo map; simultaneous events keep their track order.
func DecodeEvents(s *smf.SMF) []model.DeltaEvent {
	var timed []timedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				timed = append(timed, timedEvent{
					micros:   absTime,
					pitch:    key,
					velocity: velocity,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				timed = append(timed, timedEvent{
					micros: absTime,
					pitch:  key,
					off:    true,
				})
			}
		}
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].micros < timed[j].micros
	})

	res := make([]model.DeltaEvent, 0, len(timed))
	var prevMicros int64
	for _, evt := range timed {
		res = append(res, model.DeltaEvent{
			Delta:    float64(evt.micros-prevMicros) / 1e6,
			Pitch:    evt.pitch,
			Velocity: evt.velocity,
			Off:      evt.off,
		})
		prevMicros = evt.micros
	}
	return res
}
