package timeline

import (
	"fmt"
	"math"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/model"
	"github.com/ethangriffith2004/midisync/util"
)

// Build walks grouped events in order and lays out a gap-free segment plan
// from time zero to the last group's end. Silence between groups becomes a
// key-color filler; each group becomes one content segment, trimmed when the
// source clip is long enough and otherwise stretched with the given fit
// style (loop or bounce). Content for every even-numbered group is flipped
// horizontally.
func Build(groups []model.GroupedEvent, clip model.ClipInfo, fit model.FitStyle, frameRate int) (*model.Plan, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no grouped events to build from")
	}
	if clip.Duration <= 0 {
		return nil, fmt.Errorf("source clip duration must be positive, got %v", clip.Duration)
	}
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", frameRate)
	}
	if fit != model.FitLoop && fit != model.FitBounce {
		return nil, fmt.Errorf("fit style must be loop or bounce, got %v", fit)
	}

	var segments []model.TimelineSegment
	currentPos := 0.0

	for _, group := range groups {
		if group.Start > currentPos {
			segments = append(segments, model.TimelineSegment{
				Kind:     model.SegmentFiller,
				Duration: group.Start - currentPos,
			})
		}

		duration := group.End - group.Start
		if duration > 0 {
			style := fit
			if clip.Duration >= duration {
				style = model.FitTrim
			}
			segments = append(segments, model.TimelineSegment{
				Kind:     model.SegmentContent,
				Duration: duration,
				Flipped:  group.Num%2 == 0,
				Style:    style,
			})
		}

		currentPos = group.End
	}

	return &model.Plan{
		Segments:  segments,
		Clip:      clip,
		FrameRate: frameRate,
		KeyColor:  constants.KeyColor,
	}, nil
}

// SourceChunks breaks one content segment into the directed source slices
// the renderer concatenates. Trim is a single forward slice. Loop repeats
// the full source forward, ceiling-dividing and truncating the last
// repetition. Bounce ping-pongs between forward and reversed playback, the
// final chunk truncated so the total never exceeds contentDur.
func SourceChunks(style model.FitStyle, contentDur, sourceDur float64) []model.Chunk {
	if contentDur <= 0 {
		return nil
	}
	if style == model.FitTrim || sourceDur >= contentDur {
		return []model.Chunk{{Duration: contentDur}}
	}

	n := int(math.Ceil(contentDur / sourceDur))
	chunks := make([]model.Chunk, 0, n)
	remaining := contentDur
	for i := 0; remaining > 1e-9; i++ {
		chunks = append(chunks, model.Chunk{
			Duration: util.Min(remaining, sourceDur),
			Reversed: style == model.FitBounce && i%2 == 1,
		})
		remaining -= sourceDur
	}
	return chunks
}
