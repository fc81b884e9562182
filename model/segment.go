package model

import "fmt"

type SegmentKind uint8

const (
	SegmentFiller SegmentKind = iota
	SegmentContent
)

func (k SegmentKind) String() string {
	if k == SegmentFiller {
		return "filler"
	}
	return "content"
}

func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SegmentKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "filler":
		*k = SegmentFiller
	case "content":
		*k = SegmentContent
	default:
		return fmt.Errorf("unknown segment kind %q", text)
	}
	return nil
}

// FitStyle selects how a fixed-length source clip is mapped onto a note
// interval of a different length.
type FitStyle uint8

const (
	FitTrim FitStyle = iota
	FitLoop
	FitBounce
)

func (f FitStyle) String() string {
	switch f {
	case FitTrim:
		return "trim"
	case FitLoop:
		return "loop"
	case FitBounce:
		return "bounce"
	}
	return fmt.Sprintf("FitStyle(%d)", uint8(f))
}

func (f FitStyle) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FitStyle) UnmarshalText(text []byte) error {
	parsed, err := ParseFitStyle(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func ParseFitStyle(s string) (FitStyle, error) {
	switch s {
	case "trim":
		return FitTrim, nil
	case "loop":
		return FitLoop, nil
	case "bounce":
		return FitBounce, nil
	}
	return 0, fmt.Errorf("unknown fit style %q (want loop or bounce)", s)
}

// TimelineSegment is one entry of the segment plan. Flipped and Style are
// only meaningful for content segments; a filler is always a solid frame of
// the key color. Segments are immutable once emitted.
type TimelineSegment struct {
	Kind     SegmentKind `json:"kind"`
	Duration float64     `json:"duration"`
	Flipped  bool        `json:"flipped,omitempty"`
	Style    FitStyle    `json:"style"`
}

// Chunk is one directed slice of the source clip. The renderer plays the
// source's leading Duration seconds, reversed when Reversed is set.
type Chunk struct {
	Duration float64
	Reversed bool
}

// Color is an opaque 8-bit RGB constant understood by the renderer.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Plan is the full segment plan handed to the renderer.
type Plan struct {
	Segments  []TimelineSegment `json:"segments"`
	Clip      ClipInfo          `json:"clip"`
	FrameRate int               `json:"frame_rate"`
	KeyColor  Color             `json:"key_color"`
}

// TotalDuration is the concatenated length of all segments. It equals the
// end time of the last grouped event.
func (p *Plan) TotalDuration() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.Duration
	}
	return total
}
