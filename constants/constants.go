package constants

import (
	"os"

	"github.com/ethangriffith2004/midisync/model"
)

func GetFFmpegPath() string {
	path := os.Getenv("FFMPEG_PATH")
	if path != "" {
		return path
	}
	return "ffmpeg"
}

func GetFFprobePath() string {
	path := os.Getenv("FFPROBE_PATH")
	if path != "" {
		return path
	}
	return "ffprobe"
}

// KeyColor is the chroma key green the renderer paints filler segments with.
// Keep it exactly (0, 255, 0) so downstream keying presets work.
var KeyColor = model.Color{R: 0, G: 255, B: 0}

const DefaultFrameRate = 30

// DefaultChordThreshold is the window in seconds within which notes are
// grouped as one chord.
const DefaultChordThreshold = 0.1
