package model

// ClipInfo describes the reusable source clip. Path is the opaque handle the
// renderer uses to pull pixel data; the core only reads the numbers.
type ClipInfo struct {
	Path      string  `json:"path,omitempty"`
	Duration  float64 `json:"duration"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate int     `json:"frame_rate"`
}
