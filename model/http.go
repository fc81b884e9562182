package model

type PlanRequestBody struct {
	MidiPath       string  `json:"midi_path"`
	ClipPath       string  `json:"clip_path,omitempty"`
	SourceDuration float64 `json:"source_duration,omitempty"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	FrameRate      int     `json:"frame_rate,omitempty"`
	ChordThreshold float64 `json:"chord_threshold,omitempty"`
	Fit            string  `json:"fit,omitempty"`
}

type PlanResponse struct {
	NumNotes      int            `json:"num_notes"`
	Groups        []GroupedEvent `json:"groups"`
	Plan          *Plan          `json:"plan,omitempty"`
	TotalDuration float64        `json:"total_duration"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
