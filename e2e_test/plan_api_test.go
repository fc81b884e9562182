//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ethangriffith2004/midisync/cmd"
	"github.com/ethangriffith2004/midisync/model"
)

func writeTwoNoteFile(t *testing.T) string {
	t.Helper()

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(960)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(120))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		t.Fatal(err)
	}

	var notes smf.Track
	notes.Add(0, gomidi.NoteOn(0, 60, 100))
	notes.Add(960, gomidi.NoteOff(0, 60))
	notes.Add(192, gomidi.NoteOn(0, 62, 80))
	notes.Add(768, gomidi.NoteOff(0, 62))
	notes.Close(0)
	if err := sm.Add(notes); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "two-notes.mid")
	if err := sm.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func postPlan(t *testing.T, input model.PlanRequestBody) *http.Response {
	t.Helper()

	data, err := json.Marshal(input)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader(data))
	w := httptest.NewRecorder()
	cmd.HandlePlan(w, req)
	return w.Result()
}

func TestPlanEndToEnd(t *testing.T) {
	resp := postPlan(t, model.PlanRequestBody{
		MidiPath:       writeTwoNoteFile(t),
		SourceDuration: 1.0,
		Width:          640,
		Height:         360,
		FrameRate:      30,
		ChordThreshold: 0.1,
		Fit:            "loop",
	})
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var planResponse model.PlanResponse
	assert.NoError(json.Unmarshal(respBody, &planResponse))

	assert.Equal(2, planResponse.NumNotes)
	assert.Len(planResponse.Groups, 2)
	assert.Equal(1, planResponse.Groups[0].Num)
	assert.InDelta(0.0, planResponse.Groups[0].Start, 1e-6)
	assert.InDelta(0.5, planResponse.Groups[0].End, 1e-6)
	assert.Equal(2, planResponse.Groups[1].Num)
	assert.InDelta(0.6, planResponse.Groups[1].Start, 1e-6)
	assert.InDelta(1.0, planResponse.Groups[1].End, 1e-6)

	assert.NotNil(planResponse.Plan)
	segments := planResponse.Plan.Segments
	assert.Len(segments, 3)
	assert.Equal(model.SegmentContent, segments[0].Kind)
	assert.Equal(model.FitTrim, segments[0].Style)
	assert.InDelta(0.5, segments[0].Duration, 1e-6)
	assert.False(segments[0].Flipped)
	assert.Equal(model.SegmentFiller, segments[1].Kind)
	assert.InDelta(0.1, segments[1].Duration, 1e-6)
	assert.InDelta(0.4, segments[2].Duration, 1e-6)
	assert.True(segments[2].Flipped)
	assert.InDelta(1.0, planResponse.TotalDuration, 1e-6)
}

func TestPlanRejectsBadRequest(t *testing.T) {
	assert := assert.New(t)

	resp := postPlan(t, model.PlanRequestBody{})
	assert.Equal(400, resp.StatusCode)

	resp = postPlan(t, model.PlanRequestBody{
		MidiPath:       writeTwoNoteFile(t),
		SourceDuration: 1.0,
		Fit:            "sideways",
	})
	assert.Equal(400, resp.StatusCode)

	respBody, _ := io.ReadAll(resp.Body)
	var errResp model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errResp))
	assert.NotEmpty(errResp.Error)
}
