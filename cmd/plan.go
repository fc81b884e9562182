package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/extract"
	"github.com/ethangriffith2004/midisync/midi"
	"github.com/ethangriffith2004/midisync/model"
	"github.com/ethangriffith2004/midisync/render"
	"github.com/ethangriffith2004/midisync/timeline"
)

var (
	planFps       int
	planThreshold float64
	planFit       string
	planWatch     bool
)

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().IntVar(&planFps, "fps", constants.DefaultFrameRate, "frame rate of the output video")
	planCmd.Flags().Float64Var(&planThreshold, "chord-threshold", constants.DefaultChordThreshold, "window in seconds to group notes as chords")
	planCmd.Flags().StringVar(&planFit, "fit", "loop", "how a short clip covers a long note: loop or bounce")
	planCmd.Flags().BoolVar(&planWatch, "watch", false, "re-print the plan whenever the MIDI file changes")
}

var planCmd = &cobra.Command{
	Use:   "plan <midi file> <video clip>",
	Short: "Prints the segment plan as JSON without rendering",
	Long:  `Prints the segment plan as JSON without rendering`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return plan(args[0], args[1])
	},
}

func plan(midiPath, clipPath string) error {
	if _, err := validateOptions(planFps, planThreshold, planFit); err != nil {
		return err
	}

	clip, err := render.Probe(clipPath)
	if err != nil {
		return err
	}

	input := model.PlanRequestBody{
		MidiPath:       midiPath,
		ClipPath:       clipPath,
		SourceDuration: clip.Duration,
		Width:          clip.Width,
		Height:         clip.Height,
		FrameRate:      planFps,
		ChordThreshold: planThreshold,
		Fit:            planFit,
	}

	if !planWatch {
		return printPlan(input)
	}
	return watchPlan(midiPath, input)
}

func printPlan(input model.PlanRequestBody) error {
	resp, err := makePlanResponse(input)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// watchPlan polls the MIDI file's mtime and re-prints the plan after edits
// settle. Editors fire several writes in a row, so the reprint is debounced.
func watchPlan(midiPath string, input model.PlanRequestBody) error {
	debounced := debounce.New(500 * time.Millisecond)

	var lastMod time.Time
	for {
		stat, err := os.Stat(midiPath)
		if err != nil {
			return fmt.Errorf("error watching midi file... %w", err)
		}
		if !stat.ModTime().Equal(lastMod) {
			lastMod = stat.ModTime()
			debounced(func() {
				if err := printPlan(input); err != nil {
					fmt.Fprintf(os.Stderr, "plan failed: %v\n", err)
				}
			})
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// makePlanResponse runs extraction and timeline building for one request.
// It is shared by the plan command and the preview server. Empty extraction
// is not an error: the response simply carries no plan.
func makePlanResponse(input model.PlanRequestBody) (*model.PlanResponse, error) {
	threshold := input.ChordThreshold
	if threshold == 0 {
		threshold = constants.DefaultChordThreshold
	}
	fps := input.FrameRate
	if fps == 0 {
		fps = constants.DefaultFrameRate
	}
	fitName := input.Fit
	if fitName == "" {
		fitName = "loop"
	}
	fit, err := validateOptions(fps, threshold, fitName)
	if err != nil {
		return nil, err
	}

	clip := model.ClipInfo{
		Path:      input.ClipPath,
		Duration:  input.SourceDuration,
		Width:     input.Width,
		Height:    input.Height,
		FrameRate: fps,
	}
	if input.ClipPath != "" && input.SourceDuration <= 0 {
		probed, err := render.Probe(input.ClipPath)
		if err != nil {
			return nil, err
		}
		clip = probed
	}

	s, err := midi.ReadMidiFile(input.MidiPath)
	if err != nil {
		return nil, err
	}
	notes := extract.Notes(midi.DecodeEvents(s))
	groups, err := extract.Group(notes, threshold)
	if err != nil {
		return nil, err
	}

	resp := model.PlanResponse{
		NumNotes: len(notes),
		Groups:   groups,
	}
	if len(groups) == 0 {
		return &resp, nil
	}

	p, err := timeline.Build(groups, clip, fit, fps)
	if err != nil {
		return nil, err
	}
	resp.Plan = p
	resp.TotalDuration = p.TotalDuration()
	return &resp, nil
}
