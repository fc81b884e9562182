package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/extract"
	"github.com/ethangriffith2004/midisync/midi"
	"github.com/ethangriffith2004/midisync/model"
	"github.com/ethangriffith2004/midisync/render"
	"github.com/ethangriffith2004/midisync/timeline"
)

var (
	createFps       int
	createThreshold float64
	createFit       string
)

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().IntVar(&createFps, "fps", constants.DefaultFrameRate, "frame rate of the output video")
	createCmd.Flags().Float64Var(&createThreshold, "chord-threshold", constants.DefaultChordThreshold, "window in seconds to group notes as chords")
	createCmd.Flags().StringVar(&createFit, "fit", "loop", "how a short clip covers a long note: loop or bounce")
}

var createCmd = &cobra.Command{
	Use:   "create <midi file> <video clip> <output file>",
	Short: "Creates a video synced to the MIDI notes",
	Long:  `Creates a video synced to the MIDI notes`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return create(args[0], args[1], args[2])
	},
}

func create(midiPath, clipPath, outputPath string) error {
	fit, err := validateOptions(createFps, createThreshold, createFit)
	if err != nil {
		return err
	}

	groups, err := extractAndPrint(midiPath, createThreshold)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No notes found :(")
		return nil
	}

	clip, err := render.Probe(clipPath)
	if err != nil {
		return err
	}

	plan, err := timeline.Build(groups, clip, fit, createFps)
	if err != nil {
		return err
	}

	fmt.Printf("\nCreating synced video with %v clip segments (clips + silences)\n", len(plan.Segments))
	fmt.Println()
	if err := render.New().Render(plan, outputPath); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Make sure when you make the visuals:")
	fmt.Println("- Crop the video to the proper size")
	fmt.Println("- Key out the greenscreen")
	fmt.Println()
	return nil
}

// validateOptions rejects bad configuration before any file is touched.
func validateOptions(fps int, threshold float64, fitName string) (model.FitStyle, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("fps must be positive, got %v", fps)
	}
	if threshold <= 0 {
		return 0, fmt.Errorf("chord threshold must be positive, got %v", threshold)
	}
	fit, err := model.ParseFitStyle(fitName)
	if err != nil {
		return 0, err
	}
	if fit != model.FitLoop && fit != model.FitBounce {
		return 0, fmt.Errorf("fit style must be loop or bounce, got %v", fit)
	}
	return fit, nil
}

// extractAndPrint runs the extraction pass and prints the note table.
func extractAndPrint(midiPath string, threshold float64) ([]model.GroupedEvent, error) {
	s, err := midi.ReadMidiFile(midiPath)
	if err != nil {
		return nil, err
	}

	notes := extract.Notes(midi.DecodeEvents(s))
	groups, err := extract.Group(notes, threshold)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("MIDI file path : %v\n", midiPath)
	fmt.Printf("Extracted %v notes\n", len(notes))
	fmt.Printf("Grouped into %v note/chord events\n", len(groups))
	fmt.Println()
	fmt.Println("Note #, Start, End")
	for _, g := range groups {
		fmt.Printf("%d, %.3f, %.3f\n", g.Num, g.Start, g.End)
	}

	return groups, nil
}
