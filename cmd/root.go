package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "midisync",
	Short: "ytpmv helper",
	Long: `ytpmv helper. Takes a MIDI file and a video clip and creates a video
with the clip synced to the notes: the clip plays during notes/chords, green
screen fills the silence between notes, and every other note is flipped
horizontally. The output has no audio (add it separately in an editor).`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
