package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethangriffith2004/midisync/constants"
)

var notesThreshold float64

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.Flags().Float64Var(&notesThreshold, "chord-threshold", constants.DefaultChordThreshold, "window in seconds to group notes as chords")
}

var notesCmd = &cobra.Command{
	Use:   "notes <midi file>",
	Short: "Prints the extracted note/chord table",
	Long:  `Prints the extracted note/chord table`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if notesThreshold <= 0 {
			return fmt.Errorf("chord threshold must be positive, got %v", notesThreshold)
		}
		groups, err := extractAndPrint(args[0], notesThreshold)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No notes found :(")
		}
		return nil
	},
}
