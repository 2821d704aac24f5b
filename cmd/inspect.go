package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/musicmodel/constants"
	"github.com/jsphweid/musicmodel/midi"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/util"
	"github.com/spf13/cobra"
)

var maxFiles int

func init() {
	inspectCmd.Flags().IntVar(&maxFiles, "max", constants.DefaultMaxInspectSize, "maximum number of files to read (0 for no limit)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|dir>",
	Short: "Prints the note lengths of MIDI files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := util.GatherAllMidiPaths(args[0], maxFiles)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, path := range paths {
			s, err := midi.ReadMidiFile(path)
			if err != nil {
				slog.Warn("skipping file", "path", path, "error", err)
				continue
			}
			notes, err := midi.NoteLengths(s)
			if err != nil {
				slog.Warn("skipping file", "path", path, "error", err)
				continue
			}
			fmt.Fprintf(out, "%s: %d notes\n", path, len(notes))
			for _, n := range notes {
				fmt.Fprintf(out, "  ch%d %s\t%s\t%s\n", n.Channel, pitch.New(pitch.NoteNumber(n.Key)), n.Offset, n.Duration)
			}
		}
		return nil
	},
}
