package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsphweid/musicmodel/notation"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/rhythm"
	"github.com/spf13/cobra"
)

var strict bool

func init() {
	lengthsCmd.Flags().BoolVar(&strict, "strict", false, "reject ties that follow nothing")
	rootCmd.AddCommand(lengthsCmd)
}

var lengthsCmd = &cobra.Command{
	Use:   "lengths <rhythm>...",
	Short: "Prints the sounding durations of rhythms",
	Long: `Parses every argument as rhythm notation, merges ties across all of them
and prints one line per sounding span: offset, duration and pitch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spans, err := Spans(strings.Join(args, " "), strict || strictTies())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, span := range spans {
			fmt.Fprintf(out, "%s\t%s\t%s\n", span.Offset, span.Duration, describe(span.Instance))
		}
		return nil
	},
}

// Spans parses src and merges its rhythms.
func Spans(src string, strict bool) ([]rhythm.Span[pitch.Pitch], error) {
	rhythms, err := notation.Parse(src)
	if err != nil {
		return nil, err
	}
	var opts []rhythm.MergeOption
	if strict {
		opts = append(opts, rhythm.WithStrictTies())
	}
	spans, err := rhythm.Merge(rhythms, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("merged rhythms", "rhythms", len(rhythms), "spans", len(spans), "strict", strict)
	return spans, nil
}

func strictTies() bool {
	return cfg != nil && cfg.Merge.StrictTies
}

func describe(instance rhythm.AbsenceOrEvent[pitch.Pitch]) string {
	if p, ok := instance.Value(); ok {
		return p.String()
	}
	return "rest"
}
