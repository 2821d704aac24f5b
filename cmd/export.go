package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/musicmodel/constants"
	"github.com/jsphweid/musicmodel/meter"
	"github.com/jsphweid/musicmodel/midi"
	"github.com/jsphweid/musicmodel/tempo"
	"github.com/spf13/cobra"
)

var (
	outFile   string
	meterFlag string
)

func init() {
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <out_dir>/<uuid>.mid)")
	exportCmd.Flags().StringVar(&meterFlag, "meter", "", "time signature to write, e.g. 3/4")
	exportCmd.Flags().BoolVar(&strict, "strict", false, "reject ties that follow nothing")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <rhythm>...",
	Short: "Writes rhythms to a MIDI file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spans, err := Spans(strings.Join(args, " "), strict || strictTies())
		if err != nil {
			return err
		}
		opts, err := exportOptions()
		if err != nil {
			return err
		}
		s, err := midi.ExportPitches(spans, opts)
		if err != nil {
			return err
		}

		path := outFile
		if path == "" {
			path = filepath.Join(outDir(), uuid.New().String()+".mid")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeAndClose(f, s); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Info("exported midi", "path", path, "spans", len(spans))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// writeAndClose always closes w. A close error is reported when the write
// itself succeeded.
func writeAndClose(w io.WriteCloser, src io.WriterTo) error {
	_, err := src.WriteTo(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func outDir() string {
	if cfg == nil {
		return constants.DefaultOutDir
	}
	return cfg.MIDI.OutDir
}

func exportOptions() (midi.Options, error) {
	opts := midi.DefaultOptions()
	if cfg != nil {
		t, err := tempo.New(cfg.MIDI.Tempo, cfg.MIDI.TempoBeat)
		if err != nil {
			return opts, err
		}
		opts.Resolution = uint16(cfg.MIDI.Resolution)
		opts.Tempo = t
		opts.Channel = uint8(cfg.MIDI.Channel)
		opts.Velocity = uint8(cfg.MIDI.Velocity)
	}
	if meterFlag != "" {
		m, err := meter.Parse(meterFlag)
		if err != nil {
			return opts, err
		}
		opts.Meter = m
	}
	return opts, nil
}
