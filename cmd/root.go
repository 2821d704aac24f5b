package cmd

import (
	"github.com/jsphweid/musicmodel/config"
	"github.com/jsphweid/musicmodel/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "musicmodel",
	Short: "Rhythm trees, tied durations and MIDI export",
	Long: `musicmodel reads rhythms written as nested proportions, merges tied
leaves into sounding durations and writes them out as MIDI.

  musicmodel lengths "1/1 {1:c4 1:~ 2{1:r 1:e4}}"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		logger.Setup(cmd.ErrOrStderr(), loaded.LogLevel)
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
