// Package config loads settings from an optional YAML file and MUSICMODEL_
// environment variables.
package config

// Config holds all application configuration.
type Config struct {
	LogLevel string       `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Server   ServerConfig `mapstructure:"server" validate:"required"`
	MIDI     MIDIConfig   `mapstructure:"midi" validate:"required"`
	Merge    MergeConfig  `mapstructure:"merge"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// MIDIConfig holds export settings. Resolution is ticks per quarter note and
// Tempo counts beats of 1/TempoBeat.
type MIDIConfig struct {
	Resolution int     `mapstructure:"resolution" validate:"required,gt=0,lte=32767"`
	Tempo      float64 `mapstructure:"tempo" validate:"required,gt=0"`
	TempoBeat  int     `mapstructure:"tempo_beat" validate:"required,gt=0"`
	Channel    int     `mapstructure:"channel" validate:"gte=0,lte=15"`
	Velocity   int     `mapstructure:"velocity" validate:"required,gte=1,lte=127"`
	OutDir     string  `mapstructure:"out_dir" validate:"required"`
}

type MergeConfig struct {
	// StrictTies rejects continuations that follow nothing.
	StrictTies bool `mapstructure:"strict_ties"`
}
