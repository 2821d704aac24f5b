package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jsphweid/musicmodel/constants"
	"github.com/spf13/viper"
)

// Load reads configuration from path (if not empty) and the environment.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", constants.DefaultLogLevel)
	v.SetDefault("server.port", constants.DefaultPort)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("midi.resolution", constants.DefaultResolution)
	v.SetDefault("midi.tempo", constants.DefaultTempo)
	v.SetDefault("midi.tempo_beat", constants.DefaultTempoBeat)
	v.SetDefault("midi.channel", constants.DefaultChannel)
	v.SetDefault("midi.velocity", constants.DefaultVelocity)
	v.SetDefault("midi.out_dir", constants.DefaultOutDir)
	v.SetDefault("merge.strict_ties", false)
}
