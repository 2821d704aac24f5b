package constants

// EnvPrefix namespaces every environment variable read by config,
// e.g. MUSICMODEL_MIDI_OUT_DIR.
const EnvPrefix = "MUSICMODEL"

const (
	DefaultLogLevel = "info"
	DefaultPort     = 8080
)

// MIDI export defaults. Resolution is in ticks per quarter note.
const (
	DefaultResolution     = 960
	DefaultTempo          = 120.0
	DefaultTempoBeat      = 4
	DefaultChannel        = 0
	DefaultVelocity       = 80
	DefaultOutDir         = "./out"
	DefaultMaxInspectSize = 1000
)
