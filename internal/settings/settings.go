// Package settings holds the persisted history configuration.
package settings

const (
	// MinHistoryLength is the floor for MaxHistoryLength.
	MinHistoryLength = 10

	// DefaultHistoryLength is used when no value has been persisted.
	DefaultHistoryLength = 50
)

// Settings is the process-wide history configuration, persisted alongside
// the history itself. A zero AutoDeleteDays or AutoDeleteCount disables the
// corresponding retention rule.
type Settings struct {
	MaxHistoryLength int
	AutoDeleteDays   int
	AutoDeleteCount  int
}

// Default returns the settings used on first run.
func Default() Settings {
	return Settings{MaxHistoryLength: DefaultHistoryLength}
}

// Clamp applies the documented floors: MaxHistoryLength ≥ MinHistoryLength,
// AutoDeleteDays ≥ 0, AutoDeleteCount ≥ 0. Applied on every set and load so
// an out-of-range persisted value never reaches the engine.
func (s Settings) Clamp() Settings {
	if s.MaxHistoryLength < MinHistoryLength {
		s.MaxHistoryLength = MinHistoryLength
	}
	if s.AutoDeleteDays < 0 {
		s.AutoDeleteDays = 0
	}
	if s.AutoDeleteCount < 0 {
		s.AutoDeleteCount = 0
	}
	return s
}
