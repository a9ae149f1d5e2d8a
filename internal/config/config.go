// Package config loads the tunable settings of cmd/faserver from a TOML
// file, in the same spirit as the teacher's TQW
// world data format: a plain struct decoded with BurntSushi/toml, with a
// FillDefaults/Validate pair rather than panicking on a zero value.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rstenholt/finautom/internal/automaton"
)

const (
	MinSecretSize = 32
	MaxSecretSize = 64
)

// MacroState holds the tunable constants the subset construction uses to
// name the macro-states of its output DFA.
type MacroState struct {
	// Separator joins member state names into a macro-state name.
	// Defaults to "_".
	Separator string

	// Padding is appended (possibly more than once) to resolve a naming
	// collision against an already-assigned macro-state name. Defaults
	// to "+".
	Padding string

	// DeadStateName is the base name for the single dead state
	// introduced to make a converted DFA total. Defaults to "DEAD".
	DeadStateName string
}

// HTTP holds the settings for cmd/faserver.
type HTTP struct {
	// ListenAddress is the host:port faserver binds to. Defaults to
	// ":8080".
	ListenAddress string

	// TokenSecret signs and verifies the bearer JWTs the API requires.
	// When set, it must be between MinSecretSize and MaxSecretSize bytes.
	// FillDefaults leaves it empty; cmd/faserver then signs with a fixed
	// built-in development secret.
	TokenSecret string

	// UnauthDelayMillis is how long to artificially delay a 401
	// response, as an anti-flood measure against naive non-parallel
	// clients. Defaults to 1000.
	UnauthDelayMillis int

	// HistoryPath is the sqlite file the conversion audit log is kept
	// in. Defaults to "history.db".
	HistoryPath string
}

// AsAutomatonConfig adapts MacroState to the shape ToDFAWithConfig
// expects. Call it after FillDefaults so Separator/Padding are known to
// be single characters.
func (m MacroState) AsAutomatonConfig() automaton.MacroStateConfig {
	return automaton.MacroStateConfig{
		Separator:    m.Separator[0],
		Padding:      m.Padding[0],
		DeadBaseName: m.DeadStateName,
	}
}

// UnauthDelay returns UnauthDelayMillis as a time.Duration, or zero if
// the configured value is less than 1.
func (h HTTP) UnauthDelay() time.Duration {
	if h.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Duration(h.UnauthDelayMillis) * time.Millisecond
}

// Config is the top-level configuration shape decoded from a TOML file.
type Config struct {
	MacroState MacroState
	HTTP       HTTP
}

// Load reads and decodes the TOML file at path.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with every unset field given its
// default value.
func (cfg Config) FillDefaults() Config {
	out := cfg

	if out.MacroState.Separator == "" {
		out.MacroState.Separator = "_"
	}
	if out.MacroState.Padding == "" {
		out.MacroState.Padding = "+"
	}
	if out.MacroState.DeadStateName == "" {
		out.MacroState.DeadStateName = "DEAD"
	}
	if out.HTTP.ListenAddress == "" {
		out.HTTP.ListenAddress = ":8080"
	}
	if out.HTTP.UnauthDelayMillis == 0 {
		out.HTTP.UnauthDelayMillis = 1000
	}
	if out.HTTP.HistoryPath == "" {
		out.HTTP.HistoryPath = "history.db"
	}

	return out
}

// Validate returns an error describing the first invalid field found.
// Call it after FillDefaults so zero-valued-but-legitimately-optional
// fields aren't flagged.
func (cfg Config) Validate() error {
	if len(cfg.MacroState.Separator) != 1 {
		return fmt.Errorf("macrostate separator: must be exactly one character, got %q", cfg.MacroState.Separator)
	}
	if len(cfg.MacroState.Padding) != 1 {
		return fmt.Errorf("macrostate padding: must be exactly one character, got %q", cfg.MacroState.Padding)
	}
	if cfg.MacroState.DeadStateName == "" {
		return fmt.Errorf("macrostate dead state name: must not be empty")
	}
	if n := len(cfg.HTTP.TokenSecret); n > 0 && (n < MinSecretSize || n > MaxSecretSize) {
		return fmt.Errorf("http token secret: must be between %d and %d bytes, got %d", MinSecretSize, MaxSecretSize, n)
	}
	return nil
}
