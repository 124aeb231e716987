// Package ictcfg loads the toolkit's own TOML configuration: trace
// logging, whether a grammar conflict aborts table generation or only
// warns, and the panic-mode recovery budget.
package ictcfg

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/parse"
)

// Config is the toolkit's top-level configuration, loaded from a TOML
// file.
type Config struct {
	// Trace enables verbose logging of DFA/LR construction and the
	// parse driver's shift/reduce/recover decisions.
	Trace bool `toml:"trace"`

	// ConflictsFatal makes BuildTables fail on any shift-reduce or
	// reduce-reduce conflict when true (the default). Set false during
	// grammar development to keep working with a table that resolves
	// conflicts by preferring shift over reduce and the first-declared of
	// several reducible productions, recording each resolution in
	// lr.Tables.Warnings instead of failing outright.
	ConflictsFatal bool `toml:"conflicts_fatal"`

	Recovery RecoveryConfig `toml:"recovery"`
}

// RecoveryConfig controls the parse driver's panic-mode recovery.
type RecoveryConfig struct {
	Enabled             bool `toml:"enabled"`
	MaxAttempts         int  `toml:"max_attempts"`
	RecentTerminalWindow int `toml:"recent_terminal_window"`
}

// Default returns the toolkit's built-in defaults: tracing off,
// conflicts fatal, recovery on with an 8-token budget and window.
func Default() Config {
	return Config{
		Trace:          false,
		ConflictsFatal: true,
		Recovery: RecoveryConfig{
			Enabled:              true,
			MaxAttempts:          8,
			RecentTerminalWindow: 8,
		},
	}
}

// Load reads and decodes a TOML config file at path, starting from
// Default so that a file may specify only the fields it wants to
// override.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("ictcfg: loading %s: %w", path, err)
	}
	return cfg, nil
}

// Write serializes cfg as TOML to path, for scaffolding a default
// config file a user can then edit.
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ictcfg: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("ictcfg: writing %s: %w", path, err)
	}
	return nil
}

// ParseOptions converts the recovery section into a parse.Options, wiring
// Tracer in as its Trace hook.
func (c Config) ParseOptions() parse.Options {
	return parse.Options{
		Recover:             c.Recovery.Enabled,
		MaxRecoveryAttempts: c.Recovery.MaxAttempts,
		RecentWindow:        c.Recovery.RecentTerminalWindow,
		Trace:               c.Tracer(),
	}
}

// Tracer returns a trace hook suitable for lr.BuildWithOptions or
// parse.Options.Trace: nil when Trace is off, otherwise a func(string) that
// logs each message via the standard logger.
func (c Config) Tracer() func(string) {
	if !c.Trace {
		return nil
	}
	return func(msg string) { log.Println(msg) }
}

// BuildTables runs lr.BuildWithOptions for g using this config's trace hook
// and ConflictsFatal setting.
func (c Config) BuildTables(g *grammar.Grammar) (*lr.Tables, error) {
	return lr.BuildWithOptions(g, c.Tracer(), c.ConflictsFatal)
}
