// Package config loads wireroute settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"wireroute/editor"
	"wireroute/pathfinding"
)

// Config is the root of the configuration file.
type Config struct {
	Routing RoutingConfig `toml:"routing"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// RoutingConfig holds the cost model and search limits.
type RoutingConfig struct {
	GridPitch       int `toml:"grid_pitch"`
	StepCost        int `toml:"step_cost"`
	ExtendCost      int `toml:"extend_cost"`
	TurnPenalty     int `toml:"turn_penalty"`
	CrossingPenalty int `toml:"crossing_penalty"`
	MaxNodes        int `toml:"max_nodes"`
	AbortInterval   int `toml:"abort_interval"`
}

// HistoryConfig sizes the undo log.
type HistoryConfig struct {
	Capacity int `toml:"capacity"`
}

// LogConfig selects log verbosity: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	c := DefaultPathCostConfig()
	return Config{
		Routing: c,
		History: HistoryConfig{Capacity: editor.DefaultCapacity},
		Log:     LogConfig{Level: "info"},
	}
}

// DefaultPathCostConfig mirrors pathfinding.DefaultPathCost.
func DefaultPathCostConfig() RoutingConfig {
	p := pathfinding.DefaultPathCost
	return RoutingConfig{
		GridPitch:       p.GridPitch,
		StepCost:        p.StepCost,
		ExtendCost:      p.ExtendCost,
		TurnPenalty:     p.TurnPenalty,
		CrossingPenalty: p.CrossingPenalty,
		MaxNodes:        p.MaxNodes,
		AbortInterval:   p.AbortInterval,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the router cannot work with.
func (c Config) Validate() error {
	var errs []error
	r := c.Routing
	if r.GridPitch <= 0 {
		errs = append(errs, fmt.Errorf("routing.grid_pitch must be positive, got %d", r.GridPitch))
	}
	if r.StepCost <= 0 || r.ExtendCost <= 0 {
		errs = append(errs, errors.New("routing.step_cost and routing.extend_cost must be positive"))
	}
	if r.ExtendCost > r.StepCost {
		errs = append(errs, fmt.Errorf("routing.extend_cost %d exceeds step_cost %d", r.ExtendCost, r.StepCost))
	}
	if r.TurnPenalty < 0 || r.CrossingPenalty < 0 {
		errs = append(errs, errors.New("routing penalties must not be negative"))
	}
	if r.MaxNodes <= 0 || r.AbortInterval <= 0 {
		errs = append(errs, errors.New("routing.max_nodes and routing.abort_interval must be positive"))
	}
	if c.History.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("history.capacity must be positive, got %d", c.History.Capacity))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PathCost converts the routing table into a cost model.
func (c Config) PathCost() pathfinding.PathCost {
	r := c.Routing
	return pathfinding.PathCost{
		GridPitch:       r.GridPitch,
		StepCost:        r.StepCost,
		ExtendCost:      r.ExtendCost,
		TurnPenalty:     r.TurnPenalty,
		CrossingPenalty: r.CrossingPenalty,
		MaxNodes:        r.MaxNodes,
		AbortInterval:   r.AbortInterval,
	}
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewLogger builds the text logger used by the command line tools.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
