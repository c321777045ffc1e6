package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Narrow phase names accepted in settings files.
const (
	NarrowPhaseSAT = "sat"
	NarrowPhaseGJK = "gjk"
)

// Settings holds the simulation parameters.
type Settings struct {
	Gravity          [3]float32 `yaml:"gravity" toml:"gravity"`
	FixedTimestep    float32    `yaml:"fixed_timestep" toml:"fixed_timestep"`
	MaxSubSteps      int        `yaml:"max_substeps" toml:"max_substeps"` // 0 = unlimited
	NarrowPhase      string     `yaml:"narrow_phase" toml:"narrow_phase"`
	ContactEpsilon   float32    `yaml:"contact_epsilon" toml:"contact_epsilon"`
	EPAMaxIterations int        `yaml:"epa_max_iterations" toml:"epa_max_iterations"`
	NewtonIterations int        `yaml:"newton_iterations" toml:"newton_iterations"`
	NewtonTolerance  float32    `yaml:"newton_tolerance" toml:"newton_tolerance"`
	LogLevel         string     `yaml:"log_level" toml:"log_level"`
}

// Default returns settings for a 50 Hz step under Earth gravity.
func Default() Settings {
	return Settings{
		Gravity:          [3]float32{0, -9.81, 0},
		FixedTimestep:    0.02,
		MaxSubSteps:      8,
		NarrowPhase:      NarrowPhaseSAT,
		ContactEpsilon:   1e-3,
		EPAMaxIterations: 4096,
		NewtonIterations: 16,
		NewtonTolerance:  1e-5,
		LogLevel:         "info",
	}
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs []error
	if !(s.FixedTimestep > 0) {
		errs = append(errs, fmt.Errorf("fixed_timestep must be positive, got %v", s.FixedTimestep))
	}
	if s.MaxSubSteps < 0 {
		errs = append(errs, fmt.Errorf("max_substeps must not be negative, got %d", s.MaxSubSteps))
	}
	switch s.NarrowPhase {
	case NarrowPhaseSAT, NarrowPhaseGJK:
	default:
		errs = append(errs, fmt.Errorf("narrow_phase must be %q or %q, got %q", NarrowPhaseSAT, NarrowPhaseGJK, s.NarrowPhase))
	}
	if !(s.ContactEpsilon > 0) {
		errs = append(errs, fmt.Errorf("contact_epsilon must be positive, got %v", s.ContactEpsilon))
	}
	if s.EPAMaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("epa_max_iterations must be positive, got %d", s.EPAMaxIterations))
	}
	if s.NewtonIterations <= 0 {
		errs = append(errs, fmt.Errorf("newton_iterations must be positive, got %d", s.NewtonIterations))
	}
	if !(s.NewtonTolerance > 0) {
		errs = append(errs, fmt.Errorf("newton_tolerance must be positive, got %v", s.NewtonTolerance))
	}
	if _, err := s.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (s Settings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("config: unsupported settings file %q (want .yaml, .yml or .toml)", path)
}

// Load reads settings from a YAML or TOML file, chosen by extension.
// Fields missing from the file keep their defaults. The result is validated.
func Load(path string) (Settings, error) {
	f, err := formatOf(path)
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	s := Default()
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, &s)
	case formatTOML:
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path in the format chosen by its extension, creating
// the directory if needed.
func Save(path string, s Settings) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(s)
	case formatTOML:
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
