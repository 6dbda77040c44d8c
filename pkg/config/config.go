// Package config implements CompilationConfig: the optimisation-adjacent
// knobs that parameterize one compile, loadable from a YAML project file
// via gopkg.in/yaml.v3. This mirrors the teacher's
// pkg/corset.CompilationConfig (Stdlib/Debug/Legacy flags threaded through
// CompileSourceFiles), but given a file format since this core is a
// library other drivers embed rather than a single CLI's flag set.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CompilationConfig holds the knobs that affect one compilation run.
type CompilationConfig struct {
	// Stdlib enables the built-in declaration-header pattern rule, the
	// way the teacher's Stdlib flag includes a prelude source file.
	Stdlib bool `yaml:"stdlib"`
	// Debug is loaded and saved with the rest of the configuration; no
	// compile phase reads it, so it does not change which diagnostics are
	// emitted.
	Debug bool `yaml:"debug"`
	// OptimizationLevel records the CLI's -O0..-O3 level (spec.md §6). It is
	// range-checked (0..3) and carried in the configuration; no compile
	// phase reads it, so every level compiles the same way.
	OptimizationLevel int `yaml:"optimization_level"`
	// TickBudget caps the number of observe-collapse-propagate steps the
	// engine will run before aborting with a Fatal diagnostic, via the
	// tick-callback hook (0 means unbounded).
	TickBudget int `yaml:"tick_budget"`
}

// Default returns the zero-optimisation, unbounded, stdlib-enabled
// configuration new projects start from.
func Default() CompilationConfig {
	return CompilationConfig{Stdlib: true, OptimizationLevel: 0}
}

// Load reads a CompilationConfig from a YAML file at path.
func Load(path string) (CompilationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CompilationConfig{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CompilationConfig{}, fmt.Errorf("load config: parse %s: %w", path, err)
	}

	if cfg.OptimizationLevel < 0 || cfg.OptimizationLevel > 3 {
		return CompilationConfig{}, fmt.Errorf("load config: optimization_level must be 0-3, got %d", cfg.OptimizationLevel)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, overwriting any existing file.
func Save(path string, cfg CompilationConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	return nil
}
