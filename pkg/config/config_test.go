package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_RoundTripsThroughSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "braggi.yaml")

	cfg := CompilationConfig{Stdlib: false, Debug: true, OptimizationLevel: 2, TickBudget: 10_000}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestLoad_RejectsOutOfRangeOptimizationLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "braggi.yaml")

	if err := Save(path, CompilationConfig{OptimizationLevel: 7}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for optimization_level 7")
	}
}

func TestDefault_EnablesStdlibAtOptimizationZero(t *testing.T) {
	d := Default()
	if !d.Stdlib || d.OptimizationLevel != 0 {
		t.Fatalf("unexpected default config: %+v", d)
	}
}
