package config

import "testing"

func TestLoadFromReaderAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromReader("yaml", []byte(`{}`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Force.LinkStrength != 1.0 {
		t.Fatalf("LinkStrength = %v, want default 1.0", cfg.Force.LinkStrength)
	}
	if cfg.Driver.MaxIterations != 500 {
		t.Fatalf("MaxIterations = %v, want default 500", cfg.Driver.MaxIterations)
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	yaml := []byte(`
force:
  link_strength: 2.5
driver:
  max_iterations: 10
`)
	cfg, err := LoadFromReader("yaml", yaml)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Force.LinkStrength != 2.5 {
		t.Fatalf("LinkStrength = %v, want 2.5", cfg.Force.LinkStrength)
	}
	if cfg.Driver.MaxIterations != 10 {
		t.Fatalf("MaxIterations = %v, want 10", cfg.Driver.MaxIterations)
	}
}

func TestValidateRejectsBadStepBounds(t *testing.T) {
	cfg := Config{Driver: DriverConfig{MinStepSize: 0, MaxStepSize: 1, MaxIterations: 1}, Coarsening: CoarseningConfig{MinLevelNodes: 1}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for zero MinStepSize")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := LoadFromReader("yaml", []byte(`{}`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}
