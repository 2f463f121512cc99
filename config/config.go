// Package config provides configuration management for the layout engine,
// grounded on junjiewwang-perf-analysis/pkg/config/config.go: a
// viper-backed Config struct with mapstructure-tagged sections, defaults,
// and validation.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for a layoutctl run.
type Config struct {
	Force      ForceConfig      `mapstructure:"force"`
	Coarsening CoarseningConfig `mapstructure:"coarsening"`
	Driver     DriverConfig     `mapstructure:"driver"`
	Log        LogConfig        `mapstructure:"log"`
}

// ForceConfig holds the force engine's recognised parameter set
// (spec.md §4.E).
type ForceConfig struct {
	LinkStrength             float64 `mapstructure:"link_strength"`
	UseRefFreq               bool    `mapstructure:"use_ref_freq"`
	AntiGravityFalloffRsq    float64 `mapstructure:"anti_gravity_falloff_rsq"`
	AntiGravityFalloffRsqInv float64 `mapstructure:"anti_gravity_falloff_rsq_inv"`
	DoCloseRepulsion         bool    `mapstructure:"do_close_repulsion"`
	CloseRepulsionA          float64 `mapstructure:"close_repulsion_a"`
	CloseRepulsionB          float64 `mapstructure:"close_repulsion_b"`
	CloseRepulsionC          float64 `mapstructure:"close_repulsion_c"`
	CloseRepulsionD          float64 `mapstructure:"close_repulsion_d"`
}

// CoarseningConfig holds build-hierarchy parameters (spec.md §4.D).
type CoarseningConfig struct {
	FactorRefLink   float64 `mapstructure:"factor_ref_link"`
	FactorOtherLink float64 `mapstructure:"factor_other_link"`
	AgeWeaken       bool    `mapstructure:"age_weaken"`
	// MinLevelNodes stops coarsening once a level's node count falls at or
	// below this bound, per spec.md §4.D ("until node count is small
	// enough for force solution to converge quickly").
	MinLevelNodes int `mapstructure:"min_level_nodes"`
}

// DriverConfig holds the iteration driver's step-size and convergence
// parameters (spec.md §4.F).
type DriverConfig struct {
	InitialStepSize     float64 `mapstructure:"initial_step_size"`
	StepGrowth          float64 `mapstructure:"step_growth"`
	StepShrink          float64 `mapstructure:"step_shrink"`
	MinStepSize         float64 `mapstructure:"min_step_size"`
	MaxStepSize         float64 `mapstructure:"max_step_size"`
	ConvergenceMaxForce float64 `mapstructure:"convergence_max_force"`
	MaxIterations       int     `mapstructure:"max_iterations"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configPath, falling back to the standard
// search locations and then defaults if no file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("layoutctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/layoutctl")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Printf("config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration from raw content of the given viper
// config type (e.g. "yaml", "json"); useful for tests and for embedding a
// fixture config alongside a test snapshot.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("force.link_strength", 1.0)
	v.SetDefault("force.use_ref_freq", false)
	v.SetDefault("force.anti_gravity_falloff_rsq", 2500.0)
	v.SetDefault("force.anti_gravity_falloff_rsq_inv", 1.0/2500.0)
	v.SetDefault("force.do_close_repulsion", true)
	v.SetDefault("force.close_repulsion_a", 1.0)
	v.SetDefault("force.close_repulsion_b", 100.0)
	v.SetDefault("force.close_repulsion_c", 1.0)
	v.SetDefault("force.close_repulsion_d", 0.0)

	v.SetDefault("coarsening.factor_ref_link", 1.0)
	v.SetDefault("coarsening.factor_other_link", 1.0)
	v.SetDefault("coarsening.age_weaken", false)
	v.SetDefault("coarsening.min_level_nodes", 50)

	v.SetDefault("driver.initial_step_size", 0.1)
	v.SetDefault("driver.step_growth", 1.1)
	v.SetDefault("driver.step_shrink", 0.5)
	v.SetDefault("driver.min_step_size", 1e-4)
	v.SetDefault("driver.max_step_size", 5.0)
	v.SetDefault("driver.convergence_max_force", 1e-3)
	v.SetDefault("driver.max_iterations", 500)

	v.SetDefault("log.level", "info")
}

// Validate checks invariants Load/LoadFromReader can't express as
// defaults: positive step bounds and a sane coarsening floor.
func (c *Config) Validate() error {
	if c.Driver.MinStepSize <= 0 {
		return fmt.Errorf("driver.min_step_size must be positive")
	}
	if c.Driver.MaxStepSize < c.Driver.MinStepSize {
		return fmt.Errorf("driver.max_step_size must be >= min_step_size")
	}
	if c.Coarsening.MinLevelNodes < 1 {
		return fmt.Errorf("coarsening.min_level_nodes must be at least 1")
	}
	if c.Driver.MaxIterations < 1 {
		return fmt.Errorf("driver.max_iterations must be at least 1")
	}
	return nil
}
