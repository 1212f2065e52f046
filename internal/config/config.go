package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

// Config holds every construction-time tunable of the bundle engine
// (spec §6 "Configuration"). It is validated once, at Load time; nothing
// downstream re-checks these values.
type Config struct {
	// MinSolutionDiversityPercent governs the CP solver's diversity cut:
	// each successive solution must differ from every prior one in a
	// number of items of at least this percentage of that prior's total
	// servings (rounded up, minimum 1).
	MinSolutionDiversityPercent int
	// MaxTimePerSolutionMs is the CP solver's per-solve wall-clock cap.
	MaxTimePerSolutionMs int
	// EnableDetailedLogging switches the solvers' per-iteration zap.Debug
	// logging on.
	EnableDetailedLogging bool
	// DefaultKitchenCap is used by cmd/cli when no kitchen cap flag is
	// supplied.
	DefaultKitchenCap int
	// DefaultTopN is the default number of solutions requested.
	DefaultTopN int
	// GreedyRandomSeed seeds the greedy solver's first run; run k uses
	// seed+k (see package greedy).
	GreedyRandomSeed int64
}

// Load initializes and loads configuration using Viper, mirroring the
// teacher's env-file-plus-defaults pattern.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: .env file not found, using environment variables and defaults")
		} else {
			log.Printf("Error reading config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	}

	cfg := &Config{
		MinSolutionDiversityPercent: viper.GetInt("MIN_SOLUTION_DIVERSITY_PERCENT"),
		MaxTimePerSolutionMs:        viper.GetInt("MAX_TIME_PER_SOLUTION_MS"),
		EnableDetailedLogging:       viper.GetBool("ENABLE_DETAILED_LOGGING"),
		DefaultKitchenCap:           viper.GetInt("DEFAULT_KITCHEN_CAP"),
		DefaultTopN:                 viper.GetInt("DEFAULT_TOP_N"),
		GreedyRandomSeed:            viper.GetInt64("GREEDY_RANDOM_SEED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults() {
	viper.SetDefault("MIN_SOLUTION_DIVERSITY_PERCENT", 30)
	viper.SetDefault("MAX_TIME_PER_SOLUTION_MS", 300)
	viper.SetDefault("ENABLE_DETAILED_LOGGING", false)
	viper.SetDefault("DEFAULT_KITCHEN_CAP", 1000)
	viper.SetDefault("DEFAULT_TOP_N", 3)
	viper.SetDefault("GREEDY_RANDOM_SEED", 42)
}

// Validate checks every field against spec §6's bounds. A bad value is
// InvalidConfig (spec §7): rejected at construction, never surfaced from a
// running build call.
func (c *Config) Validate() error {
	if c.MinSolutionDiversityPercent < 1 || c.MinSolutionDiversityPercent > 100 {
		return fmt.Errorf("%w: minSolutionDiversityPercent must be 1-100, got %d", domain.ErrInvalidConfig, c.MinSolutionDiversityPercent)
	}
	if c.MaxTimePerSolutionMs <= 0 {
		return fmt.Errorf("%w: maxTimePerSolutionMs must be > 0, got %d", domain.ErrInvalidConfig, c.MaxTimePerSolutionMs)
	}
	if c.DefaultKitchenCap <= 0 {
		return fmt.Errorf("%w: defaultKitchenCap must be > 0, got %d", domain.ErrInvalidConfig, c.DefaultKitchenCap)
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("%w: defaultTopN must be > 0, got %d", domain.ErrInvalidConfig, c.DefaultTopN)
	}
	return nil
}
