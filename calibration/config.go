package calibration

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/archsketch-ai/engine"
)

// Config holds the thresholds that govern severity calibration.
// The zero value of any field falls back to its default, so partial
// configurations compose with DefaultConfig rather than zeroing
// thresholds out.
type Config struct {
	// MinSamplesForCalibration is the minimum number of times a rule
	// must have been shown before calibration applies.
	MinSamplesForCalibration int `json:"min_samples_for_calibration" yaml:"min_samples_for_calibration"`

	// IgnoreRateDowngrade1 is the ignore rate at which a rule steps
	// down one severity rung.
	IgnoreRateDowngrade1 float64 `json:"ignore_rate_downgrade_1" yaml:"ignore_rate_downgrade_1"`

	// IgnoreRateDowngrade2 is the ignore rate at which a rule steps
	// down two further rungs on top of the first downgrade.
	IgnoreRateDowngrade2 float64 `json:"ignore_rate_downgrade_2" yaml:"ignore_rate_downgrade_2"`

	// FixRateUpgrade is the fix rate at which a rule steps up one
	// severity rung.
	FixRateUpgrade float64 `json:"fix_rate_upgrade" yaml:"fix_rate_upgrade"`

	// CriticalMinSeverity is the lowest severity a rule whose original
	// severity is critical can be calibrated down to.
	CriticalMinSeverity Severity `json:"critical_min_severity" yaml:"critical_min_severity"`
}

// DefaultConfig returns the calibration thresholds used when no
// configuration is supplied.
func DefaultConfig() Config {
	return Config{
		MinSamplesForCalibration: 10,
		IgnoreRateDowngrade1:     0.7,
		IgnoreRateDowngrade2:     0.9,
		FixRateUpgrade:           0.5,
		CriticalMinSeverity:      SeverityMedium,
	}
}

// LoadConfig parses a YAML configuration. Fields absent from the
// document keep their defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, engine.NewValidationError("calibration.LoadConfig",
			fmt.Errorf("parse config: %w", err))
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the thresholds are coherent.
func (c Config) Validate() error {
	if c.MinSamplesForCalibration < 0 {
		return engine.NewValidationError("calibration.Config.Validate",
			fmt.Errorf("min_samples_for_calibration must not be negative, got %d", c.MinSamplesForCalibration))
	}
	for name, rate := range map[string]float64{
		"ignore_rate_downgrade_1": c.IgnoreRateDowngrade1,
		"ignore_rate_downgrade_2": c.IgnoreRateDowngrade2,
		"fix_rate_upgrade":        c.FixRateUpgrade,
	} {
		if rate < 0 || rate > 1 {
			return engine.NewValidationError("calibration.Config.Validate",
				fmt.Errorf("%s must be in [0, 1], got %v", name, rate))
		}
	}
	if c.IgnoreRateDowngrade2 < c.IgnoreRateDowngrade1 {
		return engine.NewValidationError("calibration.Config.Validate",
			fmt.Errorf("ignore_rate_downgrade_2 (%v) must not be below ignore_rate_downgrade_1 (%v)",
				c.IgnoreRateDowngrade2, c.IgnoreRateDowngrade1))
	}
	if !c.CriticalMinSeverity.IsValid() {
		return engine.NewValidationError("calibration.Config.Validate",
			fmt.Errorf("critical_min_severity %q is not a valid severity", c.CriticalMinSeverity))
	}
	return nil
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinSamplesForCalibration == 0 {
		c.MinSamplesForCalibration = def.MinSamplesForCalibration
	}
	if c.IgnoreRateDowngrade1 == 0 {
		c.IgnoreRateDowngrade1 = def.IgnoreRateDowngrade1
	}
	if c.IgnoreRateDowngrade2 == 0 {
		c.IgnoreRateDowngrade2 = def.IgnoreRateDowngrade2
	}
	if c.FixRateUpgrade == 0 {
		c.FixRateUpgrade = def.FixRateUpgrade
	}
	if c.CriticalMinSeverity == "" {
		c.CriticalMinSeverity = def.CriticalMinSeverity
	}
	return c
}
