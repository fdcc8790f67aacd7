package calibration

import (
	"sort"
	"time"
)

// Record is the accumulated feedback for a single anti-pattern rule.
type Record struct {
	AntiPatternID      string    `json:"anti_pattern_id" yaml:"anti_pattern_id"`
	TotalShown         int       `json:"total_shown" yaml:"total_shown"`
	IgnoredCount       int       `json:"ignored_count" yaml:"ignored_count"`
	FixedCount         int       `json:"fixed_count" yaml:"fixed_count"`
	IgnoreRate         float64   `json:"ignore_rate" yaml:"ignore_rate"`
	FixRate            float64   `json:"fix_rate" yaml:"fix_rate"`
	OriginalSeverity   Severity  `json:"original_severity" yaml:"original_severity"`
	CalibratedSeverity Severity  `json:"calibrated_severity" yaml:"calibrated_severity"`
	LastUpdated        time.Time `json:"last_updated" yaml:"last_updated"`
}

// Rule is the calibration-relevant view of a catalog rule.
type Rule struct {
	ID       string   `json:"id" yaml:"id"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// CalibratedRule is a catalog rule decorated with the outcome of
// calibration.
type CalibratedRule struct {
	ID                 string   `json:"id" yaml:"id"`
	OriginalSeverity   Severity `json:"original_severity" yaml:"original_severity"`
	CalibratedSeverity Severity `json:"calibrated_severity" yaml:"calibrated_severity"`
	WasCalibrated      bool     `json:"was_calibrated" yaml:"was_calibrated"`
	IgnoreRate         float64  `json:"ignore_rate" yaml:"ignore_rate"`
	FixRate            float64  `json:"fix_rate" yaml:"fix_rate"`
	TotalShown         int      `json:"total_shown" yaml:"total_shown"`
}

// CalibrateSeverity computes the displayed severity for a rule given its
// catalog severity and feedback record. A nil record, a record with fewer
// samples than the configured minimum, or an unrecognized severity leaves
// the severity unchanged.
//
// High ignore rates step the severity down the ladder: past
// IgnoreRateDowngrade1 by one rung, past IgnoreRateDowngrade2 by two
// more. A fix rate past FixRateUpgrade steps it up one rung. The steps
// are additive, so a rule that is both often ignored and often fixed can
// cancel out. Rules whose catalog severity is critical are never
// calibrated below CriticalMinSeverity.
func CalibrateSeverity(original Severity, record *Record, cfg Config) Severity {
	cfg = cfg.withDefaults()
	if !original.IsValid() {
		return original
	}
	if record == nil || record.TotalShown < cfg.MinSamplesForCalibration {
		return original
	}

	steps := 0
	if record.IgnoreRate >= cfg.IgnoreRateDowngrade1 {
		steps--
	}
	if record.IgnoreRate >= cfg.IgnoreRateDowngrade2 {
		steps -= 2
	}
	if record.FixRate >= cfg.FixRateUpgrade {
		steps++
	}
	if steps == 0 {
		return original
	}

	calibrated := shift(original, steps)
	if original == SeverityCritical && CompareSeverity(calibrated, cfg.CriticalMinSeverity) < 0 {
		calibrated = cfg.CriticalMinSeverity
	}
	return calibrated
}

// CalibrateAntiPatterns calibrates a rule catalog against feedback
// records keyed by rule ID. Rules calibrated to suppressed are dropped
// from the result. Rules without a record pass through unchanged.
func CalibrateAntiPatterns(rules []Rule, records map[string]*Record, cfg Config) []CalibratedRule {
	out := make([]CalibratedRule, 0, len(rules))
	for _, rule := range rules {
		record := records[rule.ID]
		calibrated := CalibrateSeverity(rule.Severity, record, cfg)
		if calibrated == SeveritySuppressed {
			continue
		}
		cr := CalibratedRule{
			ID:                 rule.ID,
			OriginalSeverity:   rule.Severity,
			CalibratedSeverity: calibrated,
			WasCalibrated:      calibrated != rule.Severity,
		}
		if record != nil {
			cr.IgnoreRate = record.IgnoreRate
			cr.FixRate = record.FixRate
			cr.TotalShown = record.TotalShown
		}
		out = append(out, cr)
	}
	return out
}

// SuppressedIDs returns the IDs of rules whose calibrated severity is
// suppressed, sorted for stable output.
func SuppressedIDs(rules []Rule, records map[string]*Record, cfg Config) []string {
	var ids []string
	for _, rule := range rules {
		if CalibrateSeverity(rule.Severity, records[rule.ID], cfg) == SeveritySuppressed {
			ids = append(ids, rule.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// FalsePositiveRate aggregates the ignore rate across all records:
// total ignored over total shown. It returns 0 when nothing has been
// shown.
func FalsePositiveRate(records map[string]*Record) float64 {
	var shown, ignored int
	for _, record := range records {
		if record == nil {
			continue
		}
		shown += record.TotalShown
		ignored += record.IgnoredCount
	}
	if shown == 0 {
		return 0
	}
	return float64(ignored) / float64(shown)
}
