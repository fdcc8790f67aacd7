package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackRecord(id string, shown, ignored, fixed int) *Record {
	rec := &Record{
		AntiPatternID: id,
		TotalShown:    shown,
		IgnoredCount:  ignored,
		FixedCount:    fixed,
	}
	if shown > 0 {
		rec.IgnoreRate = float64(ignored) / float64(shown)
		rec.FixRate = float64(fixed) / float64(shown)
	}
	return rec
}

func TestCalibrateSeverity(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		original Severity
		record   *Record
		want     Severity
	}{
		{
			name:     "nil record unchanged",
			original: SeverityHigh,
			record:   nil,
			want:     SeverityHigh,
		},
		{
			name:     "below minimum samples unchanged",
			original: SeverityHigh,
			record:   feedbackRecord("ap", 9, 9, 0),
			want:     SeverityHigh,
		},
		{
			name:     "neutral feedback unchanged",
			original: SeverityMedium,
			record:   feedbackRecord("ap", 20, 5, 2),
			want:     SeverityMedium,
		},
		{
			name:     "often ignored steps down one",
			original: SeverityHigh,
			record:   feedbackRecord("ap", 15, 11, 0), // ignore rate ~0.73
			want:     SeverityMedium,
		},
		{
			name:     "almost always ignored suppresses high",
			original: SeverityHigh,
			record:   feedbackRecord("ap", 25, 23, 0), // ignore rate 0.92
			want:     SeveritySuppressed,
		},
		{
			name:     "often fixed steps up one",
			original: SeverityLow,
			record:   feedbackRecord("ap", 10, 0, 6),
			want:     SeverityMedium,
		},
		{
			name:     "ignore and fix cancel",
			original: SeverityHigh,
			record:   feedbackRecord("ap", 20, 15, 11), // ignore 0.75, fix 0.55
			want:     SeverityHigh,
		},
		{
			name:     "upgrade clamps at critical",
			original: SeverityCritical,
			record:   feedbackRecord("ap", 10, 0, 8),
			want:     SeverityCritical,
		},
		{
			name:     "downgrade clamps at suppressed",
			original: SeverityLow,
			record:   feedbackRecord("ap", 50, 48, 0),
			want:     SeveritySuppressed,
		},
		{
			name:     "critical floored at medium",
			original: SeverityCritical,
			record:   feedbackRecord("ap", 50, 48, 0),
			want:     SeverityMedium,
		},
		{
			name:     "critical single downgrade lands on high",
			original: SeverityCritical,
			record:   feedbackRecord("ap", 20, 15, 0),
			want:     SeverityHigh,
		},
		{
			name:     "invalid severity passes through",
			original: Severity("urgent"),
			record:   feedbackRecord("ap", 50, 48, 0),
			want:     Severity("urgent"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalibrateSeverity(tt.original, tt.record, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalibrateSeverityThresholdScenarios(t *testing.T) {
	cfg := DefaultConfig()

	got := CalibrateSeverity(SeverityHigh, &Record{TotalShown: 15, IgnoreRate: 0.75}, cfg)
	assert.Equal(t, SeverityMedium, got)

	got = CalibrateSeverity(SeverityHigh, &Record{TotalShown: 20, IgnoreRate: 0.92}, cfg)
	assert.Equal(t, SeveritySuppressed, got)
}

func TestCalibrateSeverityCriticalNeverBelowFloor(t *testing.T) {
	cfg := DefaultConfig()

	for ignored := 0; ignored <= 100; ignored++ {
		rec := feedbackRecord("ap", 100, ignored, 0)
		got := CalibrateSeverity(SeverityCritical, rec, cfg)
		assert.GreaterOrEqual(t, CompareSeverity(got, cfg.CriticalMinSeverity), 0,
			"ignored=%d calibrated critical to %v, below floor %v", ignored, got, cfg.CriticalMinSeverity)
	}
}

func TestCalibrateSeverityCustomFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CriticalMinSeverity = SeverityHigh

	got := CalibrateSeverity(SeverityCritical, feedbackRecord("ap", 50, 48, 0), cfg)
	assert.Equal(t, SeverityHigh, got)

	// The floor only protects rules that start at critical.
	got = CalibrateSeverity(SeverityHigh, feedbackRecord("ap", 50, 48, 0), cfg)
	assert.Equal(t, SeveritySuppressed, got)
}

func TestCalibrateSeverityZeroConfigUsesDefaults(t *testing.T) {
	got := CalibrateSeverity(SeverityHigh, feedbackRecord("ap", 15, 11, 0), Config{})
	assert.Equal(t, SeverityMedium, got)

	// Below the default minimum sample count nothing moves.
	got = CalibrateSeverity(SeverityHigh, feedbackRecord("ap", 5, 5, 0), Config{})
	assert.Equal(t, SeverityHigh, got)
}

func TestCalibrateAntiPatterns(t *testing.T) {
	cfg := DefaultConfig()
	rules := []Rule{
		{ID: "public-db", Severity: SeverityCritical},
		{ID: "single-lb", Severity: SeverityHigh},
		{ID: "no-cache", Severity: SeverityLow},
		{ID: "flat-network", Severity: SeverityMedium},
	}
	records := map[string]*Record{
		"single-lb":    feedbackRecord("single-lb", 25, 23, 0), // suppressed
		"no-cache":     feedbackRecord("no-cache", 10, 0, 6),   // upgraded to medium
		"flat-network": feedbackRecord("flat-network", 4, 4, 0),
	}

	out := CalibrateAntiPatterns(rules, records, cfg)
	require.Len(t, out, 3)

	byID := make(map[string]CalibratedRule, len(out))
	for _, cr := range out {
		byID[cr.ID] = cr
	}

	assert.NotContains(t, byID, "single-lb")

	pub := byID["public-db"]
	assert.Equal(t, SeverityCritical, pub.OriginalSeverity)
	assert.Equal(t, SeverityCritical, pub.CalibratedSeverity)
	assert.False(t, pub.WasCalibrated)
	assert.Zero(t, pub.TotalShown)

	nc := byID["no-cache"]
	assert.Equal(t, SeverityLow, nc.OriginalSeverity)
	assert.Equal(t, SeverityMedium, nc.CalibratedSeverity)
	assert.True(t, nc.WasCalibrated)
	assert.Equal(t, 10, nc.TotalShown)
	assert.InDelta(t, 0.6, nc.FixRate, 1e-9)

	// Too few samples: decorated with its rates but not calibrated.
	fn := byID["flat-network"]
	assert.Equal(t, SeverityMedium, fn.CalibratedSeverity)
	assert.False(t, fn.WasCalibrated)
	assert.Equal(t, 4, fn.TotalShown)
	assert.InDelta(t, 1.0, fn.IgnoreRate, 1e-9)
}

func TestCalibrateAntiPatternsPreservesCatalogOrder(t *testing.T) {
	rules := []Rule{
		{ID: "b", Severity: SeverityLow},
		{ID: "a", Severity: SeverityHigh},
	}

	out := CalibrateAntiPatterns(rules, nil, DefaultConfig())
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
}

func TestSuppressedIDs(t *testing.T) {
	cfg := DefaultConfig()
	rules := []Rule{
		{ID: "zeta", Severity: SeverityLow},
		{ID: "alpha", Severity: SeverityHigh},
		{ID: "keep", Severity: SeverityMedium},
	}
	records := map[string]*Record{
		"zeta":  feedbackRecord("zeta", 20, 16, 0),  // low -> suppressed
		"alpha": feedbackRecord("alpha", 25, 24, 0), // high -> suppressed
		"keep":  feedbackRecord("keep", 20, 2, 1),
	}

	ids := SuppressedIDs(rules, records, cfg)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestSuppressedIDsEmpty(t *testing.T) {
	rules := []Rule{{ID: "a", Severity: SeverityHigh}}
	assert.Empty(t, SuppressedIDs(rules, nil, DefaultConfig()))
}

func TestFalsePositiveRate(t *testing.T) {
	records := map[string]*Record{
		"a": feedbackRecord("a", 10, 8, 0),
		"b": feedbackRecord("b", 30, 2, 10),
		"c": nil,
	}
	assert.InDelta(t, 0.25, FalsePositiveRate(records), 1e-9)

	assert.Zero(t, FalsePositiveRate(nil))
	assert.Zero(t, FalsePositiveRate(map[string]*Record{
		"a": feedbackRecord("a", 0, 0, 0),
	}))
}
