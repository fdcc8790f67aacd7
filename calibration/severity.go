package calibration

// Severity represents the displayed urgency of an anti-pattern rule.
// Severities form an ordered ladder from critical down to suppressed;
// calibration moves rules along that ladder one rung at a time.
type Severity string

const (
	// SeverityCritical indicates an issue requiring immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates an important issue.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates a moderate issue.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a minor issue.
	SeverityLow Severity = "low"
	// SeveritySuppressed indicates the rule should not be surfaced at all.
	SeveritySuppressed Severity = "suppressed"
)

// severityLadder orders severities from most severe (index 0) to
// suppressed. Downgrades walk toward higher indices, upgrades toward
// lower ones.
var severityLadder = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeveritySuppressed,
}

// IsValid returns true if the severity is one of the defined rungs.
func (s Severity) IsValid() bool {
	for _, rung := range severityLadder {
		if s == rung {
			return true
		}
	}
	return false
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity converts a string to a Severity, returning false if the
// string does not name a defined rung.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(s)
	return sev, sev.IsValid()
}

// AllSeverities returns the severity ladder from critical to suppressed.
func AllSeverities() []Severity {
	out := make([]Severity, len(severityLadder))
	copy(out, severityLadder)
	return out
}

// CompareSeverity returns a positive value if a is more severe than b,
// zero if equal, and a negative value if a is less severe than b.
// Invalid severities compare as less severe than any valid rung.
func CompareSeverity(a, b Severity) int {
	return ladderIndex(b) - ladderIndex(a)
}

func ladderIndex(s Severity) int {
	for i, rung := range severityLadder {
		if s == rung {
			return i
		}
	}
	return len(severityLadder)
}

// shift moves a severity along the ladder. Negative steps downgrade
// toward suppressed, positive steps upgrade toward critical. The result
// is clamped to the ladder ends.
func shift(s Severity, steps int) Severity {
	idx := ladderIndex(s) - steps
	if idx < 0 {
		idx = 0
	}
	if idx >= len(severityLadder) {
		idx = len(severityLadder) - 1
	}
	return severityLadder[idx]
}
