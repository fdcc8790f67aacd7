package calibration

import (
	"sync"
	"time"
)

// EventKind identifies a single piece of user feedback on a rule.
type EventKind string

const (
	// EventShown records that a rule was surfaced to the user.
	EventShown EventKind = "shown"
	// EventIgnored records that the user dismissed the rule.
	EventIgnored EventKind = "ignored"
	// EventFixed records that the user applied the rule's suggested fix.
	EventFixed EventKind = "fixed"
)

// Event is one recorded piece of feedback.
type Event struct {
	AntiPatternID string    `json:"anti_pattern_id" yaml:"anti_pattern_id"`
	Kind          EventKind `json:"kind" yaml:"kind"`
	At            time.Time `json:"at" yaml:"at"`
}

// defaultHistoryCapacity bounds the recorder's event history when the
// caller does not size it.
const defaultHistoryCapacity = 256

// Recorder accumulates per-rule feedback counters in memory. It is safe
// for concurrent use. Alongside the counters it keeps a bounded history
// of the most recent events; once the history is full the oldest events
// are overwritten.
type Recorder struct {
	mu      sync.RWMutex
	records map[string]*Record
	history []Event
	cursor  uint64

	now func() time.Time
}

// NewRecorder returns an empty recorder whose event history holds up to
// historyCapacity events. A capacity of zero or less selects the
// default.
func NewRecorder(historyCapacity int) *Recorder {
	if historyCapacity <= 0 {
		historyCapacity = defaultHistoryCapacity
	}
	return &Recorder{
		records: make(map[string]*Record),
		history: make([]Event, historyCapacity),
		now:     time.Now,
	}
}

// RecordShown counts one display of the rule.
func (r *Recorder) RecordShown(antiPatternID string) {
	r.record(antiPatternID, EventShown)
}

// RecordIgnored counts one dismissal of the rule.
func (r *Recorder) RecordIgnored(antiPatternID string) {
	r.record(antiPatternID, EventIgnored)
}

// RecordFixed counts one applied fix for the rule.
func (r *Recorder) RecordFixed(antiPatternID string) {
	r.record(antiPatternID, EventFixed)
}

func (r *Recorder) record(antiPatternID string, kind EventKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	rec := r.records[antiPatternID]
	if rec == nil {
		rec = &Record{AntiPatternID: antiPatternID}
		r.records[antiPatternID] = rec
	}
	switch kind {
	case EventShown:
		rec.TotalShown++
	case EventIgnored:
		rec.IgnoredCount++
	case EventFixed:
		rec.FixedCount++
	}
	if rec.TotalShown > 0 {
		rec.IgnoreRate = float64(rec.IgnoredCount) / float64(rec.TotalShown)
		rec.FixRate = float64(rec.FixedCount) / float64(rec.TotalShown)
	}
	rec.LastUpdated = now

	r.history[r.cursor%uint64(len(r.history))] = Event{
		AntiPatternID: antiPatternID,
		Kind:          kind,
		At:            now,
	}
	r.cursor++
}

// Snapshot returns a copy of the record for one rule, or nil if the rule
// has no feedback yet.
func (r *Recorder) Snapshot(antiPatternID string) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec := r.records[antiPatternID]
	if rec == nil {
		return nil
	}
	cp := *rec
	return &cp
}

// Records returns a copy of all accumulated records keyed by rule ID,
// suitable as input to CalibrateAntiPatterns.
func (r *Recorder) Records() map[string]*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Record, len(r.records))
	for id, rec := range r.records {
		cp := *rec
		out[id] = &cp
	}
	return out
}

// History returns the retained events in recording order, oldest first.
func (r *Recorder) History() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capacity := uint64(len(r.history))
	if r.cursor <= capacity {
		out := make([]Event, r.cursor)
		copy(out, r.history[:r.cursor])
		return out
	}
	out := make([]Event, 0, capacity)
	start := r.cursor % capacity
	out = append(out, r.history[start:]...)
	out = append(out, r.history[:start]...)
	return out
}
