// Package calibration adjusts the displayed severity of anti-pattern rules
// from accumulated user feedback: rules users consistently ignore step down
// the severity ladder, rules users fix step back up, and rules calibrated
// below the bottom rung are suppressed entirely.
//
// Calibration is a pure function of a feedback record snapshot. Absent or
// insufficient evidence always degrades to "leave severity unchanged",
// never to an error. Durable storage of the counters is the caller's
// concern; the in-memory Recorder here implements the recording contract
// for single-process use.
package calibration
