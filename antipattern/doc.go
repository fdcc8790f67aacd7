// Package antipattern detects architectural risks in infrastructure
// diagrams. Risks are described by a frozen catalog of rules, each a CEL
// boolean expression over the diagram's nodes and connections; a
// Detector compiles the catalog once and evaluates it against a Spec.
//
// Detected findings carry the rule's baseline severity. Callers that
// track user feedback can pass it through DetectCalibrated to surface
// feedback-adjusted severities instead, with suppressed rules filtered
// out entirely.
package antipattern
