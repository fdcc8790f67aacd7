// Package engine provides the diagram mutation and calibration core used by
// the Archsketch infrastructure-diagram assistant.
//
// The engine turns untrusted, LLM-derived JSON payloads into typed graph
// mutations, applies them to an infrastructure topology, diffs topology
// snapshots, and recalibrates risk-rule severities from accumulated user
// feedback.
//
// # Core Concepts
//
// The engine is organized around several key concepts:
//
//   - Specs: in-memory infrastructure topologies (nodes plus connections)
//   - Operations: atomic, validated graph-mutation instructions
//   - Intents: higher-level requests (kind plus component list) synthesized
//     into spec mutations when no explicit operation list exists
//   - Diffs: structural comparisons between two spec snapshots
//   - Calibration: severity adjustment of risk rules from ignore/fix feedback
//
// # Architecture
//
// Packages are layered leaves-first:
//
//   - diagram: Spec/Node/Connection value types and the tier/flow enums
//   - parser: JSON payload extraction from raw LLM output
//   - mutation: operation schema, batch validation, in-order application
//   - intent: intent-to-mutation synthesis
//   - diff: structural spec diffing and modification scoring
//   - calibration: severity calibration and feedback accounting
//   - antipattern: the risk-rule catalog and CEL-based detection
//
// All computational components are synchronous, side-effect-free functions
// over immutable inputs. Domain failures are returned values; the engine
// never panics on malformed payloads.
//
// This root package carries the shared error taxonomy. Validation failures
// and application failures are distinguished by kind so callers can decide
// whether to re-prompt the LLM or surface the failure to the user:
//
//	result := applier.Apply(spec, ops)
//	if !result.Success {
//		var engErr *engine.EngineError
//		if errors.As(result.Err, &engErr) && engErr.Kind == engine.KindValidation {
//			// ask the model to reformat
//		}
//	}
package engine
