package antipattern

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/archsketch-ai/engine"
	"github.com/archsketch-ai/engine/calibration"
	"github.com/archsketch-ai/engine/diagram"
)

// Finding is one detected anti-pattern occurrence.
type Finding struct {
	AntiPatternID string               `json:"anti_pattern_id" yaml:"anti_pattern_id"`
	Title         string               `json:"title" yaml:"title"`
	Description   string               `json:"description" yaml:"description"`
	Severity      calibration.Severity `json:"severity" yaml:"severity"`
}

type compiledRule struct {
	pattern AntiPattern
	program cel.Program
}

// Detector evaluates a compiled rule set against diagram specs. A
// Detector is immutable after construction and safe for concurrent use.
type Detector struct {
	rules []compiledRule
}

// NewDetector compiles the built-in catalog.
func NewDetector() (*Detector, error) {
	return NewDetectorWithRules(Catalog())
}

// NewDetectorWithRules compiles an explicit rule set. Each rule's Expr
// is checked to produce a boolean. CEL expressions may reference:
//
//   - nodes: list of maps with id, type, label, tier, zone
//   - connections: list of maps with source, target, flowType, label
//   - nodeTypes: map from node id to component type
//   - nodeTiers: map from node id to tier
func NewDetectorWithRules(rules []AntiPattern) (*Detector, error) {
	env, err := cel.NewEnv(
		cel.Variable("nodes", cel.ListType(cel.DynType)),
		cel.Variable("connections", cel.ListType(cel.DynType)),
		cel.Variable("nodeTypes", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("nodeTiers", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, engine.NewInternalError("antipattern.NewDetector",
			fmt.Errorf("create cel environment: %w", err))
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		ast, issues := env.Compile(rule.Expr)
		if issues != nil && issues.Err() != nil {
			return nil, engine.NewValidationError("antipattern.NewDetector",
				fmt.Errorf("compile rule %q: %w", rule.ID, issues.Err())).
				WithContext(map[string]any{"anti_pattern_id": rule.ID})
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, engine.NewValidationError("antipattern.NewDetector",
				fmt.Errorf("rule %q must evaluate to bool, got %s", rule.ID, ast.OutputType())).
				WithContext(map[string]any{"anti_pattern_id": rule.ID})
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, engine.NewInternalError("antipattern.NewDetector",
				fmt.Errorf("build program for rule %q: %w", rule.ID, err))
		}
		compiled = append(compiled, compiledRule{pattern: rule, program: program})
	}

	return &Detector{rules: compiled}, nil
}

// Detect evaluates every rule against the spec and returns a finding for
// each rule that matches, in catalog order. A nil spec is treated as an
// empty diagram.
func (d *Detector) Detect(spec *diagram.Spec) ([]Finding, error) {
	act := specActivation(spec)

	var findings []Finding
	for _, rule := range d.rules {
		out, _, err := rule.program.Eval(act)
		if err != nil {
			return nil, engine.NewInternalError("antipattern.Detect",
				fmt.Errorf("evaluate rule %q: %w", rule.pattern.ID, err)).
				WithContext(map[string]any{"anti_pattern_id": rule.pattern.ID})
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return nil, engine.NewInternalError("antipattern.Detect",
				fmt.Errorf("rule %q produced %T, want bool", rule.pattern.ID, out.Value()))
		}
		if matched {
			findings = append(findings, Finding{
				AntiPatternID: rule.pattern.ID,
				Title:         rule.pattern.Title,
				Description:   rule.pattern.Description,
				Severity:      rule.pattern.Severity,
			})
		}
	}
	return findings, nil
}

// DetectCalibrated detects anti-patterns and replaces each finding's
// baseline severity with its feedback-calibrated one. Findings whose
// calibrated severity is suppressed are dropped.
func (d *Detector) DetectCalibrated(spec *diagram.Spec, records map[string]*calibration.Record, cfg calibration.Config) ([]Finding, error) {
	findings, err := d.Detect(spec)
	if err != nil {
		return nil, err
	}

	out := findings[:0]
	for _, f := range findings {
		calibrated := calibration.CalibrateSeverity(f.Severity, records[f.AntiPatternID], cfg)
		if calibrated == calibration.SeveritySuppressed {
			continue
		}
		f.Severity = calibrated
		out = append(out, f)
	}
	return out, nil
}

// specActivation projects a spec into the CEL evaluation environment.
func specActivation(spec *diagram.Spec) map[string]any {
	if spec == nil {
		spec = diagram.NewSpec()
	}

	nodes := make([]any, 0, len(spec.Nodes))
	nodeTypes := make(map[string]string, len(spec.Nodes))
	nodeTiers := make(map[string]string, len(spec.Nodes))
	for _, n := range spec.Nodes {
		nodes = append(nodes, map[string]any{
			"id":    n.ID,
			"type":  string(n.Type),
			"label": n.Label,
			"tier":  string(n.Tier),
			"zone":  n.Zone,
		})
		nodeTypes[n.ID] = string(n.Type)
		nodeTiers[n.ID] = string(n.Tier)
	}

	connections := make([]any, 0, len(spec.Connections))
	for _, c := range spec.Connections {
		connections = append(connections, map[string]any{
			"source":   c.Source,
			"target":   c.Target,
			"flowType": string(c.FlowType),
			"label":    c.Label,
		})
	}

	return map[string]any{
		"nodes":       nodes,
		"connections": connections,
		"nodeTypes":   nodeTypes,
		"nodeTiers":   nodeTiers,
	}
}
