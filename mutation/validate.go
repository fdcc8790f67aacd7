package mutation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archsketch-ai/engine"
	"github.com/archsketch-ai/engine/diagram"
	"github.com/archsketch-ai/engine/parser"
)

// Issue is one path-addressed validation problem. Paths use JSON-style
// addressing such as "operations[2].data.source".
type Issue struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// ValidationError carries the ordered issue list for a rejected payload.
// It unwraps to engine.ErrInvalidPayload so callers can classify it with
// errors.Is without inspecting issues.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return engine.ErrInvalidPayload.Error()
	}
	first := e.Issues[0]
	return fmt.Sprintf("%s: %d issue(s), first at %s: %s",
		engine.ErrInvalidPayload.Error(), len(e.Issues), first.Path, first.Message)
}

// Unwrap returns the sentinel payload error.
func (e *ValidationError) Unwrap() error {
	return engine.ErrInvalidPayload
}

// Payload is a validated mutation request: the model's reasoning plus an
// order-preserving list of typed operations.
type Payload struct {
	Reasoning  string
	Operations []Operation
}

// DecodeResponse extracts the JSON payload from raw LLM output and validates
// it. Extraction failures surface engine.ErrNoJSONFound; schema failures
// surface a *ValidationError.
func DecodeResponse(text string) (*Payload, error) {
	raw, err := parser.ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return ParsePayload(raw)
}

// ParsePayload validates decoded JSON against the operation schema and
// returns the typed payload. Validation is all-or-nothing: any invalid
// operation rejects the entire batch. The function is side-effect free.
func ParsePayload(raw []byte) (*Payload, error) {
	var env struct {
		Reasoning  *string           `json:"reasoning"`
		Operations []json.RawMessage `json:"operations"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ValidationError{Issues: []Issue{
			{Path: "", Message: "payload is not a JSON object"},
		}}
	}

	var issues []Issue

	reasoning := ""
	if env.Reasoning == nil || strings.TrimSpace(*env.Reasoning) == "" {
		issues = append(issues, Issue{Path: "reasoning", Message: "reasoning must be a non-empty string"})
	} else {
		reasoning = strings.TrimSpace(*env.Reasoning)
	}

	if len(env.Operations) == 0 {
		issues = append(issues, Issue{Path: "operations", Message: "operations must be a non-empty array"})
		return nil, &ValidationError{Issues: issues}
	}

	ops := make([]Operation, 0, len(env.Operations))
	for i, rawOp := range env.Operations {
		op, opIssues := validateOperation(i, rawOp)
		if len(opIssues) > 0 {
			issues = append(issues, opIssues...)
			continue
		}
		ops = append(ops, op)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	return &Payload{Reasoning: reasoning, Operations: ops}, nil
}

// rawOperation mirrors the inbound wire shape of one operation element
// before it is matched to a variant.
type rawOperation struct {
	Type                string   `json:"type"`
	Target              string   `json:"target"`
	NewType             string   `json:"newType"`
	Label               string   `json:"label"`
	PreserveConnections *bool    `json:"preserveConnections"`
	Data                *rawData `json:"data"`
}

// rawData mirrors the variant-specific data object.
type rawData struct {
	Label        *string  `json:"label"`
	Description  *string  `json:"description"`
	Tier         *string  `json:"tier"`
	AfterNode    string   `json:"afterNode"`
	BeforeNode   string   `json:"beforeNode"`
	BetweenNodes []string `json:"betweenNodes"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	FlowType     string   `json:"flowType"`
}

// validateOperation matches one payload element to exactly one variant and
// checks its required and enumerated fields. It returns the typed operation
// or the ordered issues found.
func validateOperation(index int, raw json.RawMessage) (Operation, []Issue) {
	path := fmt.Sprintf("operations[%d]", index)

	var ro rawOperation
	if err := json.Unmarshal(raw, &ro); err != nil {
		return nil, []Issue{{Path: path, Message: "operation is not a JSON object"}}
	}

	kind := OpKind(strings.TrimSpace(ro.Type))
	if !kind.IsValid() {
		return nil, []Issue{{
			Path:    path + ".type",
			Message: fmt.Sprintf("unrecognized operation type %q", ro.Type),
		}}
	}

	switch kind {
	case OpReplace:
		return validateReplace(path, &ro)
	case OpAdd:
		return validateAdd(path, &ro)
	case OpRemove:
		return validateRemove(path, &ro)
	case OpModify:
		return validateModify(path, &ro)
	case OpConnect:
		return validateConnect(path, &ro)
	default:
		return validateDisconnect(path, &ro)
	}
}

func validateReplace(path string, ro *rawOperation) (Operation, []Issue) {
	var issues []Issue

	target := strings.TrimSpace(ro.Target)
	if target == "" {
		issues = append(issues, Issue{Path: path + ".target", Message: "target node id is required"})
	}

	newType := strings.TrimSpace(ro.NewType)
	if newType == "" {
		issues = append(issues, Issue{Path: path + ".newType", Message: "newType is required"})
	}

	if len(issues) > 0 {
		return nil, issues
	}

	preserve := true
	if ro.PreserveConnections != nil {
		preserve = *ro.PreserveConnections
	}

	return Replace{
		Target:              target,
		NewType:             diagram.ComponentType(newType),
		Label:               strings.TrimSpace(ro.Label),
		PreserveConnections: preserve,
	}, nil
}

func validateAdd(path string, ro *rawOperation) (Operation, []Issue) {
	var issues []Issue

	target := strings.TrimSpace(ro.Target)
	if target == "" {
		issues = append(issues, Issue{Path: path + ".target", Message: "target component type is required"})
	}

	op := Add{Target: diagram.ComponentType(target)}

	if ro.Data != nil {
		if ro.Data.Label != nil {
			op.Label = strings.TrimSpace(*ro.Data.Label)
		}
		if ro.Data.Tier != nil {
			tier, err := diagram.ParseTier(*ro.Data.Tier)
			if err != nil {
				issues = append(issues, Issue{
					Path:    path + ".data.tier",
					Message: fmt.Sprintf("tier must be one of %v", diagram.AllTiers()),
				})
			} else {
				op.Tier = tier
			}
		}
		op.AfterNode = strings.TrimSpace(ro.Data.AfterNode)
		op.BeforeNode = strings.TrimSpace(ro.Data.BeforeNode)
		if ro.Data.BetweenNodes != nil {
			if len(ro.Data.BetweenNodes) != 2 ||
				strings.TrimSpace(ro.Data.BetweenNodes[0]) == "" ||
				strings.TrimSpace(ro.Data.BetweenNodes[1]) == "" {
				issues = append(issues, Issue{
					Path:    path + ".data.betweenNodes",
					Message: "betweenNodes requires exactly two node ids",
				})
			} else {
				op.BetweenNodes = []string{
					strings.TrimSpace(ro.Data.BetweenNodes[0]),
					strings.TrimSpace(ro.Data.BetweenNodes[1]),
				}
			}
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return op, nil
}

func validateRemove(path string, ro *rawOperation) (Operation, []Issue) {
	target := strings.TrimSpace(ro.Target)
	if target == "" {
		return nil, []Issue{{Path: path + ".target", Message: "target node id is required"}}
	}
	return Remove{Target: target}, nil
}

func validateModify(path string, ro *rawOperation) (Operation, []Issue) {
	var issues []Issue

	target := strings.TrimSpace(ro.Target)
	if target == "" {
		issues = append(issues, Issue{Path: path + ".target", Message: "target node id is required"})
	}

	if ro.Data == nil {
		issues = append(issues, Issue{Path: path + ".data", Message: "modify requires a data object"})
		return nil, issues
	}

	op := Modify{Target: target}

	if ro.Data.Label != nil {
		label := strings.TrimSpace(*ro.Data.Label)
		op.Label = &label
	}
	if ro.Data.Description != nil {
		desc := strings.TrimSpace(*ro.Data.Description)
		op.Description = &desc
	}
	if ro.Data.Tier != nil {
		tier, err := diagram.ParseTier(*ro.Data.Tier)
		if err != nil {
			issues = append(issues, Issue{
				Path:    path + ".data.tier",
				Message: fmt.Sprintf("tier must be one of %v", diagram.AllTiers()),
			})
		} else {
			op.Tier = &tier
		}
	}

	if op.Label == nil && op.Description == nil && op.Tier == nil && len(issues) == 0 {
		issues = append(issues, Issue{
			Path:    path + ".data",
			Message: "modify requires at least one of label, description, or tier",
		})
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return op, nil
}

func validateConnect(path string, ro *rawOperation) (Operation, []Issue) {
	if ro.Data == nil {
		return nil, []Issue{{Path: path + ".data", Message: "connect requires a data object"}}
	}

	var issues []Issue

	source := strings.TrimSpace(ro.Data.Source)
	if source == "" {
		issues = append(issues, Issue{Path: path + ".data.source", Message: "source node id is required"})
	}
	target := strings.TrimSpace(ro.Data.Target)
	if target == "" {
		issues = append(issues, Issue{Path: path + ".data.target", Message: "target node id is required"})
	}

	op := Connect{Source: source, Target: target}

	if ro.Data.FlowType != "" {
		flow, err := diagram.ParseFlowType(ro.Data.FlowType)
		if err != nil {
			issues = append(issues, Issue{
				Path:    path + ".data.flowType",
				Message: fmt.Sprintf("flowType must be one of %v", diagram.AllFlowTypes()),
			})
		} else {
			op.FlowType = flow
		}
	}
	if ro.Data.Label != nil {
		op.Label = strings.TrimSpace(*ro.Data.Label)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return op, nil
}

func validateDisconnect(path string, ro *rawOperation) (Operation, []Issue) {
	if ro.Data == nil {
		return nil, []Issue{{Path: path + ".data", Message: "disconnect requires a data object"}}
	}

	var issues []Issue

	source := strings.TrimSpace(ro.Data.Source)
	if source == "" {
		issues = append(issues, Issue{Path: path + ".data.source", Message: "source node id is required"})
	}
	target := strings.TrimSpace(ro.Data.Target)
	if target == "" {
		issues = append(issues, Issue{Path: path + ".data.target", Message: "target node id is required"})
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return Disconnect{Source: source, Target: target}, nil
}
