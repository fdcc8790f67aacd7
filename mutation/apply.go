package mutation

import (
	"context"
	"fmt"
	"time"

	"github.com/archsketch-ai/engine"
	"github.com/archsketch-ai/engine/diagram"
)

// Result reports the outcome of applying an operation batch.
//
// On failure, Spec still holds the partially applied state: operations
// before FailedIndex remain applied, matching the no-rollback contract.
type Result struct {
	// Success is true when every operation applied.
	Success bool

	// Spec is the resulting topology. Never nil; on failure it reflects the
	// operations applied before the failing one.
	Spec *diagram.Spec

	// Err describes the failure, nil on success. Per-operation failures are
	// engine.EngineError values with KindApplication.
	Err error

	// FailedIndex is the array index of the failing operation, -1 on success.
	FailedIndex int

	// Applied counts the operations that were applied.
	Applied int

	// Modifications holds one human-readable entry per applied operation.
	Modifications []string
}

// Apply executes the validated operations strictly in array order against a
// clone of spec. A nil spec starts from an empty topology. The input spec is
// never mutated.
//
// Duplicate node ids in the input spec are a caller-contract violation and
// fail the whole batch before any operation applies.
func Apply(spec *diagram.Spec, ops []Operation) Result {
	return defaultApplier.Apply(context.Background(), spec, ops)
}

var defaultApplier = NewApplier()

// Applier applies operation batches, optionally recording OpenTelemetry
// metrics and spans per batch. The zero-option applier is plain and adds no
// observability overhead.
type Applier struct {
	obs *observer
}

// NewApplier creates an Applier with the given options.
func NewApplier(opts ...Option) *Applier {
	a := &Applier{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply executes the validated operations strictly in array order against a
// clone of spec. See the package-level Apply for semantics; this variant
// additionally records instrumentation when configured.
func (a *Applier) Apply(ctx context.Context, spec *diagram.Spec, ops []Operation) Result {
	start := time.Now()
	result := a.apply(spec, ops)
	a.obs.record(ctx, len(ops), result, time.Since(start))
	return result
}

func (a *Applier) apply(spec *diagram.Spec, ops []Operation) Result {
	if spec == nil {
		spec = diagram.NewSpec()
	}
	if err := spec.Validate(); err != nil {
		return Result{
			Spec:        spec.Clone(),
			Err:         engine.NewInternalError("mutation.Apply", fmt.Errorf("%w: %v", engine.ErrInvalidSpec, err)),
			FailedIndex: -1,
		}
	}

	working := spec.Clone()
	modifications := make([]string, 0, len(ops))

	for i, op := range ops {
		if err := applyOne(working, op); err != nil {
			appErr := engine.NewApplicationError("mutation.Apply", err).WithContext(map[string]any{
				"index": i,
				"kind":  string(op.Kind()),
			})
			return Result{
				Spec:          working,
				Err:           appErr,
				FailedIndex:   i,
				Applied:       i,
				Modifications: modifications,
			}
		}
		modifications = append(modifications, Describe(op))
	}

	return Result{
		Success:       true,
		Spec:          working,
		FailedIndex:   -1,
		Applied:       len(ops),
		Modifications: modifications,
	}
}

// applyOne mutates spec in place according to one operation. Later
// operations in a batch observe the effects of earlier ones; contradictory
// operations against the same node resolve last-write-wins in array order.
func applyOne(spec *diagram.Spec, op Operation) error {
	switch o := op.(type) {
	case Replace:
		return applyReplace(spec, o)
	case Add:
		return applyAdd(spec, o)
	case Remove:
		if !spec.RemoveNode(o.Target) {
			return fmt.Errorf("remove %q: %w", o.Target, engine.ErrNodeNotFound)
		}
		return nil
	case Modify:
		return applyModify(spec, o)
	case Connect:
		return applyConnect(spec, o)
	case Disconnect:
		return applyDisconnect(spec, o)
	default:
		return fmt.Errorf("unsupported operation %T", op)
	}
}

func applyReplace(spec *diagram.Spec, op Replace) error {
	node := spec.NodeByID(op.Target)
	if node == nil {
		return fmt.Errorf("replace %q: %w", op.Target, engine.ErrNodeNotFound)
	}

	node.Type = op.NewType
	if op.Label != "" {
		node.Label = op.Label
	}

	if !op.PreserveConnections {
		kept := spec.Connections[:0]
		for _, conn := range spec.Connections {
			if !conn.Touches(op.Target) {
				kept = append(kept, conn)
			}
		}
		spec.Connections = kept
	}
	return nil
}

func applyAdd(spec *diagram.Spec, op Add) error {
	label := op.Label
	if label == "" {
		label = string(op.Target)
	}

	node := diagram.Node{
		ID:    diagram.NewNodeID(op.Target),
		Type:  op.Target,
		Label: label,
		Tier:  op.Tier,
	}

	switch {
	case len(op.BetweenNodes) == 2:
		a, b := op.BetweenNodes[0], op.BetweenNodes[1]
		if !spec.HasNode(a) {
			return fmt.Errorf("add between %q and %q: %q: %w", a, b, a, engine.ErrNodeNotFound)
		}
		if !spec.HasNode(b) {
			return fmt.Errorf("add between %q and %q: %q: %w", a, b, b, engine.ErrNodeNotFound)
		}
		spec.Nodes = append(spec.Nodes, node)
		// Splice: drop the direct edge if present, then route through the
		// new node.
		for i, conn := range spec.Connections {
			if conn.Source == a && conn.Target == b {
				spec.Connections = append(spec.Connections[:i], spec.Connections[i+1:]...)
				break
			}
		}
		spec.Connections = append(spec.Connections,
			diagram.Connection{Source: a, Target: node.ID, FlowType: diagram.DefaultFlowType},
			diagram.Connection{Source: node.ID, Target: b, FlowType: diagram.DefaultFlowType},
		)

	case op.AfterNode != "":
		if !spec.HasNode(op.AfterNode) {
			return fmt.Errorf("add after %q: %w", op.AfterNode, engine.ErrNodeNotFound)
		}
		spec.Nodes = append(spec.Nodes, node)
		spec.Connections = append(spec.Connections,
			diagram.Connection{Source: op.AfterNode, Target: node.ID, FlowType: diagram.DefaultFlowType})

	case op.BeforeNode != "":
		if !spec.HasNode(op.BeforeNode) {
			return fmt.Errorf("add before %q: %w", op.BeforeNode, engine.ErrNodeNotFound)
		}
		spec.Nodes = append(spec.Nodes, node)
		spec.Connections = append(spec.Connections,
			diagram.Connection{Source: node.ID, Target: op.BeforeNode, FlowType: diagram.DefaultFlowType})

	default:
		spec.Nodes = append(spec.Nodes, node)
	}
	return nil
}

func applyModify(spec *diagram.Spec, op Modify) error {
	node := spec.NodeByID(op.Target)
	if node == nil {
		return fmt.Errorf("modify %q: %w", op.Target, engine.ErrNodeNotFound)
	}

	if op.Label != nil {
		node.Label = *op.Label
	}
	if op.Description != nil {
		node.Description = *op.Description
	}
	if op.Tier != nil {
		node.Tier = *op.Tier
	}
	return nil
}

func applyConnect(spec *diagram.Spec, op Connect) error {
	if !spec.HasNode(op.Source) {
		return fmt.Errorf("connect source %q: %w", op.Source, engine.ErrNodeNotFound)
	}
	if !spec.HasNode(op.Target) {
		return fmt.Errorf("connect target %q: %w", op.Target, engine.ErrNodeNotFound)
	}

	flow := op.FlowType
	if flow == "" {
		flow = diagram.DefaultFlowType
	}

	// One logical connection per ordered pair: update in place if present.
	for i := range spec.Connections {
		conn := &spec.Connections[i]
		if conn.Source == op.Source && conn.Target == op.Target {
			conn.FlowType = flow
			if op.Label != "" {
				conn.Label = op.Label
			}
			return nil
		}
	}

	spec.Connections = append(spec.Connections, diagram.Connection{
		Source:   op.Source,
		Target:   op.Target,
		FlowType: flow,
		Label:    op.Label,
	})
	return nil
}

func applyDisconnect(spec *diagram.Spec, op Disconnect) error {
	// Ordered pair first, then the reverse direction.
	for _, pair := range [][2]string{{op.Source, op.Target}, {op.Target, op.Source}} {
		for i, conn := range spec.Connections {
			if conn.Source == pair[0] && conn.Target == pair[1] {
				spec.Connections = append(spec.Connections[:i], spec.Connections[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("disconnect %q from %q: %w", op.Source, op.Target, engine.ErrConnectionNotFound)
}
