package intent

import (
	"fmt"

	"github.com/archsketch-ai/engine"
	"github.com/archsketch-ai/engine/diagram"
)

// Result reports the outcome of applying an intent.
type Result struct {
	// Success is true when the intent was carried out (or was a query).
	Success bool

	// Spec is the resulting topology, nil on failure.
	Spec *diagram.Spec

	// Err describes the failure, nil on success.
	Err error

	// Modifications holds one human-readable entry per change made.
	Modifications []string

	// Informational is true for query intents, which never mutate.
	Informational bool
}

// Apply synthesizes the spec mutations an intent implies and executes them.
// The input spec is never mutated; mutating branches operate on a clone.
// Failures are returned, never thrown.
func Apply(spec *diagram.Spec, in Intent) Result {
	if err := in.Validate(); err != nil {
		return fail(engine.NewApplicationError("intent.Apply", err))
	}

	switch in.Kind {
	case KindCreate:
		return applyCreate(in)
	case KindAdd:
		return applyAdd(spec, in)
	case KindRemove:
		return applyRemove(spec, in)
	case KindModify:
		return applyModify(spec, in)
	case KindConnect:
		return applyConnect(spec, in)
	case KindDisconnect:
		return applyDisconnect(spec, in)
	default: // KindQuery
		return Result{Success: true, Spec: spec, Informational: true}
	}
}

func fail(err error) Result {
	return Result{Err: err}
}

// applyCreate discards any existing spec and builds a fresh one: an implicit
// leading user node followed by one node per requested component in request
// order, wired as a linear chain. The implicit node participates in the
// first hop, so n components yield exactly n connections.
func applyCreate(in Intent) Result {
	spec := diagram.NewSpec()

	user := diagram.Node{
		ID:    "user",
		Type:  diagram.ComponentUser,
		Label: "User",
		Tier:  diagram.TierExternal,
	}
	spec.Nodes = append(spec.Nodes, user)

	modifications := make([]string, 0, len(in.Components))
	prev := user.ID
	for _, comp := range in.Components {
		node := diagram.Node{
			ID:          diagram.NewNodeID(comp.Type),
			Type:        comp.Type,
			Label:       comp.label(),
			Tier:        comp.Tier,
			Zone:        comp.Zone,
			Description: comp.Description,
		}
		spec.Nodes = append(spec.Nodes, node)
		spec.Connections = append(spec.Connections, diagram.Connection{
			Source:   prev,
			Target:   node.ID,
			FlowType: diagram.DefaultFlowType,
		})
		modifications = append(modifications, fmt.Sprintf("added %s", comp.Type))
		prev = node.ID
	}

	return Result{Success: true, Spec: spec, Modifications: modifications}
}

// applyAdd appends fresh-id nodes without auto-connecting them.
func applyAdd(spec *diagram.Spec, in Intent) Result {
	if spec == nil {
		return fail(engine.NewApplicationError("intent.Apply", engine.ErrNoDiagram))
	}
	if len(in.Components) == 0 {
		return fail(engine.NewApplicationError("intent.Apply",
			fmt.Errorf("add intent requires at least one component")))
	}

	working := spec.Clone()
	modifications := make([]string, 0, len(in.Components))
	for _, comp := range in.Components {
		node := diagram.Node{
			ID:          diagram.NewNodeID(comp.Type),
			Type:        comp.Type,
			Label:       comp.label(),
			Tier:        comp.Tier,
			Zone:        comp.Zone,
			Description: comp.Description,
		}
		working.Nodes = append(working.Nodes, node)
		modifications = append(modifications, fmt.Sprintf("added %s", comp.Type))
	}

	return Result{Success: true, Spec: working, Modifications: modifications}
}

// applyRemove deletes the first node matching the requested type and
// cascade-deletes every connection where it is source or target.
func applyRemove(spec *diagram.Spec, in Intent) Result {
	if spec == nil {
		return fail(engine.NewApplicationError("intent.Apply", engine.ErrNoDiagram))
	}
	if len(in.Components) == 0 {
		return fail(engine.NewApplicationError("intent.Apply",
			fmt.Errorf("remove intent requires a component")))
	}

	compType := in.Components[0].Type
	working := spec.Clone()

	node := working.FirstNodeByType(compType)
	if node == nil {
		return fail(engine.NewApplicationError("intent.Apply",
			fmt.Errorf("remove %s: %w", compType, engine.ErrNodeNotFound)))
	}

	id := node.ID
	working.RemoveNode(id)

	return Result{
		Success:       true,
		Spec:          working,
		Modifications: []string{fmt.Sprintf("removed %s", compType)},
	}
}

// applyModify overlays the provided fields onto the first node matching the
// requested type, leaving unspecified fields untouched.
func applyModify(spec *diagram.Spec, in Intent) Result {
	if spec == nil {
		return fail(engine.NewApplicationError("intent.Apply", engine.ErrNoDiagram))
	}
	if len(in.Components) == 0 {
		return fail(engine.NewApplicationError("intent.Apply",
			fmt.Errorf("modify intent requires a component")))
	}

	comp := in.Components[0]
	working := spec.Clone()

	node := working.FirstNodeByType(comp.Type)
	if node == nil {
		return fail(engine.NewApplicationError("intent.Apply",
			fmt.Errorf("modify %s: %w", comp.Type, engine.ErrNodeNotFound)))
	}

	if comp.Label != "" {
		node.Label = comp.Label
	}
	if comp.Tier != "" {
		node.Tier = comp.Tier
	}
	if comp.Zone != "" {
		node.Zone = comp.Zone
	}
	if comp.Description != "" {
		node.Description = comp.Description
	}

	return Result{
		Success:       true,
		Spec:          working,
		Modifications: []string{fmt.Sprintf("modified %s", comp.Type)},
	}
}

// resolvePair locates the two nodes a connect or disconnect intent names.
func resolvePair(spec *diagram.Spec, in Intent) (*diagram.Node, *diagram.Node, error) {
	if len(in.Components) < 2 {
		return nil, nil, fmt.Errorf("%s intent requires exactly two components, got %d",
			in.Kind, len(in.Components))
	}

	first := spec.FirstNodeByType(in.Components[0].Type)
	if first == nil {
		return nil, nil, fmt.Errorf("%s: %w", in.Components[0].Type, engine.ErrNodeNotFound)
	}
	second := spec.FirstNodeByType(in.Components[1].Type)
	if second == nil {
		return nil, nil, fmt.Errorf("%s: %w", in.Components[1].Type, engine.ErrNodeNotFound)
	}
	return first, second, nil
}

// applyConnect wires the two resolved components with the default flow type
// unless one is specified. An existing ordered pair is updated in place so
// a pair never tracks more than one logical connection.
func applyConnect(spec *diagram.Spec, in Intent) Result {
	if spec == nil {
		return fail(engine.NewApplicationError("intent.Apply", engine.ErrNoDiagram))
	}

	working := spec.Clone()
	source, target, err := resolvePair(working, in)
	if err != nil {
		return fail(engine.NewApplicationError("intent.Apply", err))
	}

	for i := range working.Connections {
		conn := &working.Connections[i]
		if conn.Source == source.ID && conn.Target == target.ID {
			return Result{
				Success:       true,
				Spec:          working,
				Modifications: []string{fmt.Sprintf("connected %s to %s", source.Type, target.Type)},
			}
		}
	}

	working.Connections = append(working.Connections, diagram.Connection{
		Source:   source.ID,
		Target:   target.ID,
		FlowType: diagram.DefaultFlowType,
	})

	return Result{
		Success:       true,
		Spec:          working,
		Modifications: []string{fmt.Sprintf("connected %s to %s", source.Type, target.Type)},
	}
}

// applyDisconnect removes the first connection matching the resolved pair in
// either direction.
func applyDisconnect(spec *diagram.Spec, in Intent) Result {
	if spec == nil {
		return fail(engine.NewApplicationError("intent.Apply", engine.ErrNoDiagram))
	}

	working := spec.Clone()
	first, second, err := resolvePair(working, in)
	if err != nil {
		return fail(engine.NewApplicationError("intent.Apply", err))
	}

	for i, conn := range working.Connections {
		if (conn.Source == first.ID && conn.Target == second.ID) ||
			(conn.Source == second.ID && conn.Target == first.ID) {
			working.Connections = append(working.Connections[:i], working.Connections[i+1:]...)
			return Result{
				Success:       true,
				Spec:          working,
				Modifications: []string{fmt.Sprintf("disconnected %s from %s", first.Type, second.Type)},
			}
		}
	}

	return fail(engine.NewApplicationError("intent.Apply",
		fmt.Errorf("%s to %s: %w", first.Type, second.Type, engine.ErrConnectionNotFound)))
}
