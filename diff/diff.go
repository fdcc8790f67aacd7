// Package diff compares two spec snapshots structurally and reduces the
// comparison into a bounded modification score.
//
// Diffing is pure and runs in O(nodes + connections) using id-keyed maps.
// Nodes are identified by id; connections by their ordered (source, target)
// pair.
package diff

import (
	"github.com/archsketch-ai/engine/diagram"
)

// ChangeKind discriminates the atomic change entries in a diff log.
type ChangeKind string

const (
	// ChangeAddNode records a node present only in the modified spec.
	ChangeAddNode ChangeKind = "add-node"

	// ChangeRemoveNode records a node present only in the original spec.
	ChangeRemoveNode ChangeKind = "remove-node"

	// ChangeModifyNode records one differing field on a node present in both.
	ChangeModifyNode ChangeKind = "modify-node"

	// ChangeAddConnection records a connection present only in the modified
	// spec.
	ChangeAddConnection ChangeKind = "add-connection"

	// ChangeRemoveConnection records a connection present only in the
	// original spec.
	ChangeRemoveConnection ChangeKind = "remove-connection"

	// ChangeModifyConnection records one differing field on a connection
	// present in both.
	ChangeModifyConnection ChangeKind = "modify-connection"
)

// Change is one atomic entry in the ordered diff log. Field, OldValue, and
// NewValue are populated for modify entries only.
type Change struct {
	// Kind discriminates the change.
	Kind ChangeKind `json:"kind"`

	// NodeID identifies the node for node changes.
	NodeID string `json:"nodeId,omitempty"`

	// Source and Target identify the connection for connection changes.
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`

	// Field names the differing field for modify entries.
	Field string `json:"field,omitempty"`

	// OldValue is the original value of Field.
	OldValue string `json:"oldValue,omitempty"`

	// NewValue is the modified value of Field.
	NewValue string `json:"newValue,omitempty"`
}

// PlacementChange records a node whose tier differs between snapshots.
type PlacementChange struct {
	// NodeID identifies the moved node.
	NodeID string `json:"nodeId"`

	// NodeType is the node's component type in the modified spec.
	NodeType diagram.ComponentType `json:"nodeType"`

	// OriginalTier is the tier in the original spec.
	OriginalTier diagram.Tier `json:"originalTier"`

	// NewTier is the tier in the modified spec.
	NewTier diagram.Tier `json:"newTier"`

	// Moved is true when the tiers differ.
	Moved bool `json:"moved"`
}

// Result is the structural difference between two spec snapshots: an
// ordered log of atomic changes plus summary counts.
type Result struct {
	// Operations is the ordered log of atomic changes.
	Operations []Change `json:"operations"`

	// NodesAdded counts nodes present only in the modified spec.
	NodesAdded int `json:"nodesAdded"`

	// NodesRemoved counts nodes present only in the original spec.
	NodesRemoved int `json:"nodesRemoved"`

	// NodesModified counts nodes with at least one differing field. A node
	// with several differing fields counts exactly once.
	NodesModified int `json:"nodesModified"`

	// ConnectionsAdded counts connections present only in the modified spec.
	ConnectionsAdded int `json:"connectionsAdded"`

	// ConnectionsRemoved counts connections present only in the original
	// spec.
	ConnectionsRemoved int `json:"connectionsRemoved"`

	// PlacementChanges lists every node whose tier differs, regardless of
	// whether any other field changed.
	PlacementChanges []PlacementChange `json:"placementChanges"`
}

// ComputeSpecDiff compares two spec snapshots. Nil specs are treated as
// empty. Neither input is mutated.
func ComputeSpecDiff(original, modified *diagram.Spec) Result {
	if original == nil {
		original = diagram.NewSpec()
	}
	if modified == nil {
		modified = diagram.NewSpec()
	}

	result := Result{
		Operations:       []Change{},
		PlacementChanges: []PlacementChange{},
	}

	diffNodes(original, modified, &result)
	diffConnections(original, modified, &result)
	return result
}

// nodeFields enumerates the compared node fields in a stable order.
func nodeFields(n *diagram.Node) [5][2]string {
	return [5][2]string{
		{"type", string(n.Type)},
		{"label", n.Label},
		{"description", n.Description},
		{"zone", n.Zone},
		{"tier", string(n.Tier)},
	}
}

func diffNodes(original, modified *diagram.Spec, result *Result) {
	originalByID := make(map[string]*diagram.Node, len(original.Nodes))
	for i := range original.Nodes {
		originalByID[original.Nodes[i].ID] = &original.Nodes[i]
	}
	modifiedByID := make(map[string]*diagram.Node, len(modified.Nodes))
	for i := range modified.Nodes {
		modifiedByID[modified.Nodes[i].ID] = &modified.Nodes[i]
	}

	// Removals first, in original order.
	for i := range original.Nodes {
		node := &original.Nodes[i]
		if _, ok := modifiedByID[node.ID]; !ok {
			result.Operations = append(result.Operations, Change{
				Kind:   ChangeRemoveNode,
				NodeID: node.ID,
			})
			result.NodesRemoved++
		}
	}

	// Additions and field comparisons, in modified order.
	for i := range modified.Nodes {
		after := &modified.Nodes[i]
		before, ok := originalByID[after.ID]
		if !ok {
			result.Operations = append(result.Operations, Change{
				Kind:   ChangeAddNode,
				NodeID: after.ID,
			})
			result.NodesAdded++
			continue
		}

		beforeFields := nodeFields(before)
		afterFields := nodeFields(after)
		changed := false
		for f := range beforeFields {
			if beforeFields[f][1] == afterFields[f][1] {
				continue
			}
			result.Operations = append(result.Operations, Change{
				Kind:     ChangeModifyNode,
				NodeID:   after.ID,
				Field:    beforeFields[f][0],
				OldValue: beforeFields[f][1],
				NewValue: afterFields[f][1],
			})
			changed = true
		}
		if changed {
			result.NodesModified++
		}

		if before.Tier != after.Tier {
			result.PlacementChanges = append(result.PlacementChanges, PlacementChange{
				NodeID:       after.ID,
				NodeType:     after.Type,
				OriginalTier: before.Tier,
				NewTier:      after.Tier,
				Moved:        before.Tier != after.Tier,
			})
		}
	}
}

// connectionsByKey keys connections by ordered pair; the first occurrence of
// a pair wins, so at most one logical connection is tracked per pair.
func connectionsByKey(spec *diagram.Spec) map[string]*diagram.Connection {
	byKey := make(map[string]*diagram.Connection, len(spec.Connections))
	for i := range spec.Connections {
		key := spec.Connections[i].Key()
		if _, ok := byKey[key]; !ok {
			byKey[key] = &spec.Connections[i]
		}
	}
	return byKey
}

func diffConnections(original, modified *diagram.Spec, result *Result) {
	originalByKey := connectionsByKey(original)
	modifiedByKey := connectionsByKey(modified)

	seen := make(map[string]bool, len(original.Connections))
	for i := range original.Connections {
		before := &original.Connections[i]
		key := before.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		if _, ok := modifiedByKey[key]; !ok {
			result.Operations = append(result.Operations, Change{
				Kind:   ChangeRemoveConnection,
				Source: before.Source,
				Target: before.Target,
			})
			result.ConnectionsRemoved++
		}
	}

	seen = make(map[string]bool, len(modified.Connections))
	for i := range modified.Connections {
		after := &modified.Connections[i]
		key := after.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		before, ok := originalByKey[key]
		if !ok {
			result.Operations = append(result.Operations, Change{
				Kind:   ChangeAddConnection,
				Source: after.Source,
				Target: after.Target,
			})
			result.ConnectionsAdded++
			continue
		}

		if before.FlowType != after.FlowType {
			result.Operations = append(result.Operations, Change{
				Kind:     ChangeModifyConnection,
				Source:   after.Source,
				Target:   after.Target,
				Field:    "flowType",
				OldValue: string(before.FlowType),
				NewValue: string(after.FlowType),
			})
		}
		if before.Label != after.Label {
			result.Operations = append(result.Operations, Change{
				Kind:     ChangeModifyConnection,
				Source:   after.Source,
				Target:   after.Target,
				Field:    "label",
				OldValue: before.Label,
				NewValue: after.Label,
			})
		}
	}
}

// HasSignificantChanges reports whether the diff contains any node or
// connection addition, removal, or node modification. Connection field
// modifications alone are not significant.
func HasSignificantChanges(r Result) bool {
	return r.NodesAdded > 0 ||
		r.NodesRemoved > 0 ||
		r.NodesModified > 0 ||
		r.ConnectionsAdded > 0 ||
		r.ConnectionsRemoved > 0
}
