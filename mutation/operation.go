package mutation

import (
	"fmt"

	"github.com/archsketch-ai/engine/diagram"
)

// OpKind discriminates the six operation variants.
type OpKind string

const (
	// OpReplace swaps a node's component type in place.
	OpReplace OpKind = "replace"

	// OpAdd inserts a fresh node, optionally positioned relative to
	// existing nodes.
	OpAdd OpKind = "add"

	// OpRemove deletes a node and cascades to its incident connections.
	OpRemove OpKind = "remove"

	// OpModify overlays label, description, or tier onto an existing node.
	OpModify OpKind = "modify"

	// OpConnect adds or updates the directed connection between two nodes.
	OpConnect OpKind = "connect"

	// OpDisconnect removes the connection between two nodes.
	OpDisconnect OpKind = "disconnect"
)

// IsValid returns true if the kind is one of the six operation variants.
func (k OpKind) IsValid() bool {
	switch k {
	case OpReplace, OpAdd, OpRemove, OpModify, OpConnect, OpDisconnect:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k OpKind) String() string {
	return string(k)
}

// Operation is one atomic, validated graph-mutation instruction. The six
// variants form a closed sum type: callers dispatch with a type switch and
// no variant can be constructed outside this package's validator or the
// variant literals themselves.
type Operation interface {
	// Kind returns the discriminator for this variant.
	Kind() OpKind

	isOperation()
}

// Replace swaps the component type of the node identified by Target.
type Replace struct {
	// Target is the id of the node being replaced.
	Target string

	// NewType is the component type the node becomes.
	NewType diagram.ComponentType

	// Label optionally renames the node alongside the type change.
	Label string

	// PreserveConnections keeps the node's incident connections when true.
	// The validator defaults this to true when the payload omits it.
	PreserveConnections bool
}

// Add inserts a fresh node of the given component type.
type Add struct {
	// Target is the component type of the node to add.
	Target diagram.ComponentType

	// Label optionally names the new node; the component type is used
	// otherwise.
	Label string

	// Tier optionally places the new node.
	Tier diagram.Tier

	// AfterNode optionally wires an existing node into the new one.
	AfterNode string

	// BeforeNode optionally wires the new node into an existing one.
	BeforeNode string

	// BetweenNodes optionally splices the new node into the connection
	// between two existing nodes. Exactly two ids when present.
	BetweenNodes []string
}

// Remove deletes the node identified by Target and every connection where
// the node is source or target.
type Remove struct {
	// Target is the id of the node to remove.
	Target string
}

// Modify overlays the provided fields onto the node identified by Target,
// leaving unset fields untouched. Nil pointers mean "not provided".
type Modify struct {
	// Target is the id of the node to modify.
	Target string

	// Label, when non-nil, replaces the node's label.
	Label *string

	// Description, when non-nil, replaces the node's description.
	Description *string

	// Tier, when non-nil, moves the node to a different placement zone.
	Tier *diagram.Tier
}

// Connect adds the directed connection Source -> Target, or updates its flow
// type and label if the ordered pair already exists.
type Connect struct {
	// Source is the id of the originating node.
	Source string

	// Target is the id of the receiving node.
	Target string

	// FlowType optionally sets the traffic type; DefaultFlowType applies
	// when empty.
	FlowType diagram.FlowType

	// Label optionally annotates the connection.
	Label string
}

// Disconnect removes the connection between Source and Target, matching the
// ordered pair first and the reverse direction second.
type Disconnect struct {
	// Source is the id of the originating node.
	Source string

	// Target is the id of the receiving node.
	Target string
}

// Kind implements Operation.
func (Replace) Kind() OpKind { return OpReplace }

// Kind implements Operation.
func (Add) Kind() OpKind { return OpAdd }

// Kind implements Operation.
func (Remove) Kind() OpKind { return OpRemove }

// Kind implements Operation.
func (Modify) Kind() OpKind { return OpModify }

// Kind implements Operation.
func (Connect) Kind() OpKind { return OpConnect }

// Kind implements Operation.
func (Disconnect) Kind() OpKind { return OpDisconnect }

func (Replace) isOperation()    {}
func (Add) isOperation()        {}
func (Remove) isOperation()     {}
func (Modify) isOperation()     {}
func (Connect) isOperation()    {}
func (Disconnect) isOperation() {}

// Describe returns a short human-readable summary of an operation, used for
// per-operation modification logs.
func Describe(op Operation) string {
	switch o := op.(type) {
	case Replace:
		return fmt.Sprintf("replaced %s with %s", o.Target, o.NewType)
	case Add:
		return fmt.Sprintf("added %s", o.Target)
	case Remove:
		return fmt.Sprintf("removed %s", o.Target)
	case Modify:
		return fmt.Sprintf("modified %s", o.Target)
	case Connect:
		return fmt.Sprintf("connected %s to %s", o.Source, o.Target)
	case Disconnect:
		return fmt.Sprintf("disconnected %s from %s", o.Source, o.Target)
	default:
		return fmt.Sprintf("unknown operation %T", op)
	}
}
