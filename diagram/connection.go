package diagram

import "errors"

// Connection represents a directed edge between two nodes in a topology.
// Its identity for diffing purposes is the ordered (source, target) pair;
// at most one logical connection is tracked per ordered pair.
type Connection struct {
	// Source is the id of the originating node. Required.
	Source string `json:"source" yaml:"source"`

	// Target is the id of the receiving node. Required.
	Target string `json:"target" yaml:"target"`

	// FlowType describes the traffic carried. Defaults to FlowRequest when
	// the connection is created without one.
	FlowType FlowType `json:"flowType,omitempty" yaml:"flowType,omitempty"`

	// Label is optional display text for the edge.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// NewConnection creates a new Connection between the given node ids with the
// default flow type.
func NewConnection(source, target string) *Connection {
	return &Connection{
		Source:   source,
		Target:   target,
		FlowType: DefaultFlowType,
	}
}

// WithFlowType sets the flow type and returns the connection for method chaining.
func (c *Connection) WithFlowType(flow FlowType) *Connection {
	c.FlowType = flow
	return c
}

// WithLabel sets the label and returns the connection for method chaining.
func (c *Connection) WithLabel(label string) *Connection {
	c.Label = label
	return c
}

// Key returns the ordered-pair identity of the connection, used to key
// connections in diff maps.
func (c Connection) Key() string {
	return c.Source + "->" + c.Target
}

// Touches reports whether the connection has the given node id as either
// endpoint. Remove operations cascade to every touching connection.
func (c Connection) Touches(nodeID string) bool {
	return c.Source == nodeID || c.Target == nodeID
}

// Validate checks that the connection has both endpoints populated and, if a
// flow type is present, that it belongs to the known set.
func (c *Connection) Validate() error {
	if c.Source == "" {
		return errors.New("connection source cannot be empty")
	}
	if c.Target == "" {
		return errors.New("connection target cannot be empty")
	}
	if c.FlowType != "" && !c.FlowType.IsValid() {
		return errors.New("connection flow type is not known")
	}
	return nil
}
