package diagram

import "fmt"

// Spec is an in-memory infrastructure topology: a set of nodes and the
// directed connections between them.
//
// Specs are treated as values: mutation code clones a spec before changing
// it rather than sharing backing slices with the caller.
type Spec struct {
	// Nodes holds every component in the topology. Node ids are unique.
	Nodes []Node `json:"nodes" yaml:"nodes"`

	// Connections holds every directed edge. Endpoints reference node ids.
	Connections []Connection `json:"connections" yaml:"connections"`
}

// NewSpec creates an empty spec with initialized slices.
func NewSpec() *Spec {
	return &Spec{
		Nodes:       []Node{},
		Connections: []Connection{},
	}
}

// Clone returns a deep copy of the spec. Nodes and connections are plain
// value structs, so copying the slices is sufficient.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	clone := &Spec{
		Nodes:       make([]Node, len(s.Nodes)),
		Connections: make([]Connection, len(s.Connections)),
	}
	copy(clone.Nodes, s.Nodes)
	copy(clone.Connections, s.Connections)
	return clone
}

// NodeByID returns a pointer to the node with the given id, or nil if no
// such node exists. The pointer aliases the spec's backing array.
func (s *Spec) NodeByID(id string) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node with the given id exists.
func (s *Spec) HasNode(id string) bool {
	return s.NodeByID(id) != nil
}

// FirstNodeByType returns a pointer to the first node with the given
// component type in insertion order, or nil if none matches. Intent
// resolution locates nodes by requested type this way.
func (s *Spec) FirstNodeByType(compType ComponentType) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].Type == compType {
			return &s.Nodes[i]
		}
	}
	return nil
}

// RemoveNode deletes the node with the given id and cascade-deletes every
// connection where it is source or target. Returns false if the node does
// not exist.
func (s *Spec) RemoveNode(id string) bool {
	idx := -1
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.Nodes = append(s.Nodes[:idx], s.Nodes[idx+1:]...)

	kept := s.Connections[:0]
	for _, conn := range s.Connections {
		if !conn.Touches(id) {
			kept = append(kept, conn)
		}
	}
	s.Connections = kept
	return true
}

// Validate checks the caller contract: every node and connection is
// individually valid, node ids are unique, and every connection endpoint
// references an existing node.
func (s *Spec) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for i := range s.Nodes {
		node := &s.Nodes[i]
		if err := node.Validate(); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if seen[node.ID] {
			return fmt.Errorf("duplicate node id: %s", node.ID)
		}
		seen[node.ID] = true
	}

	for i := range s.Connections {
		conn := &s.Connections[i]
		if err := conn.Validate(); err != nil {
			return fmt.Errorf("connection %d: %w", i, err)
		}
		if !seen[conn.Source] {
			return fmt.Errorf("connection %d references unknown source %s", i, conn.Source)
		}
		if !seen[conn.Target] {
			return fmt.Errorf("connection %d references unknown target %s", i, conn.Target)
		}
	}
	return nil
}
