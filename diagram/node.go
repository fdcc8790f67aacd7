package diagram

import "errors"

// ComponentType classifies what a node represents. The set is open: the
// component catalog owned by the application layer can introduce new types,
// so validation only requires the type to be non-empty. The constants below
// cover the types the engine itself reasons about.
type ComponentType string

const (
	// ComponentUser is the implicit actor node leading a freshly created
	// diagram.
	ComponentUser ComponentType = "user"

	// ComponentFirewall is a packet-filtering boundary device.
	ComponentFirewall ComponentType = "firewall"

	// ComponentWebServer is a public-facing HTTP server.
	ComponentWebServer ComponentType = "web-server"

	// ComponentAppServer is an internal application server.
	ComponentAppServer ComponentType = "app-server"

	// ComponentDatabase is a stateful data store.
	ComponentDatabase ComponentType = "database"

	// ComponentLoadBalancer distributes traffic across backends.
	ComponentLoadBalancer ComponentType = "load-balancer"

	// ComponentCache is an ephemeral data store.
	ComponentCache ComponentType = "cache"
)

// String returns the string representation of the component type.
func (c ComponentType) String() string {
	return string(c)
}

// Node represents one component in an infrastructure topology.
// Nodes are created by an add operation or initial construction, mutated in
// place by modify, and destroyed by remove, which cascades to incident
// connections.
type Node struct {
	// ID is the unique node identifier within a spec. Required.
	ID string `json:"id" yaml:"id"`

	// Type classifies the component (e.g., "firewall", "database"). Required.
	Type ComponentType `json:"type" yaml:"type"`

	// Label is the human-readable name shown on the diagram.
	Label string `json:"label" yaml:"label"`

	// Tier is the optional network placement zone.
	Tier Tier `json:"tier,omitempty" yaml:"tier,omitempty"`

	// Zone is an optional free-form grouping (e.g., an availability zone).
	Zone string `json:"zone,omitempty" yaml:"zone,omitempty"`

	// Description is optional explanatory text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewNode creates a new Node with the specified id and component type.
func NewNode(id string, compType ComponentType) *Node {
	return &Node{
		ID:   id,
		Type: compType,
	}
}

// WithLabel sets the label and returns the node for method chaining.
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// WithTier sets the tier and returns the node for method chaining.
func (n *Node) WithTier(tier Tier) *Node {
	n.Tier = tier
	return n
}

// WithZone sets the zone and returns the node for method chaining.
func (n *Node) WithZone(zone string) *Node {
	n.Zone = zone
	return n
}

// WithDescription sets the description and returns the node for method chaining.
func (n *Node) WithDescription(desc string) *Node {
	n.Description = desc
	return n
}

// Validate checks that the node has all required fields set correctly.
// Returns an error if ID or Type is empty, or if a tier is present but
// unknown.
func (n *Node) Validate() error {
	if n.ID == "" {
		return errors.New("node id is required")
	}
	if n.Type == "" {
		return errors.New("node type is required")
	}
	if n.Tier != "" && !n.Tier.IsValid() {
		return errors.New("node tier is not a known placement zone")
	}
	return nil
}
