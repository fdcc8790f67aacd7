package diagram

import "fmt"

// FlowType describes the nature of traffic carried by a connection.
type FlowType string

const (
	// FlowRequest indicates a plain request flow. This is the default for
	// new connections when no flow type is specified.
	FlowRequest FlowType = "request"

	// FlowResponse indicates a response flow.
	FlowResponse FlowType = "response"

	// FlowSync indicates a synchronization flow between peers.
	// Examples: database replication, cache warming
	FlowSync FlowType = "sync"

	// FlowBlocked indicates traffic that is deliberately denied.
	FlowBlocked FlowType = "blocked"

	// FlowEncrypted indicates traffic protected in transit.
	FlowEncrypted FlowType = "encrypted"
)

// DefaultFlowType is applied to connections created without an explicit
// flow type.
const DefaultFlowType = FlowRequest

// IsValid returns true if the flow type belongs to the closed set known to
// the engine. Domain extensions accepted by the surrounding catalog are
// treated as opaque once validated and never reach this check.
func (f FlowType) IsValid() bool {
	switch f {
	case FlowRequest, FlowResponse, FlowSync, FlowBlocked, FlowEncrypted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flow type.
func (f FlowType) String() string {
	return string(f)
}

// ParseFlowType parses a string into a FlowType value.
// Returns an error if the string is not a known flow type.
func ParseFlowType(s string) (FlowType, error) {
	flow := FlowType(s)
	if !flow.IsValid() {
		return "", fmt.Errorf("invalid flow type: %s", s)
	}
	return flow, nil
}

// AllFlowTypes returns every flow type in the closed set.
func AllFlowTypes() []FlowType {
	return []FlowType{
		FlowRequest,
		FlowResponse,
		FlowSync,
		FlowBlocked,
		FlowEncrypted,
	}
}
