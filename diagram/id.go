package diagram

import "github.com/google/uuid"

// NewNodeID returns a fresh node id for a component type. The id carries the
// type as a readable prefix followed by a short random suffix, so generated
// ids never collide with the stable ids in an existing spec.
func NewNodeID(compType ComponentType) string {
	return string(compType) + "-" + uuid.NewString()[:8]
}
