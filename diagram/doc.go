// Package diagram defines the value types for infrastructure topology
// specs: nodes, connections, and the tier and flow-type enumerations.
//
// A Spec is a plain in-memory graph. Node ids are unique within a spec and
// every connection references existing node ids; uniqueness is a caller
// contract checked by Validate, while referential integrity is enforced at
// the mutation boundary.
package diagram
