// Package intent synthesizes spec mutations from higher-level intents: a
// kind plus a requested component list, produced upstream when the model
// does not emit an explicit operation array.
package intent

import (
	"fmt"

	"github.com/archsketch-ai/engine/diagram"
)

// Kind classifies what the user asked for.
type Kind string

const (
	// KindCreate builds a fresh diagram, discarding any existing spec.
	KindCreate Kind = "create"

	// KindAdd appends components to an existing diagram.
	KindAdd Kind = "add"

	// KindRemove deletes the first node matching the requested type.
	KindRemove Kind = "remove"

	// KindModify overlays fields onto the first node matching the requested
	// type.
	KindModify Kind = "modify"

	// KindConnect wires two resolvable components together.
	KindConnect Kind = "connect"

	// KindDisconnect removes the wire between two resolvable components.
	KindDisconnect Kind = "disconnect"

	// KindQuery asks about the diagram and never mutates it.
	KindQuery Kind = "query"
)

// IsValid returns true if the kind is one of the seven intent kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindCreate, KindAdd, KindRemove, KindModify, KindConnect, KindDisconnect, KindQuery:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Component is one requested component in an intent. Type is required;
// the remaining fields refine the node when the intent creates or modifies
// one.
type Component struct {
	// Type is the component type being requested. Required.
	Type diagram.ComponentType `json:"type" yaml:"type"`

	// Label optionally names the component.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Tier optionally places the component.
	Tier diagram.Tier `json:"tier,omitempty" yaml:"tier,omitempty"`

	// Zone optionally groups the component.
	Zone string `json:"zone,omitempty" yaml:"zone,omitempty"`

	// Description optionally documents the component.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Intent is a higher-level, not-yet-decomposed request derived from natural
// language: what to do and which components it involves.
type Intent struct {
	// Kind is the requested action. Required.
	Kind Kind `json:"kind" yaml:"kind"`

	// Components lists the components the action involves, in request order.
	Components []Component `json:"components,omitempty" yaml:"components,omitempty"`
}

// Validate checks that the intent has a recognized kind and that every
// component names a type.
func (in Intent) Validate() error {
	if !in.Kind.IsValid() {
		return fmt.Errorf("invalid intent kind: %q", in.Kind)
	}
	for i, comp := range in.Components {
		if comp.Type == "" {
			return fmt.Errorf("component %d: type is required", i)
		}
		if comp.Tier != "" && !comp.Tier.IsValid() {
			return fmt.Errorf("component %d: invalid tier %q", i, comp.Tier)
		}
	}
	return nil
}

// label returns the display label for a requested component, falling back
// to the component type.
func (c Component) label() string {
	if c.Label != "" {
		return c.Label
	}
	return string(c.Type)
}
