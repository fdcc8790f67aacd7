package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrNoJSONFound",
			err:  ErrNoJSONFound,
			want: "no JSON found in response",
		},
		{
			name: "ErrNoDiagram",
			err:  ErrNoDiagram,
			want: "no diagram yet",
		},
		{
			name: "ErrNodeNotFound",
			err:  ErrNodeNotFound,
			want: "node not found",
		},
		{
			name: "ErrConnectionNotFound",
			err:  ErrConnectionNotFound,
			want: "connection not found",
		},
		{
			name: "ErrInvalidPayload",
			err:  ErrInvalidPayload,
			want: "invalid operation payload",
		},
		{
			name: "ErrInvalidSpec",
			err:  ErrInvalidSpec,
			want: "invalid spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestEngineErrorError verifies the Error() method formatting.
func TestEngineErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *EngineError
		want string
	}{
		{
			name: "basic error",
			err: &EngineError{
				Op:   "mutation.Validate",
				Kind: KindValidation,
				Err:  ErrInvalidPayload,
			},
			want: "engine: mutation.Validate (validation): invalid operation payload",
		},
		{
			name: "error with context",
			err: &EngineError{
				Op:   "mutation.Apply",
				Kind: KindApplication,
				Err:  ErrNodeNotFound,
				Context: map[string]any{
					"node_id": "web-server",
				},
			},
			want: "engine: mutation.Apply (application): node not found [context:",
		},
		{
			name: "error without underlying error",
			err: &EngineError{
				Op:   "intent.Apply",
				Kind: KindApplication,
			},
			want: "engine: intent.Apply: application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Error() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

// TestEngineErrorUnwrap verifies errors.Is works through the wrapper.
func TestEngineErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("while applying operation 2: %w", ErrNodeNotFound)
	err := NewApplicationError("mutation.Apply", wrapped)

	if !errors.Is(err, ErrNodeNotFound) {
		t.Error("errors.Is(err, ErrNodeNotFound) = false, want true")
	}
	if errors.Is(err, ErrNoDiagram) {
		t.Error("errors.Is(err, ErrNoDiagram) = true, want false")
	}
	if err.Unwrap() != wrapped {
		t.Error("Unwrap() did not return the wrapped error")
	}
}

// TestEngineErrorIs verifies kind-based matching between engine errors.
func TestEngineErrorIs(t *testing.T) {
	err := NewValidationError("mutation.Validate", ErrInvalidPayload)

	if !errors.Is(err, &EngineError{Kind: KindValidation}) {
		t.Error("kind-only match failed")
	}
	if !errors.Is(err, &EngineError{Op: "mutation.Validate", Kind: KindValidation}) {
		t.Error("op+kind match failed")
	}
	if errors.Is(err, &EngineError{Kind: KindApplication}) {
		t.Error("mismatched kind matched")
	}
	if errors.Is(err, &EngineError{Op: "intent.Apply", Kind: KindValidation}) {
		t.Error("mismatched op matched")
	}
}

// TestEngineErrorWithContext verifies context is copied, not shared.
func TestEngineErrorWithContext(t *testing.T) {
	base := NewApplicationError("intent.Apply", ErrNodeNotFound)
	derived := base.WithContext(map[string]any{"component_type": "database"})

	if base.Context != nil {
		t.Error("WithContext mutated the receiver")
	}
	if derived.Context["component_type"] != "database" {
		t.Errorf("derived context = %+v, want component_type=database", derived.Context)
	}
	if !errors.Is(derived, ErrNodeNotFound) {
		t.Error("derived error lost its underlying error")
	}
}

// TestConstructorKinds verifies each constructor sets the expected kind.
func TestConstructorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *EngineError
		kind string
	}{
		{"validation", NewValidationError("op", nil), KindValidation},
		{"application", NewApplicationError("op", nil), KindApplication},
		{"not_found", NewNotFoundError("op", nil), KindNotFound},
		{"internal", NewInternalError("op", nil), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
		})
	}
}
