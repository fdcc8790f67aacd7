package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() *Spec {
	return &Spec{
		Nodes: []Node{
			{ID: "fw", Type: ComponentFirewall, Label: "Firewall", Tier: TierDMZ},
			{ID: "web", Type: ComponentWebServer, Label: "Web Server", Tier: TierDMZ},
			{ID: "db", Type: ComponentDatabase, Label: "Database", Tier: TierData},
		},
		Connections: []Connection{
			{Source: "fw", Target: "web", FlowType: FlowRequest},
			{Source: "web", Target: "db", FlowType: FlowEncrypted},
		},
	}
}

func TestSpec_Clone(t *testing.T) {
	original := testSpec()
	clone := original.Clone()

	require.Equal(t, original, clone)

	// Mutating the clone must not leak into the original.
	clone.Nodes[0].Label = "Edge Firewall"
	clone.Connections[0].FlowType = FlowBlocked
	clone.RemoveNode("db")

	assert.Equal(t, "Firewall", original.Nodes[0].Label)
	assert.Equal(t, FlowRequest, original.Connections[0].FlowType)
	assert.Len(t, original.Nodes, 3)
	assert.Len(t, original.Connections, 2)
}

func TestSpec_CloneNil(t *testing.T) {
	var s *Spec
	assert.Nil(t, s.Clone())
}

func TestSpec_NodeByID(t *testing.T) {
	spec := testSpec()

	node := spec.NodeByID("web")
	require.NotNil(t, node)
	assert.Equal(t, ComponentWebServer, node.Type)

	assert.Nil(t, spec.NodeByID("missing"))

	// The returned pointer aliases the spec, so in-place modification works.
	node.Label = "Public Web"
	assert.Equal(t, "Public Web", spec.Nodes[1].Label)
}

func TestSpec_FirstNodeByType(t *testing.T) {
	spec := testSpec()
	spec.Nodes = append(spec.Nodes, Node{ID: "db2", Type: ComponentDatabase, Label: "Replica"})

	node := spec.FirstNodeByType(ComponentDatabase)
	require.NotNil(t, node)
	assert.Equal(t, "db", node.ID, "first match in insertion order wins")

	assert.Nil(t, spec.FirstNodeByType(ComponentCache))
}

func TestSpec_RemoveNodeCascades(t *testing.T) {
	spec := testSpec()

	require.True(t, spec.RemoveNode("web"))

	assert.Len(t, spec.Nodes, 2)
	assert.False(t, spec.HasNode("web"))
	assert.Empty(t, spec.Connections, "both connections touched web and must be cascaded")
}

func TestSpec_RemoveNodeMissing(t *testing.T) {
	spec := testSpec()
	assert.False(t, spec.RemoveNode("missing"))
	assert.Len(t, spec.Nodes, 3)
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr string
	}{
		{
			name:    "valid spec",
			mutate:  func(s *Spec) {},
			wantErr: "",
		},
		{
			name: "duplicate node id",
			mutate: func(s *Spec) {
				s.Nodes = append(s.Nodes, Node{ID: "fw", Type: ComponentFirewall})
			},
			wantErr: "duplicate node id: fw",
		},
		{
			name: "missing node type",
			mutate: func(s *Spec) {
				s.Nodes[0].Type = ""
			},
			wantErr: "node type is required",
		},
		{
			name: "unknown tier",
			mutate: func(s *Spec) {
				s.Nodes[0].Tier = "perimeter"
			},
			wantErr: "placement zone",
		},
		{
			name: "dangling connection source",
			mutate: func(s *Spec) {
				s.Connections = append(s.Connections, Connection{Source: "ghost", Target: "db"})
			},
			wantErr: "unknown source ghost",
		},
		{
			name: "dangling connection target",
			mutate: func(s *Spec) {
				s.Connections = append(s.Connections, Connection{Source: "fw", Target: "ghost"})
			},
			wantErr: "unknown target ghost",
		},
		{
			name: "empty connection endpoint",
			mutate: func(s *Spec) {
				s.Connections = append(s.Connections, Connection{Source: "", Target: "db"})
			},
			wantErr: "source cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(spec)

			err := spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConnection_Key(t *testing.T) {
	conn := Connection{Source: "a", Target: "b"}
	assert.Equal(t, "a->b", conn.Key())

	reversed := Connection{Source: "b", Target: "a"}
	assert.NotEqual(t, conn.Key(), reversed.Key(), "connection identity is the ordered pair")
}

func TestNode_Builders(t *testing.T) {
	node := NewNode("cache-1", ComponentCache).
		WithLabel("Session Cache").
		WithTier(TierInternal).
		WithZone("us-east-1a").
		WithDescription("Holds session tokens")

	require.NoError(t, node.Validate())
	assert.Equal(t, TierInternal, node.Tier)
	assert.Equal(t, "us-east-1a", node.Zone)
}
