package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archsketch-ai/engine/diagram"
)

func TestComputeModificationScore(t *testing.T) {
	tests := []struct {
		name      string
		r         Result
		baseline  int
		want      float64
	}{
		{"no changes", Result{}, 5, 0},
		{"one change in four", Result{NodesModified: 1}, 4, 0.25},
		{"units sum across categories", Result{NodesAdded: 1, NodesRemoved: 1, NodesModified: 1}, 6, 0.5},
		{"caps at one when units equal baseline", Result{NodesAdded: 3}, 3, 1},
		{"caps at one when units exceed baseline", Result{NodesAdded: 10}, 2, 1},
		{"empty baseline scores zero", Result{NodesAdded: 3}, 0, 0},
		{"negative baseline scores zero", Result{NodesAdded: 3}, -1, 0},
		{"connections excluded from magnitude", Result{ConnectionsAdded: 4, ConnectionsRemoved: 2}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeModificationScore(tt.r, tt.baseline)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeModificationScore_Bounds(t *testing.T) {
	// Score stays in [0, 1] for a range of diff shapes and baselines.
	for units := 0; units <= 12; units++ {
		for baseline := 1; baseline <= 6; baseline++ {
			r := Result{NodesAdded: units}
			score := ComputeModificationScore(r, baseline)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			if units >= baseline {
				assert.Equal(t, 1.0, score, "units %d baseline %d", units, baseline)
			}
		}
	}
}

func TestScoreFromRealDiff(t *testing.T) {
	original := diffSpec()
	modified := diffSpec()
	modified.NodeByID("web").Tier = diagram.TierInternal
	modified.RemoveNode("db")

	r := ComputeSpecDiff(original, modified)
	// One modified node plus one removed node over a three-node baseline.
	assert.InDelta(t, 2.0/3.0, ComputeModificationScore(r, len(original.Nodes)), 1e-9)
}
