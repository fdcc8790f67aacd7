package diff

// ComputeModificationScore reduces a diff and the baseline node count into a
// bounded [0, 1] change magnitude. Node additions, removals, and
// modifications each count one change unit; connections affect significance
// but not magnitude. An empty baseline scores 0.
func ComputeModificationScore(r Result, originalNodeCount int) float64 {
	if originalNodeCount <= 0 {
		return 0
	}

	changeUnits := r.NodesAdded + r.NodesRemoved + r.NodesModified
	score := float64(changeUnits) / float64(originalNodeCount)
	if score > 1 {
		return 1
	}
	return score
}
