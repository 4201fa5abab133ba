package ecs

// intersectIDs returns slot ids present in both sets, in a's order when a is
// the smaller set.
func intersectIDs(a, b *SparseSet) []entityID {
	if a == nil || b == nil {
		return nil
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]entityID, 0, a.Len())
	for _, id := range a.ids() {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
