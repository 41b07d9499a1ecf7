package ecs

// IntersectEntities returns the entities present in both sets, in the order
// of the smaller one.
func IntersectEntities(a, b *SparseSet) []Entity {
	if a.Len() == 0 || b.Len() == 0 {
		return nil
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]Entity, 0, a.Len())
	for _, e := range a.denseEntities {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
