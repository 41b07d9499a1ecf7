package component

// Persistent marks a character whose state is saved under SnapshotID.
type Persistent struct {
	SnapshotID string
	// Interval is the save period in seconds; zero saves every tick.
	Interval float64
	elapsed  float64
}

// Due advances the save timer and reports whether a save should happen now.
func (p *Persistent) Due(dt float64) bool {
	p.elapsed += dt
	if p.elapsed+1e-9 < p.Interval {
		return false
	}
	p.elapsed = 0
	return true
}

var PersistentComponent = NewComponent[Persistent]()
