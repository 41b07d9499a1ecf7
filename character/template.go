package character

// Template is the authored, read-only description a character is spawned
// from. Every accessor hands out copies, so one template can seed any number
// of characters without aliasing.
type Template struct {
	stats   Stats
	variant string
}

// NewTemplate captures a deep copy of stats. Health and stamina are clamped
// into range and Alive is derived from health.
func NewTemplate(variant string, stats Stats) Template {
	s := stats.Clone()
	s.normalize()
	return Template{stats: s, variant: variant}
}

// Variant names the capability table characters from this template use.
func (t Template) Variant() string {
	return t.variant
}

func (t Template) Name() string {
	return t.stats.Name
}

// Stats returns a private copy of the starting stats.
func (t Template) Stats() Stats {
	return t.stats.Clone()
}
