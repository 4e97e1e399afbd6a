package internal

// Rule is one directional sync: events from the Source account are mirrored
// into the Destination account. Rules are immutable for the duration of a
// run; several rules may share a destination.
type Rule struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`

	// NewSummary, when set, replaces the title of every mirrored event.
	// Rules without it are passthrough rules: events keep their original
	// title and are never auto-deleted, since original-titled destination
	// events can't be attributed to the rule.
	NewSummary string `yaml:"new_summary,omitempty"`

	// PreserveDetails keeps the source description on mirrored events
	// instead of clearing it.
	PreserveDetails bool `yaml:"preserve_details,omitempty"`
}

func (r Rule) String() string {
	return r.Source + " -> " + r.Destination
}

// EffectiveTitle is the title an event is tracked under at the destination.
func (r Rule) EffectiveTitle(original string) string {
	if r.NewSummary != "" {
		return r.NewSummary
	}
	return original
}

// Passthrough reports whether the rule keeps original titles.
func (r Rule) Passthrough() bool {
	return r.NewSummary == ""
}
