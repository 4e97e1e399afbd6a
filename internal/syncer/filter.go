package syncer

import "calmirror/internal"

// shouldSync decides whether a fetched source event is eligible for
// mirroring. Vetoes, in order: untitled events, free-time markers, and
// invitations the account has not accepted. Events with no self-flagged
// attendee are organizer-owned and pass the last check.
func shouldSync(e *internal.Event) bool {
	if e.Summary == "" {
		return false
	}
	if e.Transparency == internal.TransparencyTransparent {
		return false
	}
	if e.Self && e.ResponseStatus != internal.Accepted {
		return false
	}
	return true
}
