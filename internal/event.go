package internal

// Event is the subset of a remote calendar event the engine cares about.
// StartsAt/EndsAt and StartDate/EndDate hold the upstream's returned
// representation verbatim (RFC3339 for timed events, YYYY-MM-DD for all-day
// events); they are never re-parsed so derived keys stay stable across
// fetches.
type Event struct {
	ID           string
	Summary      string
	Description  string
	Location     string
	StartsAt     string
	EndsAt       string
	StartDate    string
	EndDate      string
	Transparency Transparency
	ColorID      string
	Reminders    Reminders

	// Self is true when the attendee list contains an entry flagged as the
	// account itself; ResponseStatus is that entry's status.
	Self           bool
	ResponseStatus ResponseStatus
	NumAttendees   int
}

func (e Event) AllDay() bool {
	return e.StartsAt == "" && e.StartDate != ""
}

// Key derives the identity used for deduplication and removal detection.
// It reports false for degenerate events carrying neither a timestamp nor
// a date.
func (e Event) Key(effectiveTitle string) (EventKey, bool) {
	if e.StartsAt != "" {
		return EventKey{Anchor: e.StartsAt, Title: effectiveTitle}, true
	}
	if e.StartDate != "" {
		return EventKey{Anchor: e.StartDate, Title: effectiveTitle, AllDay: true}, true
	}
	return EventKey{}, false
}

// EventKey identifies one synced occurrence: the upstream temporal anchor
// plus the title the event is tracked under at the destination. The AllDay
// tag keeps date-only and timed anchors from ever colliding.
type EventKey struct {
	Anchor string
	Title  string
	AllDay bool
}

func (k EventKey) String() string {
	if k.AllDay {
		return k.Anchor + " " + k.Title + " (allday)"
	}
	return k.Anchor + " " + k.Title
}

type Reminders struct {
	UseDefault bool
	Overrides  []ReminderOverride
}

type ReminderOverride struct {
	Method  string
	Minutes int64
}

type Transparency string

func (s Transparency) String() string {
	return string(s)
}

var (
	TransparencyOpaque      Transparency = "opaque"
	TransparencyTransparent Transparency = "transparent"
)

type ResponseStatus string

func (s ResponseStatus) String() string {
	return string(s)
}

var (
	NeedsAction ResponseStatus = "needsAction"
	Declined    ResponseStatus = "declined"
	Tentative   ResponseStatus = "tentative"
	Accepted    ResponseStatus = "accepted"
)
