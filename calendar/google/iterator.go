package google

import (
	"google.golang.org/api/calendar/v3"

	"calmirror/internal"
)

type eventOrError struct {
	e   *internal.Event
	err error
}

type eventIterator struct {
	events  chan eventOrError
	current eventOrError
}

func newEventIterator() *eventIterator {
	return &eventIterator{
		events: make(chan eventOrError),
	}
}

func (it *eventIterator) Next() (ok bool) {
	it.current, ok = <-it.events
	if it.current.err != nil {
		return false
	}
	return ok
}

func (it *eventIterator) Event() *internal.Event {
	c := it.current
	if c.e == nil && c.err == nil {
		panic("google: Event() called before Next()")
	}
	return c.e
}

func (it *eventIterator) Err() error {
	return it.current.err
}

// newEvent maps a Google Calendar event onto the internal model. Start and
// end keep the API's returned strings untouched: dedup keys are derived
// from them verbatim, so no parse/format round trip is allowed here.
func newEvent(event *calendar.Event) *internal.Event {
	e := &internal.Event{
		ID:           event.Id,
		Summary:      event.Summary,
		Description:  event.Description,
		Location:     event.Location,
		Transparency: internal.Transparency(event.Transparency),
		ColorID:      event.ColorId,
		NumAttendees: len(event.Attendees),
		Reminders:    internal.Reminders{UseDefault: true},
	}
	if event.Start != nil {
		e.StartsAt = event.Start.DateTime
		e.StartDate = event.Start.Date
	}
	if event.End != nil {
		e.EndsAt = event.End.DateTime
		e.EndDate = event.End.Date
	}
	for _, attendee := range event.Attendees {
		if attendee.Self {
			e.Self = true
			e.ResponseStatus = internal.ResponseStatus(attendee.ResponseStatus)
		}
	}
	if event.Reminders != nil {
		e.Reminders = internal.Reminders{UseDefault: event.Reminders.UseDefault}
		for _, o := range event.Reminders.Overrides {
			e.Reminders.Overrides = append(e.Reminders.Overrides, internal.ReminderOverride{
				Method:  o.Method,
				Minutes: o.Minutes,
			})
		}
	}
	return e
}

func newGoogleEvent(event *internal.Event) *calendar.Event {
	gevent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		ColorId:     event.ColorID,
		Start: &calendar.EventDateTime{
			DateTime: event.StartsAt,
			Date:     event.StartDate,
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndsAt,
			Date:     event.EndDate,
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      event.Reminders.UseDefault,
			ForceSendFields: []string{"UseDefault"},
		},
	}
	for _, o := range event.Reminders.Overrides {
		gevent.Reminders.Overrides = append(gevent.Reminders.Overrides, &calendar.EventReminder{
			Method:  o.Method,
			Minutes: o.Minutes,
		})
	}
	return gevent
}
