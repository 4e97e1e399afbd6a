package syncer

import (
	"context"
	"fmt"
	"time"

	"calmirror/internal"
)

type fakeMux map[string]internal.Session

func (m fakeMux) Get(accountID string) (internal.Session, error) {
	session, ok := m[accountID]
	if !ok {
		return nil, fmt.Errorf("account %q has no authenticated session", accountID)
	}
	return session, nil
}

// fakeSession serves a fixed slice of events and records every create and
// delete issued against it.
type fakeSession struct {
	events  []*internal.Event
	listErr error

	created     []*internal.Event
	failCreates int
	nextID      int

	deleted   []string
	deleteErr map[string]error
}

func (f *fakeSession) Events(_ context.Context, from, to time.Time) (internal.Iterator, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &sliceIterator{events: f.events}, nil
}

func (f *fakeSession) CreateEvent(_ context.Context, e *internal.Event) (*internal.Event, error) {
	if f.failCreates > 0 {
		f.failCreates--
		return nil, fmt.Errorf("insert failed")
	}
	f.nextID++
	created := *e
	created.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeSession) DeleteEvent(_ context.Context, id string) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type sliceIterator struct {
	events  []*internal.Event
	pos     int
	current *internal.Event
}

func (it *sliceIterator) Next() bool {
	if it.pos >= len(it.events) {
		return false
	}
	it.current = it.events[it.pos]
	it.pos++
	return true
}

func (it *sliceIterator) Event() *internal.Event {
	return it.current
}

func (it *sliceIterator) Err() error {
	return nil
}

func timedEvent(summary, startsAt string) *internal.Event {
	return &internal.Event{
		Summary:      summary,
		StartsAt:     startsAt,
		EndsAt:       "2024-06-01T11:00:00Z",
		Transparency: internal.TransparencyOpaque,
	}
}

func allDayEvent(summary, date string) *internal.Event {
	return &internal.Event{
		Summary:      summary,
		StartDate:    date,
		EndDate:      date,
		Transparency: internal.TransparencyOpaque,
	}
}
