package internal

import (
	"context"
	"time"
)

// Mux resolves the authenticated session for an account id. Accounts that
// failed to authenticate are simply absent.
type Mux interface {
	Get(accountID string) (Session, error)
}

// Session is an authenticated handle on one account's calendar. The engine
// only lists a time window, creates and deletes; events are never mutated
// in place.
type Session interface {
	Events(_ context.Context, from, to time.Time) (Iterator, error)
	CreateEvent(context.Context, *Event) (*Event, error)
	DeleteEvent(_ context.Context, id string) error
}

type Iterator interface {
	Next() bool
	Event() *Event
	Err() error
}
