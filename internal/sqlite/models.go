package sqlite

import (
	"fmt"
	"time"
)

// Run is one completed sync or cleanup invocation. History is observability
// only; reconciliation never reads it back.
type Run struct {
	ID         int64     `db:"id"`
	Command    string    `db:"command"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	Rules      int       `db:"rules"`
	Created    int       `db:"created"`
	Duplicates int       `db:"duplicates"`
	Deleted    int       `db:"deleted"`
	Errors     int       `db:"errors"`
}

func (r Run) String() string {
	return fmt.Sprintf("#%d %s %s: %d rule(s), %d created, %d duplicates, %d deleted, %d errors (%s)",
		r.ID,
		r.StartedAt.Local().Format("02 Jan 06 15:04"),
		r.Command,
		r.Rules, r.Created, r.Duplicates, r.Deleted, r.Errors,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}
