package syncer

import (
	"fmt"
	"io"

	"calmirror/internal"
)

// Stats counts what one rule (or a whole run) did.
type Stats struct {
	Created      int
	Duplicates   int
	Filtered     int
	Degenerate   int
	Deleted      int
	CreateErrors int
	DeleteErrors int
}

func (st *Stats) add(o Stats) {
	st.Created += o.Created
	st.Duplicates += o.Duplicates
	st.Filtered += o.Filtered
	st.Degenerate += o.Degenerate
	st.Deleted += o.Deleted
	st.CreateErrors += o.CreateErrors
	st.DeleteErrors += o.DeleteErrors
}

func (st Stats) Errors() int {
	return st.CreateErrors + st.DeleteErrors
}

func (st Stats) String() string {
	return fmt.Sprintf("%d created, %d duplicates, %d skipped, %d deleted, %d errors",
		st.Created, st.Duplicates, st.Filtered+st.Degenerate, st.Deleted, st.Errors())
}

func eventTitle(e *Event) string {
	if e.Summary == "" {
		return "(untitled)"
	}
	return fmt.Sprintf("%q", e.Summary)
}

func logf(w io.Writer, rule *Rule, format string, a ...any) {
	internal.Logf(w, "", rule, format, a...)
}
