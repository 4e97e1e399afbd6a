package syncer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"calmirror/internal"
)

var ErrSyncing = errors.New("an error occoured while syncing, check the logs")

type (
	Mux     = internal.Mux
	Session = internal.Session
	Rule    = internal.Rule
	Event   = internal.Event
)

const defaultWindowDays = 31

// Syncer mirrors events between accounts according to a set of directional
// rules. It keeps no state between runs: both endpoints are listed fresh on
// every invocation and reconciled purely in memory.
type Syncer struct {
	output   io.Writer
	sessions Mux

	// WindowDays is the look-ahead window, relative to wall-clock now.
	// Events that scroll out of the window between runs become invisible
	// to reconciliation; re-running later shifts the window forward.
	WindowDays int
}

func New(output io.Writer, sessions Mux) *Syncer {
	if output == nil {
		output = os.Stdout
	}
	return &Syncer{
		output:     output,
		sessions:   sessions,
		WindowDays: defaultWindowDays,
	}
}

// Run executes every rule in configured order. Rules are independent units
// of work: a rule that fails or is skipped never prevents the remaining
// rules from running. Only context cancellation aborts the loop.
func (s *Syncer) Run(ctx context.Context, rules []Rule) (Stats, error) {
	var total Stats
	for i := range rules {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		rule := rules[i]
		stats, err := s.SyncRule(ctx, rule, candidateTitles(rules, rule.Destination))
		total.add(stats)
		if err != nil && !errors.Is(err, ErrSyncing) {
			return total, err
		}
	}
	logf(s.output, nil, "Run complete: %s", total)
	return total, nil
}

// SyncRule runs one rule end to end: load the destination's existing state,
// mirror new source events, then retract whatever the source no longer has.
func (s *Syncer) SyncRule(ctx context.Context, rule Rule, titles map[string]struct{}) (Stats, error) {
	logf(s.output, &rule, "Syncing events...")

	src, err := s.sessions.Get(rule.Source)
	if err != nil {
		logf(s.output, &rule, "Skipping rule, no session for source: %v", err)
		return Stats{}, ErrSyncing
	}
	dst, err := s.sessions.Get(rule.Destination)
	if err != nil {
		logf(s.output, &rule, "Skipping rule, no session for destination: %v", err)
		return Stats{}, ErrSyncing
	}

	index, err := s.loadExisting(ctx, dst, titles)
	if err != nil {
		logf(s.output, &rule, "Unable to load existing destination events: %v", err)
		return Stats{}, ErrSyncing
	}

	seen, stats, err := s.syncEvents(ctx, rule, src, dst, index)
	if err != nil {
		logf(s.output, &rule, "Unable to get source events: %v", err)
		return stats, ErrSyncing
	}

	s.reconcileRemovals(ctx, rule, dst, seen, index, &stats)

	logf(s.output, &rule, "Sync complete: %s", stats)
	return stats, nil
}

// loadExisting builds the destination's key to event-id index for the
// current window. Only events tracked under one of the candidate titles are
// indexed; everything else on the calendar belongs to other rules or is an
// organic entry and stays untouched.
func (s *Syncer) loadExisting(ctx context.Context, dst Session, titles map[string]struct{}) (map[internal.EventKey]string, error) {
	index := make(map[internal.EventKey]string)

	from, to := s.window()
	it, err := dst.Events(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for it.Next() {
		event := it.Event()
		if _, ok := titles[event.Summary]; !ok {
			continue
		}
		// Destination events already carry the effective title.
		key, ok := event.Key(event.Summary)
		if !ok {
			continue
		}
		index[key] = event.ID
	}
	return index, it.Err()
}

// syncEvents mirrors the source window into the destination. Every eligible
// source key lands in the returned set, duplicates included; the set is the
// ground truth for the removal pass. Creation is issued at most once per
// distinct key per run, and a failed creation is logged and skipped without
// aborting the rule.
func (s *Syncer) syncEvents(ctx context.Context, rule Rule, src, dst Session, index map[internal.EventKey]string) (map[internal.EventKey]struct{}, Stats, error) {
	var stats Stats
	seen := make(map[internal.EventKey]struct{})

	from, to := s.window()
	it, err := src.Events(ctx, from, to)
	if err != nil {
		return seen, stats, err
	}
	for it.Next() {
		event := it.Event()

		if !shouldSync(event) {
			logf(s.output, &rule, "Skipping ineligible event: %s", eventTitle(event))
			stats.Filtered++
			continue
		}

		key, ok := event.Key(rule.EffectiveTitle(event.Summary))
		if !ok {
			logf(s.output, &rule, "Skipping event without start: %s", eventTitle(event))
			stats.Degenerate++
			continue
		}
		seen[key] = struct{}{}

		if _, dup := index[key]; dup {
			logf(s.output, &rule, "Skipping duplicate event: %q", event.Summary)
			stats.Duplicates++
			continue
		}

		created, err := dst.CreateEvent(ctx, sanitizedEvent(rule, event))
		if err != nil {
			logf(s.output, &rule, "Unable to create event %q: %v", event.Summary, err)
			stats.CreateErrors++
			continue
		}
		index[key] = created.ID

		logf(s.output, &rule, "Created event: %q on %s", event.Summary, key.Anchor)
		stats.Created++
	}
	return seen, stats, it.Err()
}

// reconcileRemovals deletes destination events the source window no longer
// contains. Only keys tracked under the rule's replacement title qualify;
// passthrough rules never delete, since an event kept under its original
// title can't be safely attributed to the rule. Deletion failures are
// logged per event and don't abort the remaining removals.
func (s *Syncer) reconcileRemovals(ctx context.Context, rule Rule, dst Session, seen map[internal.EventKey]struct{}, index map[internal.EventKey]string, stats *Stats) {
	if rule.Passthrough() {
		return
	}
	for key, id := range index {
		if key.Title != rule.NewSummary {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		if err := dst.DeleteEvent(ctx, id); err != nil {
			logf(s.output, &rule, "Unable to delete event %s: %v", key, err)
			stats.DeleteErrors++
			continue
		}
		delete(index, key)

		logf(s.output, &rule, "Deleted removed event: %s", key)
		stats.Deleted++
	}
}

// Cleanup deletes every previously mirrored event from each destination:
// everything in the window tracked under a replacement title of any rule
// targeting it. Used to undo a sync wholesale.
func (s *Syncer) Cleanup(ctx context.Context, rules []Rule) (Stats, error) {
	var total Stats

	cleaned := make(map[string]struct{})
	for i := range rules {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		rule := rules[i]
		if _, done := cleaned[rule.Destination]; done {
			continue
		}
		cleaned[rule.Destination] = struct{}{}

		titles := candidateTitles(rules, rule.Destination)
		if len(titles) == 0 {
			continue
		}

		dst, err := s.sessions.Get(rule.Destination)
		if err != nil {
			logf(s.output, &rule, "Skipping destination, no session: %v", err)
			continue
		}
		index, err := s.loadExisting(ctx, dst, titles)
		if err != nil {
			logf(s.output, &rule, "Unable to load existing destination events: %v", err)
			continue
		}

		for key, id := range index {
			if err := dst.DeleteEvent(ctx, id); err != nil {
				logf(s.output, &rule, "Unable to delete event %s: %v", key, err)
				total.DeleteErrors++
				continue
			}
			logf(s.output, &rule, "Deleted synced event: %s", key)
			total.Deleted++
		}
	}
	logf(s.output, nil, "Cleanup complete: %s", total)
	return total, nil
}

func (s *Syncer) window() (from, to time.Time) {
	days := s.WindowDays
	if days <= 0 {
		days = defaultWindowDays
	}
	// Whole seconds in UTC, so the RFC3339 form the transport sends ends
	// in a bare "Z" with no sub-second digits.
	now := time.Now().UTC().Truncate(time.Second)
	return now, now.AddDate(0, 0, days)
}

// sanitizedEvent copies the allow-listed fields of a source event under the
// rule's effective title. The description is dropped unless the rule
// preserves details; attendees and everything else never cross over.
func sanitizedEvent(rule Rule, e *Event) *Event {
	out := &Event{
		Summary:   rule.EffectiveTitle(e.Summary),
		Location:  e.Location,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Reminders: e.Reminders,
		ColorID:   e.ColorID,
	}
	if rule.PreserveDetails {
		out.Description = e.Description
	}
	return out
}

// candidateTitles is the set of titles the destination's existing-state
// index should track: every replacement title among rules sharing that
// destination. Passthrough rules contribute nothing, so their events are
// deduplicated within a run but re-indexed from scratch on the next one.
func candidateTitles(rules []Rule, destination string) map[string]struct{} {
	titles := make(map[string]struct{})
	for _, r := range rules {
		if r.Destination == destination && r.NewSummary != "" {
			titles[r.NewSummary] = struct{}{}
		}
	}
	return titles
}
