package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"calmirror/internal"
)

type Client struct {
	oauthCfg *oauth2.Config
	tokens   TokenStore

	Verbose bool
}

func NewClient(credJSON []byte, tokens TokenStore) (*Client, error) {
	oauthCfg, err := google.ConfigFromJSON(credJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials file: %v", err)
	}

	return &Client{
		oauthCfg: oauthCfg,
		tokens:   tokens,
	}, nil
}

const defaultSleep = 5 * time.Second

// Session resolves the account's credentials and binds a calendar service
// to it. Every remote operation on the returned session is a blocking round
// trip against that account's calendar.
func (c *Client) Session(ctx context.Context, acc *internal.Account) (internal.Session, error) {
	creds, err := c.credentials(acc)
	if err != nil {
		return nil, err
	}
	ts, err := creds.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service for %s: %v", acc, err)
	}
	return &session{
		client:  c,
		svc:     svc,
		account: acc,
	}, nil
}

type session struct {
	client  *Client
	svc     *calendar.Service
	account *internal.Account
}

func (s *session) Events(ctx context.Context, from, to time.Time) (internal.Iterator, error) {
	eventsCall := s.svc.Events.
		List(s.account.CalendarID).
		Context(ctx).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		ShowDeleted(false)

	it := newEventIterator()
	go s.client.events(s.account, eventsCall, it.events)
	return it, nil
}

func (c *Client) events(acc *internal.Account, call *calendar.EventsListCall, eventCh chan eventOrError) {
	c.logf(acc, "checking for events")

	defer close(eventCh)

	var nextPageToken string
	for {
		events, err := call.PageToken(nextPageToken).Do()
		if err != nil {
			if shouldRetry(err) {
				time.Sleep(defaultSleep)
				continue
			}
			c.logf(acc, "unable to get list of events: %v", err)
			eventCh <- eventOrError{err: err}
			return
		}

		for _, item := range events.Items {
			eventCh <- eventOrError{e: newEvent(item)}
		}
		nextPageToken = events.NextPageToken
		if nextPageToken == "" {
			return
		}
	}
}

func (s *session) CreateEvent(ctx context.Context, req *internal.Event) (*internal.Event, error) {
	c := s.client

	msg := fmt.Sprintf("creating event: %q... ", req.Summary)
	defer func() {
		c.logf(s.account, msg)
	}()

	var res *internal.Event
	for {
		gevent, err := s.svc.Events.Insert(s.account.CalendarID, newGoogleEvent(req)).Context(ctx).Do()
		if err == nil {
			res = newEvent(gevent)
			msg += "✅"
			break
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		msg += "❌"
		return nil, err
	}
	return res, nil
}

func (s *session) DeleteEvent(ctx context.Context, id string) error {
	c := s.client

	msg := fmt.Sprintf("deleting event %s... ", id)
	defer func() {
		c.logf(s.account, msg)
	}()

	for {
		err := s.svc.Events.Delete(s.account.CalendarID, id).Context(ctx).Do()
		if err == nil || alreadyDeleted(err) {
			msg += "✅"
			break
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		msg += "❌"
		return err
	}
	return nil
}

// Login runs the interactive auth-code flow: prompt receives the URL the
// user must open, and the loopback server below collects the redirect.
func (c *Client) Login(ctx context.Context, prompt func(authURL string)) (*oauth2.Token, error) {
	state := fmt.Sprintf("calmirror-%d", time.Now().UTC().Nanosecond())
	authURL := c.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	prompt(authURL)

	mux := http.NewServeMux()
	server := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	var (
		token   *oauth2.Token
		authErr error
	)

	mux.HandleFunc("/calmirror", func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			go server.Shutdown(ctx)
		}()

		query := req.URL.Query()
		if query.Get("state") != state {
			authErr = errors.New("oauth link is not valid")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token, authErr = c.oauthCfg.Exchange(ctx, query.Get("code"))
		if authErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", authErr)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
	})

	serverCh := make(chan struct{})
	var svrErr error
	go func() {
		svrErr = server.ListenAndServe()
		close(serverCh)
	}()

	<-serverCh

	if svrErr != nil && svrErr != http.ErrServerClosed {
		return nil, svrErr
	}

	if authErr != nil {
		return nil, authErr
	}

	return token, nil
}

func (c *Client) logf(acc *internal.Account, format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "google: "+acc.ID+":", nil, format, a...)
	}
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded")
}

func alreadyDeleted(err error) bool {
	return errIsReason(err, "deleted")
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
