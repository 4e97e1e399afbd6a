package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"calmirror/internal"
)

// TokenStore persists OAuth tokens between runs, keyed by account id. The
// sqlite storage implements it.
type TokenStore interface {
	Auth(_ context.Context, accountID string) (string, error)
	SaveAuth(_ context.Context, accountID, auth string) error
}

// Credentials produces a valid token source for one account, or reports why
// it can't. Resolved per account from its configured auth mode.
type Credentials interface {
	TokenSource(context.Context) (oauth2.TokenSource, error)
}

func (c *Client) credentials(acc *internal.Account) (Credentials, error) {
	switch acc.AuthMode {
	case internal.AuthOAuth:
		return &oauthCredentials{cfg: c.oauthCfg, tokens: c.tokens, account: acc}, nil
	case internal.AuthServiceAccount:
		return &serviceAccountCredentials{account: acc}, nil
	}
	return nil, fmt.Errorf("google: account %s: unknown auth mode %q", acc, acc.AuthMode)
}

// oauthCredentials serves interactive-OAuth accounts from the token store.
// The stored token is probed immediately so a revoked or expired grant
// fails the run up front instead of on the first list call, and a refreshed
// token is written back.
type oauthCredentials struct {
	cfg     *oauth2.Config
	tokens  TokenStore
	account *internal.Account
}

func (o *oauthCredentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	auth, err := o.tokens.Auth(ctx, o.account.ID)
	if err != nil {
		return nil, fmt.Errorf("google: account %s: no stored token, run configure first: %w", o.account, err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(auth), &tok); err != nil {
		return nil, fmt.Errorf("google: account %s: stored token is invalid: %v", o.account, err)
	}

	ts := o.cfg.TokenSource(ctx, &tok)
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("google: account %s: refreshing token: %w", o.account, err)
	}
	if fresh.AccessToken != tok.AccessToken {
		v, _ := json.Marshal(fresh)
		if err := o.tokens.SaveAuth(ctx, o.account.ID, string(v)); err != nil {
			return nil, fmt.Errorf("google: account %s: saving refreshed token: %w", o.account, err)
		}
	}
	return ts, nil
}

// serviceAccountCredentials serves service-account accounts from a JWT key
// file, impersonating the account's email via domain-wide delegation.
type serviceAccountCredentials struct {
	account *internal.Account
}

func (s *serviceAccountCredentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	key, err := os.ReadFile(s.account.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("google: account %s: reading service account key: %w", s.account, err)
	}
	cfg, err := google.JWTConfigFromJSON(key, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("google: account %s: parsing service account key: %v", s.account, err)
	}
	cfg.Subject = s.account.Email
	return cfg.TokenSource(ctx), nil
}
