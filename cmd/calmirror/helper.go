package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"calmirror/calendar"
	"calmirror/calendar/google"
	"calmirror/internal"
	"calmirror/internal/config"
	"calmirror/internal/sqlite"
)

const defaultCredentialsFile = "credentials.json"

func openStorage(dbFilename string) (*sqlite.Storage, error) {
	db, err := sql.Open(sqlite.DriverName, dbFilename)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStorage(db), nil
}

func newClient(cfg *config.Config, storage *sqlite.Storage, verbose bool) (*google.Client, error) {
	credFile := cfg.CredentialsFile
	if credFile == "" {
		credFile = defaultCredentialsFile
	}
	credJSON, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	client, err := google.NewClient(credJSON, storage)
	if err != nil {
		return nil, err
	}
	client.Verbose = verbose
	return client, nil
}

// newMux authenticates every account the rules reference. A single account
// failing to authenticate aborts before any rule runs.
func newMux(ctx context.Context, cfg *config.Config, client *google.Client) (*calendar.Mux, error) {
	w := flag.CommandLine.Output()

	mux := calendar.NewMux()
	for _, acc := range cfg.RequiredAccounts() {
		session, err := client.Session(ctx, acc)
		if err != nil {
			return nil, fmt.Errorf("authenticating account %s: %w", acc, err)
		}
		internal.Logf(w, "", nil, "Authenticated account %s", acc)
		mux.Register(acc.ID, session)
	}
	return mux, nil
}
