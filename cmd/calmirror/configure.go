package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"calmirror/internal"
	"calmirror/internal/config"
)

var ConfigureCommand = _configureCommand{
	Name:        "configure",
	Description: "Authorize an account interactively and store its token",
}

type _configureCommand struct {
	Name        string
	Description string
}

func (s _configureCommand) Run(ctx context.Context, cfgFilename, dbFilename string, verbose bool, args []string) error {
	var accountID string

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s %s:\n", os.Args[0], fs.Name())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&accountID, "account", "", "account id from the configuration to authorize")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if accountID == "" {
		return errors.New("missing -account")
	}

	cfg, err := config.Load(cfgFilename)
	if err != nil {
		return err
	}
	acc, ok := cfg.Accounts[accountID]
	if !ok {
		return fmt.Errorf("account %q is not defined in %s", accountID, cfgFilename)
	}
	if acc.AuthMode != internal.AuthOAuth {
		return fmt.Errorf("account %s uses %s auth and needs no interactive login", acc, acc.AuthMode)
	}

	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, storage, verbose)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()

	token, err := client.Login(ctx, func(authURL string) {
		fmt.Fprintf(w, "Go to the following link in your browser\n%s\n", authURL)
	})
	if err != nil {
		return fmt.Errorf("google: logging in: %v", err)
	}

	fmt.Fprintf(w, "Saving token for account %s...\n", acc)

	v, _ := json.Marshal(token)
	return storage.SaveAuth(ctx, acc.ID, string(v))
}
