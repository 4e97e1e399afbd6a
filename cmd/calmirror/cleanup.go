package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"calmirror/internal/config"
	"calmirror/internal/sqlite"
	"calmirror/internal/syncer"
)

var CleanupCommand = _cleanupCommand{
	Name:        "cleanup",
	Description: "Delete every previously synced event from the destinations",
}

type _cleanupCommand struct {
	Name        string
	Description string
}

func (s _cleanupCommand) Run(ctx context.Context, cfgFilename, dbFilename string, verbose bool, args []string) error {
	var windowDays int

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s %s:\n", os.Args[0], fs.Name())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
	fs.IntVar(&windowDays, "window", 0, "override the look-ahead window in days")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(cfgFilename)
	if err != nil {
		return err
	}
	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, storage, verbose)
	if err != nil {
		return err
	}
	mux, err := newMux(ctx, cfg, client)
	if err != nil {
		return err
	}

	sync := syncer.New(flag.CommandLine.Output(), mux)
	sync.WindowDays = cfg.WindowDays
	if windowDays > 0 {
		sync.WindowDays = windowDays
	}

	startedAt := time.Now().UTC()
	stats, err := sync.Cleanup(ctx, cfg.SyncRules)
	if err != nil {
		return err
	}
	return storage.RecordRun(ctx, &sqlite.Run{
		Command:    s.Name,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Rules:      len(cfg.SyncRules),
		Deleted:    stats.Deleted,
		Errors:     stats.Errors(),
	})
}
