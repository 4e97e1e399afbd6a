package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

var HistoryCommand = _historyCommand{
	Name:        "history",
	Description: "Show recent sync and cleanup runs",
}

type _historyCommand struct {
	Name        string
	Description string
}

func (s _historyCommand) Run(ctx context.Context, dbFilename string, args []string) error {
	var limit int

	fs := flag.NewFlagSet(s.Name, flag.ExitOnError)
	fs.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage of %s %s:\n", os.Args[0], fs.Name())
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
	fs.IntVar(&limit, "n", 10, "number of runs to show")

	if err := fs.Parse(args); err != nil {
		return err
	}

	storage, err := openStorage(dbFilename)
	if err != nil {
		return err
	}
	runs, err := storage.Runs(ctx, limit)
	if err != nil {
		return err
	}

	w := flag.CommandLine.Output()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintln(w, run)
	}
	return nil
}
