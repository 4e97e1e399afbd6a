package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

var cfg struct {
	ConfigFile string
	DBFile     string
	Verbose    bool
}

func init() {
	flag.StringVar(&cfg.ConfigFile, "config", "config.yml", "configuration file with accounts and sync rules")
	flag.StringVar(&cfg.DBFile, "db", "calmirror.db", "sqlite database for tokens and run history")
	flag.BoolVar(&cfg.Verbose, "v", false, "verbose output")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	args := flag.Args()
	name := SyncCommand.Name
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	var err error
	switch name {
	case SyncCommand.Name:
		err = SyncCommand.Run(ctx, cfg.ConfigFile, cfg.DBFile, cfg.Verbose, args)
	case ConfigureCommand.Name:
		err = ConfigureCommand.Run(ctx, cfg.ConfigFile, cfg.DBFile, cfg.Verbose, args)
	case CleanupCommand.Name:
		err = CleanupCommand.Run(ctx, cfg.ConfigFile, cfg.DBFile, cfg.Verbose, args)
	case HistoryCommand.Name:
		err = HistoryCommand.Run(ctx, cfg.DBFile, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options]\n", os.Args[0])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range []struct{ Name, Description string }{
		{SyncCommand.Name, SyncCommand.Description},
		{ConfigureCommand.Name, ConfigureCommand.Description},
		{CleanupCommand.Name, CleanupCommand.Description},
		{HistoryCommand.Name, HistoryCommand.Description},
	} {
		fmt.Fprintf(w, "  %-10s %s\n", c.Name, c.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.PrintDefaults()
}
