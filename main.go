package main

import (
	"os"

	"log/slog"

	"github.com/jessevdk/go-flags"
)

var globalOption struct {
	Verbose bool `short:"v" long:"verbose" description:"show verbose logs"`
	Quiet   bool `short:"q" long:"quiet" description:"suppress logs"`
	JsonLog bool `long:"json-log" description:"use json format for logging"`
}

func init_log() {
	var level slog.Level = slog.LevelInfo
	if globalOption.Verbose {
		level = slog.LevelDebug
	} else if globalOption.Quiet {
		level = slog.LevelWarn
	}
	slog.SetLogLoggerLevel(level)
	if globalOption.JsonLog {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

func main() {
	var err error
	var extract ExtractCmd
	var ziplist ZipList
	var verify VerifyCmd
	var stash StashCmd
	var version VersionCmd
	parser := flags.NewParser(&globalOption, flags.Default)
	_, err = parser.AddCommand("extract", "extract and verify archives", "extract zip archives, reconcile per-file checksums, optionally delete the originals", &extract)
	if err != nil {
		slog.Error("addcommand extract", "error", err)
		panic(err)
	}
	_, err = parser.AddCommand("list", "list archive entries", "list zip entries with sizes and stored CRC32", &ziplist)
	if err != nil {
		slog.Error("addcommand list", "error", err)
		panic(err)
	}
	_, err = parser.AddCommand("verify", "verify an extraction", "reconcile an extracted directory against archive checksums", &verify)
	if err != nil {
		slog.Error("addcommand verify", "error", err)
		panic(err)
	}
	_, err = parser.AddCommand("stash", "stash a file", "move a file into the stash directory, with undo", &stash)
	if err != nil {
		slog.Error("addcommand stash", "error", err)
		panic(err)
	}
	_, err = parser.AddCommand("version", "show version", "show version", &version)
	if err != nil {
		slog.Error("addcommand version", "error", err)
		panic(err)
	}
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		slog.Error("error exit", "error", err)
		os.Exit(1)
	}
}
