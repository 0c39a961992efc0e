package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docpeek"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher     docpeek.Fetcher
	Previewer   docpeek.Previewer
	Links       docpeek.LinkExtractor
	Pages       docpeek.PageSource
	Snapshots   docpeek.SnapshotService
	Base        string
	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site        string        `short:"s" env:"DOCPEEK_SITE" help:"Read pages from a built site directory instead of the network"`
	Base        string        `short:"b" env:"DOCPEEK_BASE" help:"URL the site is served at"`
	Render      bool          `short:"r" help:"Render pages in headless Chrome before reading them"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout per page (0 waits indefinitely)"`
	Debug       bool          `short:"d" help:"Log fetches and previews to stderr"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit for check"`
	RPS         float64       `name:"rps" help:"Requests per second per host (0 is unlimited)"`

	Resolve ResolveCmd `cmd:"" help:"Print the preview a link target would show"`
	Check   CheckCmd   `cmd:"" help:"Check every previewable link of a set of pages"`
	Replay  ReplayCmd  `cmd:"" help:"Replay a pointer event script against the tooltip"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Page   string `arg:"" help:"URL of the page the link appears on"`
	Target string `arg:"" help:"Preview target of the link, e.g. loop.html#update"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URLs     []string `arg:"" optional:"" name:"url" help:"Pages to check (default: every page of the site)"`
	Include  string   `short:"i" help:"Glob of site files to check, relative to --site (default: **/*.html)"`
	Verbose  bool     `short:"v" help:"Also list links whose preview resolved"`
	Baseline string   `help:"SQLite file recording previews across runs; changed previews are reported"`
}

// ReplayCmd is the "replay" subcommand.
type ReplayCmd struct {
	Script string `arg:"" help:"YAML pointer event script"`
}
