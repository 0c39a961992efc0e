package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/audit"
	"github.com/fwojciec/docpeek/fs"
	"github.com/fwojciec/docpeek/goquery"
	"github.com/fwojciec/docpeek/hover"
	peekhttp "github.com/fwojciec/docpeek/http"
	"github.com/fwojciec/docpeek/memory"
	"github.com/fwojciec/docpeek/rod"
	peekslog "github.com/fwojciec/docpeek/slog"
	"github.com/fwojciec/docpeek/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the fetcher chosen from flags when set.
	// Used for end-to-end testing.
	Fetcher docpeek.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docpeek"),
		kong.Description("Resolve and check hover previews of documentation links"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docpeek --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Site != "" {
		if info, err := os.Stat(cli.Site); err != nil || !info.IsDir() {
			return fmt.Errorf("site directory %q does not exist", cli.Site)
		}
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	fetcher, err := m.fetcher(cli, stderr)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	if cli.RPS > 0 {
		fetcher = &audit.LimitedFetcher{
			Fetcher: fetcher,
			Limiter: audit.NewDomainLimiter(cli.RPS),
		}
	}
	if logger != nil {
		fetcher = peekslog.NewLoggingFetcher(fetcher, logger)
	}

	var previewer docpeek.Previewer = &hover.Previewer{
		Cache:   memory.NewCache(),
		Fetcher: fetcher,
		Parser:  goquery.NewParser(),
	}
	if logger != nil {
		previewer = peekslog.NewLoggingPreviewer(previewer, logger)
	}

	deps.Fetcher = fetcher
	deps.Previewer = previewer
	deps.Links = goquery.NewLinkExtractor()
	deps.Base = cli.Base
	deps.Concurrency = cli.Concurrency
	if cli.Site != "" {
		deps.Pages = &fs.PageSource{Root: cli.Site, Pattern: cli.Check.Include}
	} else {
		deps.Pages = peekhttp.NewSitemapSource(nil)
	}

	if cli.Check.Baseline != "" {
		db := sqlite.NewDB(cli.Check.Baseline)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open baseline at %q: %w", cli.Check.Baseline, err)
		}
		defer db.Close()
		deps.Snapshots = sqlite.NewSnapshotService(db)
	}

	return kongCtx.Run(deps)
}

// fetcher picks the page source from flags: a site directory, a headless
// browser or plain HTTP.
func (m *Main) fetcher(cli *CLI, stderr io.Writer) (docpeek.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Site != "" {
		f, err := fs.NewFetcher(cli.Site, cli.Base)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	if cli.Render {
		f, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}

	return peekhttp.NewFetcher(peekhttp.WithTimeout(cli.Timeout)), nil
}
