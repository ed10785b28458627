package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/minjae-dev/campcrawl"
	"github.com/minjae-dev/campcrawl/bloom"
	"github.com/minjae-dev/campcrawl/crawl"
	"github.com/minjae-dev/campcrawl/fs"
	"github.com/minjae-dev/campcrawl/goquery"
	"github.com/minjae-dev/campcrawl/resty"
	ccslog "github.com/minjae-dev/campcrawl/slog"
	"github.com/minjae-dev/campcrawl/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// Directory holding the batch output files.
	DataDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		DataDir: m.DataDir,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("campcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'campcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CAMPCRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Campaigns = sqlite.NewCampaignService(m.DB)
	deps.Batches = fs.NewBatchWriter(m.DataDir)
	deps.Extractor = ccslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
	deps.Crawls = &crawl.Service{
		NewFetcher: func(sessionCookie string) campcrawl.Fetcher {
			return ccslog.NewLoggingFetcher(resty.NewFetcher(sessionCookie), logger)
		},
		NewSeen: func() campcrawl.SeenFilter {
			return bloom.NewFilter(seenFilterCapacity, seenFilterFPRate)
		},
		Extractor: deps.Extractor,
		Limiter:   crawl.NewLimiter(requestsPerSecond),
		Logger:    logger,
	}

	return kongCtx.Run(deps)
}

// One listing-page request per second per storefront keeps the crawl under
// the site's tolerance.
const requestsPerSecond = 1.0

// Seen-filter sizing for a full-range crawl.
const (
	seenFilterCapacity = 100_000
	seenFilterFPRate   = 0.01
)

func defaultDBPath() string {
	if path := os.Getenv("CAMPCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "campcrawl.db"
	}
	dir := filepath.Join(home, ".campcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "campcrawl.db")
}

func defaultDataDir() string {
	if dir := os.Getenv("CAMPCRAWL_DATA"); dir != "" {
		return dir
	}
	return "static"
}
