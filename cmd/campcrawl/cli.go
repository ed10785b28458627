package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/minjae-dev/campcrawl"
	"github.com/minjae-dev/campcrawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB        *sqlite.DB
	Campaigns campcrawl.CampaignService
	Batches   campcrawl.BatchWriter
	Extractor campcrawl.Extractor
	Crawls    campcrawl.CrawlService

	// Directory holding the batch output files.
	DataDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Start the upload, query, and crawl-streaming server"`
	Parse ParseCmd `cmd:"" help:"Extract campaigns from a saved listing page"`
	Crawl CrawlCmd `cmd:"" help:"Crawl the catalog and print matching campaigns"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8000" env:"CAMPCRAWL_ADDR" help:"Bind address"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"Saved listing page"`
	Site string `default:"dbg" help:"Storefront tenant (dbg or gtog)"`
	Save bool   `help:"Persist the result as a snapshot and rewrite the batch file"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Site            string   `default:"dbg" help:"Storefront tenant (dbg or gtog)"`
	Cookie          string   `required:"" env:"CAMPCRAWL_COOKIE" help:"Session cookie for listing-page fetches"`
	Days            string   `required:"" help:"Comma-separated weekday names, e.g. 월,화"`
	ExcludeKeywords string   `help:"Comma-separated title keywords to drop"`
	FullRange       bool     `help:"Crawl the whole catalog"`
	StartID         int      `help:"First campaign ID of the range"`
	EndID           int      `help:"Last campaign ID of the range"`
	ExcludeIDs      []string `help:"Campaign IDs to drop"`
	JSON            bool     `help:"Print records as JSON lines instead of text rows"`
}
