package main

import (
	"fmt"
	"os/signal"
	"syscall"

	cchttp "github.com/minjae-dev/campcrawl/http"
)

// Run executes the serve command. It blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := cchttp.NewServer()
	s.Addr = c.Addr
	s.StaticDir = deps.DataDir
	s.Extractor = deps.Extractor
	s.CampaignService = deps.Campaigns
	s.BatchWriter = deps.Batches
	s.CrawlService = deps.Crawls
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	defer s.Close()

	fmt.Fprintf(deps.Stdout, "listening on http://localhost:%d\n", s.Port())

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(deps.Stdout, "shutting down")
	return nil
}
