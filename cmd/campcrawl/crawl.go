package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/minjae-dev/campcrawl"
)

// Run executes the crawl command: it walks the catalog range with the given
// filters and prints one line per matching campaign as records arrive.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	site := campcrawl.Site(c.Site)
	if err := site.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
		return err
	}

	req := campcrawl.CrawlRequest{
		SessionCookie:   c.Cookie,
		SelectedDays:    c.Days,
		ExcludeKeywords: c.ExcludeKeywords,
		UseFullRange:    c.FullRange,
		StartID:         c.StartID,
		EndID:           c.EndID,
		ExcludeIDs:      c.ExcludeIDs,
	}

	sink := &lineSink{w: deps.Stdout, asJSON: c.JSON}
	if err := deps.Crawls.Crawl(deps.Ctx, site, req, sink); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "done: %d campaigns\n", sink.count)
	return nil
}

// lineSink prints records line by line as a crawl produces them.
type lineSink struct {
	w      io.Writer
	asJSON bool
	count  int
}

func (s *lineSink) Send(c *campcrawl.Campaign) error {
	s.count++
	if s.asJSON {
		enc := json.NewEncoder(s.w)
		enc.SetEscapeHTML(false)
		return enc.Encode(c)
	}
	_, err := fmt.Fprintln(s.w, campcrawl.FormatRow(c))
	return err
}

func (s *lineSink) Done() error {
	return nil
}
