package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/minjae-dev/campcrawl"
)

// Run executes the parse command: it extracts campaigns from a saved listing
// page and prints them as a JSON array. With --save the result also becomes
// a new snapshot and the site's batch file is rewritten.
func (c *ParseCmd) Run(deps *Dependencies) error {
	site := campcrawl.Site(c.Site)
	if err := site.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
		return err
	}

	buf, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	html := string(buf)

	campaigns, err := deps.Extractor.Extract(html, site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
		return err
	}

	if c.Save {
		if _, err := deps.Campaigns.SaveSnapshot(deps.Ctx, site, html, campaigns); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
			return err
		}
		if err := deps.Batches.WriteBatch(deps.Ctx, site, campaigns); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", campcrawl.ErrorMessage(err))
			return err
		}
	}

	if campaigns == nil {
		campaigns = []*campcrawl.Campaign{}
	}
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(campaigns)
}
