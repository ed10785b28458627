package campcrawl

import (
	"context"
	"time"
)

// Site identifies which of the served storefronts a document belongs to.
// It is used to build absolute detail URLs and to select the batch output
// destination.
type Site string

// Known storefront tenants.
const (
	SiteDBG  Site = "dbg"
	SiteGTOG Site = "gtog"
)

// Sites returns the known storefront tenants.
func Sites() []Site {
	return []Site{SiteDBG, SiteGTOG}
}

// Validate returns an error if the site is not a known tenant.
func (s Site) Validate() error {
	switch s {
	case SiteDBG, SiteGTOG:
		return nil
	}
	return Errorf(EINVALID, "unknown site %q", string(s))
}

// BaseURL returns the campaign detail URL prefix for the site. Appending a
// campaign's csq yields the absolute detail link.
func (s Site) BaseURL() string {
	return "https://" + string(s) + ".shopreview.co.kr/usr/campaign_detail?csq="
}

// SnapshotFilename returns the batch output file name for the site.
// The dbg tenant keeps the historical unsuffixed name.
func (s Site) SnapshotFilename() string {
	if s == SiteDBG {
		return "public_campaigns.json"
	}
	return "public_campaigns_" + string(s) + ".json"
}

// Campaign represents one extracted campaign listing entry. It is a flat,
// self-contained value: constructed once by the extraction engine, never
// mutated, and serializable as the key-value map consumed by the client.
type Campaign struct {
	CSQ               string `json:"csq"`
	Title             string `json:"title"`
	Review            string `json:"review"`
	Mall              string `json:"mall"`
	Price             string `json:"price"`
	Point             string `json:"point"`
	Type              string `json:"type"`
	ParticipationTime string `json:"participation_time"`
	URL               string `json:"url"`
	Keyword           string `json:"keyword"`
}

// Validate returns an error if the campaign lacks required fields.
func (c *Campaign) Validate() error {
	if c.CSQ == "" {
		return Errorf(EINVALID, "campaign csq required")
	}
	if c.Type == "" {
		return Errorf(EINVALID, "campaign type required")
	}
	return nil
}

// ParticipationTimeLayout is the localized rendering of a campaign's
// participation timestamp (month, day, hour, minute with Korean unit words).
const ParticipationTimeLayout = "01월 02일 15시 04분"

// ParseParticipationTime parses a rendered participation time back into an
// absolute time in the given year. The layout carries no year, so callers
// supply one (the client assumes the current year).
func ParseParticipationTime(s string, year int) (time.Time, error) {
	t, err := time.Parse(ParticipationTimeLayout, s)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid participation time %q", s)
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// Snapshot records one processed listing document.
type Snapshot struct {
	ID          string    `json:"id"`
	Site        Site      `json:"site"`
	ContentHash string    `json:"contentHash"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CampaignService persists extraction results and serves them back to the
// read-side of the system.
type CampaignService interface {
	// SaveSnapshot stores the campaigns extracted from one document as a
	// new snapshot for the site. The source HTML is hashed for the
	// snapshot's content hash but is not retained.
	SaveSnapshot(ctx context.Context, site Site, html string, campaigns []*Campaign) (*Snapshot, error)

	// LatestSnapshot returns the most recent snapshot for the site and
	// its campaigns in extraction order.
	// Returns ENOTFOUND if the site has no snapshots.
	LatestSnapshot(ctx context.Context, site Site) (*Snapshot, []*Campaign, error)

	// FindCampaigns retrieves stored campaigns matching the filter.
	FindCampaigns(ctx context.Context, filter CampaignFilter) ([]*Campaign, error)
}

// BatchWriter publishes the full campaign set for a site to the static batch
// output consumed by clients.
type BatchWriter interface {
	WriteBatch(ctx context.Context, site Site, campaigns []*Campaign) error
}

// CampaignFilter represents a filter for FindCampaigns.
type CampaignFilter struct {
	Site *Site   `json:"site"`
	CSQ  *string `json:"csq"`
	Type *string `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
