package mock

import (
	"context"

	"github.com/minjae-dev/campcrawl"
)

var _ campcrawl.CampaignService = (*CampaignService)(nil)

// CampaignService is a mock implementation of campcrawl.CampaignService.
type CampaignService struct {
	SaveSnapshotFn   func(ctx context.Context, site campcrawl.Site, html string, campaigns []*campcrawl.Campaign) (*campcrawl.Snapshot, error)
	LatestSnapshotFn func(ctx context.Context, site campcrawl.Site) (*campcrawl.Snapshot, []*campcrawl.Campaign, error)
	FindCampaignsFn  func(ctx context.Context, filter campcrawl.CampaignFilter) ([]*campcrawl.Campaign, error)
}

func (s *CampaignService) SaveSnapshot(ctx context.Context, site campcrawl.Site, html string, campaigns []*campcrawl.Campaign) (*campcrawl.Snapshot, error) {
	return s.SaveSnapshotFn(ctx, site, html, campaigns)
}

func (s *CampaignService) LatestSnapshot(ctx context.Context, site campcrawl.Site) (*campcrawl.Snapshot, []*campcrawl.Campaign, error) {
	return s.LatestSnapshotFn(ctx, site)
}

func (s *CampaignService) FindCampaigns(ctx context.Context, filter campcrawl.CampaignFilter) ([]*campcrawl.Campaign, error) {
	return s.FindCampaignsFn(ctx, filter)
}
