package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/minjae-dev/campcrawl"
)

// Compile-time interface verification.
var _ campcrawl.CampaignService = (*CampaignService)(nil)

// CampaignService implements campcrawl.CampaignService using SQLite.
type CampaignService struct {
	db *DB
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(db *DB) *CampaignService {
	return &CampaignService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// SaveSnapshot stores the campaigns extracted from one document as a new
// snapshot for the site. Snapshot and records are written in one
// transaction so readers never observe a partial upload.
func (s *CampaignService) SaveSnapshot(ctx context.Context, site campcrawl.Site, html string, campaigns []*campcrawl.Campaign) (*campcrawl.Snapshot, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	for _, c := range campaigns {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	snap := &campcrawl.Snapshot{
		ID:          uuid.New().String(),
		Site:        site,
		ContentHash: hashContent(html),
		Count:       len(campaigns),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, site, content_hash, count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, string(snap.Site), snap.ContentHash, snap.Count, snap.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}

	for i, c := range campaigns {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO campaigns (snapshot_id, position, csq, title, review, mall, price, point, type, participation_time, url, keyword)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, snap.ID, i, c.CSQ, c.Title, c.Review, c.Mall, c.Price, c.Point, c.Type, c.ParticipationTime, c.URL, c.Keyword)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

// LatestSnapshot returns the most recent snapshot for the site and its
// campaigns in extraction order.
func (s *CampaignService) LatestSnapshot(ctx context.Context, site campcrawl.Site) (*campcrawl.Snapshot, []*campcrawl.Campaign, error) {
	if err := site.Validate(); err != nil {
		return nil, nil, err
	}

	var snap campcrawl.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, site, content_hash, count, created_at
		FROM snapshots
		WHERE site = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, string(site)).Scan(&snap.ID, &snap.Site, &snap.ContentHash, &snap.Count, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil, campcrawl.Errorf(campcrawl.ENOTFOUND, "no snapshot for site %q", string(site))
	}
	if err != nil {
		return nil, nil, err
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT csq, title, review, mall, price, point, type, participation_time, url, keyword
		FROM campaigns
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	campaigns, err := scanCampaigns(rows)
	if err != nil {
		return nil, nil, err
	}
	return &snap, campaigns, nil
}

// FindCampaigns retrieves stored campaigns matching the filter, newest
// snapshots first and in extraction order within a snapshot.
func (s *CampaignService) FindCampaigns(ctx context.Context, filter campcrawl.CampaignFilter) ([]*campcrawl.Campaign, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT c.csq, c.title, c.review, c.mall, c.price, c.point, c.type, c.participation_time, c.url, c.keyword
		FROM campaigns c
		JOIN snapshots s ON s.id = c.snapshot_id
		WHERE 1=1`)

	if filter.Site != nil {
		query.WriteString(" AND s.site = ?")
		args = append(args, string(*filter.Site))
	}
	if filter.CSQ != nil {
		query.WriteString(" AND c.csq = ?")
		args = append(args, *filter.CSQ)
	}
	if filter.Type != nil {
		query.WriteString(" AND c.type = ?")
		args = append(args, *filter.Type)
	}

	query.WriteString(" ORDER BY s.created_at DESC, s.rowid DESC, c.position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCampaigns(rows)
}

// appendPagination appends LIMIT and OFFSET clauses for the set filter
// fields. SQLite only accepts OFFSET after a LIMIT clause, so an offset-only
// filter gets the "no limit" sentinel.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

func scanCampaigns(rows *sql.Rows) ([]*campcrawl.Campaign, error) {
	var campaigns []*campcrawl.Campaign
	for rows.Next() {
		var c campcrawl.Campaign
		if err := rows.Scan(&c.CSQ, &c.Title, &c.Review, &c.Mall, &c.Price, &c.Point,
			&c.Type, &c.ParticipationTime, &c.URL, &c.Keyword); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}
