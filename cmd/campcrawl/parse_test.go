package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/minjae-dev/campcrawl"
	main "github.com/minjae-dev/campcrawl/cmd/campcrawl"
	"github.com/minjae-dev/campcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(stdout, stderr io.Writer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeTempFile(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "campaign_list.html")
	require.NoError(tb, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints extracted campaigns as JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(html string, site campcrawl.Site) ([]*campcrawl.Campaign, error) {
				assert.Equal(t, "<html>listing</html>", html)
				assert.Equal(t, campcrawl.SiteDBG, site)
				return []*campcrawl.Campaign{
					{CSQ: "1", Type: "구매평", Title: "하나"},
					{CSQ: "2", Type: "방문", Title: "둘"},
				}, nil
			},
		}

		cmd := &main.ParseCmd{File: writeTempFile(t, "<html>listing</html>"), Site: "dbg"}
		require.NoError(t, cmd.Run(deps))

		var got []*campcrawl.Campaign
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].CSQ)
		assert.Equal(t, "2", got[1].CSQ)
		assert.Empty(t, stderr.String())
	})

	t.Run("persists the result with --save", func(t *testing.T) {
		t.Parallel()

		saved := false
		written := false
		stdout := &bytes.Buffer{}
		deps := testDeps(stdout, &bytes.Buffer{})
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(string, campcrawl.Site) ([]*campcrawl.Campaign, error) {
				return []*campcrawl.Campaign{{CSQ: "1", Type: "구매평"}}, nil
			},
		}
		deps.Campaigns = &mock.CampaignService{
			SaveSnapshotFn: func(_ context.Context, site campcrawl.Site, html string, campaigns []*campcrawl.Campaign) (*campcrawl.Snapshot, error) {
				saved = true
				return &campcrawl.Snapshot{ID: "snap", Site: site, Count: len(campaigns)}, nil
			},
		}
		deps.Batches = &mock.BatchWriter{
			WriteBatchFn: func(_ context.Context, site campcrawl.Site, campaigns []*campcrawl.Campaign) error {
				written = true
				return nil
			},
		}

		cmd := &main.ParseCmd{File: writeTempFile(t, "<html></html>"), Site: "gtog", Save: true}
		require.NoError(t, cmd.Run(deps))
		assert.True(t, saved)
		assert.True(t, written)
	})

	t.Run("rejects an unknown site", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := testDeps(&bytes.Buffer{}, stderr)

		cmd := &main.ParseCmd{File: writeTempFile(t, "<html></html>"), Site: "naver"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, campcrawl.EINVALID, campcrawl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		t.Parallel()

		deps := testDeps(&bytes.Buffer{}, &bytes.Buffer{})

		cmd := &main.ParseCmd{File: filepath.Join(t.TempDir(), "missing.html"), Site: "dbg"}
		require.Error(t, cmd.Run(deps))
	})
}
