package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/minjae-dev/campcrawl"
)

// maxUploadSize bounds uploaded listing documents.
const maxUploadSize = 32 << 20

// handleUploadHTML accepts a saved listing page as a multipart form with a
// "file" part and a "site" field, runs the extraction engine over it,
// persists the result as a new snapshot, and rewrites the site's batch file.
func (s *Server) handleUploadHTML(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.Error(w, r, campcrawl.Errorf(campcrawl.EINVALID, "invalid multipart form"))
		return
	}

	site := campcrawl.Site(r.FormValue("site"))
	if err := site.Validate(); err != nil {
		s.Error(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.Error(w, r, campcrawl.Errorf(campcrawl.EINVALID, "file is required"))
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	html := string(buf)

	campaigns, err := s.Extractor.Extract(html, site)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	snapshot, err := s.CampaignService.SaveSnapshot(r.Context(), site, html, campaigns)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if err := s.BatchWriter.WriteBatch(r.Context(), site, campaigns); err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"count":  snapshot.Count,
	})
}

// handleCampaignList serves stored campaigns for a site. Without further
// parameters it returns the latest snapshot's records in extraction order;
// csq, type, limit, and offset narrow the result across snapshots.
func (s *Server) handleCampaignList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	site := campcrawl.Site(q.Get("site"))
	if err := site.Validate(); err != nil {
		s.Error(w, r, err)
		return
	}

	if q.Get("csq") == "" && q.Get("type") == "" && q.Get("limit") == "" && q.Get("offset") == "" {
		_, campaigns, err := s.CampaignService.LatestSnapshot(r.Context(), site)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(campaigns))
		return
	}

	filter := campcrawl.CampaignFilter{Site: &site}
	if v := q.Get("csq"); v != "" {
		filter.CSQ = &v
	}
	if v := q.Get("type"); v != "" {
		filter.Type = &v
	}
	var err error
	if filter.Limit, err = queryInt(q.Get("limit")); err != nil {
		s.Error(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset")); err != nil {
		s.Error(w, r, err)
		return
	}

	campaigns, err := s.CampaignService.FindCampaigns(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(campaigns))
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil(campaigns []*campcrawl.Campaign) []*campcrawl.Campaign {
	if campaigns == nil {
		return []*campcrawl.Campaign{}
	}
	return campaigns
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, campcrawl.Errorf(campcrawl.EINVALID, "invalid numeric parameter %q", v)
	}
	return n, nil
}
