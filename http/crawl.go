package http

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/minjae-dev/campcrawl"
)

// upgrader accepts any origin; the cross-origin policy matches the REST
// surface.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleCrawl streams a catalog crawl over a websocket. The client sends one
// JSON message with the crawl parameters; each surviving record is sent back
// as a flat JSON object, followed by {"event":"done"}. A fatal failure sends
// {"event":"error","data":<message>} in place of done. Records delivered
// before a failure stand.
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	site := campcrawl.Site(r.URL.Query().Get("site"))
	if site == "" {
		site = campcrawl.SiteDBG
	}
	if err := site.Validate(); err != nil {
		s.Error(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		return
	}
	defer conn.Close()

	var req campcrawl.CrawlRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(event{Event: "error", Data: "invalid crawl request"})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client sends nothing after the request; further reads only
	// detect disconnects, which abort the crawl.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	sink := &wsSink{conn: conn}
	if err := s.CrawlService.Crawl(ctx, site, req, sink); err != nil {
		s.Logger.Error("crawl failed", "site", string(site), "err", err)
		conn.WriteJSON(event{Event: "error", Data: campcrawl.ErrorMessage(err)})
		return
	}
}

type event struct {
	Event string `json:"event"`
	Data  string `json:"data,omitempty"`
}

// wsSink delivers crawl records over a websocket connection.
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Send(c *campcrawl.Campaign) error {
	return s.conn.WriteJSON(c)
}

func (s *wsSink) Done() error {
	return s.conn.WriteJSON(event{Event: "done"})
}
