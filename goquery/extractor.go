// Package goquery extracts campaign records from storefront listing pages
// using CSS selectors.
package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/minjae-dev/campcrawl"
)

// itemSelector locates one campaign item block per match, in document order.
const itemSelector = "div.review_item"

// timeAttrLayout is the format of the data-time structural attribute.
const timeAttrLayout = "2006-01-02 15:04:05"

// keywordLen is the keyword hint length in runes. The listing truncates
// titles to 15 characters for search-keyword suggestions.
const keywordLen = 15

var (
	priceRe    = regexp.MustCompile(`[\d,]+원`)
	fractionRe = regexp.MustCompile(`(\d+\s*/\s*\d+)\s*명`)
)

// Ensure Extractor implements campcrawl.Extractor at compile time.
var _ campcrawl.Extractor = (*Extractor)(nil)

// Extractor extracts campaign records from listing-page HTML.
// It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the document and returns one record per well-formed
// campaign item block, in document order. Items missing required markup or
// carrying a malformed timestamp are skipped; a document with zero item
// blocks yields an empty slice, not an error.
func (e *Extractor) Extract(html string, site campcrawl.Site) ([]*campcrawl.Campaign, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(html) == "" {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	campaigns := []*campcrawl.Campaign{}
	doc.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		c, err := extractItem(item, site)
		if err != nil {
			// One malformed item never aborts the batch.
			return
		}
		campaigns = append(campaigns, c)
	})

	return campaigns, nil
}

// extractItem converts one item block into a record. Any returned error
// means the item lacks required markup; the caller drops it.
func extractItem(item *goquery.Selection, site campcrawl.Site) (*campcrawl.Campaign, error) {
	csq := strings.TrimSpace(item.AttrOr("data-csq", ""))
	if csq == "" {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "item missing data-csq")
	}

	rawTime, ok := item.Attr("data-time")
	if !ok {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "item missing data-time")
	}
	ts, err := time.Parse(timeAttrLayout, strings.TrimSpace(rawTime))
	if err != nil {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "invalid data-time %q", rawTime)
	}

	typeBox := item.Find(".type_box")
	if typeBox.Length() == 0 {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "item missing type badge")
	}

	priceBox := item.Find("span.h6")
	if priceBox.Length() == 0 {
		return nil, campcrawl.Errorf(campcrawl.EINVALID, "item missing price element")
	}

	title := firstText(item, "p span.ctooltip", "p")
	point := firstText(item, ".join_point_box", ".point_box")
	point = stripSpaces(strings.TrimLeft(point, "+ "))

	return &campcrawl.Campaign{
		CSQ:               csq,
		Title:             title,
		Review:            reviewCounts(item.Text()),
		Mall:              strings.TrimSpace(item.Find(".store span.text-black").First().Text()),
		Price:             priceRe.FindString(joinedText(priceBox.First())),
		Point:             point,
		Type:              strings.TrimSpace(typeBox.First().Text()),
		ParticipationTime: ts.Format(campcrawl.ParticipationTimeLayout),
		URL:               site.BaseURL() + csq,
		Keyword:           truncateRunes(title, keywordLen),
	}, nil
}

// firstText tries selectors in priority order and returns the first
// non-empty trimmed text. Returns "" if none match.
func firstText(item *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		sel := item.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// reviewCounts recovers the "today" and "total" participant-count fractions
// from the item's full text. Matching the whole text instead of positional
// review sub-blocks survives markup drift in the listing's grid columns.
func reviewCounts(text string) string {
	matches := fractionRe.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return ""
	}

	review := "오늘 " + stripSpaces(matches[0][1])
	if len(matches) > 1 {
		review += ", 전체 " + stripSpaces(matches[1][1])
	}
	return review
}

// joinedText returns the selection's text with runs of whitespace collapsed
// to single spaces, so the price pattern sees sub-node text space-joined.
func joinedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// truncateRunes shortens s to at most n runes. Titles are mostly Hangul, so
// byte-based truncation would split characters.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
