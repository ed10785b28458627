package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/minjae-dev/campcrawl"
	"github.com/minjae-dev/campcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements campcrawl.Extractor at compile time.
var _ campcrawl.Extractor = (*goquery.Extractor)(nil)

// item builds a campaign item block in the listing page's markup.
// Empty attrs/overrides drop the corresponding element or attribute.
type item struct {
	csq    string
	time   string
	typ    string
	title  string // ctooltip content; "" omits the span entirely
	point  string // join_point_box content
	price  string // span.h6 content; "-" omits the element entirely
	mall   string
	review string
}

func (it item) html() string {
	var b strings.Builder

	b.WriteString(`<div class="review_item"`)
	if it.csq != "" {
		fmt.Fprintf(&b, ` data-csq=%q`, it.csq)
	}
	if it.time != "" {
		fmt.Fprintf(&b, ` data-time=%q`, it.time)
	}
	b.WriteString(">\n")

	if it.typ != "" {
		fmt.Fprintf(&b, `<div class="type_box">%s</div>`+"\n", it.typ)
	}
	if it.title != "" {
		fmt.Fprintf(&b, `<p><span class="ctooltip">%s</span></p>`+"\n", it.title)
	}
	if it.point != "" {
		fmt.Fprintf(&b, `<div class="join_point_box">%s</div>`+"\n", it.point)
	}
	if it.price != "-" {
		fmt.Fprintf(&b, `<span class="h6">%s</span>`+"\n", it.price)
	}
	if it.mall != "" {
		fmt.Fprintf(&b, `<div class="store"><span class="text-black">%s</span></div>`+"\n", it.mall)
	}
	if it.review != "" {
		b.WriteString(it.review + "\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

func page(items ...item) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body>\n")
	for _, it := range items {
		b.WriteString(it.html())
	}
	b.WriteString("</body></html>")
	return b.String()
}

// wellFormed returns a fully populated item.
func wellFormed(csq string) item {
	return item{
		csq:   csq,
		time:  "2024-03-05 14:30:00",
		typ:   "포인트",
		title: "봄맞이 리뷰 이벤트",
		point: "+ 500",
		price: "12,000원",
		mall:  "스마트스토어",
		review: `<div class="row">
			<div class="col-6"><div>오늘 참여</div><div>3 / 10명</div></div>
			<div class="col-6"><div>전체 참여</div><div>45 / 100명</div></div>
		</div>`,
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("well-formed item yields one complete record", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(wellFormed("12345")), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)

		c := campaigns[0]
		assert.Equal(t, "12345", c.CSQ)
		assert.Equal(t, "봄맞이 리뷰 이벤트", c.Title)
		assert.Equal(t, "봄맞이 리뷰 이벤트", c.Keyword)
		assert.Equal(t, "포인트", c.Type)
		assert.Equal(t, "500", c.Point)
		assert.Equal(t, "12,000원", c.Price)
		assert.Equal(t, "스마트스토어", c.Mall)
		assert.Equal(t, "오늘 3/10, 전체 45/100", c.Review)
		assert.Equal(t, "03월 05일 14시 30분", c.ParticipationTime)
		assert.Equal(t, "https://dbg.shopreview.co.kr/usr/campaign_detail?csq=12345", c.URL)
	})

	t.Run("builds URL from the requesting site", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(wellFormed("777")), campcrawl.SiteGTOG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "https://gtog.shopreview.co.kr/usr/campaign_detail?csq=777", campaigns[0].URL)
	})

	t.Run("rejects an unknown site", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.Extract(page(wellFormed("1")), campcrawl.Site("nope"))

		assert.Equal(t, campcrawl.EINVALID, campcrawl.ErrorCode(err))
	})

	t.Run("empty document is a fatal parse error", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()

		_, err := e.Extract("", campcrawl.SiteDBG)
		assert.Equal(t, campcrawl.EINVALID, campcrawl.ErrorCode(err))

		_, err = e.Extract("   \n\t", campcrawl.SiteDBG)
		assert.Equal(t, campcrawl.EINVALID, campcrawl.ErrorCode(err))
	})

	t.Run("document with zero item blocks yields empty sequence", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		campaigns, err := e.Extract("<html><body><p>nothing here</p></body></html>", campcrawl.SiteDBG)

		require.NoError(t, err)
		assert.Empty(t, campaigns)
	})

	t.Run("malformed items are dropped without affecting neighbors", func(t *testing.T) {
		t.Parallel()

		noType := wellFormed("2")
		noType.typ = ""
		badTime := wellFormed("3")
		badTime.time = "not-a-timestamp"
		noTime := wellFormed("4")
		noTime.time = ""
		noCSQ := wellFormed("")
		noPrice := wellFormed("6")
		noPrice.price = "-"

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(
			page(wellFormed("1"), noType, badTime, noTime, noCSQ, noPrice, wellFormed("7")),
			campcrawl.SiteDBG,
		)

		require.NoError(t, err)
		require.Len(t, campaigns, 2)
		assert.Equal(t, "1", campaigns[0].CSQ)
		assert.Equal(t, "7", campaigns[1].CSQ)
	})

	t.Run("preserves document order of surviving items", func(t *testing.T) {
		t.Parallel()

		items := []item{wellFormed("10"), wellFormed("30"), wellFormed("20")}

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(items...), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 3)
		assert.Equal(t, "10", campaigns[0].CSQ)
		assert.Equal(t, "30", campaigns[1].CSQ)
		assert.Equal(t, "20", campaigns[2].CSQ)
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		html := page(wellFormed("99"))
		e := goquery.NewExtractor()

		first, err := e.Extract(html, campcrawl.SiteDBG)
		require.NoError(t, err)
		second, err := e.Extract(html, campcrawl.SiteDBG)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestExtractor_Extract_Title(t *testing.T) {
	t.Parallel()

	t.Run("keyword hint truncates long titles to 15 runes", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.title = "가나다라마바사아자차카타파하호오"

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "가나다라마바사아자차카타파하호", campaigns[0].Keyword)
		assert.Equal(t, 15, len([]rune(campaigns[0].Keyword)))
	})

	t.Run("falls back to the outer paragraph when the tooltip is absent", func(t *testing.T) {
		t.Parallel()

		html := page(item{
			csq:   "1",
			time:  "2024-03-05 14:30:00",
			typ:   "포인트",
			price: "5,000원",
		})
		// Inject a bare paragraph in place of the tooltip title.
		html = strings.Replace(html, `<div class="type_box">`, `<p>무선 이어폰</p><div class="type_box">`, 1)

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(html, campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "무선 이어폰", campaigns[0].Title)
	})

	t.Run("title absent entirely yields empty strings", func(t *testing.T) {
		t.Parallel()

		it := item{
			csq:   "1",
			time:  "2024-03-05 14:30:00",
			typ:   "포인트",
			price: "5,000원",
		}

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Empty(t, campaigns[0].Title)
		assert.Empty(t, campaigns[0].Keyword)
	})
}

func TestExtractor_Extract_Point(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a plus-prefixed thousands value", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.point = "+ 1,000"

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "1,000", campaigns[0].Point)
	})

	t.Run("falls back to the secondary points element", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.point = ""
		html := page(it)
		html = strings.Replace(html, `<span class="h6">`, `<div class="point_box">+ 300</div><span class="h6">`, 1)

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(html, campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "300", campaigns[0].Point)
	})

	t.Run("no points element yields empty string, not a failure", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.point = ""

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Empty(t, campaigns[0].Point)
	})
}

func TestExtractor_Extract_Price(t *testing.T) {
	t.Parallel()

	t.Run("recovers the currency token from mixed text", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.price = `정가 <del>15,000원</del> 판매가 12,000원`

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "15,000원", campaigns[0].Price)
	})

	t.Run("no currency token yields empty string", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.price = "가격 문의"

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Empty(t, campaigns[0].Price)
	})
}

func TestExtractor_Extract_Review(t *testing.T) {
	t.Parallel()

	t.Run("composes today and total fractions", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(wellFormed("1")), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "오늘 3/10, 전체 45/100", campaigns[0].Review)
	})

	t.Run("today-only when a single fraction is present", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.review = `<div>오늘 참여 3 / 10명</div>`

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Equal(t, "오늘 3/10", campaigns[0].Review)
	})

	t.Run("no fractions yields empty string", func(t *testing.T) {
		t.Parallel()

		it := wellFormed("1")
		it.review = ""

		e := goquery.NewExtractor()
		campaigns, err := e.Extract(page(it), campcrawl.SiteDBG)

		require.NoError(t, err)
		require.Len(t, campaigns, 1)
		assert.Empty(t, campaigns[0].Review)
	})
}

// TestExtractor_Extract_EndToEnd exercises the full two-item scenario: one
// complete item and one with no timestamp attribute.
func TestExtractor_Extract_EndToEnd(t *testing.T) {
	t.Parallel()

	itemA := item{
		csq:   "5001",
		time:  "2024-03-05 14:30:00",
		typ:   "포인트",
		title: "Spring Sale Review Event",
		point: "+500",
		price: "구매가 12,000원",
		mall:  "쿠팡",
		review: `<div class="row">
			<div class="col-6"><div>오늘</div><div>3 / 10명</div></div>
			<div class="col-6"><div>전체</div><div>45 / 100명</div></div>
		</div>`,
	}
	itemB := wellFormed("5002")
	itemB.time = ""

	e := goquery.NewExtractor()
	campaigns, err := e.Extract(page(itemA, itemB), campcrawl.SiteDBG)

	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	assert.Equal(t, "5001", c.CSQ)
	assert.Equal(t, "Spring Sale Review Event", c.Title)
	assert.Equal(t, "Spring Sale ", c.Keyword[:12])
	assert.Equal(t, "03월 05일 14시 30분", c.ParticipationTime)
	assert.Equal(t, "500", c.Point)
	assert.Equal(t, "12,000원", c.Price)
	assert.Equal(t, "오늘 3/10, 전체 45/100", c.Review)
}
