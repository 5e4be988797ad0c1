package services

import (
	"encoding/xml"
	"strconv"

	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// YahooTimeLine delivers the yj timeline dialect. It serves a deeper page
// than the other dialects, reports a withdrawn article by blanking its
// pubDate and requires the enclosure byte length.
type YahooTimeLine struct {
	feed.Base
}

func NewYahooTimeLine() *YahooTimeLine {
	return &YahooTimeLine{Base: feed.Base{
		ID:           "yahoo-tl",
		DisplayLabel: "Yahoo! Timeline",
		PerPage:      30,
	}}
}

// Image furniture is stripped or unwrapped in source order; the caption
// survives as a cite element.
var yahooRules = transform.RuleSet{
	Rules: []transform.Rule{
		transform.ReplaceRule(`(?is)<a class="image-anchor[^>]*>.*?</a>`, ``),
		transform.ReplaceRule(`(?is)<span class="c-thumb__icon[^>]*>.*?</span>`, ``),
		transform.ReplaceRule(`(?is)<span class="image-wrapper[^>]*>(.*?)</span>`, `$1`),
		transform.ReplaceRule(`(?is)<figcaption>(.*?)</figcaption>`, `<cite>$1</cite>`),
		transform.ReplaceRule(`(?is)<figure class="wp-block-image[^>]*>(.*?)</figure>`, `$1`),
		transform.ReplaceRule(`(?is)<figure class="wp-block-embed[^>]*>(.*?)</figure>`, `$1`),
		transform.ReplaceRule(`(?is)<div class="wp-block-embed__wrapper[^>]*>(.*?)</div>`, `$1`),
	},
}

type yahooDoc struct {
	XMLName   xml.Name     `xml:"rss"`
	Version   string       `xml:"version,attr"`
	YJ        string       `xml:"xmlns:yj,attr"`
	YJVersion string       `xml:"yj:version,attr"`
	Channel   yahooChannel `xml:"channel"`
}

type yahooChannel struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	LastBuild   string        `xml:"lastBuildDate"`
	Language    string        `xml:"language"`
	Items       []interface{} `xml:"item"`
}

type yahooItem struct {
	Title       feed.CDATA      `xml:"title"`
	Link        string          `xml:"link"`
	Category    string          `xml:"category"`
	GUID        guid            `xml:"guid"`
	PubDate     string          `xml:"pubDate"`
	Description feed.CDATA      `xml:"description"`
	Enclosure   *feed.Enclosure `xml:"enclosure"`
}

func (d *yahooDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *YahooTimeLine) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &yahooDoc{
		Version:   "2.0",
		YJ:        "http://cmspf.yahoo.co.jp/rss",
		YJVersion: "1.0",
		Channel: yahooChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			LastBuild:   rc.NowDate(),
			Language:    rc.Site.Language,
		},
	}
}

func (s *YahooTimeLine) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, yahooRules)

	// A withdrawn article keeps its slot but carries no date, which is how
	// the partner detects the takedown.
	pubDate := ""
	if a.Status == models.StatusPublished {
		latest := a.PublishedAt
		if a.ModifiedAt.After(latest) {
			latest = a.ModifiedAt
		}
		pubDate = rc.LocalTime(latest)
	}

	return yahooItem{
		Title:       feed.CDATA{Text: a.Title},
		Link:        a.Permalink,
		Category:    "trend",
		GUID:        guid{Value: strconv.FormatInt(a.ID, 10)},
		PubDate:     pubDate,
		Description: feed.CDATA{Text: content},
		Enclosure:   rc.ThumbnailEnclosureWithLength(a),
	}
}
