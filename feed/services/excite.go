package services

import (
	"encoding/xml"

	"github.com/samber/lo"

	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// Excite delivers the portal's plain RSS 2.0 variant. Paragraph closes are
// doubled into explicit line breaks, the numeric <status> element reports
// whether the article was edited after publishing and every item sits in
// the fixed entertainment category.
type Excite struct {
	feed.Base
}

func NewExcite() *Excite {
	return &Excite{Base: feed.Base{ID: "excite", DisplayLabel: "Excite News"}}
}

var exciteRules = transform.RuleSet{
	Rules: []transform.Rule{
		transform.ParagraphBreakRule(),
	},
}

const exciteTagLimit = 5

type exciteDoc struct {
	XMLName xml.Name      `xml:"rss"`
	Version string        `xml:"version,attr"`
	Content string        `xml:"xmlns:content,attr"`
	Channel exciteChannel `xml:"channel"`
}

type exciteChannel struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Language    string        `xml:"language"`
	Description string        `xml:"description"`
	LastBuild   string        `xml:"lastBuildDate"`
	Items       []interface{} `xml:"item"`
}

type exciteItem struct {
	Title       feed.CDATA   `xml:"title"`
	Link        string       `xml:"link"`
	GUID        guid         `xml:"guid"`
	Description feed.CDATA   `xml:"description"`
	Encoded     feed.CDATA   `xml:"content:encoded"`
	PubDate     string       `xml:"pubDate"`
	LastPubDate string       `xml:"lastPubDate"`
	Status      string       `xml:"status"`
	Category    feed.CDATA   `xml:"category"`
	Tags        []feed.CDATA `xml:"tags"`
}

func (d *exciteDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *Excite) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &exciteDoc{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		Channel: exciteChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Language:    rc.Site.Language,
			Description: rc.Site.Description,
			LastBuild:   rc.LastBuildDate(batch),
		},
	}
}

func (s *Excite) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, exciteRules)

	// Status compares the two timestamps only, so a withdrawn article that
	// was never edited still reports 0.
	status := "1"
	if a.ModifiedAt.Equal(a.PublishedAt) {
		status = "0"
	}

	tags := lo.Map(lo.Slice(a.Tags, 0, exciteTagLimit), func(t string, _ int) feed.CDATA {
		return feed.CDATA{Text: t}
	})

	return exciteItem{
		Title:       feed.CDATA{Text: a.Title},
		Link:        a.Permalink,
		GUID:        guid{IsPermaLink: "false", Value: a.GUID},
		Description: feed.CDATA{Text: excerpt(content)},
		Encoded:     feed.CDATA{Text: content},
		PubDate:     rc.LocalTime(a.PublishedAt),
		LastPubDate: rc.LocalTime(a.ModifiedAt),
		Status:      status,
		Category:    feed.CDATA{Text: "entertainment"},
		Tags:        tags,
	}
}
