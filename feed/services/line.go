package services

import (
	"encoding/xml"

	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// Line delivers the oa dialect for the messaging app's news tab. The
// partner's parser rejects figcaption, so captions travel as a data-caption
// attribute on the image, and anchors are stripped from everything but
// whitelisted embeds. Withdrawal is a numeric status: 2 published, 0
// withdrawn.
type Line struct {
	feed.Base
}

func NewLine() *Line {
	return &Line{Base: feed.Base{ID: "line", DisplayLabel: "LINE"}}
}

var lineRules = transform.RuleSet{
	AllowedEmbeds: []string{"embed/twitter", "embed/youtube", "embed/instagram"},
	StripAnchors:  true,
	CaptionAttr:   true,
}

type lineDoc struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	OA      string      `xml:"xmlns:oa,attr"`
	Channel lineChannel `xml:"channel"`
}

type lineChannel struct {
	Title       feed.CDATA    `xml:"title"`
	Link        string        `xml:"link"`
	LastBuild   string        `xml:"lastBuildDate"`
	Description feed.CDATA    `xml:"description"`
	Language    string        `xml:"language"`
	Items       []interface{} `xml:"item"`
}

type lineItem struct {
	GUID        string          `xml:"guid"`
	Title       feed.CDATA      `xml:"title"`
	Link        string          `xml:"link"`
	Enclosure   *feed.Enclosure `xml:"enclosure"`
	Description feed.CDATA      `xml:"description"`
	PubDate     string          `xml:"pubDate"`
	LastPubDate string          `xml:"oa:lastPubDate"`
	PubStatus   string          `xml:"oa:pubStatus"`
}

func (d *lineDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *Line) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &lineDoc{
		Version: "2.0",
		OA:      "http://news.line.me/rss/1.0/oa",
		Channel: lineChannel{
			Title:       feed.CDATA{Text: rc.Site.Title},
			Link:        rc.Site.URL,
			LastBuild:   rc.LastBuildDate(batch),
			Description: feed.CDATA{Text: rc.Site.Description},
			Language:    rc.Site.Language,
		},
	}
}

func (s *Line) Item(rc *feed.RenderContext, a models.Article) interface{} {
	status := "0"
	if a.Status == models.StatusPublished {
		status = "2"
	}
	return lineItem{
		GUID:        a.Permalink,
		Title:       feed.CDATA{Text: a.Title},
		Link:        a.Permalink,
		Enclosure:   rc.ThumbnailEnclosure(a),
		Description: feed.CDATA{Text: transform.Transform(a.Body, lineRules)},
		PubDate:     rc.LocalTime(a.PublishedAt),
		LastPubDate: rc.LocalTime(a.ModifiedAt),
		PubStatus:   status,
	}
}
