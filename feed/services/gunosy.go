package services

import (
	"encoding/xml"
	"strings"

	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// Gunosy delivers the gnf dialect: the aggregator wants a fixed,
// un-redirectable guid, a comma-joined keyword list and an explicit item
// status element.
type Gunosy struct {
	feed.Base
}

func NewGunosy() *Gunosy {
	return &Gunosy{Base: feed.Base{ID: "gunosy", DisplayLabel: "Gunosy"}}
}

var gunosyRules = transform.RuleSet{}

type gunosyDoc struct {
	XMLName xml.Name      `xml:"rss"`
	Version string        `xml:"version,attr"`
	GNF     string        `xml:"xmlns:gnf,attr"`
	Content string        `xml:"xmlns:content,attr"`
	DC      string        `xml:"xmlns:dc,attr"`
	Media   string        `xml:"xmlns:media,attr"`
	Channel gunosyChannel `xml:"channel"`
}

type gunosyChannel struct {
	Title       string             `xml:"title"`
	Link        string             `xml:"link"`
	Description string             `xml:"description"`
	Image       *feed.ChannelImage `xml:"image"`
	WideImage   string             `xml:"gnf:wide_image_link,omitempty"`
	Language    string             `xml:"language"`
	LastBuild   string             `xml:"lastBuildDate"`
	Copyright   string             `xml:"copyright,omitempty"`
	Items       []interface{}      `xml:"item"`
}

type gunosyItem struct {
	Title       string          `xml:"title"`
	Link        string          `xml:"link"`
	GUID        guid            `xml:"guid"`
	Keyword     string          `xml:"gnf:keyword,omitempty"`
	Description feed.CDATA      `xml:"description"`
	Encoded     feed.CDATA      `xml:"content:encoded"`
	Status      string          `xml:"media:status"`
	PubDate     string          `xml:"pubDate"`
	Creator     string          `xml:"dc:creator"`
	Modified    string          `xml:"gnf:modified"`
	Category    string          `xml:"gnf:category,omitempty"`
	Enclosure   *feed.Enclosure `xml:"enclosure"`
}

func (d *gunosyDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *Gunosy) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	var image *feed.ChannelImage
	if rc.Site.LogoURL != "" {
		image = &feed.ChannelImage{URL: rc.Site.LogoURL, Title: rc.Site.Title, Link: rc.Site.URL}
	}
	return &gunosyDoc{
		Version: "2.0",
		GNF:     "http://assets.gunosy.com/media/gnf",
		Content: "http://purl.org/rss/1.0/modules/content/",
		DC:      "http://purl.org/dc/elements/1.1/",
		Media:   "http://search.yahoo.com/mrss/",
		Channel: gunosyChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			Image:       image,
			WideImage:   rc.Site.WideLogoURL,
			Language:    rc.Site.Language,
			LastBuild:   rc.LastBuildDate(batch),
		},
	}
}

func (s *Gunosy) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, gunosyRules)
	return gunosyItem{
		Title:       a.Title,
		Link:        a.Permalink,
		GUID:        guid{IsPermaLink: "false", Value: a.GUID},
		Keyword:     strings.Join(a.Tags, ","),
		Description: feed.CDATA{Text: content},
		Encoded:     feed.CDATA{Text: content},
		Status:      deliveryStatus(a),
		PubDate:     rc.LocalTime(a.PublishedAt),
		Creator:     a.Author,
		Modified:    rc.LocalTime(a.ModifiedAt),
		Enclosure:   rc.ThumbnailEnclosure(a),
	}
}
