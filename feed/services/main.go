package services

import (
	"encoding/xml"

	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// Main is the site's general RSS 2.0 feed. It is the one dialect aimed at
// ordinary readers rather than a partner ingest pipeline, so withdrawn
// articles never appear.
type Main struct {
	feed.Base
}

func NewMain() *Main {
	return &Main{Base: feed.Base{ID: "main", DisplayLabel: "RSS"}}
}

var mainRules = transform.RuleSet{}

func (s *Main) Criteria() articles.Criteria {
	c := articles.DefaultCriteria(s.Identifier(), s.PageSize())
	c.Statuses = []models.Status{models.StatusPublished}
	return c
}

type mainDoc struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Content string      `xml:"xmlns:content,attr"`
	WFW     string      `xml:"xmlns:wfw,attr"`
	DC      string      `xml:"xmlns:dc,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	SY      string      `xml:"xmlns:sy,attr"`
	Slash   string      `xml:"xmlns:slash,attr"`
	Channel mainChannel `xml:"channel"`
}

type mainChannel struct {
	Title       string             `xml:"title"`
	Link        string             `xml:"link"`
	Description string             `xml:"description"`
	Language    string             `xml:"language"`
	LastBuild   string             `xml:"lastBuildDate"`
	Image       *feed.ChannelImage `xml:"image"`
	Items       []interface{}      `xml:"item"`
}

type mainItem struct {
	Title       string          `xml:"title"`
	Link        string          `xml:"link"`
	GUID        guid            `xml:"guid"`
	PubDate     string          `xml:"pubDate"`
	Creator     feed.CDATA      `xml:"dc:creator"`
	Categories  []string        `xml:"category"`
	Description feed.CDATA      `xml:"description"`
	Encoded     feed.CDATA      `xml:"content:encoded"`
	Enclosure   *feed.Enclosure `xml:"enclosure"`
}

func (d *mainDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *Main) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	var image *feed.ChannelImage
	if rc.Site.LogoURL != "" {
		image = &feed.ChannelImage{URL: rc.Site.LogoURL, Title: rc.Site.Title, Link: rc.Site.URL}
	}
	return &mainDoc{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		WFW:     "http://wellformedweb.org/CommentAPI/",
		DC:      "http://purl.org/dc/elements/1.1/",
		Atom:    "http://www.w3.org/2005/Atom",
		SY:      "http://purl.org/rss/1.0/modules/syndication/",
		Slash:   "http://purl.org/rss/1.0/modules/slash/",
		Channel: mainChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			Language:    rc.Site.Language,
			LastBuild:   rc.LastBuildDate(batch),
			Image:       image,
		},
	}
}

func (s *Main) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, mainRules)

	return mainItem{
		Title:       a.Title,
		Link:        a.Permalink,
		GUID:        guid{IsPermaLink: "false", Value: a.GUID},
		PubDate:     rc.LocalTime(a.PublishedAt),
		Creator:     feed.CDATA{Text: a.Author},
		Categories:  a.Categories,
		Description: feed.CDATA{Text: excerpt(content)},
		Encoded:     feed.CDATA{Text: content},
		Enclosure:   rc.ThumbnailEnclosure(a),
	}
}
