package services

import (
	"encoding/xml"

	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// GoogleNews delivers a standard RSS 2.0 feed with the syndication module's
// update hints. Only published articles are selected; there is no
// withdrawal signal in this dialect.
type GoogleNews struct {
	feed.Base
}

func NewGoogleNews() *GoogleNews {
	return &GoogleNews{Base: feed.Base{ID: "googlenews", DisplayLabel: "Google News"}}
}

var googleNewsRules = transform.RuleSet{}

func (s *GoogleNews) Criteria() articles.Criteria {
	c := s.Base.Criteria()
	c.Statuses = []models.Status{models.StatusPublished}
	return c
}

type googleNewsDoc struct {
	XMLName xml.Name          `xml:"rss"`
	Version string            `xml:"version,attr"`
	Content string            `xml:"xmlns:content,attr"`
	WFW     string            `xml:"xmlns:wfw,attr"`
	DC      string            `xml:"xmlns:dc,attr"`
	Atom    string            `xml:"xmlns:atom,attr"`
	SY      string            `xml:"xmlns:sy,attr"`
	Slash   string            `xml:"xmlns:slash,attr"`
	Channel googleNewsChannel `xml:"channel"`
}

type googleNewsChannel struct {
	Title           string        `xml:"title"`
	Link            string        `xml:"link"`
	Description     string        `xml:"description"`
	LastBuild       string        `xml:"lastBuildDate"`
	Language        string        `xml:"language"`
	UpdatePeriod    string        `xml:"sy:updatePeriod"`
	UpdateFrequency string        `xml:"sy:updateFrequency"`
	Items           []interface{} `xml:"item"`
}

type googleNewsItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	PubDate     string     `xml:"pubDate"`
	Creator     feed.CDATA `xml:"dc:creator"`
	Categories  []string   `xml:"category"`
	GUID        guid       `xml:"guid"`
	Description feed.CDATA `xml:"description"`
	Encoded     feed.CDATA `xml:"content:encoded"`
}

func (d *googleNewsDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *GoogleNews) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &googleNewsDoc{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		WFW:     "http://wellformedweb.org/CommentAPI/",
		DC:      "http://purl.org/dc/elements/1.1/",
		Atom:    "http://www.w3.org/2005/Atom",
		SY:      "http://purl.org/rss/1.0/modules/syndication/",
		Slash:   "http://purl.org/rss/1.0/modules/slash/",
		Channel: googleNewsChannel{
			Title:           rc.Site.Title,
			Link:            rc.Site.URL,
			Description:     rc.Site.Description,
			LastBuild:       rc.LastBuildDate(batch),
			Language:        rc.Site.Language,
			UpdatePeriod:    "hourly",
			UpdateFrequency: "1",
		},
	}
}

func (s *GoogleNews) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, googleNewsRules)
	return googleNewsItem{
		Title:       a.Title,
		Link:        a.Permalink,
		PubDate:     rc.LocalTime(a.PublishedAt),
		Creator:     feed.CDATA{Text: a.Author},
		Categories:  a.Categories,
		GUID:        guid{IsPermaLink: "false", Value: a.GUID},
		Description: feed.CDATA{Text: excerpt(content)},
		Encoded:     feed.CDATA{Text: content},
	}
}
