package services

import (
	"encoding/xml"
	"strconv"

	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// GooVideo delivers video posts to the goo news portal. Selection differs
// from every other dialect: only the video post type qualifies, an external
// video URL must be present in metadata and ordering follows the last
// modification. Related reading is resolved once with gallery substitution;
// the smp elements repeat the first entries of that same list.
type GooVideo struct {
	feed.Base
}

func NewGooVideo() *GooVideo {
	return &GooVideo{Base: feed.Base{ID: "goovideo", DisplayLabel: "goo Video"}}
}

var goovideoRules = transform.RuleSet{StripAnchors: true}

const (
	goovideoRelatedLimit    = 5
	goovideoSmpRelatedLimit = 3
)

func (s *GooVideo) Criteria() articles.Criteria {
	c := articles.DefaultCriteria(s.Identifier(), s.PageSize())
	c.PostType = "video"
	c.OrderBy = articles.OrderByModified
	c.MetaExists = []string{models.MetaVideoURL}
	return c
}

type goovideoDoc struct {
	XMLName xml.Name        `xml:"rss"`
	Version string          `xml:"version,attr"`
	Content string          `xml:"xmlns:content,attr"`
	DC      string          `xml:"xmlns:dc,attr"`
	GooNews string          `xml:"xmlns:goonews,attr"`
	SMP     string          `xml:"xmlns:smp,attr"`
	Channel goovideoChannel `xml:"channel"`
}

type goovideoChannel struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	Language    string        `xml:"language"`
	PubDate     string        `xml:"pubDate"`
	Items       []interface{} `xml:"item"`
}

// goovideoEnclosure carries the portal's thumb attribute next to the
// standard enclosure attributes.
type goovideoEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr,omitempty"`
	Thumb  string `xml:"thumb,attr,omitempty"`
}

// One relation element per link, repeated rather than nested.
type goovideoRelation struct {
	Caption string `xml:"goonews:caption"`
	URL     string `xml:"goonews:url"`
}

type goovideoSMPRelation struct {
	Caption string `xml:"smp:caption"`
	URL     string `xml:"smp:url"`
}

type goovideoItem struct {
	GUID         guid                  `xml:"guid"`
	Delete       string                `xml:"goonews:delete,omitempty"`
	Title        feed.CDATA            `xml:"title"`
	Link         string                `xml:"link"`
	SMPLink      string                `xml:"smp:link"`
	Category     string                `xml:"category"`
	PubDate      string                `xml:"pubDate"`
	Modified     string                `xml:"goonews:modified"`
	Creator      string                `xml:"dc:creator"`
	Description  feed.CDATA            `xml:"description"`
	Enclosure    *goovideoEnclosure    `xml:"enclosure"`
	Relations    []goovideoRelation    `xml:"goonews:relation"`
	SMPRelations []goovideoSMPRelation `xml:"smp:relation"`
}

func (d *goovideoDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *GooVideo) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &goovideoDoc{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		DC:      "http://purl.org/dc/elements/1.1/",
		GooNews: "http://news.goo.ne.jp/rss/2.0/news/goonews/",
		SMP:     "http://news.goo.ne.jp/rss/2.0/news/smp/",
		Channel: goovideoChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			Language:    rc.Site.Language,
			PubDate:     rc.LastBuildDate(batch),
		},
	}
}

func (s *GooVideo) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, goovideoRules)

	deleted := ""
	if a.Status != models.StatusPublished {
		deleted = "1"
	}

	var enclosure *goovideoEnclosure
	if video := rc.VideoAsset(a); video != nil {
		enclosure = &goovideoEnclosure{URL: video.URL, Type: "video/mp4", Length: video.ByteSize}
		if thumb := rc.FeaturedAsset(a); thumb != nil {
			enclosure.Thumb = thumb.URL
		}
	}

	// The smp elements are a prefix of the goonews list, never a second
	// resolution.
	links := rc.GalleryRelatedLinks(a, goovideoRelatedLimit)
	var relations []goovideoRelation
	for _, l := range links {
		relations = append(relations, goovideoRelation{Caption: l.Text, URL: l.URL})
	}
	var smp []goovideoSMPRelation
	for i, l := range links {
		if i >= goovideoSmpRelatedLimit {
			break
		}
		smp = append(smp, goovideoSMPRelation{Caption: l.Text, URL: l.URL})
	}

	return goovideoItem{
		GUID:         guid{IsPermaLink: "false", Value: strconv.FormatInt(a.ID, 10)},
		Delete:       deleted,
		Title:        feed.CDATA{Text: a.Title},
		Link:         a.Permalink,
		SMPLink:      a.Permalink,
		Category:     "エンタメ",
		PubDate:      rc.LocalTime(a.PublishedAt),
		Modified:     rc.LocalTime(a.ModifiedAt),
		Creator:      rc.Site.Title,
		Description:  feed.CDATA{Text: content},
		Enclosure:    enclosure,
		Relations:    relations,
		SMPRelations: smp,
	}
}
