package services

import (
	"encoding/xml"
	"fmt"
	"strings"

	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// SmartNews delivers the snf dialect. Only published articles are selected;
// the partner expects the featured media repeated at the top of the body
// and a media:thumbnail element.
type SmartNews struct {
	feed.Base
}

func NewSmartNews() *SmartNews {
	return &SmartNews{Base: feed.Base{ID: "smartnews", DisplayLabel: "SmartNews"}}
}

var smartnewsRules = transform.RuleSet{}

func (s *SmartNews) Criteria() articles.Criteria {
	c := s.Base.Criteria()
	c.Statuses = []models.Status{models.StatusPublished}
	return c
}

type smartnewsDoc struct {
	XMLName xml.Name         `xml:"rss"`
	Version string           `xml:"version,attr"`
	Content string           `xml:"xmlns:content,attr"`
	DC      string           `xml:"xmlns:dc,attr"`
	Media   string           `xml:"xmlns:media,attr"`
	SNF     string           `xml:"xmlns:snf,attr"`
	Channel smartnewsChannel `xml:"channel"`
}

type smartnewsChannel struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	Language    string        `xml:"language"`
	Items       []interface{} `xml:"item"`
}

type smartnewsThumbnail struct {
	URL string `xml:"url,attr"`
}

type smartnewsItem struct {
	Title       string              `xml:"title"`
	Link        string              `xml:"link"`
	GUID        string              `xml:"guid"`
	Description feed.CDATA          `xml:"description"`
	PubDate     string              `xml:"pubDate"`
	Category    string              `xml:"category,omitempty"`
	Encoded     feed.CDATA          `xml:"content:encoded"`
	Creator     string              `xml:"dc:creator"`
	Thumbnail   *smartnewsThumbnail `xml:"media:thumbnail"`
	Status      string              `xml:"media:status"`
}

func (d *smartnewsDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *SmartNews) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &smartnewsDoc{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		DC:      "http://purl.org/dc/elements/1.1/",
		Media:   "http://search.yahoo.com/mrss/",
		SNF:     "http://www.smartnews.be/snf",
		Channel: smartnewsChannel{
			Title:       rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			PubDate:     rc.NowDate(),
			Language:    rc.Site.Language,
		},
	}
}

func (s *SmartNews) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, smartnewsRules)

	var thumbnail *smartnewsThumbnail
	if asset := rc.FeaturedAsset(a); asset != nil {
		thumbnail = &smartnewsThumbnail{URL: asset.URL}
		// The partner wants the lead media visible at the top of the body
		// the way it appears on the article page.
		content = fmt.Sprintf(
			`<figure class="wp-block-image"><img src="%s" alt="" class="c-thumb__media"></figure>%s`,
			asset.URL, content,
		)
	}

	return smartnewsItem{
		Title:       a.Title,
		Link:        a.Permalink,
		GUID:        a.Permalink,
		Description: feed.CDATA{Text: content},
		PubDate:     rc.LocalTime(a.PublishedAt),
		Category:    strings.Join(a.Categories, ","),
		Encoded:     feed.CDATA{Text: content},
		Creator:     a.Author,
		Thumbnail:   thumbnail,
		Status:      deliveryStatus(a),
	}
}
