package services

import (
	"encoding/xml"
	"strconv"

	"github.com/samber/lo"

	"rssdelivery/feed"
	"rssdelivery/models"
	"rssdelivery/transform"
)

// Dogatch delivers the dgf dialect for the TV-program portal. Items wrap
// their body in a numbered page element, withdrawal is a boolean
// dgf:deleteFlag, and images are rewritten into the portal's
// innerpic/player markup.
type Dogatch struct {
	feed.Base
}

func NewDogatch() *Dogatch {
	return &Dogatch{Base: feed.Base{ID: "dogatch", DisplayLabel: "TV Dogatch"}}
}

// Caption conversion runs before the figure rewrite so the caption span
// ends up inside the innerpic wrapper.
var dogatchRules = transform.RuleSet{
	Rules: []transform.Rule{
		transform.ReplaceRule(`(?is)<a class="image-anchor[^>]*>.*?</a>`, ``),
		transform.ReplaceRule(`(?is)<span class="c-thumb__icon[^>]*>.*?</span>`, ``),
		transform.ReplaceRule(`(?is)<span class="image-wrapper[^>]*>(.*?)</span>`, `$1`),
		transform.ReplaceRule(`(?is)<figcaption>(.*?)</figcaption>`, `<span class="caption">$1</span>`),
		transform.ReplaceRule(`(?is)<figure class="wp-block-image[^>]*>(.*?)</figure>`, `<div class="innerpic">$1</div>`),
		transform.ReplaceRule(`(?is)<figure class="wp-block-embed is-type-video is-provider-youtube[^>]*><div [^>]*>(.*?)</div></figure>`, `<div class="player">$1</div>`),
	},
}

const dogatchCategoryLimit = 4

type dogatchDoc struct {
	XMLName xml.Name       `xml:"rss"`
	Version string         `xml:"version,attr"`
	DGF     string         `xml:"xmlns:dgf,attr"`
	Content string         `xml:"xmlns:content,attr"`
	DCTerms string         `xml:"xmlns:dcterms,attr"`
	Channel dogatchChannel `xml:"channel"`
}

type dogatchChannel struct {
	Language    string        `xml:"language"`
	Title       string        `xml:"title"`
	ShortTitle  string        `xml:"dgf:shortTitle"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	LastBuild   string        `xml:"lastBuildDate"`
	TrackingID  string        `xml:"gaTrackingId,omitempty"`
	Items       []interface{} `xml:"item"`
}

type dogatchPage struct {
	No          string          `xml:"no,attr"`
	Description feed.CDATA      `xml:"description"`
	Encoded     feed.CDATA      `xml:"content:encoded"`
	Enclosure   *feed.Enclosure `xml:"enclosure"`
}

type dogatchItem struct {
	GUID       string      `xml:"guid"`
	Title      feed.CDATA  `xml:"title"`
	Link       string      `xml:"link"`
	PubDate    string      `xml:"pubDate"`
	LastBuild  string      `xml:"lastBuildDate"`
	DeleteFlag string      `xml:"dgf:deleteFlag,omitempty"`
	Categories []string    `xml:"category"`
	Page       dogatchPage `xml:"dgf:page"`
}

func (d *dogatchDoc) AddItem(item interface{}) {
	d.Channel.Items = append(d.Channel.Items, item)
}

func (s *Dogatch) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &dogatchDoc{
		Version: "2.0",
		DGF:     "http://dogatch.jp/media/dgf",
		Content: "http://purl.org/rss/1.0/modules/content/",
		DCTerms: "http://purl.org/dc/terms/",
		Channel: dogatchChannel{
			Language:    rc.Site.Language,
			Title:       rc.Site.Title,
			ShortTitle:  rc.Site.Title,
			Link:        rc.Site.URL,
			Description: rc.Site.Description,
			LastBuild:   rc.NowDate(),
			TrackingID:  rc.Site.TrackingID,
		},
	}
}

func (s *Dogatch) Item(rc *feed.RenderContext, a models.Article) interface{} {
	content := transform.Transform(a.Body, dogatchRules)

	deleteFlag := ""
	if a.Status != models.StatusPublished {
		deleteFlag = "true"
	}

	return dogatchItem{
		GUID:       strconv.FormatInt(a.ID, 10),
		Title:      feed.CDATA{Text: a.Title},
		Link:       a.Permalink,
		PubDate:    rc.LocalTime(a.PublishedAt),
		LastBuild:  rc.LocalTime(a.ModifiedAt),
		DeleteFlag: deleteFlag,
		Categories: lo.Slice(a.Categories, 0, dogatchCategoryLimit),
		Page: dogatchPage{
			No:          "1",
			Description: feed.CDATA{Text: excerpt(content)},
			Encoded:     feed.CDATA{Text: content},
			Enclosure:   rc.ThumbnailEnclosure(a),
		},
	}
}
