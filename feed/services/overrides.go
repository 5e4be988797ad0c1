package services

import (
	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/models"
)

// SiteMain replaces the stock main dialect for this site. Same document
// shape, site-branded label, and it sorts to the top of administrative
// listings.
type SiteMain struct {
	*Main
}

func NewSiteMain() *SiteMain {
	s := &SiteMain{Main: NewMain()}
	s.Prio = 100
	s.DisplayLabel = "Site RSS"
	return s
}

// SiteGunosy replaces the stock gunosy dialect for this site: withdrawn
// articles are dropped from selection instead of flagged, the channel
// carries the site copyright and the leading site category is mapped onto
// the partner's fixed category vocabulary.
type SiteGunosy struct {
	*Gunosy
}

func NewSiteGunosy() *SiteGunosy {
	s := &SiteGunosy{Gunosy: NewGunosy()}
	s.Prio = 65
	return s
}

func (s *SiteGunosy) Criteria() articles.Criteria {
	c := articles.DefaultCriteria(s.Identifier(), s.PageSize())
	c.Statuses = []models.Status{models.StatusPublished}
	return c
}

// gunosyCategories maps the site's own category names onto the partner's
// accepted set. Unlisted categories are left off the item.
var gunosyCategories = map[string]string{
	"エンタメ":    "entertainment",
	"芸能":      "entertainment",
	"テレビ":     "entertainment",
	"映画":      "movie",
	"アニメ":     "anime",
	"音楽":      "music",
	"スポーツ":    "sports",
	"グルメ":     "gourmet",
	"ライフスタイル": "life",
}

func (s *SiteGunosy) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	doc := s.Gunosy.Channel(rc, batch).(*gunosyDoc)
	doc.Channel.Copyright = rc.Site.Copyright
	return doc
}

func (s *SiteGunosy) Item(rc *feed.RenderContext, a models.Article) interface{} {
	item := s.Gunosy.Item(rc, a).(gunosyItem)
	for _, c := range a.Categories {
		if mapped, ok := gunosyCategories[c]; ok {
			item.Category = mapped
			break
		}
	}
	return item
}
