package models

import "time"

// Status is the publication status of an article as stored by the CMS.
type Status string

const (
	StatusPublished Status = "published"
	StatusTrashed   Status = "trashed"
	StatusDraft     Status = "draft"
)

// Meta keys written by the external admin interface. The core only reads them.
const (
	MetaSelectedChannels = "feed_selected"
	MetaVideoURL         = "video_url"
	MetaRelatedLinks     = "related_links"
	MetaRelatedTopics    = "related_topics"
)

// Article is the read-only view of a CMS article consumed by the feed engine.
// Timestamps are naive site-local times as persisted by the content store.
type Article struct {
	ID              int64             `json:"id"`
	PostType        string            `json:"postType"`
	Status          Status            `json:"status"`
	Title           string            `json:"title"`
	Body            string            `json:"body"`
	Author          string            `json:"author"`
	Permalink       string            `json:"permalink"`
	GUID            string            `json:"guid"`
	FeaturedImageID int64             `json:"featuredImageId,omitempty"`
	PublishedAt     time.Time         `json:"publishedAt"`
	ModifiedAt      time.Time         `json:"modifiedAt"`
	Categories      []string          `json:"categories"`
	Tags            []string          `json:"tags"`
	Meta            map[string]string `json:"meta,omitempty"`
}

// MetaValue returns the raw metadata value for key, or "".
func (a *Article) MetaValue(key string) string {
	if a.Meta == nil {
		return ""
	}
	return a.Meta[key]
}

// RelatedLink is one entry of an article's explicit related-link metadata.
type RelatedLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Gallery is an external gallery record associated to articles.
type Gallery struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}
