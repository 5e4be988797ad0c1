package articles

import (
	"rssdelivery/models"
)

// OrderKey selects the column feed items are ordered by.
type OrderKey string

const (
	OrderByDate     OrderKey = "published_at"
	OrderByModified OrderKey = "modified_at"
)

// Criteria describes one feed service's selection query. Produced fresh per
// request and handed to the repository; never persisted.
type Criteria struct {
	PostType string
	Statuses []models.Status
	OrderBy  OrderKey
	// Channel is the service identifier the article's selected-channel-set
	// metadata must contain.
	Channel string
	// MetaExists lists metadata keys that must be present and non-empty,
	// e.g. an external video URL.
	MetaExists []string
	Limit      int
}

// DefaultCriteria is the selection most dialects share: regular posts,
// published and withdrawn, newest first.
func DefaultCriteria(channel string, limit int) Criteria {
	return Criteria{
		PostType: "post",
		Statuses: []models.Status{models.StatusPublished, models.StatusTrashed},
		OrderBy:  OrderByDate,
		Channel:  channel,
		Limit:    limit,
	}
}
