package articles

import (
	"context"
	"errors"

	"rssdelivery/models"
)

// ErrNotFound signals a missing gallery association.
var ErrNotFound = errors.New("articles: not found")

// Repository is the read-only article store the feed engine queries.
// Implementations must return articles in criteria order; the rendered
// document preserves that order.
type Repository interface {
	// Query runs a selection query and returns at most criteria.Limit
	// articles.
	Query(ctx context.Context, c Criteria) ([]models.Article, error)

	// RelatedByTags returns up to limit published articles sharing at
	// least one of the given tags, most recent first, excluding the given
	// IDs.
	RelatedByTags(ctx context.Context, tags []string, limit int, exclude []int64) ([]models.Article, error)

	// Latest returns up to limit published articles, most recent first,
	// excluding the given IDs.
	Latest(ctx context.Context, limit int, exclude []int64) ([]models.Article, error)

	// GalleryFor resolves the gallery associated with an article, or
	// ErrNotFound.
	GalleryFor(ctx context.Context, articleID int64) (*models.Gallery, error)
}
