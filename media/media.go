// Package media resolves article media assets (thumbnails, videos) via an
// external asset service. Feed rendering degrades gracefully when an asset
// is missing: the enclosure element is simply omitted.
package media

import (
	"context"
	"errors"
)

// Kind selects which asset of an article to resolve.
type Kind string

const (
	KindThumbnail Kind = "thumbnail"
	KindVideo     Kind = "video"
)

// ErrNotFound signals that the article has no asset of the requested kind.
var ErrNotFound = errors.New("media: asset not found")

// Asset describes one resolved media attachment.
type Asset struct {
	URL      string `json:"url"`
	MIMEType string `json:"mimeType"`
	ByteSize int64  `json:"byteSize"`
}

// Lookup resolves media assets for articles.
type Lookup interface {
	Lookup(ctx context.Context, articleID int64, kind Kind) (*Asset, error)
}
