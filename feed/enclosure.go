package feed

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"rssdelivery/media"
	"rssdelivery/models"
)

// FeaturedAsset resolves the article's featured image, or nil when the
// article has none or the lookup fails. A failed lookup only drops the
// enclosure for this item; the rest of the document renders normally.
func (rc *RenderContext) FeaturedAsset(a models.Article) *media.Asset {
	if a.FeaturedImageID == 0 || rc.Media == nil {
		return nil
	}
	asset, err := rc.Media.Lookup(rc.Ctx, a.ID, media.KindThumbnail)
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			log.WithFields(log.Fields{
				"article": a.ID,
				"error":   err,
			}).Warn("Thumbnail lookup failed, omitting enclosure")
		}
		return nil
	}
	return asset
}

// VideoAsset resolves the article's external video, or nil. Only articles
// carrying a video URL in their metadata have one.
func (rc *RenderContext) VideoAsset(a models.Article) *media.Asset {
	if a.MetaValue(models.MetaVideoURL) == "" || rc.Media == nil {
		return nil
	}
	asset, err := rc.Media.Lookup(rc.Ctx, a.ID, media.KindVideo)
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			log.WithFields(log.Fields{
				"article": a.ID,
				"error":   err,
			}).Warn("Video lookup failed, omitting enclosure")
		}
		return nil
	}
	return asset
}

// ThumbnailEnclosure builds the common enclosure element for the featured
// image, without a byte length.
func (rc *RenderContext) ThumbnailEnclosure(a models.Article) *Enclosure {
	asset := rc.FeaturedAsset(a)
	if asset == nil {
		return nil
	}
	return &Enclosure{URL: asset.URL, Type: asset.MIMEType}
}

// ThumbnailEnclosureWithLength builds the enclosure element including the
// asset's byte size, for dialects that require it.
func (rc *RenderContext) ThumbnailEnclosureWithLength(a models.Article) *Enclosure {
	asset := rc.FeaturedAsset(a)
	if asset == nil {
		return nil
	}
	return &Enclosure{URL: asset.URL, Type: asset.MIMEType, Length: asset.ByteSize}
}
