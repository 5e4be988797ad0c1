package feed

import (
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"

	"rssdelivery/articles"
	"rssdelivery/media"
	"rssdelivery/models"
)

// ExplicitRelatedLinks reads the article's stored related-link metadata.
func ExplicitRelatedLinks(a models.Article) []models.RelatedLink {
	raw := a.MetaValue(models.MetaRelatedLinks)
	if raw == "" {
		return nil
	}
	var links []models.RelatedLink
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		log.WithFields(log.Fields{"article": a.ID, "error": err}).Warn("Unparseable related-link metadata")
		return nil
	}
	return links
}

func relatedTopics(a models.Article) []string {
	raw := a.MetaValue(models.MetaRelatedTopics)
	if raw == "" {
		return nil
	}
	var topics []string
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil
	}
	return topics
}

// RelatedLinks resolves up to n related links for an article: the explicit
// per-article list first, topped up with articles sharing a related topic,
// then the globally newest articles. The current article is always excluded.
func (rc *RenderContext) RelatedLinks(a models.Article, n int) []models.RelatedLink {
	links := ExplicitRelatedLinks(a)
	if len(links) > n {
		links = links[:n]
	}
	if len(links) >= n || rc.Repo == nil {
		return links
	}

	for _, related := range rc.relatedArticles(a, n-len(links)) {
		links = append(links, models.RelatedLink{Text: related.Title, URL: related.Permalink})
	}
	return links
}

// GalleryRelatedLinks is the linked-gallery variant: fallback candidates are
// replaced by their associated gallery's permalink with a synthesized
// caption, and candidates without a gallery are skipped rather than padded
// further.
func (rc *RenderContext) GalleryRelatedLinks(a models.Article, n int) []models.RelatedLink {
	links := ExplicitRelatedLinks(a)
	if len(links) > n {
		links = links[:n]
	}
	if len(links) >= n || rc.Repo == nil {
		return links
	}

	for _, related := range rc.relatedArticles(a, n-len(links)) {
		gallery, err := rc.Repo.GalleryFor(rc.Ctx, related.ID)
		if err != nil {
			if !errors.Is(err, articles.ErrNotFound) && !errors.Is(err, media.ErrNotFound) {
				log.WithFields(log.Fields{"article": related.ID, "error": err}).Warn("Gallery lookup failed")
			}
			continue
		}
		links = append(links, models.RelatedLink{Text: "【写真】" + gallery.Title, URL: gallery.Permalink})
	}
	return links
}

// relatedArticles returns up to count fallback candidates: articles sharing
// one of this article's related topics first, newest articles after that.
func (rc *RenderContext) relatedArticles(a models.Article, count int) []models.Article {
	if count <= 0 {
		return nil
	}
	exclude := []int64{a.ID}

	var picked []models.Article
	if topics := relatedTopics(a); len(topics) > 0 {
		byTags, err := rc.Repo.RelatedByTags(rc.Ctx, topics, count, exclude)
		if err != nil {
			log.WithFields(log.Fields{"article": a.ID, "error": err}).Warn("Related-topic query failed")
		} else {
			picked = byTags
		}
	}
	if len(picked) >= count {
		return picked[:count]
	}

	for _, p := range picked {
		exclude = append(exclude, p.ID)
	}
	latest, err := rc.Repo.Latest(rc.Ctx, count-len(picked), exclude)
	if err != nil {
		log.WithFields(log.Fields{"article": a.ID, "error": err}).Warn("Latest-article query failed")
		return picked
	}
	return append(picked, latest...)
}
