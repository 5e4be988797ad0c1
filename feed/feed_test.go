package feed_test

import (
	"context"
	"time"

	"rssdelivery/articles"
	"rssdelivery/feed"
	"rssdelivery/media"
	"rssdelivery/models"
)

// fakeRepo serves a fixed batch and records the criteria it was queried
// with.
type fakeRepo struct {
	batch    []models.Article
	latest   []models.Article
	byTags   []models.Article
	gallery  map[int64]*models.Gallery
	err      error
	criteria articles.Criteria
}

func (f *fakeRepo) Query(ctx context.Context, c articles.Criteria) ([]models.Article, error) {
	f.criteria = c
	return f.batch, f.err
}

func (f *fakeRepo) RelatedByTags(ctx context.Context, tags []string, limit int, exclude []int64) ([]models.Article, error) {
	return limited(f.byTags, limit, exclude), nil
}

func (f *fakeRepo) Latest(ctx context.Context, limit int, exclude []int64) ([]models.Article, error) {
	return limited(f.latest, limit, exclude), nil
}

func (f *fakeRepo) GalleryFor(ctx context.Context, articleID int64) (*models.Gallery, error) {
	if g, ok := f.gallery[articleID]; ok {
		return g, nil
	}
	return nil, articles.ErrNotFound
}

func limited(in []models.Article, limit int, exclude []int64) []models.Article {
	var out []models.Article
	for _, a := range in {
		skip := false
		for _, id := range exclude {
			if a.ID == id {
				skip = true
			}
		}
		if skip {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}

// fakeMedia resolves assets for a fixed article set.
type fakeMedia struct {
	assets map[int64]*media.Asset
}

func (f *fakeMedia) Lookup(ctx context.Context, articleID int64, kind media.Kind) (*media.Asset, error) {
	if a, ok := f.assets[articleID]; ok {
		return a, nil
	}
	return nil, media.ErrNotFound
}

// stubService is a minimal dialect for registry and orchestrator tests.
type stubService struct {
	feed.Base
}

func newStub(id string, prio int) *stubService {
	return &stubService{Base: feed.Base{ID: id, Prio: prio}}
}

type stubDoc struct {
	Title string        `xml:"channel>title"`
	Items []interface{} `xml:"channel>item"`
}

func (d *stubDoc) AddItem(item interface{}) { d.Items = append(d.Items, item) }

type stubItem struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubDate"`
}

func (s *stubService) Channel(rc *feed.RenderContext, batch []models.Article) feed.Document {
	return &stubDoc{Title: rc.Site.Title}
}

func (s *stubService) Item(rc *feed.RenderContext, a models.Article) interface{} {
	return stubItem{Title: a.Title, PubDate: rc.LocalTime(a.PublishedAt)}
}

func naive(value string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04:05", value)
	return t
}
