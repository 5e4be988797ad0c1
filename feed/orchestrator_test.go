package feed_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rssdelivery/config"
	"rssdelivery/feed"
	"rssdelivery/models"
)

func testOrchestrator(repo *fakeRepo) *feed.Orchestrator {
	registry := feed.NewRegistry(feed.Registration{Service: newStub("stub", 1)})
	site := config.Site{Title: "Example Site", URL: "https://example.com", Charset: "UTF-8"}
	return feed.NewOrchestrator(registry, repo, &fakeMedia{}, site, nil)
}

func TestRenderUnknownFeed(t *testing.T) {
	o := testOrchestrator(&fakeRepo{})

	_, err := o.Render(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestRenderQueryFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("database locked")}
	o := testOrchestrator(repo)

	body, err := o.Render(context.Background(), "stub")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "database locked")
	// A failed render returns nothing rather than a truncated document.
	assert.Nil(t, body)
}

func TestRenderEmptyBatch(t *testing.T) {
	o := testOrchestrator(&fakeRepo{})

	body, err := o.Render(context.Background(), "stub")
	assert.NoError(t, err)
	out := string(body)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<title>Example Site</title>")
	assert.NotContains(t, out, "<item>")
}

func TestRenderItemOrderFollowsQuery(t *testing.T) {
	repo := &fakeRepo{batch: []models.Article{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
		{ID: 3, Title: "Third"},
	}}
	o := testOrchestrator(repo)

	body, err := o.Render(context.Background(), "stub")
	assert.NoError(t, err)

	out := string(body)
	first := strings.Index(out, "<title>First</title>")
	second := strings.Index(out, "<title>Second</title>")
	third := strings.Index(out, "<title>Third</title>")
	assert.Greater(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
}

func TestRenderCancelledContext(t *testing.T) {
	repo := &fakeRepo{batch: []models.Article{{ID: 1, Title: "First"}}}
	o := testOrchestrator(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Render(ctx, "stub")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderUsesConfiguredCharset(t *testing.T) {
	registry := feed.NewRegistry(feed.Registration{Service: newStub("stub", 1)})
	site := config.Site{Title: "Example Site", Charset: "Shift_JIS"}
	o := feed.NewOrchestrator(registry, &fakeRepo{}, nil, site, nil)

	body, err := o.Render(context.Background(), "stub")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), `<?xml version="1.0" encoding="Shift_JIS"?>`))
}
