package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"rssdelivery/articles"
	"rssdelivery/config"
	"rssdelivery/media"
)

// Orchestrator renders one complete feed document per request. The whole
// document is assembled in memory before anything is returned, so a
// collaborator failure can never leave unbalanced XML with the caller.
type Orchestrator struct {
	registry *Registry
	repo     articles.Repository
	media    media.Lookup
	site     config.Site
	loc      *time.Location
}

func NewOrchestrator(registry *Registry, repo articles.Repository, lookup media.Lookup, site config.Site, loc *time.Location) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		repo:     repo,
		media:    lookup,
		site:     site,
		loc:      loc,
	}
}

// Render generates the feed document for a resolved identifier. A selection
// query failure aborts the render; an empty result still produces a valid
// channel-only document.
func (o *Orchestrator) Render(ctx context.Context, id string) ([]byte, error) {
	svc, ok := o.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("feed: no service registered for %q", id)
	}

	batch, err := o.repo.Query(ctx, svc.Criteria())
	if err != nil {
		return nil, fmt.Errorf("selection query for %q failed: %w", id, err)
	}

	now := time.Now()
	if o.loc != nil {
		now = now.In(o.loc)
	}
	rc := &RenderContext{
		Ctx:   ctx,
		Site:  o.site,
		Loc:   o.loc,
		Now:   now,
		Repo:  o.repo,
		Media: o.media,
	}

	doc := svc.Channel(rc, batch)
	for _, article := range batch {
		// Stop issuing collaborator calls promptly once the request is
		// cancelled.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		doc.AddItem(svc.Item(rc, article))
	}

	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshal feed %q: %w", id, err)
	}

	charset := o.site.Charset
	if charset == "" {
		charset = "UTF-8"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", charset)
	buf.Write(body)
	buf.WriteByte('\n')

	log.WithFields(log.Fields{
		"feed":  id,
		"items": len(batch),
	}).Info("Rendered feed document")

	return buf.Bytes(), nil
}
