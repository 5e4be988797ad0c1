// Package feed contains the feed delivery engine: the service contract each
// partner dialect implements, the registry resolving identifiers to
// services, the router recognizing feed requests and the orchestrator that
// renders one complete document per request.
package feed

import (
	"context"
	"time"

	"rssdelivery/articles"
	"rssdelivery/config"
	"rssdelivery/media"
	"rssdelivery/models"
)

// Document is a dialect's feed document under construction. The
// orchestrator appends items in query order; implementations marshal to the
// final XML via encoding/xml.
type Document interface {
	AddItem(item interface{})
}

// Service is one partner dialect. Implementations are constructed once at
// registry build time and must be safe for concurrent requests; all
// request-scoped state travels in the RenderContext.
type Service interface {
	// Identifier routes requests and is matched against each article's
	// selected-channel-set metadata.
	Identifier() string
	// Label is the display name shown in administrative listings.
	Label() string
	// Priority orders services in listings; higher comes first.
	Priority() int
	// PageSize bounds the number of items per feed.
	PageSize() int
	// Criteria builds the selection query for one request.
	Criteria() articles.Criteria
	// Channel returns the dialect's document with its channel-level fields
	// populated from the batch.
	Channel(rc *RenderContext, batch []models.Article) Document
	// Item renders one article as the dialect's item value.
	Item(rc *RenderContext, article models.Article) interface{}
}

// RenderContext carries the request-scoped collaborators and site identity
// into channel and item rendering.
type RenderContext struct {
	Ctx   context.Context
	Site  config.Site
	Loc   *time.Location
	Now   time.Time
	Repo  articles.Repository
	Media media.Lookup
}

// Base carries the common service descriptor fields. Leaf services embed it
// and override only what differs from the defaults.
type Base struct {
	ID           string
	DisplayLabel string
	Prio         int
	PerPage      int
}

func (b Base) Identifier() string { return b.ID }

func (b Base) Label() string {
	if b.DisplayLabel != "" {
		return b.DisplayLabel
	}
	return b.ID
}

func (b Base) Priority() int {
	if b.Prio == 0 {
		return 1
	}
	return b.Prio
}

func (b Base) PageSize() int {
	if b.PerPage == 0 {
		return 20
	}
	return b.PerPage
}

// Criteria is the default selection shared by most dialects: published and
// withdrawn posts carrying this service's identifier, newest first.
func (b Base) Criteria() articles.Criteria {
	return articles.DefaultCriteria(b.ID, b.PageSize())
}

// CDATA wraps text in a CDATA section when marshalled.
type CDATA struct {
	Text string `xml:",cdata"`
}

// Enclosure is the common item-level media reference. A zero length is
// omitted; a nil *Enclosure field omits the element entirely.
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr,omitempty"`
}

// ChannelImage is the RSS 2.0 <image> sub-element.
type ChannelImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}
