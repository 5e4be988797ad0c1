// Package services holds the partner dialect implementations. Each file
// ports one partner's feed schema: its XML namespaces, required fields,
// withdrawal signalling and content-sanitization rules.
package services

import (
	"regexp"
	"strings"

	"rssdelivery/feed"
	"rssdelivery/models"
)

// Registrations is the static registration list the registry is built
// from. Site-specific overrides are flagged; they supersede the stock
// service registered under the same identifier.
func Registrations() []feed.Registration {
	return []feed.Registration{
		{Service: NewGunosy()},
		{Service: NewLine()},
		{Service: NewSmartNews()},
		{Service: NewGoogleNews()},
		{Service: NewDogatch()},
		{Service: NewExcite()},
		{Service: NewGooVideo()},
		{Service: NewYahooTimeLine()},
		{Service: NewMain()},
		{Service: NewSiteMain(), Override: true},
		{Service: NewSiteGunosy(), Override: true},
	}
}

// guid renders the RSS guid element with its optional isPermaLink flag.
type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr,omitempty"`
	Value       string `xml:",chardata"`
}

// deliveryStatus maps article status onto the active/deleted pair several
// partners share.
func deliveryStatus(a models.Article) string {
	if a.Status == models.StatusPublished {
		return "active"
	}
	return "deleted"
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const excerptRuneLimit = 110

// excerpt reduces sanitized content to the short plain-text description
// some partners want alongside the full body.
func excerpt(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= excerptRuneLimit {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "…"
}
