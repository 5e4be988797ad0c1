// Package transform converts block-structured article bodies into
// partner-safe HTML fragments. Each delivery dialect supplies a fixed,
// ordered rule table; malformed markup passes through unchanged instead of
// failing the document render.
package transform

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// Rule is one rewrite step. Either Pattern/Replace or Fn is set; rules run
// in table order because later patterns operate on earlier output.
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
	Fn      func(string) string
}

func (r Rule) apply(s string) string {
	if r.Fn != nil {
		return r.Fn(s)
	}
	return r.Pattern.ReplaceAllString(s, r.Replace)
}

// RuleSet is one dialect's content-sanitization policy.
type RuleSet struct {
	// AllowedEmbeds lists block kinds whose inner markup is emitted
	// verbatim, bypassing anchor stripping.
	AllowedEmbeds []string
	// StripAnchors removes anchor tags from non-embed blocks while keeping
	// their text.
	StripAnchors bool
	// Rules is the ordered rewrite table applied to the assembled fragment.
	Rules []Rule
	// CaptionAttr moves figcaption text into a data-caption attribute on
	// the preceding img element.
	CaptionAttr bool
}

var (
	anchorRe   = regexp.MustCompile(`(?is)<a[^>]*>(.*?)</a>`)
	nextPageRe = regexp.MustCompile(`(?i)<p><!--\s*nextpage\s*--></p>`)
)

// Transform renders a block-structured body as a sanitized HTML fragment
// according to rs. It never fails: fragments it cannot make sense of are
// passed through unchanged.
func Transform(body string, rs RuleSet) string {
	var sb strings.Builder
	for _, block := range ParseBlocks(body) {
		if block.Kind == "" || !block.Enabled() {
			continue
		}
		if lo.Contains(rs.AllowedEmbeds, block.Kind) {
			sb.WriteString(block.Inner)
			continue
		}
		inner := block.Inner
		if rs.StripAnchors {
			inner = anchorRe.ReplaceAllString(inner, "$1")
		}
		sb.WriteString(inner)
	}

	out := nextPageRe.ReplaceAllString(sb.String(), "")
	for _, rule := range rs.Rules {
		out = rule.apply(out)
	}
	if rs.CaptionAttr {
		out = captionToAttribute(out)
	}
	// A literal "]]>" would terminate the CDATA section early.
	return strings.ReplaceAll(out, "]]>", "]]&gt;")
}

// captionToAttribute moves each figcaption's text onto the preceding img as
// a data-caption attribute and drops the figcaption element, since the tag
// itself is not part of the partner's schema. The input is returned
// unchanged when it cannot be parsed or serialized.
func captionToAttribute(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		caption := img.Next()
		if !caption.Is("figcaption") {
			return
		}
		text := strings.TrimSpace(caption.Text())
		if text == "" {
			return
		}
		img.SetAttr("data-caption", text)
		caption.Remove()
	})
	html, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return html
}

// ReplaceRule builds a regex rewrite step.
func ReplaceRule(pattern, replace string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replace: replace}
}

// ParagraphBreakRule doubles paragraph breaks with explicit <br/> pairs.
// Normalizing first keeps the rule idempotent on already-converted input.
func ParagraphBreakRule() Rule {
	return Rule{Fn: func(s string) string {
		s = strings.ReplaceAll(s, "</p><br/><br/>", "</p>")
		return strings.ReplaceAll(s, "</p>", "</p><br/><br/>")
	}}
}
