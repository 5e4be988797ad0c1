package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rssdelivery/transform"
)

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []transform.Block
	}{
		{
			name:     "no markers",
			body:     "<p>plain paragraph</p>",
			expected: nil,
		},
		{
			name: "two blocks in order",
			body: "<!-- block:paragraph --><p>one</p><!-- /block:paragraph -->" +
				"<!-- block:image --><img src=\"a.jpg\"/><!-- /block:image -->",
			expected: []transform.Block{
				{Kind: "paragraph", Inner: "<p>one</p>"},
				{Kind: "image", Inner: "<img src=\"a.jpg\"/>"},
			},
		},
		{
			name: "attributes parsed from opener",
			body: `<!-- block:paragraph {"enabled":false} --><p>off</p><!-- /block:paragraph -->`,
			expected: []transform.Block{
				{Kind: "paragraph", Inner: "<p>off</p>", Attrs: map[string]interface{}{"enabled": false}},
			},
		},
		{
			name: "unterminated block keeps tail",
			body: "<!-- block:paragraph --><p>dangling",
			expected: []transform.Block{
				{Kind: "paragraph", Inner: "<p>dangling"},
			},
		},
		{
			name: "text between blocks is skipped",
			body: "leading<!-- block:paragraph --><p>kept</p><!-- /block:paragraph -->trailing",
			expected: []transform.Block{
				{Kind: "paragraph", Inner: "<p>kept</p>"},
			},
		},
		{
			name: "broken attribute json is dropped",
			body: `<!-- block:paragraph {"enabled": --><p>kept</p><!-- /block:paragraph -->`,
			expected: []transform.Block{
				{Kind: "paragraph", Inner: "<p>kept</p>"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, transform.ParseBlocks(tt.body))
		})
	}
}

func TestBlockEnabled(t *testing.T) {
	assert.True(t, transform.Block{Kind: "paragraph"}.Enabled())
	assert.True(t, transform.Block{Kind: "paragraph", Attrs: map[string]interface{}{"align": "left"}}.Enabled())
	assert.True(t, transform.Block{Kind: "paragraph", Attrs: map[string]interface{}{"enabled": true}}.Enabled())
	assert.False(t, transform.Block{Kind: "paragraph", Attrs: map[string]interface{}{"enabled": false}}.Enabled())
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		rules    transform.RuleSet
		expected string
	}{
		{
			name: "blocks concatenated in order",
			body: "<!-- block:paragraph --><p>one</p><!-- /block:paragraph -->" +
				"<!-- block:paragraph --><p>two</p><!-- /block:paragraph -->",
			rules:    transform.RuleSet{},
			expected: "<p>one</p><p>two</p>",
		},
		{
			name: "disabled block dropped",
			body: `<!-- block:paragraph --><p>on</p><!-- /block:paragraph -->` +
				`<!-- block:paragraph {"enabled":false} --><p>off</p><!-- /block:paragraph -->`,
			rules:    transform.RuleSet{},
			expected: "<p>on</p>",
		},
		{
			name: "anchors stripped outside embeds",
			body: "<!-- block:paragraph --><p>see <a href=\"https://example.com\">this article</a> now</p><!-- /block:paragraph -->" +
				"<!-- block:embed/twitter --><a href=\"https://twitter.com/x\">tweet</a><!-- /block:embed/twitter -->",
			rules: transform.RuleSet{
				AllowedEmbeds: []string{"embed/twitter"},
				StripAnchors:  true,
			},
			expected: "<p>see this article now</p><a href=\"https://twitter.com/x\">tweet</a>",
		},
		{
			name:     "nextpage marker removed",
			body:     "<!-- block:paragraph --><p>a</p><p><!--nextpage--></p><p>b</p><!-- /block:paragraph -->",
			rules:    transform.RuleSet{},
			expected: "<p>a</p><p>b</p>",
		},
		{
			name: "rules run in table order",
			body: "<!-- block:image --><figure class=\"wp-block-image\"><img src=\"a.jpg\"/></figure><!-- /block:image -->",
			rules: transform.RuleSet{
				Rules: []transform.Rule{
					transform.ReplaceRule(`(?is)<figure class="wp-block-image[^>]*>(.*?)</figure>`, `<div class="innerpic">$1</div>`),
				},
			},
			expected: "<div class=\"innerpic\"><img src=\"a.jpg\"/></div>",
		},
		{
			name:     "cdata terminator escaped",
			body:     "<!-- block:paragraph --><p>weird ]]> text</p><!-- /block:paragraph -->",
			rules:    transform.RuleSet{},
			expected: "<p>weird ]]&gt; text</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, transform.Transform(tt.body, tt.rules))
		})
	}
}

func TestTransformCaptionAttribute(t *testing.T) {
	body := "<!-- block:image --><figure><img src=\"a.jpg\"/><figcaption>On set</figcaption></figure><!-- /block:image -->"
	out := transform.Transform(body, transform.RuleSet{CaptionAttr: true})

	assert.Contains(t, out, `data-caption="On set"`)
	assert.NotContains(t, out, "figcaption")
}

func TestParagraphBreakRuleIdempotent(t *testing.T) {
	rules := transform.RuleSet{Rules: []transform.Rule{transform.ParagraphBreakRule()}}
	body := "<!-- block:paragraph --><p>a</p><p>b</p><!-- /block:paragraph -->"

	once := transform.Transform(body, rules)
	assert.Equal(t, "<p>a</p><br/><br/><p>b</p><br/><br/>", once)

	// Feeding already-converted markup through again must not stack breaks.
	twice := transform.Transform("<!-- block:paragraph -->"+once+"<!-- /block:paragraph -->", rules)
	assert.Equal(t, once, twice)
}
