package transform

import (
	"encoding/json"
	"strings"
)

const (
	openMarker  = "<!-- block:"
	closeMarker = "<!-- /block:"
	markerEnd   = " -->"
)

// Block is one structural unit parsed out of an article body.
type Block struct {
	Kind  string
	Inner string
	Attrs map[string]interface{}
}

// Enabled reports whether the block should be delivered. Blocks carry an
// optional "enabled" attribute the editor can switch off per block.
func (b Block) Enabled() bool {
	if b.Attrs == nil {
		return true
	}
	v, ok := b.Attrs["enabled"]
	if !ok {
		return true
	}
	enabled, ok := v.(bool)
	return !ok || enabled
}

// ParseBlocks splits a block-structured body into its ordered blocks.
// Text outside block delimiters belongs to no block and is skipped. A block
// whose close delimiter is missing is returned as-is with its raw tail as
// inner markup so that malformed input degrades instead of aborting.
func ParseBlocks(body string) []Block {
	var blocks []Block
	rest := body
	for {
		start := strings.Index(rest, openMarker)
		if start < 0 {
			break
		}
		head := rest[start+len(openMarker):]
		headEnd := strings.Index(head, markerEnd)
		if headEnd < 0 {
			break
		}
		kind, attrs := parseOpener(head[:headEnd])
		rest = head[headEnd+len(markerEnd):]

		closer := closeMarker + kind + markerEnd
		end := strings.Index(rest, closer)
		if end < 0 {
			// Unterminated block, keep whatever follows.
			blocks = append(blocks, Block{Kind: kind, Inner: rest, Attrs: attrs})
			break
		}
		blocks = append(blocks, Block{Kind: kind, Inner: rest[:end], Attrs: attrs})
		rest = rest[end+len(closer):]
	}
	return blocks
}

// parseOpener splits an opener payload like `image {"enabled":false}` into
// the block kind and its attribute map. Attribute JSON that fails to parse
// is ignored rather than failing the block.
func parseOpener(s string) (string, map[string]interface{}) {
	s = strings.TrimSpace(s)
	kind := s
	var attrs map[string]interface{}
	if i := strings.IndexByte(s, '{'); i >= 0 {
		kind = strings.TrimSpace(s[:i])
		if err := json.Unmarshal([]byte(s[i:]), &attrs); err != nil {
			attrs = nil
		}
	}
	return kind, attrs
}
