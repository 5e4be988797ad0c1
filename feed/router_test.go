package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rssdelivery/feed"
)

func TestRouterResolve(t *testing.T) {
	registry := feed.NewRegistry(
		feed.Registration{Service: newStub("gunosy", 1)},
		feed.Registration{Service: newStub("line", 1)},
	)
	router := feed.NewRouter(registry)

	tests := []struct {
		name     string
		path     string
		expected string
		ok       bool
	}{
		{name: "registered feed", path: "/feed/gunosy", expected: "gunosy", ok: true},
		{name: "trailing slash", path: "/feed/line/", expected: "line", ok: true},
		{name: "no leading slash", path: "feed/gunosy", expected: "gunosy", ok: true},
		{name: "unregistered feed", path: "/feed/unknown", ok: false},
		{name: "missing identifier", path: "/feed/", ok: false},
		{name: "nested path", path: "/feed/gunosy/extra", ok: false},
		{name: "unrelated path", path: "/about", ok: false},
		{name: "root", path: "/", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := router.Resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}
