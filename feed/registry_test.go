package feed_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"rssdelivery/feed"
)

func TestRegistryOverrideResolution(t *testing.T) {
	stock := newStub("partner", 1)
	override := newStub("partner", 65)

	registry := feed.NewRegistry(
		feed.Registration{Service: stock},
		feed.Registration{Service: override, Override: true},
	)
	assert.NoError(t, registry.Init())

	svc, ok := registry.Get("partner")
	assert.True(t, ok)
	assert.Same(t, override, svc)
}

func TestRegistryOverrideWinsRegardlessOfOrder(t *testing.T) {
	stock := newStub("partner", 1)
	override := newStub("partner", 65)

	registry := feed.NewRegistry(
		feed.Registration{Service: override, Override: true},
		feed.Registration{Service: stock},
	)
	assert.NoError(t, registry.Init())

	svc, ok := registry.Get("partner")
	assert.True(t, ok)
	assert.Same(t, override, svc)
}

func TestRegistryFirstPlainRegistrationWins(t *testing.T) {
	first := newStub("partner", 1)
	second := newStub("partner", 1)

	registry := feed.NewRegistry(
		feed.Registration{Service: first},
		feed.Registration{Service: second},
	)
	assert.NoError(t, registry.Init())

	svc, _ := registry.Get("partner")
	assert.Same(t, first, svc)
}

func TestRegistryConflictingOverrides(t *testing.T) {
	registry := feed.NewRegistry(
		feed.Registration{Service: newStub("partner", 1), Override: true},
		feed.Registration{Service: newStub("partner", 2), Override: true},
	)

	err := registry.Init()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "partner")

	_, ok := registry.Get("partner")
	assert.False(t, ok)
	assert.Nil(t, registry.List())
}

func TestRegistryListOrder(t *testing.T) {
	registry := feed.NewRegistry(
		feed.Registration{Service: newStub("low", 1)},
		feed.Registration{Service: newStub("high", 100)},
		feed.Registration{Service: newStub("mid", 65)},
		feed.Registration{Service: newStub("low2", 1)},
	)
	assert.NoError(t, registry.Init())

	var ids []string
	for _, svc := range registry.List() {
		ids = append(ids, svc.Identifier())
	}
	// Priority descending, registration order within a priority.
	assert.Equal(t, []string{"high", "mid", "low", "low2"}, ids)
}

func TestRegistryConcurrentInit(t *testing.T) {
	registry := feed.NewRegistry(feed.Registration{Service: newStub("partner", 1)})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, registry.Init())
			_, ok := registry.Get("partner")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}
