package feed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rssdelivery/feed"
	"rssdelivery/models"
)

func TestLocalTime(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		loc      *time.Location
		stored   time.Time
		expected string
	}{
		{
			name:     "wall clock preserved in display timezone",
			loc:      tokyo,
			stored:   naive("2024-01-15 09:00:00"),
			expected: "Mon, 15 Jan 2024 09:00:00 +0900",
		},
		{
			name:     "no display timezone passes through",
			loc:      nil,
			stored:   naive("2024-01-15 09:00:00"),
			expected: "Mon, 15 Jan 2024 09:00:00 +0000",
		},
		{
			name:     "zero time renders empty",
			loc:      tokyo,
			stored:   time.Time{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &feed.RenderContext{Loc: tt.loc}
			assert.Equal(t, tt.expected, rc.LocalTime(tt.stored))
		})
	}
}

func TestLastBuildDate(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, tokyo)
	rc := &feed.RenderContext{Loc: tokyo, Now: now}

	batch := []models.Article{
		{ModifiedAt: naive("2024-02-10 08:00:00")},
		{ModifiedAt: naive("2024-02-20 18:30:00")},
		{ModifiedAt: naive("2024-02-15 23:59:59")},
	}
	assert.Equal(t, "Tue, 20 Feb 2024 18:30:00 +0900", rc.LastBuildDate(batch))

	// An empty batch falls back to the request time.
	assert.Equal(t, now.Format(time.RFC1123Z), rc.LastBuildDate(nil))
}

func TestMaxModified(t *testing.T) {
	assert.True(t, feed.MaxModified(nil).IsZero())

	batch := []models.Article{
		{ModifiedAt: naive("2024-02-10 08:00:00")},
		{ModifiedAt: naive("2024-02-20 18:30:00")},
	}
	assert.Equal(t, naive("2024-02-20 18:30:00"), feed.MaxModified(batch))
}
