package feed

import (
	"time"

	"rssdelivery/models"
)

// LocalTime formats a stored naive timestamp for display. The content store
// persists site-local wall-clock times, so with a display timezone
// configured the wall-clock fields are kept and only the offset is
// attached. Without one the date passes through unconverted.
func (rc *RenderContext) LocalTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if rc.Loc == nil {
		return t.Format(time.RFC1123Z)
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), rc.Loc)
	return local.Format(time.RFC1123Z)
}

// NowDate formats the request time, used by dialects whose channel date is
// wall-clock "now" rather than the batch's newest modification.
func (rc *RenderContext) NowDate() string {
	return rc.Now.Format(time.RFC1123Z)
}

// LastBuildDate is the newest modification timestamp of the batch, in
// display form. Empty batches fall back to the request time.
func (rc *RenderContext) LastBuildDate(batch []models.Article) string {
	max := MaxModified(batch)
	if max.IsZero() {
		return rc.NowDate()
	}
	return rc.LocalTime(max)
}

// MaxModified returns the newest modification timestamp in the batch.
func MaxModified(batch []models.Article) time.Time {
	var max time.Time
	for _, a := range batch {
		if a.ModifiedAt.After(max) {
			max = a.ModifiedAt
		}
	}
	return max
}
