package audio

import (
	"fmt"
	"time"
)

// Resource is a validated remote video resource. Ref is owned by the platform
// client that produced it and is opaque to everything else.
type Resource struct {
	ID          string
	URL         string
	Title       string
	Author      string
	Duration    time.Duration
	PublishDate time.Time
	Ref         any
}

// DisplayInfo is the human-readable summary of a resource
type DisplayInfo struct {
	Title           string
	DurationMinutes int
	DurationSeconds int
	UploadDate      time.Time
	Author          string
}

// Describe builds a fresh DisplayInfo for a resource
func Describe(r *Resource) DisplayInfo {
	total := int(r.Duration / time.Second)
	return DisplayInfo{
		Title:           r.Title,
		DurationMinutes: total / 60,
		DurationSeconds: total % 60,
		UploadDate:      r.PublishDate,
		Author:          r.Author,
	}
}

// UploadDateString returns the upload date as YYYY-MM-DD, or "unknown"
func (d DisplayInfo) UploadDateString() string {
	if d.UploadDate.IsZero() {
		return "unknown"
	}
	return d.UploadDate.Format("2006-01-02")
}

// String renders the three-line summary shown after a URL is entered
func (d DisplayInfo) String() string {
	return fmt.Sprintf("%s\n%d minutes %d seconds\nUploaded: %s by %s\n",
		d.Title, d.DurationMinutes, d.DurationSeconds, d.UploadDateString(), d.Author)
}
