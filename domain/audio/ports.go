package audio

import "context"

// PlatformClient defines the video-platform operations the pipeline needs
// This is a port that can be implemented by different infrastructure adapters
type PlatformClient interface {
	// Probe validates a URL and returns the resource it names
	Probe(ctx context.Context, url string) (*Resource, error)

	// ListAudioStreams returns the audio streams the resource advertises
	ListAudioStreams(ctx context.Context, r *Resource) ([]StreamInfo, error)

	// Materialize downloads the stream identified by streamID to destPath
	Materialize(ctx context.Context, r *Resource, streamID, destPath string) error
}

// Clip is a local media file restricted to a time range
type Clip struct {
	SourcePath string
	Range      TrimRange
	Duration   float64
}

// Transcoder defines the media conversion operations
type Transcoder interface {
	// OpenSubrange opens path restricted to [start, end]; it fails with
	// ErrInvalidTrimRange when the bounds do not fit the media
	OpenSubrange(ctx context.Context, path string, r TrimRange) (*Clip, error)

	// WriteAs writes the clip to destPath. An empty codec lets the transcoder
	// choose the default for the destination extension.
	WriteAs(ctx context.Context, clip *Clip, destPath, codec string) error
}

// StatusSink receives human-readable progress text
type StatusSink interface {
	Status(msg string)
}

// StatusFunc adapts a function to StatusSink
type StatusFunc func(msg string)

// Status implements StatusSink
func (f StatusFunc) Status(msg string) { f(msg) }

// FileRemover deletes files
type FileRemover interface {
	Remove(path string) error
}

// FileChecker reports whether a path exists
type FileChecker interface {
	Exists(path string) bool
}
