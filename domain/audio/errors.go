package audio

import "errors"

var (
	// ErrInvalidResourceURL is returned when the platform client rejects a URL
	ErrInvalidResourceURL = errors.New("invalid resource url")

	// ErrNoStreamsAvailable is returned when a resource has no mp4 audio-only streams
	ErrNoStreamsAvailable = errors.New("no audio streams available")

	// ErrInvalidTrimRange is returned when the trim bounds cannot be applied to the media
	ErrInvalidTrimRange = errors.New("invalid trim range")

	// ErrTranscodeFailure is returned when writing the destination file fails
	ErrTranscodeFailure = errors.New("transcode failed")

	// ErrTempCleanupFailure is returned when the temporary download cannot be removed
	ErrTempCleanupFailure = errors.New("failed to remove temporary download")

	// ErrUnsupportedFormat is returned for output formats other than aac and mp3
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Status messages delivered to the status sink
const (
	StatusDownloading    = "Downloading..."
	StatusComplete       = "Download complete!"
	StatusInvalidTrim    = "Invalid start/end time."
	StatusInvalidOutName = "Error downloading; invalid output file name."
)
