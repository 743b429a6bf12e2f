package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output audio container/codec choice
type Format string

const (
	FormatAAC Format = "aac"
	FormatMP3 Format = "mp3"
)

const (
	// DefaultFileName is used when no output file name is given
	DefaultFileName = "output_audio_file"

	// DefaultFormat is used when no output format is given
	DefaultFormat = FormatAAC
)

// Formats lists the supported output formats in display order
func Formats() []Format {
	return []Format{FormatAAC, FormatMP3}
}

// ParseFormat validates a format name. An empty name yields DefaultFormat.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFormat, nil
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected aac or mp3)", ErrUnsupportedFormat, s)
}

// Extension returns the file extension without the leading dot
func (f Format) Extension() string {
	return string(f)
}

// Codec returns the codec to request explicitly. aac is always muxed with the
// aac codec; other formats use the transcoder's default for the extension.
func (f Format) Codec() string {
	if f == FormatAAC {
		return "aac"
	}
	return ""
}

// OutputSpec names the file to produce
type OutputSpec struct {
	FileName string
	Format   Format
}

// DefaultOutputSpec returns the spec used when nothing has been chosen
func DefaultOutputSpec() OutputSpec {
	return OutputSpec{FileName: DefaultFileName, Format: DefaultFormat}
}

// Filename returns "<name>.<ext>"
func (o OutputSpec) Filename() string {
	name := o.FileName
	if name == "" {
		name = DefaultFileName
	}
	format := o.Format
	if format == "" {
		format = DefaultFormat
	}
	return name + "." + format.Extension()
}

// DestinationPath joins the resolved directory and the filename. An empty
// directory yields a path relative to the working directory.
func (o OutputSpec) DestinationPath(resolvedDir string) string {
	if resolvedDir == "" {
		return o.Filename()
	}
	return filepath.Join(resolvedDir, o.Filename())
}
