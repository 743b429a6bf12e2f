package audio

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ContainerMimePrefix selects the platform's mp4-family audio container
const ContainerMimePrefix = "audio/mp4"

// StreamInfo is a single audio stream as advertised by the platform client
type StreamInfo struct {
	ID           string
	MimeType     string
	BitrateLabel string
}

// StreamDescriptor is a ranked candidate produced by a catalog scan
type StreamDescriptor struct {
	Ordinal     int
	CodecTag    string
	MimeType    string
	BitrateKbps int
}

// String returns a short human-readable description of the stream
func (d StreamDescriptor) String() string {
	return fmt.Sprintf("#%d %s (%s, %dkbps)", d.Ordinal, d.CodecTag, d.MimeType, d.BitrateKbps)
}

// ParseBitrateLabel keeps only the decimal digits of a label such as "128kbps".
// A label without digits parses as 0.
func ParseBitrateLabel(label string) int {
	var b strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// CatalogStreams builds descriptors for the mp4 audio-only streams, in the order
// they were advertised, with dense 1-based ordinals.
func CatalogStreams(streams []StreamInfo) []StreamDescriptor {
	var out []StreamDescriptor
	for _, s := range streams {
		if !isMP4Audio(s.MimeType) {
			continue
		}
		out = append(out, StreamDescriptor{
			Ordinal:     len(out) + 1,
			CodecTag:    s.ID,
			MimeType:    s.MimeType,
			BitrateKbps: ParseBitrateLabel(s.BitrateLabel),
		})
	}
	return out
}

// RankStreams returns the catalog sorted by descending bitrate. Equal bitrates keep
// catalog order, so the first stream seen wins a tie.
func RankStreams(streams []StreamInfo) []StreamDescriptor {
	ranked := CatalogStreams(streams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BitrateKbps > ranked[j].BitrateKbps
	})
	return ranked
}

// SelectBestAudioStream returns the highest bitrate mp4 audio stream
func SelectBestAudioStream(streams []StreamInfo) (StreamDescriptor, error) {
	ranked := RankStreams(streams)
	if len(ranked) == 0 {
		return StreamDescriptor{}, ErrNoStreamsAvailable
	}
	return ranked[0], nil
}

func isMP4Audio(mimeType string) bool {
	mt := strings.ToLower(strings.TrimLeftFunc(mimeType, unicode.IsSpace))
	return strings.HasPrefix(mt, ContainerMimePrefix)
}
