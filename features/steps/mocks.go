//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"yt2audio/domain/audio"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func errorIs(err, target error) bool {
	return errors.Is(err, target)
}

// mockPlatform serves one known video and writes its audio to disk
type mockPlatform struct {
	streams      []audio.StreamInfo
	materialized []string
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{
		streams: []audio.StreamInfo{
			{ID: "139", MimeType: `audio/mp4; codecs="mp4a.40.5"`, BitrateLabel: "48kbps"},
			{ID: "140", MimeType: `audio/mp4; codecs="mp4a.40.2"`, BitrateLabel: "128kbps"},
		},
	}
}

func (m *mockPlatform) Probe(ctx context.Context, url string) (*audio.Resource, error) {
	if url != validURL {
		return nil, fmt.Errorf("%w: %s", audio.ErrInvalidResourceURL, url)
	}
	return &audio.Resource{
		ID:          "dQw4w9WgXcQ",
		URL:         url,
		Title:       "Never Gonna Give You Up",
		Author:      "Rick Astley",
		Duration:    212 * time.Second,
		PublishDate: time.Date(2009, 10, 25, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockPlatform) ListAudioStreams(ctx context.Context, r *audio.Resource) ([]audio.StreamInfo, error) {
	return m.streams, nil
}

func (m *mockPlatform) Materialize(ctx context.Context, r *audio.Resource, streamID, destPath string) error {
	m.materialized = append(m.materialized, streamID)
	return os.WriteFile(destPath, []byte("audio"), 0644)
}

// mockTranscoder validates ranges against a fixed duration and writes files
type mockTranscoder struct {
	duration float64
	dests    []string
}

func (m *mockTranscoder) OpenSubrange(ctx context.Context, path string, r audio.TrimRange) (*audio.Clip, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Join(audio.ErrInvalidTrimRange, err)
	}
	if err := r.Validate(m.duration); err != nil {
		return nil, err
	}
	return &audio.Clip{SourcePath: path, Range: r, Duration: m.duration}, nil
}

func (m *mockTranscoder) WriteAs(ctx context.Context, clip *audio.Clip, destPath, codec string) error {
	if err := os.WriteFile(destPath, []byte("encoded"), 0644); err != nil {
		return fmt.Errorf("%w: %v", audio.ErrTranscodeFailure, err)
	}
	m.dests = append(m.dests, destPath)
	return nil
}

// osRemover deletes files from disk
type osRemover struct{}

func (osRemover) Remove(path string) error {
	return os.Remove(path)
}

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	selectResponses  []string
	inputIndex       int
	confirmIndex     int
	selectIndex      int
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func (m *MockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if m.selectIndex >= len(m.selectResponses) {
		return defaultValue, nil
	}
	response := m.selectResponses[m.selectIndex]
	m.selectIndex++
	return response, nil
}
