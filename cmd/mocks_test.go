package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yt2audio/domain/audio"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// mockPlatform implements audio.PlatformClient without network access
type mockPlatform struct {
	streams      []audio.StreamInfo
	probed       []string
	materialized []string
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{
		streams: []audio.StreamInfo{
			{ID: "139", MimeType: `audio/mp4; codecs="mp4a.40.5"`, BitrateLabel: "48kbps"},
			{ID: "140", MimeType: `audio/mp4; codecs="mp4a.40.2"`, BitrateLabel: "128kbps"},
			{ID: "251", MimeType: `audio/webm; codecs="opus"`, BitrateLabel: "160kbps"},
		},
	}
}

func (m *mockPlatform) Probe(ctx context.Context, url string) (*audio.Resource, error) {
	m.probed = append(m.probed, url)
	if url != testURL {
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
	return nil
}

// mockTranscoder validates ranges against a fixed duration and records writes
type mockTranscoder struct {
	duration float64
	writeErr error
	writes   []transcodeCall
}

type transcodeCall struct {
	dest  string
	codec string
	trim  audio.TrimRange
}

func (m *mockTranscoder) OpenSubrange(ctx context.Context, path string, r audio.TrimRange) (*audio.Clip, error) {
	if err := r.Validate(m.duration); err != nil {
		return nil, err
	}
	return &audio.Clip{SourcePath: path, Range: r, Duration: m.duration}, nil
}

func (m *mockTranscoder) WriteAs(ctx context.Context, clip *audio.Clip, destPath, codec string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, transcodeCall{dest: destPath, codec: codec, trim: clip.Range})
	return nil
}

// mockRemover records removals
type mockRemover struct {
	removed []string
}

func (m *mockRemover) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}

// mockLock can simulate another process holding the lock
type mockLock struct {
	busy       bool
	releaseErr error
	acquired   int
	released   int
}

func (m *mockLock) Acquire() error {
	if m.busy {
		return errors.New("another download is in progress")
	}
	m.acquired++
	return nil
}

func (m *mockLock) Release() error {
	m.released++
	return m.releaseErr
}

// mockPrompter returns scripted answers in order
type mockPrompter struct {
	inputs   []string
	confirms []bool
	selects  []string
	asked    []string
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if len(m.inputs) == 0 {
		return "", errors.New("no more input")
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.asked = append(m.asked, message)
	if len(m.confirms) == 0 {
		return false, errors.New("no more confirms")
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

// mockDirChecker treats the listed paths as directories
type mockDirChecker struct {
	dirs map[string]bool
}

func (m *mockDirChecker) IsDir(path string) bool {
	return m.dirs[path]
}

type testDeps struct {
	Dependencies
	platform   *mockPlatform
	transcoder *mockTranscoder
	remover    *mockRemover
	lock       *mockLock
}

func newTestDeps(outputDir string) *testDeps {
	td := &testDeps{
		platform:   newMockPlatform(),
		transcoder: &mockTranscoder{duration: 212},
		remover:    &mockRemover{},
		lock:       &mockLock{},
	}
	td.Dependencies = Dependencies{
		Platform:   td.platform,
		Transcoder: td.transcoder,
		Remover:    td.remover,
		OutputDir:  outputDir,
		TempPath:   "tmp_dl.mp4",
		Lock:       td.lock,
	}
	return td
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
