package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"yt2audio/domain/audio"
)

// mockPlatform implements audio.PlatformClient for testing
type mockPlatform struct {
	resources map[string]*audio.Resource
	err       error
}

func (m *mockPlatform) Probe(ctx context.Context, url string) (*audio.Resource, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.resources[url]
	if !ok {
		return nil, errors.New("unknown video")
	}
	return r, nil
}

func (m *mockPlatform) ListAudioStreams(ctx context.Context, r *audio.Resource) ([]audio.StreamInfo, error) {
	return nil, nil
}

func (m *mockPlatform) Materialize(ctx context.Context, r *audio.Resource, streamID, destPath string) error {
	return nil
}

func TestValidateAndDescribe(t *testing.T) {
	platform := &mockPlatform{resources: map[string]*audio.Resource{
		"https://youtu.be/aaaaaaaaaaa": {
			ID:          "aaaaaaaaaaa",
			Title:       "Talk",
			Author:      "Speaker",
			Duration:    125 * time.Second,
			PublishDate: time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewService(platform)

	got, err := svc.ValidateAndDescribe(context.Background(), "https://youtu.be/aaaaaaaaaaa")
	if err != nil {
		t.Fatalf("ValidateAndDescribe() unexpected error: %v", err)
	}
	if got.Resource.ID != "aaaaaaaaaaa" {
		t.Errorf("Resource.ID = %q, want aaaaaaaaaaa", got.Resource.ID)
	}
	want := audio.DisplayInfo{
		Title:           "Talk",
		DurationMinutes: 2,
		DurationSeconds: 5,
		UploadDate:      time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
		Author:          "Speaker",
	}
	if got.Info != want {
		t.Errorf("Info = %+v, want %+v", got.Info, want)
	}
}

func TestValidateAndDescribe_Invalid(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "already classified", err: audio.ErrInvalidResourceURL},
		{name: "raw platform error", err: errors.New("video unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockPlatform{err: tt.err})
			_, err := svc.ValidateAndDescribe(context.Background(), "not a url")
			if !errors.Is(err, audio.ErrInvalidResourceURL) {
				t.Errorf("ValidateAndDescribe() error = %v, want ErrInvalidResourceURL", err)
			}
		})
	}
}

func TestValidateAndDescribe_NoLeakBetweenProbes(t *testing.T) {
	platform := &mockPlatform{resources: map[string]*audio.Resource{
		"one": {ID: "1", Title: "One"},
		"two": {ID: "2", Title: "Two"},
	}}
	svc := NewService(platform)

	first, _ := svc.ValidateAndDescribe(context.Background(), "one")
	second, _ := svc.ValidateAndDescribe(context.Background(), "two")

	if first.Info.Title != "One" {
		t.Errorf("first Info.Title = %q, want One", first.Info.Title)
	}
	if got := second.Info.String(); strings.Contains(got, "One") {
		t.Errorf("second info leaked text from the first probe: %q", got)
	}
}
