package probe

import (
	"context"
	"errors"
	"fmt"

	"yt2audio/domain/audio"
)

// Result is a validated resource and its display summary
type Result struct {
	Resource *audio.Resource
	Info     audio.DisplayInfo
}

// Service validates URLs against the platform client
type Service struct {
	platform audio.PlatformClient
}

// NewService creates a new probe service
func NewService(platform audio.PlatformClient) *Service {
	return &Service{platform: platform}
}

// ValidateAndDescribe probes url and returns the resource with a fresh
// DisplayInfo. Any rejection by the platform client is reported as
// audio.ErrInvalidResourceURL.
func (s *Service) ValidateAndDescribe(ctx context.Context, url string) (*Result, error) {
	resource, err := s.platform.Probe(ctx, url)
	if err != nil {
		if errors.Is(err, audio.ErrInvalidResourceURL) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", audio.ErrInvalidResourceURL, err)
	}

	return &Result{
		Resource: resource,
		Info:     audio.Describe(resource),
	}, nil
}
