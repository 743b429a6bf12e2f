package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"
	"yt2audio/infrastructure/retry"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// VideoAPI is the subset of *youtube.Client used here
type VideoAPI interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// Client implements audio.PlatformClient on top of kkdai/youtube
type Client struct {
	api   VideoAPI
	retry retry.Config
	log   *logger.Logger
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithAPI sets the underlying API (for testing)
func WithAPI(api VideoAPI) ClientOption {
	return func(c *Client) {
		c.api = api
	}
}

// WithRetry sets the retry policy for opening streams
func WithRetry(cfg retry.Config) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a YouTube platform client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		api:   &youtube.Client{},
		retry: retry.DefaultConfig(),
		log:   logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Probe implements audio.PlatformClient
func (c *Client) Probe(ctx context.Context, url string) (*audio.Resource, error) {
	url = strings.TrimSpace(url)
	if _, err := youtube.ExtractVideoID(url); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrInvalidResourceURL, err)
	}

	video, err := c.api.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrInvalidResourceURL, err)
	}

	c.log.Debug("fetched video metadata",
		zap.String("id", video.ID),
		zap.Int("formats", len(video.Formats)),
	)

	return &audio.Resource{
		ID:          video.ID,
		URL:         url,
		Title:       video.Title,
		Author:      video.Author,
		Duration:    video.Duration,
		PublishDate: video.PublishDate,
		Ref:         video,
	}, nil
}

// ListAudioStreams implements audio.PlatformClient
func (c *Client) ListAudioStreams(ctx context.Context, r *audio.Resource) ([]audio.StreamInfo, error) {
	video, err := videoOf(r)
	if err != nil {
		return nil, err
	}

	var streams []audio.StreamInfo
	for _, f := range video.Formats {
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		streams = append(streams, audio.StreamInfo{
			ID:           strconv.Itoa(f.ItagNo),
			MimeType:     f.MimeType,
			BitrateLabel: BitrateLabel(f),
		})
	}
	return streams, nil
}

// Materialize implements audio.PlatformClient
func (c *Client) Materialize(ctx context.Context, r *audio.Resource, streamID, destPath string) error {
	video, err := videoOf(r)
	if err != nil {
		return err
	}

	itag, err := strconv.Atoi(streamID)
	if err != nil {
		return fmt.Errorf("invalid stream id %q: %w", streamID, err)
	}
	formats := video.Formats.Itag(itag)
	if len(formats) == 0 {
		return fmt.Errorf("stream %s not found for video %s", streamID, video.ID)
	}
	format := &formats[0]

	var stream io.ReadCloser
	var size int64
	err = retry.Do(ctx, c.retry, func() error {
		var openErr error
		stream, size, openErr = c.api.GetStreamContext(ctx, video, format)
		if openErr != nil {
			c.log.Warn("failed to open stream", zap.String("itag", streamID), zap.Error(openErr))
		}
		return openErr
	})
	if err != nil {
		return fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to download stream: %w", err)
	}

	c.log.Debug("stream downloaded",
		zap.String("path", destPath),
		zap.Int64("bytes", written),
		zap.Int64("expected", size),
	)
	return nil
}

// BitrateLabel renders a format's bitrate the way the platform advertises it, e.g. "128kbps"
func BitrateLabel(f youtube.Format) string {
	bps := f.AverageBitrate
	if bps <= 0 {
		bps = f.Bitrate
	}
	return fmt.Sprintf("%dkbps", bps/1000)
}

func videoOf(r *audio.Resource) (*youtube.Video, error) {
	if r == nil {
		return nil, fmt.Errorf("resource is nil")
	}
	video, ok := r.Ref.(*youtube.Video)
	if !ok || video == nil {
		return nil, fmt.Errorf("resource %q was not produced by the youtube client", r.ID)
	}
	return video, nil
}

// Ensure Client implements audio.PlatformClient
var _ audio.PlatformClient = (*Client)(nil)
