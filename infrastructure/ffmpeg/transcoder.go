package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"

	"go.uber.org/zap"
)

// Transcoder implements audio.Transcoder using ffmpeg and ffprobe
type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
	runner      CommandRunner
	log         *logger.Logger
}

// Option is a functional option for configuring Transcoder
type Option func(*Transcoder)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(t *Transcoder) {
		if path != "" {
			t.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) Option {
	return func(t *Transcoder) {
		if path != "" {
			t.ffprobePath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) Option {
	return func(t *Transcoder) {
		t.runner = runner
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(t *Transcoder) {
		t.log = l
	}
}

// NewTranscoder creates a new FFmpeg-based transcoder
func NewTranscoder(opts ...Option) *Transcoder {
	t := &Transcoder{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
		log:         logger.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// OpenSubrange implements audio.Transcoder. The media duration is read with
// ffprobe and the range is checked against it.
func (t *Transcoder) OpenSubrange(ctx context.Context, path string, r audio.TrimRange) (*audio.Clip, error) {
	duration, err := t.Duration(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", audio.ErrInvalidTrimRange, path, err)
	}

	if err := r.Validate(duration); err != nil {
		return nil, err
	}

	return &audio.Clip{
		SourcePath: path,
		Range:      r,
		Duration:   duration,
	}, nil
}

// Duration returns the media duration in seconds
func (t *Transcoder) Duration(ctx context.Context, path string) (float64, error) {
	out, err := t.runner.Output(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	value := strings.TrimSpace(string(out))
	duration, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration %q: %w", value, err)
	}
	return duration, nil
}

// WriteAs implements audio.Transcoder
func (t *Transcoder) WriteAs(ctx context.Context, clip *audio.Clip, destPath, codec string) error {
	args := BuildArgs(clip, destPath, codec)

	t.log.Debug("executing ffmpeg", zap.Strings("args", args))

	if err := t.runner.Run(ctx, t.ffmpegPath, args...); err != nil {
		return fmt.Errorf("%w: %v", audio.ErrTranscodeFailure, err)
	}
	return nil
}

// BuildArgs returns the ffmpeg arguments that write clip to destPath
func BuildArgs(clip *audio.Clip, destPath, codec string) []string {
	var args []string
	if clip.Range.Start > 0 {
		args = append(args, "-ss", audio.SecondsArg(clip.Range.Start))
	}
	if clip.Range.End != nil {
		args = append(args, "-to", audio.SecondsArg(*clip.Range.End))
	}
	args = append(args,
		"-i", clip.SourcePath,
		"-vn", // No video
	)
	if codec != "" {
		args = append(args, "-c:a", codec)
	}
	args = append(args,
		"-y", // Overwrite output file if it exists
		destPath,
	)
	return args
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (t *Transcoder) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Output(ctx, t.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	if _, err := t.runner.Output(ctx, t.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// Ensure Transcoder implements audio.Transcoder
var _ audio.Transcoder = (*Transcoder)(nil)
