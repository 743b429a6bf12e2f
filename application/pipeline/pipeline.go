package pipeline

import (
	"context"
	"errors"
	"fmt"

	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTempFile is the fixed name the selected stream is downloaded to
const DefaultTempFile = "tmp_dl.mp4"

// Pipeline downloads the best audio stream of a resource, transcodes it to the
// requested format and removes the temporary download.
//
// Run is synchronous and not re-entrant: two concurrent runs share the temp file.
type Pipeline struct {
	platform   audio.PlatformClient
	transcoder audio.Transcoder
	remover    audio.FileRemover
	outputDir  string
	tempPath   string
	log        *logger.Logger
}

// Option is a functional option for configuring Pipeline
type Option func(*Pipeline)

// WithTempPath overrides the temporary download path
func WithTempPath(path string) Option {
	return func(p *Pipeline) {
		p.tempPath = path
	}
}

// WithLogger sets the logger. Without it, Run logs to the logger carried by ctx.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// New creates a Pipeline writing into outputDir ("" for the working directory)
func New(platform audio.PlatformClient, transcoder audio.Transcoder, remover audio.FileRemover, outputDir string, opts ...Option) *Pipeline {
	p := &Pipeline{
		platform:   platform,
		transcoder: transcoder,
		remover:    remover,
		outputDir:  outputDir,
		tempPath:   DefaultTempFile,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// TempPath returns the temporary download path
func (p *Pipeline) TempPath() string {
	return p.tempPath
}

// Run executes fetch, transcode and cleanup in order. Fetch failures are
// returned to the caller; transcode outcomes are reported only through sink.
func (p *Pipeline) Run(ctx context.Context, resource *audio.Resource, trim audio.TrimRange, spec audio.OutputSpec, sink audio.StatusSink) error {
	base := p.log
	if base == nil {
		base = logger.FromContext(ctx)
	}
	log := base.With(zap.String("run_id", uuid.NewString()), zap.String("resource", resource.ID))

	if err := p.fetch(ctx, log, resource, sink); err != nil {
		return err
	}

	if !p.transcode(ctx, log, trim, spec, sink) {
		return nil
	}

	p.cleanup(log)
	return nil
}

// fetch selects the best stream and downloads it to the temp path
func (p *Pipeline) fetch(ctx context.Context, log *logger.Logger, resource *audio.Resource, sink audio.StatusSink) error {
	streams, err := p.platform.ListAudioStreams(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to list audio streams: %w", err)
	}

	stream, err := audio.SelectBestAudioStream(streams)
	if err != nil {
		return err
	}
	log.Info("selected stream",
		zap.String("itag", stream.CodecTag),
		zap.String("mime", stream.MimeType),
		zap.Int("kbps", stream.BitrateKbps),
	)

	sink.Status(audio.StatusDownloading)

	if err := p.platform.Materialize(ctx, resource, stream.CodecTag, p.tempPath); err != nil {
		return fmt.Errorf("failed to download stream %s: %w", stream.CodecTag, err)
	}
	log.Info("downloaded stream", zap.String("path", p.tempPath))
	return nil
}

// transcode reports exactly one outcome and returns true on success
func (p *Pipeline) transcode(ctx context.Context, log *logger.Logger, trim audio.TrimRange, spec audio.OutputSpec, sink audio.StatusSink) bool {
	clip, err := p.transcoder.OpenSubrange(ctx, p.tempPath, trim)
	if err != nil {
		log.Warn("cannot open sub-range", zap.Stringer("range", trim), zap.Error(err))
		sink.Status(audio.StatusInvalidTrim)
		return false
	}

	dest := spec.DestinationPath(audio.ResolveDirectory(p.outputDir))
	format := spec.Format
	if format == "" {
		format = audio.DefaultFormat
	}

	if err := p.transcoder.WriteAs(ctx, clip, dest, format.Codec()); err != nil {
		log.Warn("transcode failed", zap.String("dest", dest), zap.Error(err))
		sink.Status(audio.StatusInvalidOutName)
		return false
	}

	log.Info("wrote output", zap.String("dest", dest), zap.Stringer("range", trim))
	sink.Status(audio.StatusComplete)
	return true
}

// cleanup removes the temp download. Failure is logged and otherwise ignored.
func (p *Pipeline) cleanup(log *logger.Logger) {
	if err := p.remover.Remove(p.tempPath); err != nil {
		err = errors.Join(audio.ErrTempCleanupFailure, err)
		log.Warn("temp cleanup failed", zap.String("path", p.tempPath), zap.Error(err))
	}
}
