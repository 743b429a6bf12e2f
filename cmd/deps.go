package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"yt2audio/application/pipeline"
	"yt2audio/domain/audio"
	"yt2audio/infrastructure/config"
	"yt2audio/infrastructure/ffmpeg"
	"yt2audio/infrastructure/filesystem"
	"yt2audio/infrastructure/lock"
	"yt2audio/infrastructure/logger"
	"yt2audio/infrastructure/retry"
	"yt2audio/infrastructure/youtube"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// Locker guards the shared temporary download file
type Locker interface {
	Acquire() error
	Release() error
}

// Dependencies are the collaborators a download needs
type Dependencies struct {
	Platform   audio.PlatformClient
	Transcoder audio.Transcoder
	Remover    audio.FileRemover
	OutputDir  string
	TempPath   string
	Lock       Locker
	Logger     *logger.Logger
	Color      bool
}

// NewPipeline builds the pipeline described by d
func (d Dependencies) NewPipeline() *pipeline.Pipeline {
	opts := []pipeline.Option{}
	if d.TempPath != "" {
		opts = append(opts, pipeline.WithTempPath(d.TempPath))
	}
	if d.Logger != nil {
		opts = append(opts, pipeline.WithLogger(d.Logger))
	}
	return pipeline.New(d.Platform, d.Transcoder, d.Remover, d.OutputDir, opts...)
}

// log returns the configured logger, or the one carried by ctx
func (d Dependencies) log(ctx context.Context) *logger.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logger.FromContext(ctx)
}

// productionDependencies wires the real adapters from configuration
func productionDependencies(cfg *config.Config, log *logger.Logger) Dependencies {
	checker := filesystem.NewChecker()

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.Download.Retries

	return Dependencies{
		Platform: youtube.NewClient(
			youtube.WithLogger(log),
			youtube.WithRetry(retryCfg),
		),
		Transcoder: ffmpeg.NewTranscoder(
			ffmpeg.WithFFmpegPath(cfg.FFmpeg.FFmpegPath),
			ffmpeg.WithFFprobePath(cfg.FFmpeg.FFprobePath),
			ffmpeg.WithLogger(log),
		),
		Remover:   checker,
		OutputDir: cfg.OutputDirectory(checker),
		TempPath:  pipeline.DefaultTempFile,
		Lock:      lock.New(lock.PathFor(pipeline.DefaultTempFile)),
		Logger:    log,
		Color:     cfg.Display.Color && isTerminal(os.Stdout),
	}
}

// verifyTranscoder checks that the transcoder's tools are installed, if it can
func verifyTranscoder(ctx context.Context, t audio.Transcoder) error {
	if verifiable, ok := t.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}
	return nil
}

// statusPrinter writes each status message on its own line
type statusPrinter struct {
	out   io.Writer
	color bool
}

func (p *statusPrinter) Status(msg string) {
	if p.color {
		msg = statusColors(msg).Sprint(msg)
	}
	fmt.Fprintln(p.out, msg)
}

func statusColors(msg string) text.Colors {
	switch msg {
	case audio.StatusComplete:
		return text.Colors{text.FgGreen, text.Bold}
	case audio.StatusInvalidTrim, audio.StatusInvalidOutName:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgCyan}
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
