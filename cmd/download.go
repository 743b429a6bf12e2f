package cmd

import (
	"context"
	"fmt"
	"os"

	"yt2audio/application/probe"
	"yt2audio/application/session"
	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	downloadURL    string
	downloadStart  string
	downloadEnd    string
	downloadName   string
	downloadFormat string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a video's audio and convert it",
	Long: `Download the highest bitrate audio stream of a video, trim it, and convert it.

Start and end accept seconds ("90"), "(minutes, seconds)", "(hours, minutes, seconds)",
MM:SS or HH:MM:SS. An empty start means the beginning, an empty end means the end.
The file is written to the configured directory, or the current directory.

Example:
  yt2audio download --url https://youtu.be/dQw4w9WgXcQ
  yt2audio download --url https://youtu.be/dQw4w9WgXcQ --start 10 --end 20 --name clip --format mp3`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&downloadURL, "url", "", "YouTube video URL (required)")
	downloadCmd.Flags().StringVar(&downloadStart, "start", "", "Start time (default: beginning)")
	downloadCmd.Flags().StringVar(&downloadEnd, "end", "", "End time (default: end of video)")
	downloadCmd.Flags().StringVar(&downloadName, "name", audio.DefaultFileName, "Output file name without extension")
	downloadCmd.Flags().StringVar(&downloadFormat, "format", string(audio.DefaultFormat), "Output format: aac or mp3")
	downloadCmd.MarkFlagRequired("url")
}

// DownloadInput contains the parameters of one download
type DownloadInput struct {
	URL      string
	Start    string
	End      string
	FileName string
	Format   string
}

func runDownload(cmd *cobra.Command, args []string) error {
	deps := productionDependencies(GetConfig(), logger.FromContext(cmd.Context()))

	input := DownloadInput{
		URL:      downloadURL,
		Start:    downloadStart,
		End:      downloadEnd,
		FileName: downloadName,
		Format:   downloadFormat,
	}

	return RunDownloadWithDependencies(cmd.Context(), deps, input, os.Stdout)
}

// RunDownloadWithDependencies runs the download command with injected dependencies (for testing)
func RunDownloadWithDependencies(ctx context.Context, deps Dependencies, input DownloadInput, output OutputWriter) error {
	sess := session.New(deps.NewPipeline())
	if err := applyParameters(sess, input); err != nil {
		return err
	}

	if err := verifyTranscoder(ctx, deps.Transcoder); err != nil {
		return err
	}

	result, err := probe.NewService(deps.Platform).ValidateAndDescribe(ctx, input.URL)
	if err != nil {
		fmt.Fprintln(output, invalidURLMessage)
		return err
	}
	sess.SetResource(result.Resource, result.Info)
	fmt.Fprint(output, result.Info.String())

	return trigger(ctx, deps, sess, output)
}

// applyParameters parses user input into the session's pending fields
func applyParameters(sess *session.Session, input DownloadInput) error {
	start, ok, err := audio.ParseTimeValue(input.Start)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	if ok {
		sess.SetStart(start)
	} else {
		sess.ResetStart()
	}

	end, ok, err := audio.ParseTimeValue(input.End)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if ok {
		sess.SetEnd(end)
	} else {
		sess.ResetEnd()
	}

	format, err := audio.ParseFormat(input.Format)
	if err != nil {
		return err
	}
	sess.SetFormat(format)
	sess.SetFileName(input.FileName)
	return nil
}

// trigger runs the session under the run lock, printing status lines
func trigger(ctx context.Context, deps Dependencies, sess *session.Session, output OutputWriter) error {
	if deps.Lock != nil {
		if err := deps.Lock.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := deps.Lock.Release(); err != nil {
				deps.log(ctx).Warn("failed to release run lock", zap.Error(err))
			}
		}()
	}

	sink := &statusPrinter{out: output, color: deps.Color}
	if err := sess.Trigger(ctx, sink); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	return nil
}
