package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"yt2audio/application/probe"
	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var infoURL string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show details of a video",
	Long: `Validate a YouTube URL and show the video's title, length, upload date and author.

Example:
  yt2audio info --url https://youtu.be/dQw4w9WgXcQ`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoURL, "url", "", "YouTube video URL (required)")
	infoCmd.MarkFlagRequired("url")
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	deps := productionDependencies(cfg, logger.FromContext(cmd.Context()))
	return RunInfoWithDependencies(cmd.Context(), deps.Platform, infoURL, cfg.Display.TableStyle, os.Stdout)
}

// RunInfoWithDependencies runs the info command with injected dependencies (for testing)
func RunInfoWithDependencies(ctx context.Context, platform audio.PlatformClient, url, tableStyle string, output OutputWriter) error {
	result, err := probe.NewService(platform).ValidateAndDescribe(ctx, url)
	if err != nil {
		fmt.Fprintln(output, invalidURLMessage)
		return err
	}

	renderInfo(output, result.Info, tableStyle)
	return nil
}

const invalidURLMessage = "Enter a valid YouTube link."

// renderInfo prints the display info as a two-column table
func renderInfo(output OutputWriter, info audio.DisplayInfo, style string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(output)
	tw.SetStyle(tableStyle(style))
	tw.AppendRows([]table.Row{
		{"Title", info.Title},
		{"Length", strconv.Itoa(info.DurationMinutes) + " minutes " + strconv.Itoa(info.DurationSeconds) + " seconds"},
		{"Uploaded", info.UploadDateString()},
		{"Author", info.Author},
	})
	tw.Render()
}

func tableStyle(name string) table.Style {
	switch name {
	case "rounded":
		return table.StyleRounded
	case "light":
		return table.StyleLight
	case "bold":
		return table.StyleBold
	default:
		return table.StyleDefault
	}
}
