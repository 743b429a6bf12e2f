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
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Download interactively, one video after another",
	Long: `Prompts for a URL, shows the video's details, then asks for start, end,
file name and format before downloading. Repeats until an empty URL is entered.`,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) {
		return fmt.Errorf("session needs an interactive terminal; use 'yt2audio download' instead")
	}
	deps := productionDependencies(GetConfig(), logger.FromContext(cmd.Context()))
	return RunSessionWithPrompter(cmd.Context(), DefaultPrompter, deps, os.Stdout)
}

// RunSessionWithPrompter runs the interactive loop with a given prompter (for testing)
func RunSessionWithPrompter(ctx context.Context, prompter Prompter, deps Dependencies, output OutputWriter) error {
	if err := verifyTranscoder(ctx, deps.Transcoder); err != nil {
		return err
	}

	prober := probe.NewService(deps.Platform)
	sess := session.New(deps.NewPipeline())

	for {
		url, err := prompter.Input("URL (empty to quit):", "")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if url == "" {
			return nil
		}

		result, err := prober.ValidateAndDescribe(ctx, url)
		if err != nil {
			sess.ClearResource()
			fmt.Fprintln(output, invalidURLMessage)
			continue
		}
		sess.SetResource(result.Resource, result.Info)
		fmt.Fprint(output, result.Info.String())

		if err := promptParameters(prompter, sess, output); err != nil {
			return err
		}

		download, err := prompter.Confirm("Download?", true)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !download {
			continue
		}

		if err := trigger(ctx, deps, sess, output); err != nil {
			fmt.Fprintf(output, "Error: %v\n", err)
		}
	}
}

func promptParameters(prompter Prompter, sess *session.Session, output OutputWriter) error {
	start, ok, err := promptTime(prompter, "Start:", output)
	if err != nil {
		return err
	}
	if ok {
		sess.SetStart(start)
	} else {
		sess.ResetStart()
	}

	end, ok, err := promptTime(prompter, "End:", output)
	if err != nil {
		return err
	}
	if ok {
		sess.SetEnd(end)
	} else {
		sess.ResetEnd()
	}

	name, err := prompter.Input("Output File Name:", sess.Output().FileName)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	sess.SetFileName(name)

	options := make([]string, 0, len(audio.Formats()))
	for _, f := range audio.Formats() {
		options = append(options, string(f))
	}
	choice, err := prompter.Select("Format:", options, string(sess.Output().Format))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	format, err := audio.ParseFormat(choice)
	if err != nil {
		return err
	}
	sess.SetFormat(format)
	return nil
}

// promptTime asks until the answer parses; an empty answer keeps the default
func promptTime(prompter Prompter, message string, output OutputWriter) (float64, bool, error) {
	for {
		answer, err := prompter.Input(message, "")
		if err != nil {
			return 0, false, fmt.Errorf("prompt cancelled")
		}
		seconds, ok, err := audio.ParseTimeValue(answer)
		if err == nil {
			return seconds, ok, nil
		}
		fmt.Fprintln(output, err)
	}
}
