//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2audio/application/pipeline"
	"yt2audio/application/session"
	"yt2audio/cmd"
	"yt2audio/domain/audio"

	"github.com/cucumber/godog"
)

// sessionContext holds test state for interactive session scenarios
type sessionContext struct {
	tempDir    string
	platform   *mockPlatform
	transcoder *mockTranscoder
	prompter   *MockPrompter
	messages   []string
	output     *bytes.Buffer
	err        error
}

// SharedSessionContext is reset before each scenario via Before hook
var SharedSessionContext *sessionContext

func getSessionContext() *sessionContext {
	return SharedSessionContext
}

func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "session-test-*")
		if err != nil {
			return c, err
		}
		SharedSessionContext = &sessionContext{
			tempDir:    tempDir,
			platform:   newMockPlatform(),
			transcoder: &mockTranscoder{duration: 212},
			prompter:   &MockPrompter{},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := getSessionContext(); tc != nil && tc.tempDir != "" {
			os.RemoveAll(tc.tempDir)
		}
		SharedSessionContext = nil
		return c, nil
	})

	ctx.Step(`^a session with no video selected$`, aSessionWithNoVideoSelected)
	ctx.Step(`^I trigger the download$`, iTriggerTheDownload)
	ctx.Step(`^no status messages should be reported$`, noStatusMessagesShouldBeReported)
	ctx.Step(`^nothing should have been downloaded$`, nothingShouldHaveBeenDownloaded)
	ctx.Step(`^I answer the session prompts with:$`, iAnswerTheSessionPromptsWith)
	ctx.Step(`^I choose format "([^"]*)" and confirm the download$`, iChooseFormatAndConfirmTheDownload)
	ctx.Step(`^I run the interactive session$`, iRunTheInteractiveSession)
	ctx.Step(`^the session output should contain "([^"]*)"$`, theSessionOutputShouldContain)
	ctx.Step(`^the session should have written "([^"]*)"$`, theSessionShouldHaveWritten)
}

func (s *sessionContext) dependencies() cmd.Dependencies {
	return cmd.Dependencies{
		Platform:   s.platform,
		Transcoder: s.transcoder,
		Remover:    osRemover{},
		OutputDir:  s.tempDir,
		TempPath:   filepath.Join(s.tempDir, "tmp_dl.mp4"),
	}
}

func aSessionWithNoVideoSelected() error {
	return nil
}

func iTriggerTheDownload() error {
	tc := getSessionContext()
	deps := tc.dependencies()
	sess := session.New(pipeline.New(deps.Platform, deps.Transcoder, deps.Remover, deps.OutputDir,
		pipeline.WithTempPath(deps.TempPath)))
	tc.err = sess.Trigger(context.Background(), audio.StatusFunc(func(msg string) {
		tc.messages = append(tc.messages, msg)
	}))
	return nil
}

func noStatusMessagesShouldBeReported() error {
	tc := getSessionContext()
	if tc.err != nil {
		return fmt.Errorf("unexpected error: %v", tc.err)
	}
	if len(tc.messages) != 0 {
		return fmt.Errorf("expected no messages, got %v", tc.messages)
	}
	return nil
}

func nothingShouldHaveBeenDownloaded() error {
	tc := getSessionContext()
	if len(tc.platform.materialized) != 0 {
		return fmt.Errorf("expected no downloads, got %v", tc.platform.materialized)
	}
	return nil
}

func iAnswerTheSessionPromptsWith(table *godog.Table) error {
	tc := getSessionContext()
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		tc.prompter.inputResponses = append(tc.prompter.inputResponses, row.Cells[1].Value)
	}
	return nil
}

func iChooseFormatAndConfirmTheDownload(format string) error {
	tc := getSessionContext()
	tc.prompter.selectResponses = append(tc.prompter.selectResponses, format)
	tc.prompter.confirmResponses = append(tc.prompter.confirmResponses, true)
	return nil
}

func iRunTheInteractiveSession() error {
	tc := getSessionContext()
	// an empty URL ends the session
	tc.prompter.inputResponses = append(tc.prompter.inputResponses, "")
	tc.err = cmd.RunSessionWithPrompter(context.Background(), tc.prompter, tc.dependencies(), tc.output)
	return nil
}

func theSessionOutputShouldContain(text string) error {
	tc := getSessionContext()
	if !strings.Contains(tc.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, tc.output.String())
	}
	return nil
}

func theSessionShouldHaveWritten(name string) error {
	tc := getSessionContext()
	if tc.err != nil {
		return fmt.Errorf("unexpected error: %v", tc.err)
	}
	path := filepath.Join(tc.tempDir, name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected %s to exist: %v", path, err)
	}
	return nil
}
