//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2audio/cmd"

	"github.com/cucumber/godog"
)

// downloadContext holds test state for download scenarios
type downloadContext struct {
	tempDir    string
	outputDir  string
	platform   *mockPlatform
	transcoder *mockTranscoder
	input      cmd.DownloadInput
	output     *bytes.Buffer
	err        error
}

// SharedDownloadContext is reset before each scenario via Before hook
var SharedDownloadContext *downloadContext

func getDownloadContext() *downloadContext {
	return SharedDownloadContext
}

func (d *downloadContext) dependencies() cmd.Dependencies {
	return cmd.Dependencies{
		Platform:   d.platform,
		Transcoder: d.transcoder,
		Remover:    osRemover{},
		OutputDir:  d.outputDir,
		TempPath:   d.tempPath(),
	}
}

func (d *downloadContext) tempPath() string {
	return filepath.Join(d.tempDir, "tmp_dl.mp4")
}

func InitializeDownloadScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "download-test-*")
		if err != nil {
			return c, err
		}
		SharedDownloadContext = &downloadContext{
			tempDir:    tempDir,
			outputDir:  tempDir,
			platform:   newMockPlatform(),
			transcoder: &mockTranscoder{duration: 212},
			input:      cmd.DownloadInput{URL: validURL},
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := getDownloadContext(); tc != nil && tc.tempDir != "" {
			os.RemoveAll(tc.tempDir)
		}
		SharedDownloadContext = nil
		return c, nil
	})

	ctx.Step(`^the output directory is "([^"]*)"$`, theOutputDirectoryIs)
	ctx.Step(`^I download "([^"]*)"$`, iDownload)
	ctx.Step(`^I download the video from "([^"]*)" to "([^"]*)" as "([^"]*)" in format "([^"]*)"$`, iDownloadTheVideoFromToAsInFormat)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should not contain "([^"]*)"$`, theOutputShouldNotContain)
	ctx.Step(`^the file "([^"]*)" should exist in the output directory$`, theFileShouldExistInTheOutputDirectory)
	ctx.Step(`^the temporary download should be removed$`, theTemporaryDownloadShouldBeRemoved)
	ctx.Step(`^the temporary download should remain$`, theTemporaryDownloadShouldRemain)
	ctx.Step(`^the stream with itag "([^"]*)" should have been downloaded$`, theStreamWithItagShouldHaveBeenDownloaded)
	ctx.Step(`^the download should fail$`, theDownloadShouldFail)
	ctx.Step(`^the download should succeed$`, theDownloadShouldSucceed)
}

func theOutputDirectoryIs(dir string) error {
	tc := getDownloadContext()
	tc.outputDir = filepath.Join(tc.tempDir, dir)
	if strings.HasSuffix(dir, "/") {
		tc.outputDir += "/"
	}
	return os.MkdirAll(tc.outputDir, 0755)
}

func iDownload(url string) error {
	tc := getDownloadContext()
	tc.input.URL = url
	tc.err = cmd.RunDownloadWithDependencies(context.Background(), tc.dependencies(), tc.input, tc.output)
	return nil
}

func iDownloadTheVideoFromToAsInFormat(start, end, name, format string) error {
	tc := getDownloadContext()
	tc.input = cmd.DownloadInput{
		URL:      validURL,
		Start:    start,
		End:      end,
		FileName: name,
		Format:   format,
	}
	tc.err = cmd.RunDownloadWithDependencies(context.Background(), tc.dependencies(), tc.input, tc.output)
	return nil
}

func theOutputShouldContain(text string) error {
	tc := getDownloadContext()
	if !strings.Contains(tc.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, tc.output.String())
	}
	return nil
}

func theOutputShouldNotContain(text string) error {
	tc := getDownloadContext()
	if strings.Contains(tc.output.String(), text) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", text, tc.output.String())
	}
	return nil
}

func theFileShouldExistInTheOutputDirectory(name string) error {
	tc := getDownloadContext()
	path := filepath.Join(tc.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected %s to exist: %v", path, err)
	}
	return nil
}

func theTemporaryDownloadShouldBeRemoved() error {
	tc := getDownloadContext()
	if _, err := os.Stat(tc.tempPath()); !os.IsNotExist(err) {
		return fmt.Errorf("expected %s to be removed", tc.tempPath())
	}
	return nil
}

func theTemporaryDownloadShouldRemain() error {
	tc := getDownloadContext()
	if _, err := os.Stat(tc.tempPath()); err != nil {
		return fmt.Errorf("expected %s to remain: %v", tc.tempPath(), err)
	}
	return nil
}

func theStreamWithItagShouldHaveBeenDownloaded(itag string) error {
	tc := getDownloadContext()
	for _, got := range tc.platform.materialized {
		if got == itag {
			return nil
		}
	}
	return fmt.Errorf("expected itag %s to be downloaded, got %v", itag, tc.platform.materialized)
}

func theDownloadShouldFail() error {
	if getDownloadContext().err == nil {
		return fmt.Errorf("expected an error")
	}
	return nil
}

func theDownloadShouldSucceed() error {
	if err := getDownloadContext().err; err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}
