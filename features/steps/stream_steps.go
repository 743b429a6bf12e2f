//go:build integration

package steps

import (
	"context"
	"fmt"

	"yt2audio/domain/audio"

	"github.com/cucumber/godog"
)

// streamContext holds test state for stream selection scenarios
type streamContext struct {
	streams  []audio.StreamInfo
	selected audio.StreamDescriptor
	resolved string
	err      error
}

// SharedStreamContext is reset before each scenario via Before hook
var SharedStreamContext *streamContext

func getStreamContext() *streamContext {
	return SharedStreamContext
}

func InitializeStreamScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedStreamContext = &streamContext{}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedStreamContext = nil
		return c, nil
	})

	ctx.Step(`^the video offers the streams:$`, theVideoOffersTheStreams)
	ctx.Step(`^I select the best audio stream$`, iSelectTheBestAudioStream)
	ctx.Step(`^the selected stream should have itag "([^"]*)"$`, theSelectedStreamShouldHaveItag)
	ctx.Step(`^the selected stream should have bitrate (\d+)$`, theSelectedStreamShouldHaveBitrate)
	ctx.Step(`^stream selection should fail with no streams available$`, streamSelectionShouldFailWithNoStreamsAvailable)
	ctx.Step(`^I resolve the directory "([^"]*)"$`, iResolveTheDirectory)
	ctx.Step(`^the resolved directory should be "([^"]*)"$`, theResolvedDirectoryShouldBe)
}

func theVideoOffersTheStreams(table *godog.Table) error {
	tc := getStreamContext()
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected itag, mime and bitrate columns, got %d", len(row.Cells))
		}
		tc.streams = append(tc.streams, audio.StreamInfo{
			ID:           row.Cells[0].Value,
			MimeType:     row.Cells[1].Value,
			BitrateLabel: row.Cells[2].Value,
		})
	}
	return nil
}

func iSelectTheBestAudioStream() error {
	tc := getStreamContext()
	tc.selected, tc.err = audio.SelectBestAudioStream(tc.streams)
	return nil
}

func theSelectedStreamShouldHaveItag(itag string) error {
	tc := getStreamContext()
	if tc.err != nil {
		return fmt.Errorf("unexpected error: %v", tc.err)
	}
	if tc.selected.CodecTag != itag {
		return fmt.Errorf("expected itag %s, got %s", itag, tc.selected.CodecTag)
	}
	return nil
}

func theSelectedStreamShouldHaveBitrate(kbps int) error {
	tc := getStreamContext()
	if tc.selected.BitrateKbps != kbps {
		return fmt.Errorf("expected %d kbps, got %d", kbps, tc.selected.BitrateKbps)
	}
	return nil
}

func streamSelectionShouldFailWithNoStreamsAvailable() error {
	tc := getStreamContext()
	if tc.err == nil {
		return fmt.Errorf("expected an error, got stream %s", tc.selected.CodecTag)
	}
	if !errorIs(tc.err, audio.ErrNoStreamsAvailable) {
		return fmt.Errorf("expected ErrNoStreamsAvailable, got %v", tc.err)
	}
	return nil
}

func iResolveTheDirectory(dir string) error {
	getStreamContext().resolved = audio.ResolveDirectory(dir)
	return nil
}

func theResolvedDirectoryShouldBe(want string) error {
	got := getStreamContext().resolved
	if got != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}
