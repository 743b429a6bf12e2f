package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"yt2audio/domain/audio"
	"yt2audio/infrastructure/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunDownloadWithDependencies_Success(t *testing.T) {
	td := newTestDeps("out/")
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{
		URL:      testURL,
		Start:    "10",
		End:      "(0, 20)",
		FileName: "clip",
		Format:   "mp3",
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Never Gonna Give You Up",
		"3 minutes 32 seconds",
		"Uploaded: 2009-10-25 by Rick Astley",
		audio.StatusDownloading,
		audio.StatusComplete,
	} {
		if !contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if len(td.platform.materialized) != 1 || td.platform.materialized[0] != "140" {
		t.Errorf("materialized = %v, want [140]", td.platform.materialized)
	}
	if len(td.transcoder.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(td.transcoder.writes))
	}
	w := td.transcoder.writes[0]
	if w.dest != filepath.Join("out", "clip.mp3") {
		t.Errorf("dest = %q", w.dest)
	}
	if w.codec != "" {
		t.Errorf("codec = %q, want empty for mp3", w.codec)
	}
	if w.trim.String() != "10-20" {
		t.Errorf("trim = %s, want 10-20", w.trim)
	}
	if len(td.remover.removed) != 1 || td.remover.removed[0] != "tmp_dl.mp4" {
		t.Errorf("removed = %v", td.remover.removed)
	}
	if td.lock.acquired != 1 || td.lock.released != 1 {
		t.Errorf("lock acquired=%d released=%d", td.lock.acquired, td.lock.released)
	}
}

func TestRunDownloadWithDependencies_Defaults(t *testing.T) {
	td := newTestDeps("")
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{URL: testURL}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := td.transcoder.writes[0]
	if w.dest != "output_audio_file.aac" {
		t.Errorf("dest = %q, want output_audio_file.aac", w.dest)
	}
	if w.codec != "aac" {
		t.Errorf("codec = %q, want aac", w.codec)
	}
	if !w.trim.Unbounded() || w.trim.Start != 0 {
		t.Errorf("trim = %s, want 0-end", w.trim)
	}
}

func TestRunDownloadWithDependencies_InvalidTrimReportsStatus(t *testing.T) {
	td := newTestDeps("")
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{
		URL:   testURL,
		Start: "30",
		End:   "20",
	}, &out)
	if err != nil {
		t.Fatalf("invalid trim should not be an error, got %v", err)
	}
	if !contains(out.String(), audio.StatusInvalidTrim) {
		t.Errorf("expected %q in output:\n%s", audio.StatusInvalidTrim, out.String())
	}
	if contains(out.String(), audio.StatusComplete) {
		t.Error("did not expect completion message")
	}
	if len(td.remover.removed) != 0 {
		t.Errorf("temp file should be kept, removed %v", td.remover.removed)
	}
}

func TestRunDownloadWithDependencies_WriteFailureReportsStatus(t *testing.T) {
	td := newTestDeps("")
	td.transcoder.writeErr = audio.ErrTranscodeFailure
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{URL: testURL, FileName: "bad/name"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(out.String(), audio.StatusInvalidOutName) {
		t.Errorf("expected %q in output:\n%s", audio.StatusInvalidOutName, out.String())
	}
}

func TestRunDownloadWithDependencies_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   DownloadInput
		wantErr string
	}{
		{"bad start", DownloadInput{URL: testURL, Start: "abc"}, "invalid start time"},
		{"bad end", DownloadInput{URL: testURL, End: "-5"}, "invalid end time"},
		{"bad format", DownloadInput{URL: testURL, Format: "flac"}, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := newTestDeps("")
			var out bytes.Buffer

			err := RunDownloadWithDependencies(context.Background(), td.Dependencies, tt.input, &out)
			if err == nil {
				t.Fatal("expected error")
			}
			if !contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
			if len(td.platform.probed) != 0 {
				t.Error("URL should not be probed when parameters are invalid")
			}
		})
	}
}

func TestRunDownloadWithDependencies_InvalidURL(t *testing.T) {
	td := newTestDeps("")
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{URL: "not a url"}, &out)
	if !errors.Is(err, audio.ErrInvalidResourceURL) {
		t.Fatalf("expected ErrInvalidResourceURL, got %v", err)
	}
	if !contains(out.String(), invalidURLMessage) {
		t.Errorf("expected %q in output", invalidURLMessage)
	}
	if len(td.platform.materialized) != 0 {
		t.Error("nothing should be downloaded")
	}
}

func TestRunDownloadWithDependencies_LockBusy(t *testing.T) {
	td := newTestDeps("")
	td.lock.busy = true
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{URL: testURL}, &out)
	if err == nil {
		t.Fatal("expected error when lock is held")
	}
	if len(td.platform.materialized) != 0 {
		t.Error("nothing should be downloaded while locked")
	}
}

func TestStatusPrinter_Plain(t *testing.T) {
	var out bytes.Buffer
	p := &statusPrinter{out: &out}
	p.Status(audio.StatusDownloading)
	if out.String() != audio.StatusDownloading+"\n" {
		t.Errorf("uncolored status = %q", out.String())
	}
}

func TestRunDownloadWithDependencies_ReleaseFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	td := newTestDeps("")
	td.lock.releaseErr = errors.New("unlock failed")
	td.Logger = logger.FromZap(zap.New(core))
	var out bytes.Buffer

	err := RunDownloadWithDependencies(context.Background(), td.Dependencies, DownloadInput{URL: testURL}, &out)
	if err != nil {
		t.Fatalf("a failed release should not fail the download, got %v", err)
	}
	if !contains(out.String(), audio.StatusComplete) {
		t.Errorf("expected completion:\n%s", out.String())
	}

	entries := logs.FilterMessage("failed to release run lock").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 release warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "unlock failed" {
		t.Errorf("logged error = %v, want unlock failed", got)
	}
}
