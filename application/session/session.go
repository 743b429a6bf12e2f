package session

import (
	"context"

	"yt2audio/domain/audio"
)

// Runner runs one download-transcode-cleanup sequence
type Runner interface {
	Run(ctx context.Context, resource *audio.Resource, trim audio.TrimRange, spec audio.OutputSpec, sink audio.StatusSink) error
}

// Session holds the active resource and the pending run parameters.
// Setters take effect on the next Trigger. A Session is not safe for
// concurrent use and must not be mutated while Trigger is running.
type Session struct {
	runner   Runner
	resource *audio.Resource
	info     *audio.DisplayInfo
	start    float64
	end      *float64
	fileName string
	format   audio.Format
}

// New creates a session with default pending fields
func New(runner Runner) *Session {
	return &Session{
		runner:   runner,
		fileName: audio.DefaultFileName,
		format:   audio.DefaultFormat,
	}
}

// SetResource makes r the active resource, replacing any previous one
func (s *Session) SetResource(r *audio.Resource, info audio.DisplayInfo) {
	s.resource = r
	s.info = &info
}

// ClearResource drops the active resource and its display info
func (s *Session) ClearResource() {
	s.resource = nil
	s.info = nil
}

// Resource returns the active resource, or nil
func (s *Session) Resource() *audio.Resource {
	return s.resource
}

// Info returns the display info of the active resource
func (s *Session) Info() (audio.DisplayInfo, bool) {
	if s.info == nil {
		return audio.DisplayInfo{}, false
	}
	return *s.info, true
}

// SetStart sets the trim start in seconds
func (s *Session) SetStart(seconds float64) {
	s.start = seconds
}

// ResetStart restores the default start of 0
func (s *Session) ResetStart() {
	s.start = 0
}

// SetEnd sets the trim end in seconds
func (s *Session) SetEnd(seconds float64) {
	s.end = &seconds
}

// ResetEnd restores the default unbounded end
func (s *Session) ResetEnd() {
	s.end = nil
}

// SetFileName sets the output file name without extension. An empty name
// restores the default.
func (s *Session) SetFileName(name string) {
	if name == "" {
		name = audio.DefaultFileName
	}
	s.fileName = name
}

// SetFormat sets the output format
func (s *Session) SetFormat(f audio.Format) {
	s.format = f
}

// Trim returns the pending trim range
func (s *Session) Trim() audio.TrimRange {
	r := audio.TrimRange{Start: s.start}
	if s.end != nil {
		end := *s.end
		r.End = &end
	}
	return r
}

// Output returns the pending output spec
func (s *Session) Output() audio.OutputSpec {
	return audio.OutputSpec{FileName: s.fileName, Format: s.format}
}

// Trigger runs the pipeline with a snapshot of the pending fields. It does
// nothing, and reports nothing, when no resource is active.
func (s *Session) Trigger(ctx context.Context, sink audio.StatusSink) error {
	if s.resource == nil {
		return nil
	}
	return s.runner.Run(ctx, s.resource, s.Trim(), s.Output(), sink)
}
