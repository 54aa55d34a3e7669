// Package progress is the centralized verbose-output system. The scanner
// reports events; a handler renders them. With progress disabled, reporting
// is a no-op and the scan stays silent.
package progress

import (
	"os"
	"strings"
	"time"
)

// EventType represents the type of progress event
type EventType int

const (
	EventScanStart EventType = iota
	EventScanComplete
	EventEnterDirectory
	EventLeaveDirectory
	EventFileIncluded
	EventFileExcluded
	EventIgnoreContextEnter
	EventIgnoreContextLeave
	EventFileWriting
	EventFileWritten
	EventInfo
)

// Event represents something that happened during scanning
type Event struct {
	Type      EventType
	Path      string
	Info      string
	Reason    string
	Tokens    int
	FileCount int
	DirCount  int
	Duration  time.Duration
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}

// Progress routes scanner events to a handler
type Progress struct {
	enabled     bool
	handler     Handler
	withTimings bool
	dirTimings  map[string]time.Time
}

// New creates a new progress reporter. A nil handler defaults to simple
// line output on stderr.
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{
		enabled:    enabled,
		handler:    handler,
		dirTimings: make(map[string]time.Time),
	}
}

// EnableTimings enables per-directory timing in progress output
func (p *Progress) EnableTimings() {
	p.withTimings = true
}

// Report sends an event to the handler (only if enabled)
func (p *Progress) Report(event Event) {
	if !p.enabled {
		return
	}
	p.handler.Handle(event)
}

// Convenience methods for the scanner to report events

func (p *Progress) ScanStart(path string, excludePatterns []string) {
	p.Report(Event{
		Type: EventScanStart,
		Path: path,
		Info: strings.Join(excludePatterns, ", "),
	})
}

func (p *Progress) ScanComplete(files, dirs int, duration time.Duration) {
	p.Report(Event{
		Type:      EventScanComplete,
		FileCount: files,
		DirCount:  dirs,
		Duration:  duration,
	})
}

func (p *Progress) EnterDirectory(path string) {
	if p.withTimings {
		p.dirTimings[path] = time.Now()
	}
	p.Report(Event{
		Type: EventEnterDirectory,
		Path: path,
	})
}

func (p *Progress) LeaveDirectory(path string) {
	var duration time.Duration
	if p.withTimings {
		if startTime, ok := p.dirTimings[path]; ok {
			duration = time.Since(startTime)
			delete(p.dirTimings, path)
		}
	}
	p.Report(Event{
		Type:     EventLeaveDirectory,
		Path:     path,
		Duration: duration,
	})
}

func (p *Progress) FileIncluded(path string, tokens int) {
	p.Report(Event{
		Type:   EventFileIncluded,
		Path:   path,
		Tokens: tokens,
	})
}

func (p *Progress) FileExcluded(path, reason string) {
	p.Report(Event{
		Type:   EventFileExcluded,
		Path:   path,
		Reason: reason,
	})
}

func (p *Progress) IgnoreContextEnter(path string, patternCount int) {
	p.Report(Event{
		Type:      EventIgnoreContextEnter,
		Path:      path,
		FileCount: patternCount,
	})
}

func (p *Progress) IgnoreContextLeave(path string) {
	p.Report(Event{
		Type: EventIgnoreContextLeave,
		Path: path,
	})
}

func (p *Progress) FileWriting(path string) {
	p.Report(Event{
		Type: EventFileWriting,
		Path: path,
	})
}

func (p *Progress) FileWritten(path string) {
	p.Report(Event{
		Type: EventFileWritten,
		Path: path,
	})
}

func (p *Progress) Info(message string) {
	p.Report(Event{
		Type: EventInfo,
		Info: message,
	})
}
