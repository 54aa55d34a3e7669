package progress

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	events []Event
}

func (h *recordingHandler) Handle(event Event) {
	h.events = append(h.events, event)
}

func TestProgress_DisabledReportsNothing(t *testing.T) {
	handler := &recordingHandler{}
	p := New(false, handler)

	p.ScanStart("/repo", nil)
	p.FileIncluded("main.go", 120)
	p.ScanComplete(1, 1, time.Second)

	assert.Empty(t, handler.events)
}

func TestProgress_EventsReachHandler(t *testing.T) {
	handler := &recordingHandler{}
	p := New(true, handler)

	p.ScanStart("/repo", []string{"*.log", "tmp"})
	p.EnterDirectory("/repo/src")
	p.FileExcluded("/repo/src/a.bin", "binary content")
	p.FileIncluded("/repo/src/main.go", 250)
	p.ScanComplete(2, 1, 3*time.Second)

	assert.Len(t, handler.events, 5)
	assert.Equal(t, EventScanStart, handler.events[0].Type)
	assert.Equal(t, "*.log, tmp", handler.events[0].Info)
	assert.Equal(t, "binary content", handler.events[2].Reason)
	assert.Equal(t, 250, handler.events[3].Tokens)
	assert.Equal(t, 2, handler.events[4].FileCount)
}

func TestProgress_DirectoryTimings(t *testing.T) {
	handler := &recordingHandler{}
	p := New(true, handler)
	p.EnableTimings()

	p.EnterDirectory("/repo/internal")
	time.Sleep(5 * time.Millisecond)
	p.LeaveDirectory("/repo/internal")

	leave := handler.events[1]
	assert.Equal(t, EventLeaveDirectory, leave.Type)
	assert.Greater(t, leave.Duration, time.Duration(0))
}

func TestSimpleHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	h := NewSimpleHandler(&buf)

	h.Handle(Event{Type: EventScanStart, Path: "/repo", Info: "node_modules"})
	h.Handle(Event{Type: EventFileExcluded, Path: "a.png", Reason: "binary content"})
	h.Handle(Event{Type: EventFileIncluded, Path: "main.go", Tokens: 42})
	h.Handle(Event{Type: EventScanComplete, FileCount: 1, DirCount: 1, Duration: time.Second})

	out := buf.String()
	assert.Contains(t, out, "[SCAN] Starting: /repo")
	assert.Contains(t, out, "[SCAN] Excluding: node_modules")
	assert.Contains(t, out, "[SKIP] Excluding: a.png (binary content)")
	assert.Contains(t, out, "[FILE] Including: main.go (~42 tokens)")
	assert.Contains(t, out, "[SCAN] Completed: 1 files, 1 directories")
}
