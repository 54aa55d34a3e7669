package progress

import (
	"fmt"
	"io"
)

// SimpleHandler outputs events as simple prefixed lines
type SimpleHandler struct {
	writer io.Writer
}

func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventScanStart:
		fmt.Fprintf(h.writer, "[SCAN] Starting: %s\n", event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "[SCAN] Excluding: %s\n", event.Info)
		}

	case EventScanComplete:
		fmt.Fprintf(h.writer, "[SCAN] Completed: %d files, %d directories in %.1fs\n",
			event.FileCount, event.DirCount, event.Duration.Seconds())

	case EventEnterDirectory:
		fmt.Fprintf(h.writer, "[DIR]  Entering: %s\n", event.Path)

	case EventLeaveDirectory:
		if event.Duration > 0 {
			fmt.Fprintf(h.writer, "[TIME] %s: %.2fs\n", event.Path, event.Duration.Seconds())
		}

	case EventFileIncluded:
		fmt.Fprintf(h.writer, "[FILE] Including: %s (~%d tokens)\n", event.Path, event.Tokens)

	case EventFileExcluded:
		fmt.Fprintf(h.writer, "[SKIP] Excluding: %s (%s)\n", event.Path, event.Reason)

	case EventIgnoreContextEnter:
		fmt.Fprintf(h.writer, "[IGN]  Ignore context: %s (%d patterns)\n", event.Path, event.FileCount)

	case EventIgnoreContextLeave:
		fmt.Fprintf(h.writer, "[IGN]  Ignore context removed: %s\n", event.Path)

	case EventFileWriting:
		fmt.Fprintf(h.writer, "[OUT]  Writing results to: %s\n", event.Path)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "[OUT]  Results written: %s\n", event.Path)

	case EventInfo:
		fmt.Fprintf(h.writer, "[INFO] %s\n", event.Info)
	}
}

// NullHandler discards all events
type NullHandler struct{}

func (NullHandler) Handle(Event) {}
