package harness

import (
	"bytes"
	"regexp"
	"sync"

	"github.com/flashboot/autotest/framework"
)

var blankLineRegex = regexp.MustCompile(`^\s*$`) //nolint:gochecknoglobals

// LogWriter is an io.Writer that forwards each complete line of output to a Logger, skipping
// lines that match any of the exclusion patterns. Call Flush after the writer's source has
// finished to emit a trailing partial line.
type LogWriter struct {
	logger       framework.Logger
	excludeRegex []*regexp.Regexp
	pending      []byte
	lock         sync.Mutex
}

// NewLogWriter creates a LogWriter. Blank lines are always excluded.
func NewLogWriter(logger framework.Logger, excludeRegex ...*regexp.Regexp) *LogWriter {
	return &LogWriter{
		logger:       logger,
		excludeRegex: append([]*regexp.Regexp{blankLineRegex}, excludeRegex...),
	}
}

func (w *LogWriter) Write(data []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.pending = append(w.pending, data...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	return len(data), nil
}

func (w *LogWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}
}

func (w *LogWriter) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	for _, r := range w.excludeRegex {
		if r.Match(line) {
			return
		}
	}
	w.logger.Printf("%s", line)
}
