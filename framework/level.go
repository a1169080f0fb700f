package framework

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level is the verbosity threshold of a LevelLogger. The names match the values accepted by
// the --logging command-line option.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = []string{"debug", "info", "warning", "error", "critical"} //nolint:gochecknoglobals

// LevelNames returns the accepted level names in increasing order of severity.
func LevelNames() []string {
	return append([]string(nil), levelNames...)
}

func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown logging level %q (expected one of %s)", s, strings.Join(levelNames, ", "))
}

func (l Level) String() string {
	if l < LevelDebug || l > LevelCritical {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Set is called by the command line parser
func (l *Level) Set(value string) error {
	parsed, err := ParseLevel(value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LevelLogger writes messages at or above a minimum level to an underlying log.Logger, prefixing
// each one with the upper-case level name.
type LevelLogger struct {
	base *log.Logger
	min  Level
}

func NewLevelLogger(out io.Writer, min Level, flags int) *LevelLogger {
	return &LevelLogger{base: log.New(out, "", flags), min: min}
}

func (l *LevelLogger) Enabled(level Level) bool {
	return l != nil && level >= l.min
}

// At returns a Logger that writes at the specified level, or a null logger if that level is
// disabled.
func (l *LevelLogger) At(level Level) Logger {
	if !l.Enabled(level) {
		return NullLogger()
	}
	return levelWriter{owner: l, level: level}
}

func (l *LevelLogger) Debugf(message string, args ...interface{}) {
	l.logf(LevelDebug, message, args...)
}

func (l *LevelLogger) Infof(message string, args ...interface{}) {
	l.logf(LevelInfo, message, args...)
}

func (l *LevelLogger) Warnf(message string, args ...interface{}) {
	l.logf(LevelWarning, message, args...)
}

func (l *LevelLogger) Errorf(message string, args ...interface{}) {
	l.logf(LevelError, message, args...)
}

func (l *LevelLogger) Criticalf(message string, args ...interface{}) {
	l.logf(LevelCritical, message, args...)
}

func (l *LevelLogger) logf(level Level, message string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.base.Printf("%s: %s", strings.ToUpper(level.String()), fmt.Sprintf(message, args...))
}

type levelWriter struct {
	owner *LevelLogger
	level Level
}

func (w levelWriter) Println(args ...interface{}) {
	w.owner.logf(w.level, "%s", strings.TrimRight(fmt.Sprintln(args...), "\r\n"))
}

func (w levelWriter) Printf(message string, args ...interface{}) {
	w.owner.logf(w.level, message, args...)
}
