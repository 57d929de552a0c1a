// Package diagnostics provides the indented console log used while a run
// walks through nested steps (repository → manifest → package).
package diagnostics

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const indentUnit = "  "

// Log writes messages prefixed by its nesting depth. It is a value: Indent
// returns a deeper copy and leaves the receiver untouched, so leaving a
// scope (by return, continue or error) restores the outer depth.
type Log struct {
	entry logger.FieldLogger
	depth int
}

// New returns a root-level log writing through the given logger.
func New(entry logger.FieldLogger) Log {
	return Log{entry: entry}
}

// Standard returns a root-level log writing through the standard logrus logger.
func Standard() Log {
	return New(logger.StandardLogger())
}

// Indent returns a log one level deeper.
func (l Log) Indent() Log {
	return Log{entry: l.entry, depth: l.depth + 1}
}

func (l Log) Debugf(format string, args ...any) {
	l.entry.Debug(l.prefix(format, args...))
}

func (l Log) Infof(format string, args ...any) {
	l.entry.Info(l.prefix(format, args...))
}

func (l Log) Warnf(format string, args ...any) {
	l.entry.Warn(l.prefix(format, args...))
}

func (l Log) Errorf(format string, args ...any) {
	l.entry.Error(l.prefix(format, args...))
}

func (l Log) prefix(format string, args ...any) string {
	return strings.Repeat(indentUnit, l.depth) + fmt.Sprintf(format, args...)
}
