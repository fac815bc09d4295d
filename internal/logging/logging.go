package logging

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger with the election FSM's Debugf/Infof/Warnf
// surface, and colorizes the level prefix the way the rest of the cluster
// colorizes its own terminal output.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger for the given member, tagging every line with
// member_id so multi-member demo runs can be told apart in one terminal.
func New(memberID int32) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{entry: base.WithField("member_id", memberID)}
}

// WithFields returns a Logger scoped to the given additional structured
// fields (e.g. term, state), without mutating the receiver.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(color.GreenString(format), args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(color.WhiteString(format), args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(color.YellowString(format), args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(color.RedString(format), args...)
}

// Fatalf logs at fatal level and terminates the process. cmd/election/node
// uses it for startup failures (data directory, recording log, listener);
// its tick loop logs Tick errors with Warnf. The election package never
// calls it.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.entry.Fatalf(color.RedString(format), args...)
}

// SetLevel adjusts the minimum logged level.
func (l *Logger) SetLevel(level logrus.Level) {
	l.entry.Logger.SetLevel(level)
}
