package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (lvl Level) logrus() logrus.Level {
	switch lvl {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// SetOutput redirects the whole logging output.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetLevel sets the minimum level that is actually emitted.
func SetLevel(lvl Level) {
	logrus.SetLevel(lvl.logrus())
}
