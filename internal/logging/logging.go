// Package logging builds the logrus loggers used by the oneshot commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a text logger writing to out at the named level ("debug",
// "info", "warn", "error"). Each entry carries the calling function and a
// short file:line position.
func New(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetReportCaller(true)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		CallerPrettyfier: position,
	})
	return l, nil
}

// position trims the caller's file to its last three path elements.
func position(f *runtime.Frame) (function, file string) {
	path := strings.Split(f.File, string(os.PathSeparator))
	if len(path) > 3 {
		path = path[len(path)-3:]
	}
	return f.Function, fmt.Sprintf("%s:%d", strings.Join(path, string(os.PathSeparator)), f.Line)
}
