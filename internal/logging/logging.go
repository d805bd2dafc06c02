package logging

import (
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// DefaultFile is where logs go when no path is given. The TUI owns the
// terminal, so nothing is logged to stdout or stderr.
const DefaultFile = "ghgrip.log"

// Setup points the standard logrus logger at path and returns a closer.
// If the file can't be opened logs are discarded and the error returned.
func Setup(path string, debug bool) (io.Closer, error) {
	if path == "" {
		path = DefaultFile
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, errors.Wrapf(err, "could not open log file %s", path)
	}
	logrus.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
