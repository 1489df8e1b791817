package vita49

import "github.com/sirupsen/logrus"

// _lg is the package-level diagnostic logger. The codec itself never logs;
// it is provided so that a host program can configure one logger and
// share it, the way go-iec104's client/server pair does. This repository
// ships no example programs.
var _lg = logrus.New()

// SetLogger replaces the package-level logger.
func SetLogger(lg *logrus.Logger) {
	_lg = lg
}

// Logger returns the package-level logger, so callers share the one
// SetLogger configured instead of each keeping a separate handle.
func Logger() *logrus.Logger {
	return _lg
}
