package misc

import (
	"os"
	"sync/atomic"

	"github.com/BrugadaSyndrome/bslogger"
)

var verbose atomic.Bool

// SetVerbose switches every logger created afterwards to debug verbosity.
func SetVerbose(v bool) {
	verbose.Store(v)
}

func NewLogger(name string, logFile *os.File) bslogger.Logger {
	if verbose.Load() {
		return bslogger.NewLogger(name, bslogger.All, logFile)
	}
	return bslogger.NewLogger(name, bslogger.Normal, logFile)
}
