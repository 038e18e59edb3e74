package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Test binaries log everything, but only show it under -test.v.
func init() {
	logrus.SetLevel(logrus.TraceLevel)
	if !verbose() {
		logrus.SetOutput(io.Discard)
	}
}

// Flags aren't parsed yet when package init runs.
func verbose() bool {
	for _, arg := range os.Args[1:] {
		if arg == "-test.v" || arg == "-test.v=true" {
			return true
		}
	}
	return false
}

// DisableLogging silences the standard logger until reset is called.
func DisableLogging() (reset func()) {
	logger := logrus.StandardLogger()
	previous := logger.Out
	logger.SetOutput(io.Discard)
	return func() {
		logger.SetOutput(previous)
	}
}
