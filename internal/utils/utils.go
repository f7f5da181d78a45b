package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

func SetLogLevel(level string) error {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "", "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("bad log level %q", level)
	}
	return nil
}

// SetLogOutput redirects log output, mostly so commands can keep stdout clean.
func SetLogOutput(w io.Writer) {
	Log.SetOutput(w)
}
