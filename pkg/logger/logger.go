package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger. Unknown levels fall back
// to info; format "text" selects the human readable formatter, anything else
// emits JSON.
func Setup(level, format string) {
	SetupWithOutput(level, format, os.Stdout)
}

func SetupWithOutput(level, format string, out io.Writer) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(out)

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return
	}
	log.SetFormatter(&log.JSONFormatter{})
}

// New returns an entry tagged with the given component.
func New(component string) *log.Entry {
	return log.WithField("component", component)
}
