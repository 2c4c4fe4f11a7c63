package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus
// defaults; Init and Configure adjust it in place, so entries taken
// earlier follow the new settings.
var Log = logrus.New()

// Init configures the global logger from LOG_LEVEL and LOG_FORMAT.
// Call it once from main (or TestMain).
func Init() {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	Configure(level, os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure sets level, format and output of the global logger. "json"
// selects the JSON formatter, anything else the text formatter. Unknown
// levels fall back to info.
func Configure(level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(out)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
