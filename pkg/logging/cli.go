package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const fileMode = 0600

// ParseLogLevel converts a level string to a logrus level. Both the
// named forms (debug, info, warn, error) and the legacy numeric forms
// are accepted: 0 silences output, 1 is info, 2 is debug. Unrecognized
// strings default to info.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "0":
		return log.PanicLevel
	case "2", "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Setup configures the global logger for CLI use. Log output always
// goes to stderr (or the given file) so that stdout stays reserved
// for result records. An empty filePath selects stderr.
func Setup(level, filePath string) error {
	log.SetLevel(ParseLogLevel(level))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})

	var out io.Writer = os.Stderr
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileMode)
		if err != nil {
			return errors.Wrapf(err, "failed to open log file: %s", filePath)
		}
		out = f
	}
	log.SetOutput(out)
	return nil
}
