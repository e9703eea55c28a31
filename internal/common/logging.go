package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
)

// log output formats selectable in the configuration
const (
	LogFormatText    = "text"
	LogFormatJSON    = "json"
	LogFormatJournal = "journal"
)

// SetupLogging configures the standard logger. The text format writes
// plain lines to stderr, json writes one JSON object per entry, journal
// sends entries to the systemd journal and silences stderr.
func SetupLogging(format, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	logrus.SetLevel(lvl)

	switch format {
	case LogFormatText:
	case LogFormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case LogFormatJournal:
		if !journal.Enabled() {
			return fmt.Errorf("journal logging requested but no journal is listening")
		}
		logrus.AddHook(&JournalHook{})
		logrus.SetOutput(io.Discard)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	return nil
}

// JournalHook forwards log entries to the systemd journal with their
// fields attached. Inspired by github.com/wercker/journalhook (MIT
// license).
type JournalHook struct{}

func (hook *JournalHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *JournalHook) Fire(entry *logrus.Entry) error {
	fields := make(map[string]string, len(entry.Data))
	for key, value := range entry.Data {
		fields[fieldName(key)] = fmt.Sprint(value)
	}
	return journal.Send(entry.Message, priority(entry.Level), fields)
}

func priority(level logrus.Level) journal.Priority {
	switch level {
	case logrus.PanicLevel:
		return journal.PriEmerg
	case logrus.FatalLevel:
		return journal.PriCrit
	case logrus.ErrorLevel:
		return journal.PriErr
	case logrus.WarnLevel:
		return journal.PriWarning
	case logrus.DebugLevel, logrus.TraceLevel:
		return journal.PriDebug
	default:
		return journal.PriInfo
	}
}

// the journal accepts field names of upper case letters, digits and
// underscores only, and rejects a leading underscore
func fieldName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'a' && r <= 'z':
			return r - 32
		default:
			return '_'
		}
	}, key)
	return strings.TrimPrefix(mapped, "_")
}
