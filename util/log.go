package util

import (
	log "github.com/sirupsen/logrus"
)

// SetLogLevel configures the global logger. Unknown levels fall back to info.
func SetLogLevel(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("[Util] Unknown log level %q, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
