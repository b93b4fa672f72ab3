package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the level and formatter to the standard logger
func ConfigureLogging(level, format string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	log.SetLevel(parsed)

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want text or json", format)
	}
	return nil
}
