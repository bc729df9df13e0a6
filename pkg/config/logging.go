package config

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies lc to the standard logrus logger, writing to w
func ConfigureLogging(lc LogConfig, w io.Writer) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	log.SetOutput(w)
	log.SetLevel(level)
	if lc.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
