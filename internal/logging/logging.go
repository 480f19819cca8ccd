package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger on stdout at the given level.
func New(level string) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level %w", err)
	}
	logger.SetLevel(lvl)

	return logrus.NewEntry(logger), nil
}
