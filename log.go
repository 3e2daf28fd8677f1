package hyperpack

import "github.com/sirupsen/logrus"

// Logger is the package logger. Search layers log progress at debug level,
// run boundaries and solution summaries at info level, and worker faults at
// error level. Logrus serializes entries, so concurrent workers never
// interleave partial lines.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return log
}
