package main

import (
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// cliHook for logging Info level and above to the CLI.
type cliHook struct{}

func (h *cliHook) Levels() []log.Level {
	return []log.Level{log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func (h *cliHook) Fire(entry *log.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = os.Stderr.WriteString(line)
	return err
}

// SetupLogger configures the process-wide logger from the config and
// returns an entry tagged with a fresh run identifier, so log lines
// from repeated invocations sharing a log file can be told apart.
func SetupLogger(config *Config) *log.Entry {
	// Rotating file logger setup
	lumberjackLogger := &lumberjack.Logger{
		Filename:   filepath.ToSlash(path.Join(config.LogPath, "interpol.log")),
		MaxSize:    5, // in MB
		MaxBackups: 10,
		MaxAge:     30,   // in days
		Compress:   true, // compress old log files
	}

	// Logger configuration
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC1123Z,
	})

	// Level is validated by verifyConfig
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(lumberjackLogger)

	// Adding CLI hook
	log.AddHook(&cliHook{})

	return log.WithField("runID", uuid.NewString())
}

func StructFields(data interface{}) log.Fields {
	fields := log.Fields{}

	// Use reflection to iterate through the struct's fields and add them to the fields map
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}

	for i := 0; i < val.NumField(); i++ {
		fieldName := typ.Field(i).Name
		fieldValue := val.Field(i).Interface()
		fields[fieldName] = fieldValue
	}

	return fields
}
