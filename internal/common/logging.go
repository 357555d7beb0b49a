package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger = log.New(os.Stderr, "[edidgate] ", log.LstdFlags|log.Lmicroseconds)
)

func Logf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// SetupRotatingLog mirrors log output into dir/edidgate.log with
// rotation, keeping stderr as the primary stream.
func SetupRotatingLog(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "edidgate.log"),
		MaxSize:    25,
		MaxAge:     7,
		MaxBackups: 5,
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return nil
}
