package errlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const timeLayout = "2006-01-02 15:04:05"

// Log appends timestamped error lines to a single file.
// The file is never truncated or rotated.
type Log struct {
	path string
	now  func() time.Time
}

func New(path string) *Log {
	return &Log{
		path: path,
		now:  time.Now,
	}
}

// DefaultPath returns <home>/.terrariactl/errors.log.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WithMessage(err, "failed to get user home dir")
	}

	return filepath.Join(homeDir, ".terrariactl", "errors.log"), nil
}

func (l *Log) Path() string {
	return l.path
}

func (l *Log) Append(message string) error {
	err := os.MkdirAll(filepath.Dir(l.path), 0755)
	if err != nil {
		return errors.WithMessage(err, "failed to create log directory")
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithMessage(err, "failed to open log file")
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Println(err)
		}
	}(file)

	_, err = fmt.Fprintf(file, "%s - ERROR: %s\n", l.now().Format(timeLayout), message)
	if err != nil {
		return errors.WithMessage(err, "failed to write log entry")
	}

	return nil
}
