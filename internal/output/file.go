package output

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/register"
)

// FileWriter represents a writer that appends to a file. The file is never
// truncated, rotated or read.
type FileWriter struct {
	*WriterConfig
	logger *slog.Logger
}

// NewFileWriter returns a new FileWriter
func NewFileWriter(wc *WriterConfig) (*FileWriter, error) {
	if wc.FilePath == "" {
		return nil, errors.New("filepath needs to be specified for the FileWriter")
	}

	if dir := filepath.Dir(wc.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &FileWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", string(FILE_WRITER_TYPE))),
	}, nil
}

// Write appends the record to the file, creating it if necessary, and returns
// the absolute path of the file.
func (w *FileWriter) Write(c credentials.Credentials, results []register.Result) (string, error) {
	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("error while trying to open file: %w", err)
	}
	if _, err := f.WriteString(Record(c, results)); err != nil {
		f.Close()
		return "", fmt.Errorf("error while writing credentials to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("error while closing file: %w", err)
	}

	abs, err := filepath.Abs(w.FilePath)
	if err != nil {
		return "", err
	}
	w.logger.Debug(fmt.Sprintf("appended record to file %s", abs))
	return abs, nil
}
