package output

import (
	"io"
	"os"

	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/register"
)

// StdoutWriter represents a writer that writes to stdout
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter returns a new StdoutWriter
func NewStdoutWriter(wc *WriterConfig) *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write prints the record. The returned location is always "-".
func (w *StdoutWriter) Write(c credentials.Credentials, results []register.Result) (string, error) {
	if _, err := io.WriteString(w.out, Record(c, results)); err != nil {
		return "", err
	}
	return "-", nil
}
