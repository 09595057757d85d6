// Package output provides the interface and configuration and implementation for writers
package output

import (
	"fmt"
	"strings"

	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/register"
)

// Writer defines the interface for all writers that are responsible
// for persisting the credentials of a run together with the registration results.
type Writer interface {
	// Write writes a single record and returns the location it was written to.
	Write(c credentials.Credentials, results []register.Result) (string, error)
}

// WriterConfig defines the necessary paramters to make a new writer
// which is responsible for writing the credentials to a specific output
// eg. a file.
type WriterConfig struct {
	Type     WriterType `yaml:"type" env:"GOSIGNUP_WRITER_TYPE"`
	FilePath string     `yaml:"filepath" env:"GOSIGNUP_CREDENTIALS_FILE"`
}

// WriterType encapsulates the type of a writer
// See below constants for possible types
type WriterType string

const (
	STDOUT_WRITER_TYPE WriterType = "stdout"
	FILE_WRITER_TYPE   WriterType = "file"
)

const (
	DefaultFilePath = "credentials.txt"
	separator       = "----------------------------------------"
)

// NewWriter returns a new writer depending on the writer type
func NewWriter(wc *WriterConfig) (Writer, error) {
	switch wc.Type {
	case "", FILE_WRITER_TYPE:
		return NewFileWriter(wc)
	case STDOUT_WRITER_TYPE:
		return NewStdoutWriter(wc), nil
	default:
		return nil, fmt.Errorf("writer of type '%s' not implemented", wc.Type)
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Record formats the credentials and the results as a block of lines,
// one line per result.
func Record(c credentials.Credentials, results []register.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Email: %s\n", c.Email)
	fmt.Fprintf(&sb, "Username: %s\n", c.Username)
	fmt.Fprintf(&sb, "Password: %s\n", c.Password)
	for _, r := range results {
		fmt.Fprintf(&sb, "%s success: %s\n", r.Target, formatBool(r.Success))
	}
	sb.WriteString(separator + "\n")
	return sb.String()
}
