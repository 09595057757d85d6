package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func newParser(t *testing.T) *kong.Kong {
	t.Helper()
	parser, err := kong.New(&cli{}, kong.Name(name), kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	return parser
}

func TestRunOutputFlagsExclusive(t *testing.T) {
	parser := newParser(t)
	if _, err := parser.Parse([]string{"run", "-o", "-f", "creds.txt"}); err == nil {
		t.Fatal("expected an error when both -o and -f are given")
	}
}

func TestRunOutputFlags(t *testing.T) {
	tests := [][]string{
		{"run", "-o"},
		{"run", "-f", "creds.txt"},
		{"run"},
	}

	for _, args := range tests {
		parser := newParser(t)
		ctx, err := parser.Parse(args)
		if err != nil {
			t.Errorf("Parse(%v) returned unexpected error: %v", args, err)
			continue
		}
		if ctx.Command() != "run" {
			t.Errorf("Parse(%v) selected command %q; want 'run'", args, ctx.Command())
		}
	}
}

func TestWriteCompletion(t *testing.T) {
	tests := []struct {
		shell    ShellType
		expected []string
	}{
		{BASH, []string{"complete -F _gosignup gosignup", "run)", "--dry-run", "completion", "--version"}},
		{ZSH, []string{"#compdef gosignup", "compdef _gosignup gosignup", "init) compadd --", "--dry-run"}},
		{FISH, []string{"complete -c gosignup -f", "__fish_seen_subcommand_from run", "-l dry-run -s D", `-x -a "bash zsh fish"`}},
	}

	for _, tt := range tests {
		parser := newParser(t)
		var buf bytes.Buffer
		if err := writeCompletion(&buf, tt.shell, parser.Model.Node); err != nil {
			t.Errorf("writeCompletion(%s) returned unexpected error: %v", tt.shell, err)
			continue
		}
		for _, e := range tt.expected {
			if !strings.Contains(buf.String(), e) {
				t.Errorf("%s completion does not contain %q:\n%s", tt.shell, e, buf.String())
			}
		}
	}
}

func TestWriteCompletionUnknownShell(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCompletion(&buf, "tcsh", newParser(t).Model.Node); err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
}

func TestFishQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"$HOME", `"\$HOME"`},
	}

	for _, tt := range tests {
		if q := fishQuote(tt.input); q != tt.expected {
			t.Errorf("fishQuote(%q) = %q; want %q", tt.input, q, tt.expected)
		}
	}
}
