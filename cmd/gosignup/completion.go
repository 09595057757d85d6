package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

type ShellType string

const (
	BASH ShellType = "bash"
	ZSH  ShellType = "zsh"
	FISH ShellType = "fish"
)

var shellTypes = []string{string(BASH), string(ZSH), string(FISH)}

type CompletionCommand struct {
	Shell ShellType `short:"s" help:"The shell that you want to create the autocompletion file for." required:"" enum:"bash,zsh,fish"`
}

func (cc *CompletionCommand) Run() error {
	parser := kong.Must(&cli{}, kong.Name(name))
	return writeCompletion(os.Stdout, cc.Shell, parser.Model.Node)
}

func writeCompletion(w io.Writer, shell ShellType, app *kong.Node) error {
	switch shell {
	case BASH:
		return bashCompletion(w, app)
	case ZSH:
		return zshCompletion(w, app)
	case FISH:
		return fishCompletion(w, app)
	default:
		// should not happen due to enum constraint
		return fmt.Errorf("shell type not supported: %s. Must be one of [%s].", shell, strings.Join(shellTypes, ", "))
	}
}

func commands(n *kong.Node) []*kong.Node {
	cmds := []*kong.Node{}
	for _, c := range n.Children {
		if c.Type == kong.CommandNode && !c.Hidden {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

func visibleFlags(n *kong.Node) []*kong.Flag {
	flags := []*kong.Flag{}
	for _, f := range n.Flags {
		if !f.Hidden {
			flags = append(flags, f)
		}
	}
	return flags
}

// flagWords returns the long and, if present, the short form of every flag.
func flagWords(flags []*kong.Flag) []string {
	words := []string{}
	for _, f := range flags {
		words = append(words, "--"+f.Name)
		if f.Short != 0 {
			words = append(words, "-"+string(f.Short))
		}
	}
	return words
}

func topLevelWords(app *kong.Node) []string {
	words := []string{}
	for _, c := range commands(app) {
		words = append(words, c.Name)
	}
	return append(words, flagWords(visibleFlags(app))...)
}

func bashCompletion(w io.Writer, app *kong.Node) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "_%s() {\n", app.Name)
	sb.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	sb.WriteString("    if [ \"$COMP_CWORD\" -gt 1 ]; then\n")
	sb.WriteString("        case \"${COMP_WORDS[1]}\" in\n")
	for _, c := range commands(app) {
		fmt.Fprintf(&sb, "            %s)\n", c.Name)
		fmt.Fprintf(&sb, "                COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords(visibleFlags(c)), " "))
		sb.WriteString("                return;;\n")
	}
	sb.WriteString("        esac\n")
	sb.WriteString("    fi\n")
	fmt.Fprintf(&sb, "    COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(topLevelWords(app), " "))
	sb.WriteString("}\n")
	fmt.Fprintf(&sb, "complete -F _%s %s\n", app.Name, app.Name)
	_, err := io.WriteString(w, sb.String())
	return err
}

func zshCompletion(w io.Writer, app *kong.Node) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#compdef %s\n\n", app.Name)
	fmt.Fprintf(&sb, "_%s() {\n", app.Name)
	sb.WriteString("    if (( CURRENT == 2 )); then\n")
	fmt.Fprintf(&sb, "        compadd -- %s\n", strings.Join(topLevelWords(app), " "))
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n")
	sb.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range commands(app) {
		fmt.Fprintf(&sb, "        %s) compadd -- %s ;;\n", c.Name, strings.Join(flagWords(visibleFlags(c)), " "))
	}
	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "compdef _%s %s\n", app.Name, app.Name)
	_, err := io.WriteString(w, sb.String())
	return err
}

func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}

func fishFlag(sb *strings.Builder, app, condition string, f *kong.Flag) {
	fmt.Fprintf(sb, "complete -c %s", app)
	if condition != "" {
		fmt.Fprintf(sb, " -n %s", fishQuote(condition))
	}
	fmt.Fprintf(sb, " -l %s", f.Name)
	if f.Short != 0 {
		fmt.Fprintf(sb, " -s %c", f.Short)
	}
	if f.Enum != "" {
		fmt.Fprintf(sb, " -x -a %s", fishQuote(strings.ReplaceAll(f.Enum, ",", " ")))
	}
	fmt.Fprintf(sb, " -d %s\n", fishQuote(f.Help))
}

func fishCompletion(w io.Writer, app *kong.Node) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "complete -c %s -f\n", app.Name)
	for _, f := range visibleFlags(app) {
		fishFlag(&sb, app.Name, "", f)
	}
	for _, c := range commands(app) {
		fmt.Fprintf(&sb, "complete -c %s -n %s -a %s -d %s\n", app.Name, fishQuote("__fish_use_subcommand"), c.Name, fishQuote(c.Help))
		for _, f := range visibleFlags(c) {
			fishFlag(&sb, app.Name, "__fish_seen_subcommand_from "+c.Name, f)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
