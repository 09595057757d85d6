/*
gosignup fills out and submits web signup forms with freshly generated
credentials and keeps a record of them in a local file.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/jakopako/gosignup/internal/browser"
	"github.com/jakopako/gosignup/internal/config"
	"github.com/jakopako/gosignup/internal/log"
	"github.com/jakopako/gosignup/internal/output"
	"github.com/jakopako/gosignup/internal/register"
	"github.com/jakopako/gosignup/internal/runner"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

var version = "dev"

const name = "gosignup"

type VersionFlag string

func (v VersionFlag) Decode(_ *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                       { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

type cli struct {
	Version VersionFlag `short:"v" long:"version" help:"Print the version and exit."`
	Debug   bool        `short:"d" long:"debug" help:"Set log level to 'debug' and store screenshots after every click."`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Register on all configured targets (default)."`
	Init    InitCmd    `cmd:"" help:"Write the default configuration file."`
	Targets TargetsCmd `cmd:"" help:"List the configured targets."`

	Completion CompletionCommand `cmd:"" help:"Generate autocompletion file."`
}

type RunCmd struct {
	Config  string `short:"c" default:"./gosignup.yaml" help:"The location of the configuration file. If it does not exist the defaults are used." type:"path"`
	Stdout  bool   `short:"o" xor:"output" help:"If set to true the credentials will be written to stdout instead of to a file."`
	File    string `short:"f" xor:"output" help:"The file the credentials are appended to. Overrides the configuration." type:"path"`
	Summary bool   `short:"s" help:"Print a summary table at the end."`
	DryRun  bool   `short:"D" name:"dry-run" help:"Use a mock browser that serves every target with the expected form fields."`
}

func (rc *RunCmd) Run() error {
	c, err := config.NewConfig(rc.Config)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}

	if rc.Stdout {
		c.Writer.Type = output.STDOUT_WRITER_TYPE
	} else if rc.File != "" {
		c.Writer.Type = output.FILE_WRITER_TYPE
		c.Writer.FilePath = rc.File
	}

	if rc.DryRun {
		slog.Info("dry run, using mock browser")
		c.UseMockBrowser()
	}

	report, err := runner.Run(context.Background(), c, browser.NewSession)
	if err != nil {
		// already logged, a failed run is not reflected in the exit code
		return nil
	}

	if rc.Summary {
		return printSummary(report)
	}
	return nil
}

func printSummary(report *runner.Report) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Target", "Success", "Status")
	nrSuccess := 0
	for _, r := range report.Results {
		if err := table.Append([]string{r.Target, strconv.FormatBool(r.Success), register.StatusMessage(r)}); err != nil {
			return err
		}
		if r.Success {
			nrSuccess++
		}
	}
	table.Footer("total", fmt.Sprintf("%d/%d", nrSuccess, len(report.Results)), report.Path)
	return table.Render()
}

type InitCmd struct {
	Config string `short:"c" default:"./gosignup.yaml" help:"The file the default configuration will be written to." type:"path"`
	Stdout bool   `short:"o" help:"If set to true the configuration will be written to stdout."`
}

func (ic *InitCmd) Run() error {
	yamlData, err := yaml.Marshal(config.Default())
	if err != nil {
		slog.Error(fmt.Sprintf("error while marshalling. %v", err))
		return err
	}

	if ic.Stdout {
		fmt.Print(string(yamlData))
		return nil
	}

	if _, err := os.Stat(ic.Config); err == nil {
		err = fmt.Errorf("file %s already exists", ic.Config)
		slog.Error(err.Error())
		return err
	}
	if err := os.WriteFile(ic.Config, yamlData, 0644); err != nil {
		slog.Error(fmt.Sprintf("error writing to file: %v", err))
		return err
	}
	slog.Info(fmt.Sprintf("successfully wrote config to file %s", ic.Config))
	return nil
}

type TargetsCmd struct {
	Config string `short:"c" default:"./gosignup.yaml" help:"The location of the configuration file." type:"path"`
}

func (tc *TargetsCmd) Run() error {
	c, err := config.NewConfig(tc.Config)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	for _, t := range c.Targets {
		fmt.Printf("%s\t%s\n", t.Name, t.URL)
	}
	return nil
}

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if ok {
		if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
			return buildInfo.Main.Version
		}
	}
	return version
}

func main() {
	cli := cli{
		Version: VersionFlag(getVersion()),
	}

	ctx := kong.Parse(&cli,
		kong.Name(name),
		kong.Vars{
			"version": string(cli.Version),
		})

	log.Debug = cli.Debug
	log.InitializeDefaultLogger()

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
