// Command sff-rw converts and inspects EMDB-SFF segmentation files.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "v0.5.2.dev1"

func main() {
	os.Exit(run(os.Args[1:], newEnv(os.Stdout, os.Stderr)))
}

// run executes the command line and returns the process exit code.
// Failures are reported on stderr as a single timestamped line.
func run(args []string, e *env) int {
	if !cli.IsTerminal(e.stdout) {
		color.NoColor = true
	}
	err := root(e).Execute(args)
	if err == nil {
		return cli.ExitOK
	}
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Err != nil {
		msg, _, _ := strings.Cut(err.Error(), "\n")
		cli.PrintDate(e.stderr, "%s", msg)
	}
	return cli.CodeOf(err)
}

func root(e *env) *cli.Command {
	var showVersion bool
	cmd := &cli.Command{
		Name:        "sff-rw",
		Description: "The EMDB-SFF Read/Write Toolkit (sfftk-rw)",
		Stdout:      e.stdout,
		Stderr:      e.stderr,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("sff-rw", pflag.ContinueOnError)
			fs.SetInterspersed(false)
			fs.BoolVarP(&showVersion, "version", "V", false, "show the sfftk-rw version and the supported EMDB-SFF versions")
			fs.StringVar(&e.configPath, "config", "", "configuration file (default $SFFTKRW_CONFIG or the XDG config directory)")
			return fs
		},
		Subcommands: []*cli.Command{
			convertCommand(e),
			viewCommand(e),
			testsCommand(e),
		},
	}
	cmd.Run = func(args []string) error {
		if showVersion {
			fmt.Fprintln(e.stdout, versionString())
			return nil
		}
		if len(args) == 0 {
			cmd.PrintHelp(e.stdout)
			return nil
		}
		showVersion = false
		return cmd.Execute(args)
	}
	return cmd
}

func versionString() string {
	vs := sff.SupportedVersions()
	for i, v := range vs {
		vs[i] = "v" + v
	}
	return fmt.Sprintf("sfftk-rw version: %s for EMDB-SFF %s", version, strings.Join(vs, ", "))
}
