package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/emdb-empiar/sfftkrw/internal/cli"
)

const modulePath = "github.com/emdb-empiar/sfftkrw"

// testTools maps each tool name to the packages it tests, in run order.
var testTools = map[string][]string{
	"all":    {modulePath + "/..."},
	"main":   {modulePath + "/cmd/...", modulePath + "/internal/cli/...", modulePath + "/config/..."},
	"core":   {modulePath + "/codec/...", modulePath + "/hff/...", modulePath + "/internal/xmltree/...", modulePath + "/internal/jsondup/..."},
	"schema": {modulePath},
}

var toolOrder = []string{"all", "main", "core", "schema"}

// goTest runs one go test invocation. Tests replace it.
var goTest = func(ctx context.Context, e *env, argv []string) error {
	cmd := exec.CommandContext(ctx, "go", argv...)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

func testsCommand(e *env) *cli.Command {
	var (
		verbosity int
		dryRun    bool
	)
	return &cli.Command{
		Name:        "tests",
		Summary:     "run unit tests",
		Description: "Run unit tests",
		Usage:       "sff-rw tests TOOL... [-v 0..3] [--dry-run]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("tests", pflag.ContinueOnError)
			fs.IntVarP(&verbosity, "verbosity", "v", 1, "set verbosity; valid values: 0, 1, 2, 3")
			fs.BoolVar(&dryRun, "dry-run", false, "do not run tests")
			return fs
		},
		Run: func(args []string) error {
			return runTests(context.Background(), e, args, verbosity, dryRun)
		},
	}
}

// testCommands normalises the tool list and returns the go test argument
// vectors to run. "all" absorbs every other tool.
func testCommands(tools []string, verbosity int) ([][]string, []string, error) {
	if len(tools) == 0 {
		return nil, nil, fmt.Errorf("at least one tool required: %s", strings.Join(toolOrder, ", "))
	}
	for _, t := range tools {
		if _, ok := testTools[t]; !ok {
			return nil, nil, fmt.Errorf("unknown tool: %s; available tools for test: %s", t, strings.Join(toolOrder, ", "))
		}
	}
	if verbosity < 0 || verbosity > 3 {
		return nil, nil, fmt.Errorf("verbosity should be in 0-3: %d given", verbosity)
	}
	if slices.Contains(tools, "all") {
		tools = []string{"all"}
	}

	var names []string
	var argvs [][]string
	for _, t := range toolOrder {
		if !slices.Contains(tools, t) {
			continue
		}
		argv := []string{"test"}
		if verbosity >= 2 {
			argv = append(argv, "-v")
		}
		if verbosity == 3 {
			argv = append(argv, "-count=1")
		}
		argv = append(argv, testTools[t]...)
		names = append(names, t)
		argvs = append(argvs, argv)
	}
	return argvs, names, nil
}

func runTests(ctx context.Context, e *env, tools []string, verbosity int, dryRun bool) error {
	argvs, names, err := testCommands(tools, verbosity)
	if err != nil {
		return usageError(err)
	}
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	info := color.New(color.FgCyan)

	failed := 0
	for i, argv := range argvs {
		line := "go " + strings.Join(argv, " ")
		if dryRun {
			info.Fprintf(e.stdout, "%s\n", line)
			continue
		}
		cli.PrintDate(e.stderr, "running %s tests: %s", names[i], line)
		if err := goTest(ctx, e, argv); err != nil {
			fail.Fprintf(e.stdout, "FAIL %s\n", names[i])
			failed++
			continue
		}
		pass.Fprintf(e.stdout, "PASS %s\n", names[i])
	}
	if failed > 0 {
		return cli.Exit(cli.ExitFailure, fmt.Errorf("%d of %d test runs failed", failed, len(argvs)))
	}
	return nil
}
