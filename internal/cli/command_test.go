package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func tree(called *string, got *[]string) *Command {
	return &Command{
		Name: "sff-rw",
		Subcommands: []*Command{
			{
				Name:    "convert",
				Summary: "convert between formats",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
					fs.StringP("output", "o", "", "output file")
					fs.Bool("json-sort", false, "sort keys")
					return fs
				},
				Run: func(args []string) error {
					*called = "convert"
					*got = args
					return nil
				},
			},
			{
				Name: "view",
				Run: func(args []string) error {
					*called = "view"
					return nil
				},
			},
		},
	}
}

func TestExecute_Dispatch(t *testing.T) {
	var called string
	var args []string
	root := tree(&called, &args)
	require.NoError(t, root.Execute([]string{"convert", "in.sff", "-o", "out.hff", "--json-sort"}))
	require.Equal(t, "convert", called)
	require.Equal(t, []string{"in.sff"}, args)
}

// TestExecute_SuggestsCommand proposes the closest subcommand on a typo.
func TestExecute_SuggestsCommand(t *testing.T) {
	var called string
	var args []string
	err := tree(&called, &args).Execute([]string{"conver"})
	require.ErrorIs(t, err, ErrUsage)
	require.Contains(t, err.Error(), `did you mean "convert"?`)
	require.Equal(t, ExitUsage, CodeOf(err))

	err = tree(&called, &args).Execute([]string{"zzzzzzzz"})
	require.NotContains(t, err.Error(), "did you mean")
}

func TestExecute_SuggestsFlag(t *testing.T) {
	var called string
	var args []string
	err := tree(&called, &args).Execute([]string{"convert", "--json-srot"})
	require.ErrorIs(t, err, ErrUsage)
	require.Contains(t, err.Error(), "did you mean --json-sort?")
	require.Empty(t, called)
}

func TestExecute_Help(t *testing.T) {
	var called string
	var args []string
	var out bytes.Buffer
	root := tree(&called, &args)
	root.Stdout = &out
	require.NoError(t, root.Execute([]string{"--help"}))
	require.Contains(t, out.String(), "Usage:\n  sff-rw <command> [flags]")
	require.Contains(t, out.String(), "convert   convert between formats")

	out.Reset()
	require.NoError(t, root.Execute([]string{"convert", "-h"}))
	require.Contains(t, out.String(), "--json-sort")
	require.Contains(t, out.String(), "-o, --output")
}

func TestExecute_SubcommandRequired(t *testing.T) {
	var called string
	var args []string
	var errOut bytes.Buffer
	root := tree(&called, &args)
	root.Stderr = &errOut
	err := root.Execute(nil)
	require.ErrorIs(t, err, ErrUsage)
	require.Contains(t, errOut.String(), "Commands:")
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, ExitOK, CodeOf(nil))
	require.Equal(t, ExitFailure, CodeOf(errors.New("boom")))
	require.Equal(t, ExitDataErr, CodeOf(Exit(ExitDataErr, errors.New("bad data"))))
	require.Equal(t, "bad data", Exit(ExitDataErr, errors.New("bad data")).Error())
	require.Equal(t, "exit code 3", Exit(3, nil).Error())
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"view", "view", 0},
		{"veiw", "view", 2},
		{"convert", "conver", 1},
		{"kitten", "sitting", 3},
	}
	for _, c := range cases {
		require.Equal(t, c.want, levenshtein(c.a, c.b), "%s/%s", c.a, c.b)
		require.Equal(t, c.want, levenshtein(c.b, c.a), "%s/%s", c.b, c.a)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "auto")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.sff")
	require.NotContains(t, buf.String(), "hidden")
	// a buffer is not a terminal
	require.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
	require.Contains(t, buf.String(), `"file":"a.sff"`)

	buf.Reset()
	logger, err = NewLogger(&buf, "DEBUG", "text")
	require.NoError(t, err)
	logger.Debug("detail")
	require.Contains(t, buf.String(), "level=DEBUG")
	require.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	_, err = NewLogger(&buf, "loud", "text")
	require.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	require.Error(t, err)
}

func TestPrintDate(t *testing.T) {
	defer func(orig func() time.Time) { Now = orig }(Now)
	Now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	var buf bytes.Buffer
	PrintDate(&buf, "converted %d segments", 3)
	require.Equal(t, "2024-05-06T07:08:09Z\tconverted 3 segments\n", buf.String())
}
