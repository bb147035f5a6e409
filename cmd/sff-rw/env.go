package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/config"
	"github.com/emdb-empiar/sfftkrw/internal/cli"
)

// env carries the process streams and the lazily loaded configuration
// shared by every subcommand.
type env struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string

	cfg    *config.Config
	logger *slog.Logger
}

func newEnv(stdout, stderr io.Writer) *env {
	return &env{stdout: stdout, stderr: stderr}
}

// settings loads the configuration and logger on first use.
func (e *env) settings() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return nil, cli.Exit(cli.ExitUsage, err)
	}
	logger, err := cli.NewLogger(e.stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, cli.Exit(cli.ExitUsage, err)
	}
	e.cfg, e.logger = cfg, logger
	return cfg, nil
}

// dataError maps library failures on malformed or invalid documents to
// the data-error exit code. Other failures keep the generic code.
func dataError(err error) error {
	var e *sff.Error
	if errors.As(err, &e) || errors.Is(err, sff.ErrValidation) {
		return cli.Exit(cli.ExitDataErr, err)
	}
	return err
}

// readError maps a failure to read the FROM file. An input that does not
// exist or cannot be opened is a usage error.
func readError(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return usageError(err)
	}
	return dataError(err)
}

func usageError(err error) error { return cli.Exit(cli.ExitUsage, err) }
