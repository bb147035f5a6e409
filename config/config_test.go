package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/config"
	"github.com/emdb-empiar/sfftkrw/hff"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_MatchesLibraryOptions(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, sff.DefaultOptions(), opts)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := config.Parse([]byte(`
export:
  json_sort: true
  json_indent: 0
  hff_compression: lz4
log:
  level: debug
`))
	require.NoError(t, err)
	require.True(t, cfg.Export.JSONSort)
	require.Equal(t, 0, cfg.Export.JSONIndent)
	require.Equal(t, "1.0", cfg.Export.XMLVersion)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "auto", cfg.Log.Format)

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, hff.CompressionLZ4, opts.HFFCompression)
	require.Equal(t, 0, opts.JSONIndent)
}

// TestParse_XMLEncoding accepts exactly the charsets the XML writer can
// produce.
func TestParse_XMLEncoding(t *testing.T) {
	for _, cs := range []string{"UTF-8", "utf-8", "US-ASCII", "ISO-8859-1", "windows-1252"} {
		cfg, err := config.Parse([]byte("export:\n  xml_encoding: " + cs + "\n"))
		require.NoError(t, err, cs)
		opts, err := cfg.Options()
		require.NoError(t, err, cs)
		require.Equal(t, cs, opts.XMLEncoding)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

// TestParse_Invalid reports each failed constraint by its YAML path.
func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"export:\n  json_indent: -2\n":          "export.json_indent must be at least 0",
		"export:\n  hff_compression: gzip\n":    "export.hff_compression must be one of",
		"export:\n  xml_encoding: no-such-cs\n": "export.xml_encoding is not a valid xmlencoding",
		"export:\n  xml_encoding: UTF-16\n":     "export.xml_encoding is not a valid xmlencoding",
		"log:\n  level: loud\n":                 "log.level must be one of",
		"export:\n  xml_version: \"\"\n":        "export.xml_version is required",
		"export:\n  json_indnet: 3\n":           "json_indnet",
		"export: [1, 2]\n":                      "cannot unmarshal",
	}
	for body, want := range cases {
		_, err := config.Parse([]byte(body))
		require.Error(t, err, body)
		require.Contains(t, err.Error(), want, body)
	}
}

func TestLoad_Precedence(t *testing.T) {
	flagFile := writeConfig(t, "export:\n  json_indent: 1\n")
	envFile := writeConfig(t, "export:\n  json_indent: 3\n")
	t.Setenv(config.EnvVar, envFile)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load(flagFile)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Export.JSONIndent)

	cfg, err = config.Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Export.JSONIndent)
}

func TestLoad_DefaultLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv(config.EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	// absent default file
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(xdg, "sfftkrw", "config.yaml"), path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\n"), 0o644))

	cfg, err = config.Load("")
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := config.Load(missing)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), missing)
}
