// Package config loads the export defaults and logging settings of the
// sff-rw tool.
//
// The file is YAML and is located by, in order:
//   - the --config flag,
//   - the SFFTKRW_CONFIG environment variable,
//   - $XDG_CONFIG_HOME/sfftkrw/config.yaml (or ~/.config/sfftkrw/config.yaml).
//
// An explicitly named file must exist. The default location may be absent,
// in which case Default is used unchanged.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/hff"
	"github.com/emdb-empiar/sfftkrw/internal/xmltree"
)

// EnvVar names the environment variable holding a config path.
const EnvVar = "SFFTKRW_CONFIG"

// Config is the tool configuration.
type Config struct {
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// ExportConfig holds the defaults applied when writing files.
type ExportConfig struct {
	// JSONSort sorts object keys in JSON output.
	JSONSort bool `yaml:"json_sort"`

	// JSONIndent is the number of spaces per JSON nesting level. 0 writes
	// compact JSON.
	JSONIndent int `yaml:"json_indent" validate:"min=0,max=16"`

	// XMLVersion and XMLEncoding are written into the XML prologue.
	XMLVersion  string `yaml:"xml_version" validate:"required,oneof=1.0 1.1"`
	XMLEncoding string `yaml:"xml_encoding" validate:"required,xmlencoding"`

	// HFFCompression is one of none, zstd or lz4.
	HFFCompression string `yaml:"hff_compression" validate:"required,oneof=none zstd lz4"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=auto text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	o := sff.DefaultOptions()
	return &Config{
		Export: ExportConfig{
			JSONSort:       o.JSONSort,
			JSONIndent:     o.JSONIndent,
			XMLVersion:     o.XMLVersion,
			XMLEncoding:    o.XMLEncoding,
			HFFCompression: o.HFFCompression.String(),
		},
		Log: LogConfig{Level: "info", Format: "auto"},
	}
}

// DefaultPath returns the location used when neither the flag nor the
// environment names a file.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sfftkrw", "config.yaml"), nil
}

// Load resolves the config path from flagPath, the environment and the
// default location, then loads it.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path != "" {
		return LoadFile(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := LoadFile(def)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads path over Default and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = describe(fe)
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// Options converts the export section into writer options.
func (c *Config) Options() (sff.Options, error) {
	comp, err := hff.ParseCompression(c.Export.HFFCompression)
	if err != nil {
		return sff.Options{}, err
	}
	o := sff.DefaultOptions()
	o.JSONSort = c.Export.JSONSort
	o.JSONIndent = c.Export.JSONIndent
	o.XMLVersion = c.Export.XMLVersion
	o.XMLEncoding = c.Export.XMLEncoding
	o.HFFCompression = comp
	return o, nil
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	err := v.RegisterValidation("xmlencoding", func(fl validator.FieldLevel) bool {
		_, err := xmltree.LookupCharset(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// describe renders one failed constraint with its YAML path, e.g.
// "export.json_indent must be at least 0".
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", path, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s is not a valid %s: %v", path, fe.Tag(), fe.Value())
	}
}
