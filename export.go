package sfftkrw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emdb-empiar/sfftkrw/hff"
	"github.com/emdb-empiar/sfftkrw/internal/xmltree"
)

// Format is one of the three on-disk encodings.
type Format int

const (
	FormatXML Format = iota + 1
	FormatHFF
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatHFF:
		return "hff"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Label is the human-readable name printed by the CLI. FormatHFF reads
// "HDF5" after the group and dataset layout it mirrors; the bytes are the
// hff package's own container, whatever the extension (.hff, .h5, .hdf5).
func (f Format) Label() string {
	switch f {
	case FormatXML:
		return "XML"
	case FormatHFF:
		return "HDF5"
	case FormatJSON:
		return "JSON"
	}
	return f.String()
}

// Ext is the canonical file extension, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatXML:
		return "sff"
	case FormatHFF:
		return "hff"
	case FormatJSON:
		return "json"
	}
	return ""
}

// ParseFormat maps a file extension or format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "sff", "xml":
		return FormatXML, nil
	case "hff", "h5", "hdf5":
		return FormatHFF, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, newError(ErrInvalidPath, "unknown format %q", name)
}

// FormatForPath picks the format from path's extension.
func FormatForPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, &Error{Kind: ErrInvalidPath, Path: path, Message: "no file extension"}
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return 0, &Error{Kind: ErrInvalidPath, Path: path, Message: fmt.Sprintf("unsupported extension %q", ext)}
	}
	return f, nil
}

// Options controls how a segmentation is written.
type Options struct {
	JSONSort       bool
	JSONIndent     int    // spaces per level; 0 writes compact JSON
	XMLVersion     string // value of the XML prologue's version
	XMLEncoding    string // value of the XML prologue's encoding
	HFFCompression hff.Compression

	// ExcludeGeometry leaves out lattices, mesh buffers and shape lists.
	ExcludeGeometry bool

	// Version, when set, must match the segmentation's schema version.
	Version string
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() Options {
	return Options{
		JSONIndent:     2,
		XMLVersion:     "1.0",
		XMLEncoding:    "UTF-8",
		HFFCompression: hff.CompressionZstd,
	}
}

func (o *Options) orDefault() Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	def := DefaultOptions()
	if out.XMLVersion == "" {
		out.XMLVersion = def.XMLVersion
	}
	if out.XMLEncoding == "" {
		out.XMLEncoding = def.XMLEncoding
	}
	return out
}

// Encode validates s and returns its encoding in format. Nothing is
// produced when validation fails.
func Encode(s *Segmentation, format Format, opts *Options) ([]byte, error) {
	o := opts.orDefault()
	if s == nil {
		return nil, newError(ErrType, "cannot encode a nil segmentation")
	}
	schema, err := LookupSchema(s.Version)
	if err != nil {
		return nil, err
	}
	if o.Version != "" {
		want, err := LookupSchema(o.Version)
		if err != nil {
			return nil, err
		}
		if want != schema {
			return nil, newError(ErrUnsupportedVersion, "segmentation is version %s, cannot write as %s", schema.Version, want.Version)
		}
	}
	if err := ValidateWith(s, ValidateOptions{ExcludeGeometry: o.ExcludeGeometry}); err != nil {
		return nil, err
	}
	if o.JSONIndent < 0 {
		return nil, newError(ErrValue, "JSON indent must be non-negative, got %d", o.JSONIndent)
	}
	if format == FormatXML {
		if _, err := xmltree.LookupCharset(o.XMLEncoding); err != nil {
			return nil, &Error{Kind: ErrValue, Message: "unsupported XML encoding", Cause: err}
		}
	}
	c := &wireCtx{schema: schema, excludeGeometry: o.ExcludeGeometry}
	switch format {
	case FormatXML:
		var buf bytes.Buffer
		if err := encodeXML(&buf, s, c, o.XMLVersion, o.XMLEncoding); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatHFF:
		root, err := encodeHFF(s, c)
		if err != nil {
			return nil, err
		}
		b, err := hff.Marshal(root, hff.WriteOptions{Compression: o.HFFCompression})
		if err != nil {
			return nil, &Error{Kind: ErrEncoding, Message: "cannot serialise HFF", Cause: err}
		}
		return b, nil
	case FormatJSON:
		return encodeJSON(s, c, o.JSONSort, o.JSONIndent)
	}
	return nil, newError(ErrInvalidPath, "unknown format %v", format)
}

// Write encodes s in format and writes it to w. The encoding is complete
// before the first byte reaches w.
func Write(w io.Writer, s *Segmentation, format Format, opts *Options) error {
	b, err := Encode(s, format, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Export writes s to path in the format implied by its extension. The file
// is replaced atomically; on any failure no file is left at path.
func Export(path string, s *Segmentation, opts *Options) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	b, err := Encode(s, format, opts)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b)
}

func writeFileAtomic(path string, b []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(b); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// Read decodes a segmentation from r, auto-detecting its schema version.
func Read(r io.Reader, format Format) (*Segmentation, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b, format)
}

// Decode is Read over an in-memory document.
func Decode(b []byte, format Format) (*Segmentation, error) {
	switch format {
	case FormatXML:
		root, err := parseXML(b)
		if err != nil {
			return nil, err
		}
		v, _ := xmlVersion(root)
		c, err := readCtx(v)
		if err != nil {
			return nil, err
		}
		return decodeXML(root, c)
	case FormatHFF:
		root, err := hff.Unmarshal(b)
		if err != nil {
			if errors.Is(err, hff.ErrNativeHDF5) {
				return nil, &Error{Kind: ErrEncoding, Message: "cannot read native HDF5", Cause: err}
			}
			return nil, &Error{Kind: ErrEncoding, Message: "malformed HFF", Cause: err}
		}
		v, _ := hffVersion(root)
		c, err := readCtx(v)
		if err != nil {
			return nil, err
		}
		return decodeHFF(root, c)
	case FormatJSON:
		doc, err := parseJSON(b)
		if err != nil {
			return nil, err
		}
		v, _ := jsonVersion(doc)
		c, err := readCtx(v)
		if err != nil {
			return nil, err
		}
		return decodeJSON(doc, c)
	}
	return nil, newError(ErrInvalidPath, "unknown format %v", format)
}

// readCtx resolves the detected version. Documents without one are
// rejected, as DetectVersion does.
func readCtx(version string) (*wireCtx, error) {
	if version == "" {
		return nil, newError(ErrUnsupportedVersion, "document records no schema version")
	}
	schema, err := LookupSchema(version)
	if err != nil {
		return nil, err
	}
	return &wireCtx{schema: schema}, nil
}

// ReadFile reads the segmentation stored at path, choosing the format from
// the extension.
func ReadFile(path string) (*Segmentation, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Decode(b, format)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return s, nil
}

// DetectVersion returns the schema version recorded in a document without
// decoding the rest of it.
func DetectVersion(b []byte, format Format) (string, error) {
	var (
		v  string
		ok bool
	)
	switch format {
	case FormatXML:
		root, err := parseXML(b)
		if err != nil {
			return "", err
		}
		v, ok = xmlVersion(root)
	case FormatHFF:
		root, err := hff.Unmarshal(b)
		if err != nil {
			return "", &Error{Kind: ErrEncoding, Message: "malformed HFF", Cause: err}
		}
		v, ok = hffVersion(root)
	case FormatJSON:
		doc, err := parseJSON(b)
		if err != nil {
			return "", err
		}
		v, ok = jsonVersion(doc)
	default:
		return "", newError(ErrInvalidPath, "unknown format %v", format)
	}
	if !ok {
		return "", newError(ErrUnsupportedVersion, "document records no schema version")
	}
	if !IsSupported(v) {
		return "", newError(ErrUnsupportedVersion, "unknown schema version %q", v)
	}
	return normalizeVersion(v), nil
}
