package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/internal/cli"
)

type convertFlags struct {
	output            string
	format            string
	primaryDescriptor string
	details           string
	verbose           bool
	excludeGeometry   bool
	jsonSort          bool
	jsonIndent        int
}

func convertCommand(e *env) *cli.Command {
	var (
		f  convertFlags
		fs *pflag.FlagSet
	)
	return &cli.Command{
		Name:        "convert",
		Summary:     "converts between EMDB-SFF formats",
		Description: "Perform EMDB-SFF file format interconversions",
		Usage:       "sff-rw convert FROM [-o OUT | -f FMT] [flags]",
		Examples: []cli.Example{
			{Description: "XML to HDF5 next to the input", Command: "sff-rw convert emd_1014.sff"},
			{Description: "sorted, compact JSON", Command: "sff-rw convert emd_1014.hff -o out.json --json-sort --json-indent 0"},
		},
		Flags: func() *pflag.FlagSet {
			fs = pflag.NewFlagSet("convert", pflag.ContinueOnError)
			fs.StringVarP(&f.output, "output", "o", "", "file to convert to; the extension (.sff, .hff, .json) determines the output format")
			fs.StringVarP(&f.format, "format", "f", "", "output file format: sff (XML), hff (HDF5) or json (JSON)")
			fs.StringVarP(&f.primaryDescriptor, "primary-descriptor", "R", "", "set the primary descriptor: three_d_volume, mesh_list or shape_primitive_list")
			fs.StringVarP(&f.details, "details", "D", "", "populate the details field")
			fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
			fs.BoolVarP(&f.excludeGeometry, "exclude-geometry", "x", false, "do not include the geometry in the conversion")
			fs.BoolVar(&f.jsonSort, "json-sort", false, "output JSON sorted lexicographically")
			fs.IntVar(&f.jsonIndent, "json-indent", 2, "size in spaces of the JSON indent")
			return fs
		},
		Run: func(args []string) error {
			return runConvert(e, args, f, fs)
		},
	}
}

func runConvert(e *env, args []string, f convertFlags, fs *pflag.FlagSet) error {
	if len(args) != 1 {
		return usageError(fmt.Errorf("convert takes exactly one input file, got %d", len(args)))
	}
	from := args[0]
	if _, err := sff.FormatForPath(from); err != nil {
		return usageError(err)
	}
	cfg, err := e.settings()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return usageError(err)
	}

	out, err := outputPath(from, f.output, f.format)
	if err != nil {
		return usageError(err)
	}
	outFormat, err := sff.FormatForPath(out)
	if err != nil {
		return usageError(err)
	}
	if f.verbose && f.output == "" {
		cli.PrintDate(e.stderr, "Setting output file to %s", out)
	}

	var pd sff.PrimaryDescriptor
	if f.primaryDescriptor != "" {
		pd, err = sff.ParsePrimaryDescriptor(f.primaryDescriptor)
		if err != nil {
			return usageError(fmt.Errorf("invalid value for primary descriptor: %s", f.primaryDescriptor))
		}
		if f.verbose {
			cli.PrintDate(e.stderr, "Trying to set primary descriptor to %s", f.primaryDescriptor)
		}
	}

	if fs.Changed("json-indent") {
		opts.JSONIndent = f.jsonIndent
	}
	if fs.Changed("json-sort") {
		opts.JSONSort = f.jsonSort
	}
	opts.ExcludeGeometry = f.excludeGeometry
	if outFormat == sff.FormatJSON {
		if opts.JSONIndent < 0 {
			return usageError(fmt.Errorf("invalid value for --json-indent: %d", opts.JSONIndent))
		}
		if f.verbose {
			cli.PrintDate(e.stderr, "Indenting JSON with indent=%d", opts.JSONIndent)
			if opts.JSONSort {
				cli.PrintDate(e.stderr, "JSON keys will be sorted lexicographically")
			}
		}
	}

	inFormat, _ := sff.FormatForPath(from)
	if f.verbose {
		cli.PrintDate(e.stderr, "Converting from EMDB-SFF (%s) file %s", inFormat.Label(), from)
	}
	seg, err := sff.ReadFile(from)
	if err != nil {
		return readError(err)
	}
	e.logger.Debug("read segmentation", "file", from, "version", seg.Version, "segments", seg.SegmentsList().Len())

	if pd != 0 {
		seg.PrimaryDescriptor = pd
	}
	if fs.Changed("details") {
		seg.Details = f.details
	}

	if f.verbose {
		cli.PrintDate(e.stderr, "Exporting to %s", out)
	}
	if err := sff.Export(out, seg, &opts); err != nil {
		return dataError(err)
	}
	e.logger.Debug("exported segmentation", "file", out, "format", outFormat.String())
	if f.verbose {
		cli.PrintDate(e.stderr, "Done")
	}
	return nil
}

// outputPath returns the explicit output, or derives one next to from: the
// -f format's extension when given, else .hff for XML input and .sff for
// HDF5 input, .hff otherwise.
func outputPath(from, output, format string) (string, error) {
	if output != "" && format != "" {
		return "", errors.New("-o/--output and -f/--format are mutually exclusive")
	}
	if output != "" {
		return output, nil
	}
	ext := filepath.Ext(from)
	stem := strings.TrimSuffix(filepath.Base(from), ext)
	dir := filepath.Dir(from)
	if format != "" {
		f, err := formatFlag(format)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, stem+"."+f.Ext()), nil
	}
	in, _ := sff.FormatForPath(from)
	switch in {
	case sff.FormatHFF:
		return filepath.Join(dir, stem+".sff"), nil
	default:
		return filepath.Join(dir, stem+".hff"), nil
	}
}

// formatFlag accepts the three names -f documents.
func formatFlag(name string) (sff.Format, error) {
	switch strings.ToLower(name) {
	case "sff":
		return sff.FormatXML, nil
	case "hff":
		return sff.FormatHFF, nil
	case "json":
		return sff.FormatJSON, nil
	}
	return 0, fmt.Errorf("invalid output format: %s; valid values are: sff, hff, json", name)
}
