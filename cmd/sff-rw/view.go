package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"

	sff "github.com/emdb-empiar/sfftkrw"
	"github.com/emdb-empiar/sfftkrw/internal/cli"
)

func viewCommand(e *env) *cli.Command {
	var sffVersion, verbose bool
	return &cli.Command{
		Name:        "view",
		Summary:     "view file summary",
		Description: "View a summary of an SFF file",
		Usage:       "sff-rw view FROM [--sff-version] [-v]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
			fs.BoolVar(&sffVersion, "sff-version", false, "show SFF format version")
			fs.BoolVarP(&verbose, "verbose", "v", false, "list the segments")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return usageError(fmt.Errorf("view takes exactly one file, got %d", len(args)))
			}
			return runView(e, args[0], sffVersion, verbose)
		},
	}
}

func runView(e *env, from string, sffVersion, verbose bool) error {
	format, err := sff.FormatForPath(from)
	if err != nil {
		return usageError(fmt.Errorf("not implemented view for files of type %q", filepath.Ext(from)))
	}
	if _, err := e.settings(); err != nil {
		return err
	}
	seg, err := sff.ReadFile(from)
	if err != nil {
		return readError(err)
	}
	e.logger.Debug("read segmentation", "file", from, "format", format.String(), "version", seg.Version)
	if sffVersion {
		fmt.Fprintln(e.stdout, seg.Version)
		return nil
	}

	rule := strings.Repeat("*", 50)
	fmt.Fprintln(e.stdout, rule)
	fmt.Fprintf(e.stdout, "EMDB-SFF Segmentation version %s\n", seg.Version)
	fmt.Fprintf(e.stdout, "Segmentation name: %s\n", seg.Name)
	fmt.Fprintf(e.stdout, "Format: %s\n", format.Label())
	fmt.Fprintf(e.stdout, "Primary descriptor: %s\n", seg.PrimaryDescriptor)
	fmt.Fprintf(e.stdout, "No. of segments: %d\n", seg.SegmentsList().Len())
	fmt.Fprintln(e.stdout, rule)

	if verbose {
		if info, err := os.Stat(from); err == nil {
			fmt.Fprintf(e.stdout, "File size: %s\n", humanize.IBytes(uint64(info.Size())))
		}
		if seg.Lattices != nil {
			for _, l := range seg.Lattices.All() {
				if l.Size == nil {
					continue
				}
				fmt.Fprintf(e.stdout, "Lattice %d: %s, %s\n", l.ID.Value(), l.Size, humanize.IBytes(uint64(len(l.Data))))
			}
		}
		segmentTable(e.stdout, seg)
	}
	return nil
}

func segmentTable(w io.Writer, seg *sff.Segmentation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Parent", "Name", "Colour", "Geometry"})
	table.SetAutoWrapText(false)
	for _, s := range seg.SegmentsList().All() {
		colour := ""
		if s.Colour != nil {
			if hex, err := s.Colour.Hex(4); err == nil {
				colour = hex
			}
		}
		name := ""
		if s.BiologicalAnnotation != nil {
			name = s.BiologicalAnnotation.Name
		}
		table.Append([]string{
			s.ID.String(),
			strconv.FormatUint(uint64(s.Parent()), 10),
			name,
			colour,
			geometry(s),
		})
	}
	table.Render()
}

func geometry(s *sff.Segment) string {
	switch {
	case s.ThreeDVolume != nil:
		return fmt.Sprintf("lattice %d, value %g", s.ThreeDVolume.LatticeID.Value(), s.ThreeDVolume.Value.Value())
	case s.MeshList != nil:
		return humanize.Comma(int64(s.MeshList.Len())) + " mesh(es)"
	case s.ShapePrimitiveList != nil:
		return humanize.Comma(int64(s.ShapePrimitiveList.Len())) + " shape(s)"
	}
	return "-"
}
