package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// NewLogger returns a structured logger writing to w. Format "text" and
// "json" pick the handler; "auto" uses text on a terminal and JSON when w
// is piped or redirected.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	options := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "", "auto":
		if IsTerminal(w) {
			return slog.New(slog.NewTextHandler(w, options)), nil
		}
		return slog.New(slog.NewJSONHandler(w, options)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Now is the clock used by PrintDate.
var Now = time.Now

// PrintDate writes msg to w as one line prefixed with the current time in
// RFC 3339.
func PrintDate(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s\t%s\n", Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}
