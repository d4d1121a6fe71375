package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/bson"
	"github.com/zoobzio/transcode/json"
	"github.com/zoobzio/transcode/msgpack"
	"github.com/zoobzio/transcode/xml"
	"github.com/zoobzio/transcode/yaml"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// reportEncoders maps report.format values to providers.
var reportEncoders = map[string]func() transcode.Encoder{
	"json":    json.New,
	"yaml":    yaml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
	"xml":     xml.New,
}

// reportEncoder returns the provider for format.
func reportEncoder(format string) (transcode.Encoder, error) {
	newEnc, ok := reportEncoders[format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	return newEnc(), nil
}

// writeFile writes data to dir/name, creating dir. Only the base of name
// is used so a decoded filename cannot escape dir.
func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, safeName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// safeName strips directories from a name taken from untrusted input.
func safeName(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == "" {
		return "decoded.bin"
	}
	return base
}

// printWritten reports a written file and its size.
func printWritten(out io.Writer, path string, size int) {
	green.Fprintf(out, "✓ wrote %s", path)
	fmt.Fprintf(out, " (%s)\n", humanize.Bytes(uint64(size)))
}

// printMetadata prints metadata keys in sorted order.
func printMetadata(out io.Writer, meta map[string]string) {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cyan.Fprintf(out, "  %-18s", k)
		fmt.Fprintf(out, " %s\n", meta[k])
	}
}
