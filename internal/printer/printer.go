// Package printer renders included files into the output stream
package printer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/bethropolis/cocat/internal/stats"
)

// Format selects the output rendering mode.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("printer: unknown format %q", name)
}

// replacementMarker substitutes byte sequences that do not decode as
// UTF-8. The file is still rendered.
const replacementMarker = "�"

// Printer reads included files and writes one block per file to the
// output stream, accumulating run statistics as it goes. Blocks are
// emitted one at a time so arbitrarily large trees never require the
// whole output in memory.
type Printer struct {
	fsys        afero.Fs
	output      io.Writer
	stats       *stats.RunStats
	format      Format
	jsonStarted bool
}

// New creates a Printer writing text-format blocks to output.
func New(fsys afero.Fs, output io.Writer, st *stats.RunStats) *Printer {
	return &Printer{
		fsys:   fsys,
		output: output,
		stats:  st,
		format: FormatText,
	}
}

// WithFormat sets the output format
func (p *Printer) WithFormat(f Format) *Printer {
	p.format = f
	return p
}

// Render reads the file at path and emits its block under relativePath.
// Content that is not valid UTF-8 is repaired with replacement markers
// and counted. A read failure is returned to the caller; it must never
// abort the run.
func (p *Printer) Render(path, relativePath string) error {
	content, err := afero.ReadFile(p.fsys, path)
	if err != nil {
		return fmt.Errorf("printer: reading %s: %w", relativePath, err)
	}

	if !utf8.Valid(content) {
		content = bytes.ToValidUTF8(content, []byte(replacementMarker))
		p.stats.DecodingIssues++
	}

	var n int
	switch p.format {
	case FormatJSON:
		n, err = p.renderJSON(relativePath, content)
	case FormatMarkdown:
		n, err = fmt.Fprintf(p.output, "file: %s\n\n```\n%s\n```\n\n", relativePath, content)
	default:
		// The exact block shape: delimiter line, verbatim content, one
		// blank line before the next block or end of stream.
		n, err = fmt.Fprintf(p.output, "------ %s ------\n%s\n\n", relativePath, content)
	}
	if err != nil {
		return fmt.Errorf("printer: writing block for %s: %w", relativePath, err)
	}

	p.stats.Included++
	p.stats.BytesWritten += int64(n)
	return nil
}

// jsonEntry represents one file in JSON output
type jsonEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"` // base64 of the (repaired) bytes
}

func (p *Printer) renderJSON(relativePath string, content []byte) (int, error) {
	data, err := json.MarshalIndent(jsonEntry{
		Path:    relativePath,
		Content: base64.StdEncoding.EncodeToString(content),
	}, "  ", "  ")
	if err != nil {
		return 0, err
	}
	prefix := "[\n"
	if p.jsonStarted {
		prefix = ",\n"
	}
	p.jsonStarted = true
	return fmt.Fprintf(p.output, "%s  %s", prefix, data)
}

// Finalize completes any pending output (closing the JSON array when
// that format is active).
func (p *Printer) Finalize() error {
	if p.format == FormatJSON && p.jsonStarted {
		n, err := fmt.Fprint(p.output, "\n]\n")
		if err != nil {
			return err
		}
		p.stats.BytesWritten += int64(n)
	}
	return nil
}
