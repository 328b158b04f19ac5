// Package report renders command results as a key/value table or JSON.
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Format selects how reports are printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// PreviewFooter is printed under a table when a transaction was built but
// not submitted.
const PreviewFooter = "Preview only, nothing was submitted. Pass --commit to submit the transaction."

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, want table or json", s)
	}
}

func (f Format) String() string { return string(f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// Field is one row of a table report.
type Field struct {
	Key   string
	Value string
}

// Report is a rendered result. Fields drive the table view and Doc is
// marshaled for the JSON view.
type Report struct {
	Fields  []Field
	Doc     any
	Preview bool
}

// Printer writes reports to one output.
type Printer struct {
	out    io.Writer
	format Format
	header *color.Color
}

// NewPrinter creates a printer. Color is used only when out is a terminal
// and NO_COLOR is unset.
func NewPrinter(out io.Writer, format Format) *Printer {
	p := &Printer{out: out, format: format, header: color.New(color.Bold)}
	if !isTerminal(out) || os.Getenv("NO_COLOR") != "" {
		p.header.DisableColor()
	} else {
		p.header.EnableColor()
	}
	return p
}

// Print renders r. Nothing is written if rendering fails.
func (p *Printer) Print(r *Report) error {
	var (
		buf []byte
		err error
	)
	switch p.format {
	case FormatJSON:
		buf, err = p.renderJSON(r)
	case FormatTable, "":
		buf, err = p.renderTable(r)
	default:
		err = fmt.Errorf("unknown format %q", p.format)
	}
	if err != nil {
		return err
	}
	_, err = p.out.Write(buf)
	return err
}

func (p *Printer) renderJSON(r *Report) ([]byte, error) {
	if r.Doc == nil {
		return nil, fmt.Errorf("report has no json document")
	}
	b, err := json.MarshalIndent(r.Doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json report: %w", err)
	}
	return append(b, '\n'), nil
}

func (p *Printer) renderTable(r *Report) ([]byte, error) {
	var body bytes.Buffer
	tw := tabwriter.NewWriter(&body, 3, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Key\tValue")
	for _, f := range r.Fields {
		if strings.ContainsAny(f.Key+f.Value, "\t\n") {
			return nil, fmt.Errorf("field %q: value contains control characters", f.Key)
		}
		fmt.Fprintf(tw, "%s\t%s\n", f.Key, f.Value)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	// Style the header after alignment so escape codes do not skew columns.
	var out bytes.Buffer
	sc := bufio.NewScanner(&body)
	for first := true; sc.Scan(); first = false {
		line := strings.TrimRight(sc.Text(), " ")
		if first {
			line = p.header.Sprint(line)
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if r.Preview {
		out.WriteString("\n" + PreviewFooter + "\n")
	}
	return out.Bytes(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
