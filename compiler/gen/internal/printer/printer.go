// Package printer provides the line writer shared by the text emitters.
package printer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Printer accumulates indented lines of generated code.
type Printer struct {
	buf    bytes.Buffer
	tab    string
	indent int
}

// New returns a printer indenting with the given unit, e.g. "\t".
func New(tab string) *Printer {
	return &Printer{tab: tab}
}

// Line writes s as one indented line. An empty s writes an empty line.
func (p *Printer) Line(s string) {
	if s == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.buf.WriteString(strings.Repeat(p.tab, p.indent))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// Linef formats according to a format specifier and writes the result as
// one indented line.
func (p *Printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (p *Printer) Blank() { p.buf.WriteByte('\n') }

// In increases the indentation by one level.
func (p *Printer) In() { p.indent++ }

// Out decreases the indentation by one level.
func (p *Printer) Out() {
	if p.indent > 0 {
		p.indent--
	}
}

// Block writes the opening line, runs body one level deeper and writes the
// closing line.
func (p *Printer) Block(open, close string, body func()) {
	p.Line(open)
	p.In()
	body()
	p.Out()
	p.Line(close)
}

// Bytes returns the accumulated output.
func (p *Printer) Bytes() []byte { return p.buf.Bytes() }

// String returns the accumulated output.
func (p *Printer) String() string { return p.buf.String() }

// WriteTo implements io.WriterTo.
func (p *Printer) WriteTo(w io.Writer) (int64, error) {
	return p.buf.WriteTo(w)
}
