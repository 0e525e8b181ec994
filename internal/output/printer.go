package output

import (
	"fmt"
	"io"
	"os"
)

type Class int

const (
	Required Class = iota //explicitly requested information, never suppressed
	Error
	Normal
	Verbose
)

type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinter(include []Class, allowEscapes bool) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   os.Stdout,
		diagnosis:  os.Stderr,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

// NewPrinterTo is NewPrinter with explicit targets, for tests and embedding.
func NewPrinterTo(include []Class, allowEscapes bool, terminal io.Writer, diagnosis io.Writer) (p Printer) {
	p = NewPrinter(include, allowEscapes)
	p.terminal = terminal
	p.diagnosis = diagnosis
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := &p.terminal
	if class == Error {
		target = &p.diagnosis
	}
	fmt.Fprintf(*target, format, values...)
}

// Dim wraps text in a dim escape sequence if escapes are allowed.
func (p Printer) Dim(text string) string {
	if !p.useEscapes {
		return text
	}
	return TerminalFormatAsDim(text)
}

// Alert wraps text in an error-colored escape sequence if escapes are allowed.
func (p Printer) Alert(text string) string {
	if !p.useEscapes {
		return text
	}
	return TerminalFormatAsError(text)
}
