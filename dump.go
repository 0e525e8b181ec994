package scrutiny

import (
	"fmt"
	"reflect"

	"github.com/monsieurmeh/scrutiny/internal/output"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
)

// Dump traverses the subject graph and renders it to the configured output.
func (s *scrutinizer) Dump(subject interface{}) error {
	if subject == nil || traverse.IsNil(reflect.ValueOf(subject)) {
		return newCommandError("nothing to dump", NilSubjectError)
	}
	s.printHeader()

	walker := traverse.NewWalker(s.members, s.rules, s.settings.MaxDepth, s.settings.MaxEnumerableItems, s.log)

	if s.settings.Format == DocumentFormat {
		builder := output.NewDocumentBuilder()
		walkErr := walker.Walk(subject, builder)
		encoded, err := builder.MarshalIndent()
		if err != nil {
			return newCommandError("document assembly failed", err)
		}
		fmt.Fprintln(s.out, string(encoded))
		return s.summarize(walkErr)
	}

	walkErr := walker.Walk(subject, output.NewConsoleSink(s.out))
	return s.summarize(walkErr)
}

func (s *scrutinizer) printHeader() {
	if s.settings.Description != "" {
		s.print.Out(output.Normal, "%s\n", s.print.Dim("# "+s.settings.Description))
	}
}

// summarize converts aggregated member read failures into the degraded-output
// error; the rendered output has already been written at this point.
func (s *scrutinizer) summarize(walkErr error) error {
	if walkErr == nil {
		return nil
	}
	s.print.Out(output.Error, "%s\n", s.print.Alert(fmt.Sprintf("%s: %s", DegradedOutputError, walkErr)))
	return newCommandError(DegradedOutputError.Error(), walkErr)
}
