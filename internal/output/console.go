package output

import (
	"fmt"
	"io"
)

const consoleIndentWidth = 2

// ConsoleSink renders traversal events as indented lines, one per event.
// It implements the traversal sink contract.
type ConsoleSink struct {
	target io.Writer
	depth  int
}

func NewConsoleSink(target io.Writer) *ConsoleSink {
	return &ConsoleSink{target: target}
}

func (s *ConsoleSink) line(format string, values ...interface{}) {
	fmt.Fprint(s.target, Indent(s.depth*consoleIndentWidth, fmt.Sprintf(format, values...)), "\n")
}

func label(member string) string {
	if member == "" {
		return "<root>"
	}
	return member
}

func (s *ConsoleSink) EnterObject(path, member, typeName string) {
	s.line("%s: <%s>", label(member), typeName)
	s.depth++
}

func (s *ConsoleSink) ExitObject() {
	if s.depth > 0 {
		s.depth--
	}
}

func (s *ConsoleSink) EnterArray(path, member string) {
	s.line("%s:", label(member))
	s.depth++
}

func (s *ConsoleSink) ExitArray() {
	if s.depth > 0 {
		s.depth--
	}
}

func (s *ConsoleSink) Value(path, member, typeName string, value interface{}) {
	if stringValue, isString := value.(string); isString {
		s.line("%s = %q (%s)", label(member), stringValue, typeName)
		return
	}
	s.line("%s = %v (%s)", label(member), value, typeName)
}

func (s *ConsoleSink) Null(path, member, typeName string) {
	s.line("%s = <nil> (%s)", label(member), typeName)
}

func (s *ConsoleSink) Error(path, member, typeName, message string) {
	s.line("! %s (%s): %s", label(member), typeName, message)
}

func (s *ConsoleSink) DepthLimit(path, member string) {
	s.line("%s ...(depth limit)", label(member))
}

func (s *ConsoleSink) Truncated(path string, limit int) {
	s.line("...(truncated after %d %s)", limit, Plural(limit, "item", "items"))
}
