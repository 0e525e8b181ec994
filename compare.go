package scrutiny

import (
	"fmt"
	"reflect"

	"github.com/monsieurmeh/scrutiny/internal/diff"
	"github.com/monsieurmeh/scrutiny/internal/members"
	"github.com/monsieurmeh/scrutiny/internal/output"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
)

// Compare walks both graphs in lock-step and prints classified findings.
func (s *scrutinizer) Compare(left, right interface{}) error {
	if left == nil || right == nil || traverse.IsNil(reflect.ValueOf(left)) || traverse.IsNil(reflect.ValueOf(right)) {
		return newCommandError("compare requires two non-nil subjects", NilSubjectError)
	}
	leftType, rightType := reflect.TypeOf(left), reflect.TypeOf(right)
	if leftType != rightType {
		return newCommandError(
			fmt.Sprintf("cannot compare %s with %s", members.TypeName(leftType), members.TypeName(rightType)),
			TypeMismatchError)
	}
	s.printHeader()

	differ := diff.NewDiffer(s.members, s.rules, s.settings.MaxDepth, s.settings.MaxEnumerableItems, s.settings.report(), s.log)

	reported := 0
	differences := 0
	differ.Compare(left, right, func(finding diff.Finding) {
		reported++
		if representsDifference(finding.Classification) {
			differences++
		}
		fmt.Fprintln(s.out, formatFinding(finding))
	})

	if reported == 0 {
		s.print.Out(output.Normal, "No findings to report.\n")
	} else {
		s.print.Out(output.Normal, "\n%d %s reported, %d %s\n",
			reported, output.Plural(reported, "finding", "findings"),
			differences, output.Plural(differences, "difference", "differences"))
	}
	return nil
}

func representsDifference(c diff.Classification) bool {
	switch c {
	case diff.ValueDifferent, diff.ReferenceDifferent, diff.NilMismatch, diff.LengthMismatch:
		return true
	}
	return false
}

func formatFinding(finding diff.Finding) string {
	marker := " "
	if representsDifference(finding.Classification) {
		marker = "~"
	} else if finding.Classification == diff.ReadFailure {
		marker = "!"
	}
	location := finding.Path
	if location == "" {
		location = "<root>"
	}
	switch finding.Classification {
	case diff.ValueDifferent, diff.ValueEqual:
		return fmt.Sprintf("[%s] %s: %v | %v (%s)", marker, location, finding.Left, finding.Right, finding.Classification)
	case diff.LengthMismatch:
		return fmt.Sprintf("[%s] %s: %v elements | %v elements (%s)", marker, location, finding.Left, finding.Right, finding.Classification)
	case diff.NilMismatch:
		return fmt.Sprintf("[%s] %s: %v | %v (%s)", marker, location, presentOrNil(finding.Left), presentOrNil(finding.Right), finding.Classification)
	case diff.ReadFailure:
		return fmt.Sprintf("[%s] %s: read failed on %s side: %s", marker, location, finding.FailedSide, finding.Detail)
	}
	text := fmt.Sprintf("[%s] %s: %s", marker, location, finding.Classification)
	if finding.Detail != "" {
		text += " (" + finding.Detail + ")"
	}
	return text
}

func presentOrNil(side interface{}) interface{} {
	if side == nil {
		return "<nil>"
	}
	return side
}
