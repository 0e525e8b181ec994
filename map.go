package scrutiny

import (
	"fmt"
	"reflect"

	"github.com/monsieurmeh/scrutiny/internal/output"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
	"github.com/monsieurmeh/scrutiny/internal/treemap"
)

// Map renders a tree-shaped graph as a legend of matched component types
// plus an indented tree.
func (s *scrutinizer) Map(root interface{}) error {
	if root == nil || traverse.IsNil(reflect.ValueOf(root)) {
		return newCommandError("nothing to map", NilSubjectError)
	}
	s.printHeader()

	hierarchy := treemap.NewReflectHierarchy(s.members, s.settings.NameMember, s.settings.ChildrenMember)
	mapper := treemap.NewMapper(hierarchy, s.rules, s.members, s.settings.MaxTreeDepth, s.log)

	tree := mapper.BuildTree(root)
	if tree == nil {
		return newCommandError("root not mappable", nil)
	}
	if s.settings.PruneEmptyBranches && treemap.PruneEmpty(tree) {
		s.print.Out(output.Normal, "No component matches anywhere, map pruned down to the root.\n")
	}

	legend := mapper.CollectLegend(tree)
	fmt.Fprint(s.out, mapper.Render(tree, legend))
	return nil
}
