package treemap

import (
	"strings"

	"github.com/disiqueira/gotree/v3"

	"github.com/monsieurmeh/scrutiny/internal/members"
)

// Render produces the two-part map output: the legend table followed by the
// tree with box-drawing connectors. Matched component types render as leaves
// ahead of a node's structural children.
func (m *Mapper) Render(tree *Node, legend *Legend) string {
	var rendered strings.Builder
	if legend != nil && len(legend.Types()) > 0 {
		rendered.WriteString(legend.Table())
		rendered.WriteString("\n")
	}
	if tree != nil {
		rendered.WriteString(visualTreeOf(tree).Print())
	}
	return rendered.String()
}

func visualTreeOf(node *Node) gotree.Tree {
	branch := gotree.New(node.DisplayName)
	for _, matched := range node.Matched {
		branch.Add("<" + members.TypeName(matched) + ">")
	}
	for _, child := range node.Children {
		branch.AddTree(visualTreeOf(child))
	}
	return branch
}
