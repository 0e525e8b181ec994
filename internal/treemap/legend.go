package treemap

import (
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/monsieurmeh/scrutiny/internal/members"
)

// Legend lists, once per distinct matched type, the members the examine
// filter would surface for it: a deduplicated "what would be shown" reference
// independent of how many nodes share the type.
type Legend struct {
	order   []reflect.Type
	entries map[reflect.Type][]members.Descriptor
}

// CollectLegend makes a single pre-order pass over the (possibly pruned)
// tree. The first occurrence of a type wins, later occurrences are skipped.
func (m *Mapper) CollectLegend(tree *Node) *Legend {
	legend := &Legend{entries: make(map[reflect.Type][]members.Descriptor)}
	m.collect(tree, legend)
	return legend
}

func (m *Mapper) collect(node *Node, legend *Legend) {
	if node == nil {
		return
	}
	for _, matched := range node.Matched {
		if _, seen := legend.entries[matched]; seen {
			continue
		}
		var shown []members.Descriptor
		for _, member := range m.members.Of(matched) {
			if !member.Readable || member.IndexerArity != 0 {
				continue
			}
			if m.filter.ShouldExamine(member.DeclaringType, member) {
				shown = append(shown, member)
			}
		}
		legend.order = append(legend.order, matched)
		legend.entries[matched] = shown
	}
	for _, child := range node.Children {
		m.collect(child, legend)
	}
}

func (l *Legend) Types() []reflect.Type {
	return l.order
}

func (l *Legend) MembersOf(t reflect.Type) []members.Descriptor {
	return l.entries[t]
}

// Table renders the legend as an aligned table with one row per shown member.
func (l *Legend) Table() string {
	var rendered strings.Builder
	table := tablewriter.NewWriter(&rendered)
	table.SetHeader([]string{"Type", "Member", "Member Type"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	for _, matched := range l.order {
		shown := l.entries[matched]
		if len(shown) == 0 {
			table.Append([]string{members.TypeName(matched), "-", "-"})
			continue
		}
		for i, member := range shown {
			typeColumn := ""
			if i == 0 {
				typeColumn = members.TypeName(matched)
			}
			table.Append([]string{typeColumn, member.Name, members.TypeName(member.ValueType)})
		}
	}
	table.Render()
	return rendered.String()
}
