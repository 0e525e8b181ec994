package treemap

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/monsieurmeh/scrutiny/internal/filter"
	"github.com/monsieurmeh/scrutiny/internal/members"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
)

// Node is one entry of the hierarchy map: a display name, the component-like
// types attached to it that passed the type filter, and its structural
// children. A node is empty iff it has neither matched types nor children.
// Nodes belong exclusively to the Map call that built them.
type Node struct {
	DisplayName string
	Matched     []reflect.Type
	Children    []*Node
}

func (n *Node) Empty() bool {
	return len(n.Matched) == 0 && len(n.Children) == 0
}

// Hierarchy adapts a host's tree-shaped structures to the mapper: a node has
// a display name, structural children, and directly-attached component-like
// sub-objects. It is a seam like the member-introspection provider, so hosts
// with their own scene/entity notions plug in without the mapper knowing them.
type Hierarchy interface {
	DisplayName(node interface{}) string
	Children(node interface{}) []interface{}
	Components(node interface{}) []interface{}
}

// Mapper builds and renders hierarchy maps. It reuses the recurse filter's
// type dimension to decide which attached components count.
type Mapper struct {
	hierarchy    Hierarchy
	filter       *filter.Engine
	members      *members.Cache
	maxTreeDepth int
	log          *logrus.Logger
}

func NewMapper(hierarchy Hierarchy, engine *filter.Engine, cache *members.Cache, maxTreeDepth int, log *logrus.Logger) *Mapper {
	if log == nil {
		log = logrus.New()
		log.SetOutput(silent{})
	}
	return &Mapper{hierarchy: hierarchy, filter: engine, members: cache, maxTreeDepth: maxTreeDepth, log: log}
}

type silent struct{}

func (silent) Write(p []byte) (int, error) { return len(p), nil }

// BuildTree maps the structural tree below root, bounded by the tree depth
// limit. Attached components are kept when their runtime type passes the
// type-only recurse filter.
func (m *Mapper) BuildTree(root interface{}) *Node {
	return m.build(root, 0)
}

func (m *Mapper) build(raw interface{}, depth int) *Node {
	if raw == nil || depth >= m.maxTreeDepth {
		return nil
	}
	value := traverse.Unwrap(reflect.ValueOf(raw))
	if traverse.IsNil(value) {
		return nil
	}

	node := &Node{DisplayName: m.hierarchy.DisplayName(raw)}
	for _, component := range m.hierarchy.Components(raw) {
		if component == nil {
			continue
		}
		componentType := reflect.TypeOf(component)
		if m.filter.TypeMayRecurse(componentType) {
			node.Matched = append(node.Matched, componentType)
		} else {
			m.log.WithFields(logrus.Fields{"node": node.DisplayName, "type": componentType.String()}).Trace("component filtered out")
		}
	}
	for _, child := range m.hierarchy.Children(raw) {
		if mapped := m.build(child, depth+1); mapped != nil {
			node.Children = append(node.Children, mapped)
		}
	}
	return node
}

// PruneEmpty removes empty branches bottom-up: a child with no matched types
// and no remaining children disappears, which can render its parent empty in
// turn. The root itself is never removed, only reported as empty.
func PruneEmpty(node *Node) (empty bool) {
	if node == nil {
		return true
	}
	kept := node.Children[:0]
	for _, child := range node.Children {
		if !PruneEmpty(child) {
			kept = append(kept, child)
		}
	}
	node.Children = kept
	return node.Empty()
}
