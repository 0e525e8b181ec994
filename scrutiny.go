// Package scrutiny inspects arbitrary in-memory object graphs at runtime
// without requiring the graphs' types to opt in: it dumps them as indented
// text or a tagged JSON document, diffs two graphs of the same shape, and
// maps strictly tree-shaped graphs into a type legend plus an indented tree.
package scrutiny

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota //normal level of information, all noteworthy facts without too much noise
	VerboseMode                            //exhaustive information about what is happening, including walk diagnostics
	QuietMode                              //only output errors and information that was explicitly requested
)

// Scrutinizer is the handle to one configured inspection engine. A single
// instance must not run more than one operation at a time; the member cache
// it owns may outlive and span operations.
type Scrutinizer interface {

	// Dump traverses the subject graph and writes it to the configured output,
	// as indented text or as a tagged JSON document depending on the settings.
	// Traversal is cycle-safe and bounded by the depth and item limits. The
	// returned error aggregates member read failures; output is still produced
	// for everything that could be read. A nil subject is an immediate error.
	Dump(subject interface{}) error

	// Compare walks two graphs of the same declared shape in lock-step and
	// writes one line per reported classification. Nil arguments or arguments
	// of differing runtime types are immediate errors with no traversal.
	Compare(left, right interface{}) error

	// Map renders a tree-shaped graph as a type legend plus an indented tree,
	// classifying each node by the component-like sub-objects attached to it.
	// A nil root is an immediate error.
	Map(root interface{}) error

	// Settings exposes the active settings for adjustment between operations.
	// Settings must never be mutated while an operation is in flight.
	Settings() *Settings

	// ActivateCollections switches the named filter rule collections on, in
	// addition to the already active ones. See CollectionNames for the
	// recognized names.
	ActivateCollections(names ...string) error

	// DeactivateCollections stops consulting the named collections without
	// clearing their rules; re-activating restores the previous behavior.
	DeactivateCollections(names ...string) error

	// AddTypeRule appends the prototype's runtime type to a type-keyed rule
	// collection. Matching is assignability-based: a rule naming an interface
	// or base type matches every type assignable to it.
	AddTypeRule(collection string, prototype interface{}) error

	// AddNameRule appends a case-insensitive member name to a name-keyed rule
	// collection.
	AddNameRule(collection string, memberName string) error
}
