package members

import "reflect"

// Descriptor identifies one inspectable member of a concrete type.
// Descriptors are immutable once produced and safe to share between traversals.
type Descriptor struct {
	Name          string
	DeclaringType reflect.Type
	ValueType     reflect.Type
	Readable      bool
	IndexerArity  int //number of index parameters an accessor takes, zero for plain members

	field  []int //index chain for field access, nil for method-backed members
	method int   //method index, valid only if field is nil
}

// Provider enumerates the inspectable members of a type and reads their values.
// The engine never assumes a specific introspection mechanism beyond this contract.
type Provider interface {
	// Describe returns the inspectable members of t in a stable order.
	Describe(t reflect.Type) []Descriptor

	// Read extracts the member's value from an instance.
	// A failing accessor is reported as an error, never as a panic.
	Read(instance reflect.Value, member Descriptor) (reflect.Value, error)
}
