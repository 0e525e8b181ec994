package members

import (
	"math/big"
	"reflect"
	"time"
)

const maxPlainAggregateLen = 16 //covers 2/3/4-vectors and 4x4 matrices flattened

var namedScalarTypes = map[reflect.Type]bool{
	reflect.TypeOf(time.Time{}):      true,
	reflect.TypeOf(time.Duration(0)): true,
	reflect.TypeOf(big.Int{}):        true,
	reflect.TypeOf(big.Float{}):      true,
	reflect.TypeOf(big.Rat{}):        true,
}

// IsScalar reports whether t is treated as a leaf value that is never
// recursed into, regardless of filter configuration. The set is closed on
// purpose so the scalar/aggregate boundary stays auditable in one place:
// primitives, strings, named enum-like kinds, arbitrary-precision numerics,
// time values, and small fixed-size numeric arrays (vectors, small matrices).
func IsScalar(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if namedScalarTypes[t] {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true //named types of these kinds double as enumerations
	case reflect.Array:
		return t.Len() <= maxPlainAggregateLen && isNumericKind(t.Elem().Kind())
	}
	return false
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsEnumerable reports whether values of t are iterated element-wise by the
// traversal instead of member-wise. Strings are scalars despite being
// iterable and channels are opaque because draining one would mutate it.
func IsEnumerable(t reflect.Type) bool {
	if t == nil || IsScalar(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
