package members

import (
	"reflect"
)

// TypeName yields a stable, human-readable name for a type, short enough for
// line-oriented output: package-qualified without the full import path.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// TypeNameOf is TypeName applied to a value's runtime type.
func TypeNameOf(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return TypeName(reflect.TypeOf(v))
}
