package traverse

import "reflect"

// Token identifies an object by reference, never by structural equality, so
// value-equal but distinct nodes are kept apart. The address alone is not
// enough: distinct slice views share their backing array's base address
// (s[:0] vs s[:1]), and a struct shares its address with its first field, so
// the type and the slice length take part in identity as well.
type Token struct {
	addr   uintptr
	typ    reflect.Type
	length int //slice length, -1 for the other kinds
}

// Before imposes an arbitrary but consistent order, for unordered pair keys.
func (t Token) Before(other Token) bool {
	if t.addr != other.addr {
		return t.addr < other.addr
	}
	if t.length != other.length {
		return t.length < other.length
	}
	if t.typ != other.typ {
		return t.typ.String() < other.typ.String()
	}
	return false
}

// Identity yields the reference token of a value. Only reference kinds carry
// identity: a plain struct copy cannot reach itself again and therefore
// needs no cycle bookkeeping.
func Identity(v reflect.Value) (token Token, ok bool) {
	if !v.IsValid() {
		return Token{}, false
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return Token{}, false
		}
		return Token{addr: v.Pointer(), typ: v.Type(), length: v.Len()}, true
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return Token{}, false
		}
		return Token{addr: v.Pointer(), typ: v.Type(), length: -1}, true
	}
	return Token{}, false
}

// IsNil reports whether the value is absent, treating the nilable kinds
// uniformly and invalid values as nil.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// Unwrap strips interface boxes so callers see the dynamic value.
func Unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}
