package members

import (
	"fmt"
	"reflect"
)

// ReflectProvider is the default introspection backend. It enumerates
// exported struct fields plus exported getter-style methods (no parameters,
// single result). Methods taking parameters are described with their arity so
// callers can skip them, mirroring indexed accessors.
type ReflectProvider struct{}

func (ReflectProvider) Describe(t reflect.Type) (described []Descriptor) {
	if t == nil {
		return nil
	}
	structType := t
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	taken := make(map[string]bool)
	if structType.Kind() == reflect.Struct {
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}
			described = append(described, Descriptor{
				Name:          field.Name,
				DeclaringType: structType,
				ValueType:     field.Type,
				Readable:      true,
				field:         field.Index,
			})
			taken[field.Name] = true
		}
	}

	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if !method.IsExported() || taken[method.Name] {
			continue
		}
		signature := method.Type
		if signature.NumOut() != 1 {
			continue //not a value accessor
		}
		described = append(described, Descriptor{
			Name:          method.Name,
			DeclaringType: t,
			ValueType:     signature.Out(0),
			Readable:      true,
			IndexerArity:  signature.NumIn() - 1, //minus receiver
			method:        i,
		})
	}
	return
}

// Read never panics: a misbehaving accessor or a nil receiver is converted
// into an error so one bad member cannot abort an enclosing traversal.
func (ReflectProvider) Read(instance reflect.Value, member Descriptor) (value reflect.Value, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value = reflect.Value{}
			err = fmt.Errorf("accessor for %s failed: %v", member.Name, recovered)
		}
	}()

	if !instance.IsValid() {
		return reflect.Value{}, fmt.Errorf("no instance to read %s from", member.Name)
	}

	if member.field != nil {
		target := instance
		if target.Kind() == reflect.Pointer {
			if target.IsNil() {
				return reflect.Value{}, fmt.Errorf("nil receiver reading %s", member.Name)
			}
			target = target.Elem()
		}
		return target.FieldByIndex(member.field), nil
	}

	if member.IndexerArity > 0 {
		return reflect.Value{}, fmt.Errorf("member %s requires %d index parameter(s)", member.Name, member.IndexerArity)
	}
	results := instance.Method(member.method).Call(nil)
	return results[0], nil
}
