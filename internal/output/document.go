package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ObjectNode is a JSON object that remembers key insertion order, so the
// serialized document lists members in traversal order.
type ObjectNode struct {
	keys   []string
	values map[string]interface{}
}

func NewObjectNode() *ObjectNode {
	return &ObjectNode{values: make(map[string]interface{})}
}

func (o *ObjectNode) Set(key string, value interface{}) {
	if _, present := o.values[key]; !present {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *ObjectNode) Get(key string) (interface{}, bool) {
	value, present := o.values[key]
	return value, present
}

func (o *ObjectNode) Keys() []string {
	return o.keys
}

func (o *ObjectNode) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		encodedValue, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// ArrayNode is an ordered list of document nodes.
type ArrayNode struct {
	items []interface{}
}

func (a *ArrayNode) Append(item interface{}) {
	a.items = append(a.items, item)
}

func (a *ArrayNode) Items() []interface{} {
	return a.items
}

func (a *ArrayNode) MarshalJSON() ([]byte, error) {
	if a.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.items)
}

// DocumentBuilder accumulates the nested map/array document mirroring a
// traversal's enter/exit calls. It implements the traversal sink contract.
// The current-container pointer moves with Enter*/Exit* and must be back at
// the root when the top-level call completes; Document enforces that.
type DocumentBuilder struct {
	root  interface{}
	stack []interface{} //*ObjectNode or *ArrayNode
	fault error         //first structural misuse, sticky
}

func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

func (b *DocumentBuilder) attach(member string, node interface{}) {
	if len(b.stack) == 0 {
		if b.root != nil {
			b.complain("second root node")
			return
		}
		b.root = node
		return
	}
	switch container := b.stack[len(b.stack)-1].(type) {
	case *ObjectNode:
		container.Set(member, node)
	case *ArrayNode:
		container.Append(node)
	}
}

func (b *DocumentBuilder) complain(issue string) {
	if b.fault == nil {
		b.fault = errors.New("document builder misuse: " + issue)
	}
}

func (b *DocumentBuilder) EnterObject(path, member, typeName string) {
	node := NewObjectNode()
	node.Set("$type", typeName)
	b.attach(member, node)
	b.stack = append(b.stack, node)
}

func (b *DocumentBuilder) ExitObject() {
	if len(b.stack) == 0 {
		b.complain("exit without matching enter")
		return
	}
	if _, isObject := b.stack[len(b.stack)-1].(*ObjectNode); !isObject {
		b.complain("object exit closes an array")
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *DocumentBuilder) EnterArray(path, member string) {
	node := &ArrayNode{}
	b.attach(member, node)
	b.stack = append(b.stack, node)
}

func (b *DocumentBuilder) ExitArray() {
	if len(b.stack) == 0 {
		b.complain("exit without matching enter")
		return
	}
	if _, isArray := b.stack[len(b.stack)-1].(*ArrayNode); !isArray {
		b.complain("array exit closes an object")
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *DocumentBuilder) Value(path, member, typeName string, value interface{}) {
	leaf := NewObjectNode()
	leaf.Set("$type", typeName)
	leaf.Set("$value", jsonSafe(value))
	b.attach(member, leaf)
}

func (b *DocumentBuilder) Null(path, member, typeName string) {
	leaf := NewObjectNode()
	leaf.Set("$type", typeName)
	leaf.Set("$value", nil)
	b.attach(member, leaf)
}

func (b *DocumentBuilder) Error(path, member, typeName, message string) {
	leaf := NewObjectNode()
	leaf.Set("$type", typeName)
	leaf.Set("$error", message)
	b.attach(member, leaf)
}

func (b *DocumentBuilder) DepthLimit(path, member string) {
	leaf := NewObjectNode()
	leaf.Set("$maxDepth", true)
	b.attach(member, leaf)
}

func (b *DocumentBuilder) Truncated(path string, limit int) {
	leaf := NewObjectNode()
	leaf.Set("$truncated", true)
	leaf.Set("$maxItems", limit)
	b.attach("", leaf)
}

// Document returns the accumulated root node. It fails if enter/exit calls
// were unbalanced, i.e. the builder did not return to the root.
func (b *DocumentBuilder) Document() (interface{}, error) {
	if b.fault != nil {
		return nil, b.fault
	}
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("document incomplete: %d container(s) never exited", len(b.stack))
	}
	return b.root, nil
}

// MarshalIndent serializes the finished document.
func (b *DocumentBuilder) MarshalIndent() ([]byte, error) {
	document, err := b.Document()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(document, "", "  ")
}

// jsonSafe converts values the JSON encoder cannot represent into strings.
// Scalars arriving here are dominated by primitives, so the fallback is rare.
func jsonSafe(value interface{}) interface{} {
	switch value.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value
	case complex64, complex128:
		return fmt.Sprint(value)
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprint(value)
	case reflect.Float32, reflect.Float64, reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value //named scalar kinds marshal as their underlying kind
	case reflect.Array:
		return value
	}
	if _, marshalable := value.(json.Marshaler); marshalable {
		return value
	}
	return fmt.Sprint(value)
}
