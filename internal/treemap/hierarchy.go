package treemap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/monsieurmeh/scrutiny/internal/members"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
)

// ReflectHierarchy is the default adapter: it recognizes tree shape by two
// configurable member names, one carrying the display name and one carrying
// the child list. Every other non-scalar, non-list member value counts as an
// attached component. Generic documents (maps with string keys, as produced
// by YAML or JSON decoding) are handled with the same two names as keys,
// matched case-insensitively.
type ReflectHierarchy struct {
	members        *members.Cache
	nameMember     string
	childrenMember string
}

func NewReflectHierarchy(cache *members.Cache, nameMember, childrenMember string) *ReflectHierarchy {
	return &ReflectHierarchy{members: cache, nameMember: nameMember, childrenMember: childrenMember}
}

func (h *ReflectHierarchy) DisplayName(node interface{}) string {
	if name, found := h.member(node, h.nameMember); found {
		if text, isText := name.(string); isText && text != "" {
			return text
		}
	}
	return "<" + members.TypeNameOf(node) + ">"
}

func (h *ReflectHierarchy) Children(node interface{}) (children []interface{}) {
	listed, found := h.member(node, h.childrenMember)
	if !found {
		return nil
	}
	value := traverse.Unwrap(reflect.ValueOf(listed))
	if traverse.IsNil(value) {
		return nil
	}
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			element := traverse.Unwrap(value.Index(i))
			if !traverse.IsNil(element) {
				children = append(children, element.Interface())
			}
		}
	}
	return
}

func (h *ReflectHierarchy) Components(node interface{}) (components []interface{}) {
	value := traverse.Unwrap(reflect.ValueOf(node))
	if traverse.IsNil(value) {
		return nil
	}
	appendCandidate := func(name string, candidate reflect.Value) {
		if strings.EqualFold(name, h.nameMember) || strings.EqualFold(name, h.childrenMember) {
			return
		}
		candidate = traverse.Unwrap(candidate)
		if traverse.IsNil(candidate) {
			return
		}
		t := candidate.Type()
		if members.IsScalar(t) || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			return
		}
		components = append(components, candidate.Interface())
	}

	switch value.Kind() {
	case reflect.Map:
		for _, key := range value.MapKeys() {
			appendCandidate(fmt.Sprint(key.Interface()), value.MapIndex(key))
		}
	default:
		for _, member := range h.members.Of(value.Type()) {
			if !member.Readable || member.IndexerArity != 0 {
				continue
			}
			memberValue, err := h.members.Read(value, member)
			if err != nil {
				continue //unreadable members simply do not count as components
			}
			appendCandidate(member.Name, memberValue)
		}
	}
	return
}

func (h *ReflectHierarchy) member(node interface{}, name string) (interface{}, bool) {
	value := traverse.Unwrap(reflect.ValueOf(node))
	if traverse.IsNil(value) {
		return nil, false
	}
	switch value.Kind() {
	case reflect.Map:
		for _, key := range value.MapKeys() {
			if strings.EqualFold(fmt.Sprint(key.Interface()), name) {
				entry := traverse.Unwrap(value.MapIndex(key))
				if traverse.IsNil(entry) {
					return nil, false
				}
				return entry.Interface(), true
			}
		}
	default:
		for _, member := range h.members.Of(value.Type()) {
			if !member.Readable || member.IndexerArity != 0 || !strings.EqualFold(member.Name, name) {
				continue
			}
			memberValue, err := h.members.Read(value, member)
			if err != nil {
				return nil, false
			}
			memberValue = traverse.Unwrap(memberValue)
			if traverse.IsNil(memberValue) {
				return nil, false
			}
			return memberValue.Interface(), true
		}
	}
	return nil, false
}
