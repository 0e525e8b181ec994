package traverse

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/monsieurmeh/scrutiny/internal/filter"
	"github.com/monsieurmeh/scrutiny/internal/members"
)

// Walker drives the cycle-safe, depth- and count-bounded descent over a
// graph. The depth bound, the enumerable cap, and the cycle guard are safety
// nets against adversarial input (self-referential graphs, huge collections),
// not tuning knobs, so all three are always enforced.
type Walker struct {
	members  *members.Cache
	filter   *filter.Engine
	maxDepth int
	maxItems int
	log      *logrus.Logger
}

func NewWalker(cache *members.Cache, engine *filter.Engine, maxDepth int, maxItems int, log *logrus.Logger) *Walker {
	if log == nil {
		log = logrus.New()
		log.SetOutput(nopWriter{})
	}
	return &Walker{members: cache, filter: engine, maxDepth: maxDepth, maxItems: maxItems, log: log}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// session holds the state local to one top-level call. Visited sets are
// never shared between calls.
type session struct {
	visited  map[Token]struct{}
	failures *multierror.Error
}

// Walk traverses root and emits events to the sink. The returned error
// aggregates member read failures; the traversal itself never aborts on them.
func (w *Walker) Walk(root interface{}, sink Sink) error {
	s := &session{visited: make(map[Token]struct{})}
	w.walk(Unwrap(reflect.ValueOf(root)), "", "", 0, sink, s)
	return s.failures.ErrorOrNil()
}

func (w *Walker) walk(v reflect.Value, member string, path string, depth int, sink Sink, s *session) {
	v = Unwrap(v)
	if IsNil(v) {
		return //absent nodes terminate without an event
	}
	if depth >= w.maxDepth {
		sink.DepthLimit(path, member)
		return //not registered as visited, nothing below is inspected
	}
	t := v.Type()
	if members.IsScalar(t) {
		sink.Value(path, member, members.TypeName(t), scalarValue(v))
		return
	}
	if token, identifiable := Identity(v); identifiable {
		if _, seen := s.visited[token]; seen {
			w.log.WithFields(logrus.Fields{"path": path, "type": t.String()}).Trace("cycle detected, node already dumped")
			return //deliberate de-duplication, not an error
		}
		s.visited[token] = struct{}{}
	}
	if members.IsEnumerable(t) {
		sink.EnterArray(path, member)
		w.walkElements(v, path, depth, sink, s)
		sink.ExitArray()
		return
	}
	sink.EnterObject(path, member, members.TypeName(t))
	w.walkMembers(v, path, depth, sink, s)
	sink.ExitObject()
}

func (w *Walker) walkMembers(v reflect.Value, path string, depth int, sink Sink, s *session) {
	declaring := v.Type()
	for _, member := range w.members.Of(declaring) {
		if !member.Readable || member.IndexerArity != 0 {
			continue
		}
		examine := w.filter.ShouldExamine(member.DeclaringType, member)
		recurse := w.filter.ShouldRecurse(member.DeclaringType, member)
		if !examine && !recurse {
			continue
		}
		memberPath := JoinPath(path, member.Name)
		declaredType := members.TypeName(member.ValueType)

		value, err := w.members.Read(v, member)
		if err != nil {
			//one bad member must not abort the walk, siblings still follow
			sink.Error(memberPath, member.Name, declaredType, err.Error())
			s.failures = multierror.Append(s.failures, fmt.Errorf("%s: %w", memberPath, err))
			continue
		}

		value = Unwrap(value)
		if IsNil(value) {
			if examine {
				sink.Null(memberPath, member.Name, declaredType)
			}
			continue
		}

		runtimeType := value.Type()
		if members.IsScalar(runtimeType) {
			if examine {
				sink.Value(memberPath, member.Name, members.TypeName(runtimeType), scalarValue(value))
			}
			continue
		}
		switch {
		case recurse:
			w.walk(value, member.Name, memberPath, depth+1, sink, s)
		case examine:
			//report the reference without descending
			sink.Value(memberPath, member.Name, members.TypeName(runtimeType), referenceText(value))
		}
	}
}

func (w *Walker) walkElements(v reflect.Value, path string, depth int, sink Sink, s *session) {
	emit := func(index int, key string, element reflect.Value, declaredType reflect.Type) bool {
		if index >= w.maxItems {
			sink.Truncated(path, w.maxItems)
			return false //remaining elements are never visited, not even for side effects
		}
		member := "[" + key + "]"
		elementPath := path + member
		element = Unwrap(element)
		if IsNil(element) {
			sink.Null(elementPath, member, members.TypeName(declaredType))
			return true
		}
		if members.IsScalar(element.Type()) {
			sink.Value(elementPath, member, members.TypeName(element.Type()), scalarValue(element))
			return true
		}
		w.walk(element, member, elementPath, depth+1, sink, s)
		return true
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		elementType := v.Type().Elem()
		for i := 0; i < v.Len(); i++ {
			if !emit(i, fmt.Sprint(i), v.Index(i), elementType) {
				return
			}
		}
	case reflect.Map:
		//map iteration order is randomized, sort keys for reproducible output
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		elementType := v.Type().Elem()
		for i, key := range keys {
			if !emit(i, fmt.Sprint(key.Interface()), v.MapIndex(key), elementType) {
				return
			}
		}
	}
}

// JoinPath appends a member segment to a dotted path.
func JoinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func scalarValue(v reflect.Value) interface{} {
	return v.Interface()
}

func referenceText(v reflect.Value) string {
	if token, identifiable := Identity(v); identifiable {
		return fmt.Sprintf("<%s @%#x>", members.TypeName(v.Type()), token.addr)
	}
	return fmt.Sprintf("<%s>", members.TypeName(v.Type()))
}
