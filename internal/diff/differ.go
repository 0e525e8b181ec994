package diff

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/monsieurmeh/scrutiny/internal/filter"
	"github.com/monsieurmeh/scrutiny/internal/members"
	"github.com/monsieurmeh/scrutiny/internal/traverse"
)

// Differ walks two graphs of the same declared shape in lock-step, using the
// same filter engine and the same depth/count bounds as the dump traversal,
// but keys its cycle guard on unordered identity pairs: meeting (a,b) again
// as (b,a) is still the same visited edge.
type Differ struct {
	members  *members.Cache
	filter   *filter.Engine
	maxDepth int
	maxItems int
	report   Report
	log      *logrus.Logger
}

func NewDiffer(cache *members.Cache, engine *filter.Engine, maxDepth, maxItems int, report Report, log *logrus.Logger) *Differ {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discard{})
	}
	return &Differ{members: cache, filter: engine, maxDepth: maxDepth, maxItems: maxItems, report: report, log: log}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// pairKey is an unordered identity pair: (a,b) and (b,a) collapse onto one key.
type pairKey struct {
	lo, hi traverse.Token
}

func makePairKey(a, b traverse.Token) pairKey {
	if b.Before(a) {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type diffSession struct {
	pairs map[pairKey]struct{}
	emit  func(Finding)
}

// Compare emits one finding per classified value pair. Findings suppressed by
// the report configuration are computed but not emitted.
func (d *Differ) Compare(a, b interface{}, emit func(Finding)) {
	s := &diffSession{pairs: make(map[pairKey]struct{}), emit: emit}
	d.compare(reflect.ValueOf(a), reflect.ValueOf(b), "", 0, true, true, s)
}

func (d *Differ) finding(s *diffSession, f Finding) {
	if !d.report.includes(f.Classification) {
		return //still computed, deliberately not surfaced
	}
	s.emit(f)
}

func (d *Differ) compare(av, bv reflect.Value, path string, depth int, examine bool, descend bool, s *diffSession) {
	av = traverse.Unwrap(av)
	bv = traverse.Unwrap(bv)
	leftAbsent := traverse.IsNil(av)
	rightAbsent := traverse.IsNil(bv)

	switch {
	case leftAbsent && rightAbsent:
		//terminal and idempotent, so no visited-pair bookkeeping
		d.finding(s, Finding{Path: path, Classification: BothNil})
		return
	case leftAbsent != rightAbsent:
		d.finding(s, Finding{
			Path:           path,
			Classification: NilMismatch,
			Left:           presence(av, leftAbsent),
			Right:          presence(bv, rightAbsent),
		})
		return
	}

	if depth >= d.maxDepth {
		d.log.WithField("path", path).Trace("comparison depth limit reached")
		return
	}

	leftType, rightType := av.Type(), bv.Type()
	if members.IsScalar(leftType) || members.IsScalar(rightType) {
		if !examine {
			return
		}
		d.classifyScalars(av, bv, path, s)
		return
	}

	leftToken, leftIdentifiable := traverse.Identity(av)
	rightToken, rightIdentifiable := traverse.Identity(bv)
	if leftIdentifiable && rightIdentifiable {
		if leftToken == rightToken {
			//the very same object on both sides, nothing below can differ
			if examine {
				d.finding(s, Finding{Path: path, Classification: ReferenceEqual})
			}
			return
		}
		key := makePairKey(leftToken, rightToken)
		if _, seen := s.pairs[key]; seen {
			d.log.WithField("path", path).Trace("pair cycle detected, edge already compared")
			return
		}
		s.pairs[key] = struct{}{}
		if examine {
			d.finding(s, Finding{Path: path, Classification: ReferenceDifferent})
		}
	}

	if !descend {
		return
	}
	if leftType != rightType {
		d.finding(s, Finding{
			Path:           path,
			Classification: ValueDifferent,
			Left:           members.TypeName(leftType),
			Right:          members.TypeName(rightType),
			Detail:         "runtime types diverge, members not comparable",
		})
		return
	}
	if members.IsEnumerable(leftType) {
		d.compareElements(av, bv, path, depth, s)
		return
	}
	d.compareMembers(av, bv, path, depth, s)
}

func (d *Differ) classifyScalars(av, bv reflect.Value, path string, s *diffSession) {
	if av.Type() != bv.Type() {
		d.finding(s, Finding{
			Path:           path,
			Classification: ValueDifferent,
			Left:           av.Interface(),
			Right:          bv.Interface(),
			Detail:         "runtime types diverge",
		})
		return
	}
	left, right := av.Interface(), bv.Interface()
	equal := false
	if av.Type().Comparable() {
		equal = left == right
	} else {
		//arbitrary-precision numerics are scalars but not comparable with ==
		equal = reflect.DeepEqual(left, right)
	}
	outcome := ValueDifferent
	if equal {
		outcome = ValueEqual
	}
	d.finding(s, Finding{Path: path, Classification: outcome, Left: left, Right: right})
}

func (d *Differ) compareMembers(av, bv reflect.Value, path string, depth int, s *diffSession) {
	for _, member := range d.members.Of(av.Type()) {
		if !member.Readable || member.IndexerArity != 0 {
			continue
		}
		examine := d.filter.ShouldExamine(member.DeclaringType, member)
		recurse := d.filter.ShouldRecurse(member.DeclaringType, member)
		if !examine && !recurse {
			continue
		}
		memberPath := traverse.JoinPath(path, member.Name)

		leftValue, leftErr := d.members.Read(av, member)
		rightValue, rightErr := d.members.Read(bv, member)
		if leftErr != nil || rightErr != nil {
			//failures are tracked per side and never abort the sibling loop
			d.finding(s, Finding{
				Path:           memberPath,
				Classification: ReadFailure,
				FailedSide:     failedSide(leftErr, rightErr),
				Detail:         readFailureDetail(leftErr, rightErr),
			})
			if leftErr != nil {
				leftValue = reflect.Value{}
			}
			if rightErr != nil {
				rightValue = reflect.Value{}
			}
			if leftErr == nil || rightErr == nil {
				//the surviving side still takes part, paired against absence
				d.compare(leftValue, rightValue, memberPath, depth+1, examine, recurse, s)
			}
			continue
		}
		d.compare(leftValue, rightValue, memberPath, depth+1, examine, recurse, s)
	}
}

func (d *Differ) compareElements(av, bv reflect.Value, path string, depth int, s *diffSession) {
	leftElements := elementsOf(av)
	rightElements := elementsOf(bv)

	shared := len(leftElements)
	if len(rightElements) < shared {
		shared = len(rightElements)
	}
	if shared > d.maxItems {
		shared = d.maxItems //the enumerable cap holds for comparisons too
	}
	for i := 0; i < shared; i++ {
		elementPath := fmt.Sprintf("%s[%s]", path, leftElements[i].key)
		d.compare(leftElements[i].value, rightElements[i].value, elementPath, depth+1, true, true, s)
	}
	if len(leftElements) != len(rightElements) {
		//the longer side's remainder is deliberately not inspected
		d.finding(s, Finding{
			Path:           path,
			Classification: LengthMismatch,
			Left:           len(leftElements),
			Right:          len(rightElements),
		})
	}
}

type element struct {
	key   string
	value reflect.Value
}

func elementsOf(v reflect.Value) (listed []element) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			listed = append(listed, element{key: fmt.Sprint(i), value: v.Index(i)})
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			listed = append(listed, element{key: fmt.Sprint(key.Interface()), value: v.MapIndex(key)})
		}
	}
	return
}

func presence(v reflect.Value, absent bool) interface{} {
	if absent {
		return nil
	}
	if members.IsScalar(v.Type()) {
		return v.Interface()
	}
	return fmt.Sprintf("<%s>", members.TypeName(v.Type()))
}

func failedSide(leftErr, rightErr error) Side {
	switch {
	case leftErr != nil && rightErr != nil:
		return BothSides
	case leftErr != nil:
		return Left
	}
	return Right
}

func readFailureDetail(leftErr, rightErr error) string {
	switch {
	case leftErr != nil && rightErr != nil:
		return fmt.Sprintf("left: %v; right: %v", leftErr, rightErr)
	case leftErr != nil:
		return fmt.Sprintf("left: %v", leftErr)
	}
	return fmt.Sprintf("right: %v", rightErr)
}
