package traverse

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsieurmeh/scrutiny/internal/filter"
	"github.com/monsieurmeh/scrutiny/internal/members"
)

// recordingSink captures events as compact strings for assertions.
type recordingSink struct {
	events []string
}

func (r *recordingSink) record(format string, values ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, values...))
}

func (r *recordingSink) EnterObject(path, member, typeName string) {
	r.record("enter %s <%s>", path, typeName)
}
func (r *recordingSink) ExitObject() { r.record("exit") }
func (r *recordingSink) EnterArray(path, member string) {
	r.record("array %s", path)
}
func (r *recordingSink) ExitArray() { r.record("endarray") }
func (r *recordingSink) Value(path, member, typeName string, value interface{}) {
	r.record("value %s = %v", path, value)
}
func (r *recordingSink) Null(path, member, typeName string) {
	r.record("null %s", path)
}
func (r *recordingSink) Error(path, member, typeName, message string) {
	r.record("error %s: %s", path, message)
}
func (r *recordingSink) DepthLimit(path, member string) {
	r.record("depthlimit %s", path)
}
func (r *recordingSink) Truncated(path string, limit int) {
	r.record("truncated %s at %d", path, limit)
}

func (r *recordingSink) countPrefix(prefix string) (n int) {
	for _, event := range r.events {
		if strings.HasPrefix(event, prefix) {
			n++
		}
	}
	return
}

func newTestWalker(maxDepth, maxItems int) *Walker {
	return NewWalker(members.NewCache(members.ReflectProvider{}), inactiveEngine(), maxDepth, maxItems, nil)
}

func inactiveEngine() *filter.Engine {
	e := filter.NewEngine()
	e.SetActive(0)
	return e
}

type ringNode struct {
	Label string
	Next  *ringNode
}

func TestCyclicGraphTerminatesAndDeduplicates(t *testing.T) {
	first := &ringNode{Label: "first"}
	second := &ringNode{Label: "second"}
	first.Next = second
	second.Next = first //direct cycle

	sink := &recordingSink{}
	err := newTestWalker(100, 100).Walk(first, sink)
	require.NoError(t, err)

	assert.Equal(t, 1, sink.countPrefix("value Label ="), "first node dumped exactly once")
	assert.Equal(t, 1, sink.countPrefix("value Next.Label ="), "second node dumped exactly once")
	assert.Equal(t, 0, sink.countPrefix("value Next.Next."), "cycle closes silently, no third level")
}

func TestSharedNodeAppearsOnce(t *testing.T) {
	shared := &ringNode{Label: "shared"}
	type holder struct {
		A *ringNode
		B *ringNode
	}

	sink := &recordingSink{}
	require.NoError(t, newTestWalker(100, 100).Walk(&holder{A: shared, B: shared}, sink))

	occurrences := sink.countPrefix("value A.Label =") + sink.countPrefix("value B.Label =")
	assert.Equal(t, 1, occurrences, "identity-distinct content appears exactly once even via different paths")
}

func TestSliceViewsOverOneBackingArrayAreDistinct(t *testing.T) {
	backing := []int{10, 20, 30}
	type views struct {
		Short []int
		Long  []int
	}
	subject := &views{Short: backing[:1], Long: backing[:2]} //same base address

	sink := &recordingSink{}
	require.NoError(t, newTestWalker(100, 100).Walk(subject, sink))

	assert.Equal(t, 2, sink.countPrefix("array "), "both views are enumerated")
	assert.Equal(t, 1, sink.countPrefix("value Short[0] ="))
	assert.Equal(t, 2, sink.countPrefix("value Long["), "the longer view is not mistaken for a cycle")
}

func TestDepthLimitCutsChain(t *testing.T) {
	const chainLength = 10
	const maxDepth = 3

	head := &ringNode{Label: "level0"}
	tail := head
	for i := 1; i < chainLength; i++ {
		tail.Next = &ringNode{Label: fmt.Sprintf("level%d", i)}
		tail = tail.Next
	}

	sink := &recordingSink{}
	require.NoError(t, newTestWalker(maxDepth, 100).Walk(head, sink))

	assert.Equal(t, 1, sink.countPrefix("value Label = level0"))
	assert.Equal(t, 1, sink.countPrefix("value Next.Label = level1"))
	assert.Equal(t, 1, sink.countPrefix("value Next.Next.Label = level2"))
	assert.Equal(t, 1, sink.countPrefix("depthlimit Next.Next.Next"), "marker exactly at the cut")
	assert.Equal(t, 0, sink.countPrefix("value Next.Next.Next."), "nothing below the cut")
}

func TestEnumerableTruncation(t *testing.T) {
	const limit = 4
	numbers := []int{0, 1, 2, 3, 4, 5, 6}

	sink := &recordingSink{}
	require.NoError(t, newTestWalker(10, limit).Walk(numbers, sink))

	for i := 0; i < limit; i++ {
		assert.Equal(t, 1, sink.countPrefix(fmt.Sprintf("value [%d] = %d", i, i)))
	}
	assert.Equal(t, 0, sink.countPrefix("value [4]"), "elements past the cap are never visited")
	assert.Equal(t, 1, sink.countPrefix(fmt.Sprintf("truncated  at %d", limit)))
}

func TestNoTruncationMarkerAtExactLimit(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, newTestWalker(10, 3).Walk([]int{1, 2, 3}, sink))
	assert.Equal(t, 0, sink.countPrefix("truncated"))
}

func TestMapsIterateInSortedKeyOrder(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, newTestWalker(10, 10).Walk(map[string]int{"beta": 2, "alpha": 1}, sink))

	require.Len(t, sink.events, 4) //array, two values, endarray
	assert.Equal(t, "value [alpha] = 1", sink.events[1])
	assert.Equal(t, "value [beta] = 2", sink.events[2])
}

func TestNilElementsEmitNullEvents(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, newTestWalker(10, 10).Walk([]*ringNode{nil, {Label: "x"}}, sink))
	assert.Equal(t, 1, sink.countPrefix("null [0]"))
	assert.Equal(t, 1, sink.countPrefix("enter [1]"))
}

type fragile struct {
	Before string
	After  string
}

func (f *fragile) Broken() string { panic("accessor detonated") }

func TestFailingMemberDoesNotAbortSiblings(t *testing.T) {
	sink := &recordingSink{}
	err := newTestWalker(10, 10).Walk(&fragile{Before: "b", After: "a"}, sink)

	require.Error(t, err, "read failures are aggregated into the summary error")
	assert.Contains(t, err.Error(), "accessor detonated")
	assert.Equal(t, 1, sink.countPrefix("value Before ="), "sibling before the failure is reported")
	assert.Equal(t, 1, sink.countPrefix("value After ="), "sibling after the failure is reported")
	assert.Equal(t, 1, sink.countPrefix("error Broken:"))
}

type inner struct {
	Wanted  string
	Ignored int
}

type outer struct {
	Child *inner
	Extra string
}

func TestWhitelistIsSubsetOfUnfiltered(t *testing.T) {
	subject := &outer{Child: &inner{Wanted: "w", Ignored: 9}, Extra: "e"}
	cache := members.NewCache(members.ReflectProvider{})

	unfilteredSink := &recordingSink{}
	require.NoError(t, NewWalker(cache, inactiveEngine(), 10, 10, nil).Walk(subject, unfilteredSink))

	whitelisting := filter.NewEngine()
	whitelisting.SetActive(0)
	whitelisting.AddName(filter.ExamineNameWhitelist, "Wanted")
	whitelisting.AddName(filter.ExamineNameWhitelist, "Child")
	whitelisting.Activate(filter.ExamineNameWhitelist)

	whitelistedSink := &recordingSink{}
	require.NoError(t, NewWalker(cache, whitelisting, 10, 10, nil).Walk(subject, whitelistedSink))

	unfiltered := make(map[string]bool)
	for _, event := range unfilteredSink.events {
		unfiltered[event] = true
	}
	for _, event := range whitelistedSink.events {
		if strings.HasPrefix(event, "value ") || strings.HasPrefix(event, "null ") {
			assert.True(t, unfiltered[event], "whitelisted output must be a subset: %s", event)
		}
	}
	assert.Equal(t, 0, whitelistedSink.countPrefix("value Extra"), "member outside the whitelist is absent")
	assert.Equal(t, 1, whitelistedSink.countPrefix("value Child.Wanted"))
}

type describable interface {
	Describe() string
}

type base struct {
	Common string
}

type derived struct {
	base
	Own string
}

func (derived) Describe() string { return "derived" }

func TestAssignabilityRuleSurfacesSubclassMembers(t *testing.T) {
	cache := members.NewCache(members.ReflectProvider{})
	e := filter.NewEngine()
	e.SetActive(0)
	//whitelisting the interface must keep every implementation recursable
	e.AddType(filter.RecurseTypeWhitelist, reflect.TypeOf((*describable)(nil)).Elem())
	e.Activate(filter.RecurseTypeWhitelist)

	type holder struct {
		Payload *derived
	}
	sink := &recordingSink{}
	require.NoError(t, NewWalker(cache, e, 10, 10, nil).Walk(&holder{Payload: &derived{Own: "o"}}, sink))

	assert.Equal(t, 1, sink.countPrefix("enter Payload"), "rule naming an ancestor matches the subtype")
	assert.Equal(t, 1, sink.countPrefix("value Payload.Own ="))
}

func TestWalkNilRootIsSilent(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, newTestWalker(10, 10).Walk(nil, sink))
	assert.Empty(t, sink.events)
}

func TestReferenceReportedWithoutDescent(t *testing.T) {
	e := filter.NewEngine()
	e.SetActive(0)
	e.AddMemberName(filter.RecurseMemberNameBlacklist, reflect.TypeOf(outer{}), "Child")
	e.Activate(filter.RecurseMemberNameBlacklist)

	sink := &recordingSink{}
	walker := NewWalker(members.NewCache(members.ReflectProvider{}), e, 10, 10, nil)
	require.NoError(t, walker.Walk(&outer{Child: &inner{Wanted: "w"}}, sink))

	assert.Equal(t, 0, sink.countPrefix("enter Child"), "recursion denied")
	assert.Equal(t, 1, sink.countPrefix("value Child = <*traverse.inner"), "reference still examined")
}
