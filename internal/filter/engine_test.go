package filter

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monsieurmeh/scrutiny/internal/members"
)

type animal interface {
	Noise() string
}

type pet struct{}

func (pet) Noise() string { return "?" }

type owner struct{}

func descriptorOf(name string, value interface{}) members.Descriptor {
	return members.Descriptor{
		Name:          name,
		DeclaringType: reflect.TypeOf(owner{}),
		ValueType:     reflect.TypeOf(value),
		Readable:      true,
	}
}

func TestDefaultIsPermit(t *testing.T) {
	e := NewEngine()
	e.SetActive(0) //no collections consulted at all

	candidate := descriptorOf("Companion", pet{})
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), candidate))
	assert.True(t, e.ShouldRecurse(reflect.TypeOf(owner{}), candidate))
}

func TestScalarsNeverRecurse(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)

	scalar := descriptorOf("Count", 7)
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), scalar))
	assert.False(t, e.ShouldRecurse(reflect.TypeOf(owner{}), scalar), "no configuration can make a scalar recursable")

	//even an explicit whitelist entry cannot override the scalar rule
	e.AddType(RecurseTypeWhitelist, reflect.TypeOf(7))
	e.Activate(RecurseTypeWhitelist)
	assert.False(t, e.ShouldRecurse(reflect.TypeOf(owner{}), scalar))
}

func TestBlacklistShortCircuits(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddName(ExamineNameBlacklist, "secret")
	e.Activate(ExamineNameBlacklist)

	denied := descriptorOf("Secret", "hunter2") //matching is case-insensitive
	allowed := descriptorOf("Public", "hello")

	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), denied))
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), allowed))
	assert.True(t, e.ShouldRecurse(reflect.TypeOf(owner{}), descriptorOf("Secret", pet{})), "axes are independent")
}

func TestInactiveCollectionKeepsContent(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddName(ExamineNameBlacklist, "secret")

	candidate := descriptorOf("Secret", "x")
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), candidate), "inactive collection must not be consulted")

	e.Activate(ExamineNameBlacklist)
	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), candidate), "re-activating restores the rules")
}

func TestWhitelistRequiresMembership(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddName(ExamineNameWhitelist, "Wanted")
	e.Activate(ExamineNameWhitelist)

	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("wanted", "v")))
	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Other", "v")))
}

func TestWhitelistUnionAcrossCollections(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddName(ExamineNameWhitelist, "ByName")
	e.AddType(ExamineTypeWhitelist, reflect.TypeOf(pet{}))
	e.Activate(ExamineNameWhitelist | ExamineTypeWhitelist)

	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("ByName", "v")), "matching either whitelist suffices")
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Other", pet{})))
	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Other", "v")))
}

func TestBlacklistBeatsWhitelist(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddName(ExamineNameWhitelist, "Both")
	e.AddName(ExamineNameBlacklist, "Both")
	e.Activate(ExamineNameWhitelist | ExamineNameBlacklist)

	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Both", "v")))
}

func TestAssignabilityMatching(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddType(ExamineTypeWhitelist, reflect.TypeOf((*animal)(nil)).Elem())
	e.Activate(ExamineTypeWhitelist)

	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Companion", pet{})),
		"a rule naming an interface matches every implementation")
	assert.True(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Companion", &pet{})))
	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("Companion", "plain string")))
}

func TestMemberPairRules(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)
	e.AddMemberName(ExamineMemberNameBlacklist, reflect.TypeOf(owner{}), "Hidden")
	e.AddMemberType(RecurseMemberTypeBlacklist, reflect.TypeOf(owner{}), reflect.TypeOf(pet{}))
	e.Activate(ExamineMemberNameBlacklist | RecurseMemberTypeBlacklist)

	assert.False(t, e.ShouldExamine(reflect.TypeOf(owner{}), descriptorOf("hidden", "v")))
	assert.True(t, e.ShouldExamine(reflect.TypeOf(pet{}), descriptorOf("hidden", "v")), "pair rules bind to the declaring type")
	assert.False(t, e.ShouldRecurse(reflect.TypeOf(owner{}), descriptorOf("Companion", pet{})))
	assert.True(t, e.ShouldRecurse(reflect.TypeOf(pet{}), descriptorOf("Companion", pet{})))
}

func TestTypeMayRecurse(t *testing.T) {
	e := NewEngine()
	e.SetActive(0)

	assert.True(t, e.TypeMayRecurse(reflect.TypeOf(pet{})))
	assert.False(t, e.TypeMayRecurse(reflect.TypeOf("scalar")))

	e.AddType(RecurseTypeBlacklist, reflect.TypeOf(pet{}))
	e.Activate(RecurseTypeBlacklist)
	assert.False(t, e.TypeMayRecurse(reflect.TypeOf(pet{})))

	e.SetActive(RecurseTypeWhitelist)
	e.AddType(RecurseTypeWhitelist, reflect.TypeOf(owner{}))
	assert.True(t, e.TypeMayRecurse(reflect.TypeOf(owner{})))
	assert.False(t, e.TypeMayRecurse(reflect.TypeOf(pet{})), "active whitelist requires membership")
}

func TestFlagNamesRoundTrip(t *testing.T) {
	for _, flag := range AllFlags() {
		resolved, known := FlagByName(flag.String())
		assert.True(t, known, flag.String())
		assert.Equal(t, flag, resolved)
	}
	_, known := FlagByName("no-such-collection")
	assert.False(t, known)
}
