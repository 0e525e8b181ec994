package filter

import (
	"reflect"
	"strings"

	"github.com/monsieurmeh/scrutiny/internal/members"
)

// RuleFlag selects one of the sixteen rule collections: two decision axes
// (examine, recurse) times blacklist/whitelist times four match dimensions.
// Collections always retain their content; a cleared flag merely stops the
// collection from being consulted.
type RuleFlag uint16

const (
	ExamineTypeBlacklist RuleFlag = 1 << iota
	ExamineNameBlacklist
	ExamineMemberTypeBlacklist //declaring type paired with value type
	ExamineMemberNameBlacklist //declaring type paired with member name
	ExamineTypeWhitelist
	ExamineNameWhitelist
	ExamineMemberTypeWhitelist
	ExamineMemberNameWhitelist
	RecurseTypeBlacklist
	RecurseNameBlacklist
	RecurseMemberTypeBlacklist
	RecurseMemberNameBlacklist
	RecurseTypeWhitelist
	RecurseNameWhitelist
	RecurseMemberTypeWhitelist
	RecurseMemberNameWhitelist
)

const (
	examineBlacklists = ExamineTypeBlacklist | ExamineNameBlacklist | ExamineMemberTypeBlacklist | ExamineMemberNameBlacklist
	examineWhitelists = ExamineTypeWhitelist | ExamineNameWhitelist | ExamineMemberTypeWhitelist | ExamineMemberNameWhitelist
	recurseBlacklists = RecurseTypeBlacklist | RecurseNameBlacklist | RecurseMemberTypeBlacklist | RecurseMemberNameBlacklist
	recurseWhitelists = RecurseTypeWhitelist | RecurseNameWhitelist | RecurseMemberTypeWhitelist | RecurseMemberNameWhitelist
)

var flagNames = map[RuleFlag]string{
	ExamineTypeBlacklist:       "examine-type-blacklist",
	ExamineNameBlacklist:       "examine-name-blacklist",
	ExamineMemberTypeBlacklist: "examine-member-type-blacklist",
	ExamineMemberNameBlacklist: "examine-member-name-blacklist",
	ExamineTypeWhitelist:       "examine-type-whitelist",
	ExamineNameWhitelist:       "examine-name-whitelist",
	ExamineMemberTypeWhitelist: "examine-member-type-whitelist",
	ExamineMemberNameWhitelist: "examine-member-name-whitelist",
	RecurseTypeBlacklist:       "recurse-type-blacklist",
	RecurseNameBlacklist:       "recurse-name-blacklist",
	RecurseMemberTypeBlacklist: "recurse-member-type-blacklist",
	RecurseMemberNameBlacklist: "recurse-member-name-blacklist",
	RecurseTypeWhitelist:       "recurse-type-whitelist",
	RecurseNameWhitelist:       "recurse-name-whitelist",
	RecurseMemberTypeWhitelist: "recurse-member-type-whitelist",
	RecurseMemberNameWhitelist: "recurse-member-name-whitelist",
}

func (f RuleFlag) String() string {
	if name, known := flagNames[f]; known {
		return name
	}
	return "unknown-rule-flag"
}

// FlagByName resolves the textual form used in settings profiles.
func FlagByName(name string) (RuleFlag, bool) {
	for flag, flagName := range flagNames {
		if flagName == name {
			return flag, true
		}
	}
	return 0, false
}

// AllFlags lists every rule collection flag in declaration order.
func AllFlags() []RuleFlag {
	flags := make([]RuleFlag, 0, 16)
	for f := ExamineTypeBlacklist; f != 0 && f <= RecurseMemberNameWhitelist; f <<= 1 {
		flags = append(flags, f)
	}
	return flags
}

// collection is one named set of rules; Matches never consults the active
// flag set, gating is the engine's responsibility.
type collection interface {
	Matches(declaring reflect.Type, member members.Descriptor) bool
}

// typeMatches implements assignability matching in the
// candidate-is-a-subtype-of-rule direction: a rule naming a base type or
// interface matches all types assignable to it. Exact equality first as the
// fast path.
func typeMatches(rule, candidate reflect.Type) bool {
	if rule == nil || candidate == nil {
		return false
	}
	if rule == candidate {
		return true
	}
	if candidate.AssignableTo(rule) {
		return true
	}
	//a pointer to the candidate may satisfy an interface rule even when the
	//bare value does not
	if rule.Kind() == reflect.Interface && candidate.Kind() != reflect.Pointer {
		return reflect.PointerTo(candidate).AssignableTo(rule)
	}
	return false
}

type typeRules struct {
	types []reflect.Type
}

func (r *typeRules) Add(t reflect.Type) {
	r.types = append(r.types, t)
}

func (r *typeRules) Matches(_ reflect.Type, member members.Descriptor) bool {
	for _, rule := range r.types {
		if typeMatches(rule, member.ValueType) {
			return true
		}
	}
	return false
}

type nameRules struct {
	names map[string]bool //keys lowercased, matching is case-insensitive
}

func (r *nameRules) Add(name string) {
	if r.names == nil {
		r.names = make(map[string]bool)
	}
	r.names[strings.ToLower(name)] = true
}

func (r *nameRules) Matches(_ reflect.Type, member members.Descriptor) bool {
	return r.names[strings.ToLower(member.Name)]
}

// declaringMatches applies typeMatches to a declaring type, additionally
// seeing through a pointer candidate: members read via a pointer instance
// still belong to the pointed-to type.
func declaringMatches(rule, candidate reflect.Type) bool {
	if typeMatches(rule, candidate) {
		return true
	}
	if candidate != nil && candidate.Kind() == reflect.Pointer {
		return typeMatches(rule, candidate.Elem())
	}
	return false
}

type memberTypeRule struct {
	declaring reflect.Type
	value     reflect.Type
}

type memberTypeRules struct {
	pairs []memberTypeRule
}

func (r *memberTypeRules) Add(declaring, value reflect.Type) {
	r.pairs = append(r.pairs, memberTypeRule{declaring: declaring, value: value})
}

func (r *memberTypeRules) Matches(declaring reflect.Type, member members.Descriptor) bool {
	for _, rule := range r.pairs {
		if declaringMatches(rule.declaring, declaring) && typeMatches(rule.value, member.ValueType) {
			return true
		}
	}
	return false
}

type memberNameRule struct {
	declaring reflect.Type
	name      string //lowercased
}

type memberNameRules struct {
	pairs []memberNameRule
}

func (r *memberNameRules) Add(declaring reflect.Type, name string) {
	r.pairs = append(r.pairs, memberNameRule{declaring: declaring, name: strings.ToLower(name)})
}

func (r *memberNameRules) Matches(declaring reflect.Type, member members.Descriptor) bool {
	for _, rule := range r.pairs {
		if declaringMatches(rule.declaring, declaring) && rule.name == strings.ToLower(member.Name) {
			return true
		}
	}
	return false
}
