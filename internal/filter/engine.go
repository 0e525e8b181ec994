package filter

import (
	"reflect"

	"github.com/monsieurmeh/scrutiny/internal/members"
)

// Engine answers the two independent inclusion questions of a traversal:
// examine (report this value) and recurse (descend into it). Both follow the
// same shape: any active blacklist match denies; with no active whitelist the
// default is permit; with at least one active whitelist, membership in any of
// them is required. Scalars are never recursable, no rule can override that.
type Engine struct {
	active      RuleFlag
	collections map[RuleFlag]collection
}

// NewEngine creates an engine with all collections present but holding the
// default rule content (see defaults.go) and only the default flags active.
func NewEngine() *Engine {
	e := &Engine{
		collections: map[RuleFlag]collection{
			ExamineTypeBlacklist:       &typeRules{},
			ExamineNameBlacklist:       &nameRules{},
			ExamineMemberTypeBlacklist: &memberTypeRules{},
			ExamineMemberNameBlacklist: &memberNameRules{},
			ExamineTypeWhitelist:       &typeRules{},
			ExamineNameWhitelist:       &nameRules{},
			ExamineMemberTypeWhitelist: &memberTypeRules{},
			ExamineMemberNameWhitelist: &memberNameRules{},
			RecurseTypeBlacklist:       &typeRules{},
			RecurseNameBlacklist:       &nameRules{},
			RecurseMemberTypeBlacklist: &memberTypeRules{},
			RecurseMemberNameBlacklist: &memberNameRules{},
			RecurseTypeWhitelist:       &typeRules{},
			RecurseNameWhitelist:       &nameRules{},
			RecurseMemberTypeWhitelist: &memberTypeRules{},
			RecurseMemberNameWhitelist: &memberNameRules{},
		},
	}
	seedDefaults(e)
	return e
}

// Activate turns the given collections on in addition to the already active ones.
func (e *Engine) Activate(flags RuleFlag) {
	e.active |= flags
}

// Deactivate stops the given collections from being consulted without
// touching their content.
func (e *Engine) Deactivate(flags RuleFlag) {
	e.active &^= flags
}

// SetActive replaces the whole active flag set.
func (e *Engine) SetActive(flags RuleFlag) {
	e.active = flags
}

func (e *Engine) Active() RuleFlag {
	return e.active
}

// AddType appends a value-type rule to the given collection and reports
// whether the flag named a type-keyed collection.
func (e *Engine) AddType(flag RuleFlag, t reflect.Type) bool {
	rules, ok := e.collections[flag].(*typeRules)
	if ok {
		rules.Add(t)
	}
	return ok
}

// AddName appends a case-insensitive member-name rule to the given collection
// and reports whether the flag named a name-keyed collection.
func (e *Engine) AddName(flag RuleFlag, name string) bool {
	rules, ok := e.collections[flag].(*nameRules)
	if ok {
		rules.Add(name)
	}
	return ok
}

// AddMemberType appends a (declaring type, value type) rule.
func (e *Engine) AddMemberType(flag RuleFlag, declaring, value reflect.Type) bool {
	rules, ok := e.collections[flag].(*memberTypeRules)
	if ok {
		rules.Add(declaring, value)
	}
	return ok
}

// AddMemberName appends a (declaring type, member name) rule.
func (e *Engine) AddMemberName(flag RuleFlag, declaring reflect.Type, name string) bool {
	rules, ok := e.collections[flag].(*memberNameRules)
	if ok {
		rules.Add(declaring, name)
	}
	return ok
}

// ShouldExamine decides whether the member's value is reported in output.
func (e *Engine) ShouldExamine(declaring reflect.Type, member members.Descriptor) bool {
	return e.decide(declaring, member, examineBlacklists, examineWhitelists)
}

// ShouldRecurse decides whether traversal descends into the member's value.
func (e *Engine) ShouldRecurse(declaring reflect.Type, member members.Descriptor) bool {
	if members.IsScalar(member.ValueType) {
		return false
	}
	return e.decide(declaring, member, recurseBlacklists, recurseWhitelists)
}

// TypeMayRecurse is the type-only variant of the recurse decision used by the
// hierarchy mapper, consulting just the type-keyed collections of the recurse
// axis against a candidate runtime type.
func (e *Engine) TypeMayRecurse(t reflect.Type) bool {
	if t == nil || members.IsScalar(t) {
		return false
	}
	pseudo := members.Descriptor{ValueType: t}
	if e.activeMatch(RecurseTypeBlacklist, nil, pseudo) {
		return false
	}
	if e.active&RecurseTypeWhitelist == 0 {
		return true
	}
	return e.activeMatch(RecurseTypeWhitelist, nil, pseudo)
}

func (e *Engine) decide(declaring reflect.Type, member members.Descriptor, blacklists, whitelists RuleFlag) bool {
	for _, flag := range AllFlags() {
		if flag&blacklists == 0 {
			continue
		}
		if e.activeMatch(flag, declaring, member) {
			return false //first blacklist match wins
		}
	}
	activeWhitelists := e.active & whitelists
	if activeWhitelists == 0 {
		return true //default-permit
	}
	for _, flag := range AllFlags() {
		if flag&activeWhitelists == 0 {
			continue
		}
		if e.activeMatch(flag, declaring, member) {
			return true //union semantics across active whitelists
		}
	}
	return false
}

func (e *Engine) activeMatch(flag RuleFlag, declaring reflect.Type, member members.Descriptor) bool {
	if e.active&flag == 0 {
		return false
	}
	return e.collections[flag].Matches(declaring, member)
}
