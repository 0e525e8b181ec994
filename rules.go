package scrutiny

import (
	"fmt"
	"reflect"

	"github.com/monsieurmeh/scrutiny/internal/filter"
)

// resolveCollections maps collection names to flags, rejecting unknown names
// before any state changes, so activation is all-or-nothing.
func resolveCollections(names []string) (flags filter.RuleFlag, err error) {
	for _, name := range names {
		flag, known := filter.FlagByName(name)
		if !known {
			return 0, newCommandError(fmt.Sprintf("unknown rule collection: %s", name), nil)
		}
		flags |= flag
	}
	return flags, nil
}

func (s *scrutinizer) ActivateCollections(names ...string) error {
	flags, err := resolveCollections(names)
	if err != nil {
		return err
	}
	s.rules.Activate(flags)
	s.log.WithField("active", s.rules.Active()).Debug("rule collections activated")
	return nil
}

func (s *scrutinizer) DeactivateCollections(names ...string) error {
	flags, err := resolveCollections(names)
	if err != nil {
		return err
	}
	s.rules.Deactivate(flags)
	s.log.WithField("active", s.rules.Active()).Debug("rule collections deactivated")
	return nil
}

func (s *scrutinizer) AddTypeRule(collection string, prototype interface{}) error {
	flag, known := filter.FlagByName(collection)
	if !known {
		return newCommandError(fmt.Sprintf("unknown rule collection: %s", collection), nil)
	}
	if prototype == nil {
		return newCommandError("type rule requires a non-nil prototype", NilSubjectError)
	}
	if !s.rules.AddType(flag, reflect.TypeOf(prototype)) {
		return newCommandError(fmt.Sprintf("collection %s does not hold type rules", collection), nil)
	}
	return nil
}

func (s *scrutinizer) AddNameRule(collection string, memberName string) error {
	flag, known := filter.FlagByName(collection)
	if !known {
		return newCommandError(fmt.Sprintf("unknown rule collection: %s", collection), nil)
	}
	if memberName == "" {
		return newCommandError("name rule requires a member name", nil)
	}
	if !s.rules.AddName(flag, memberName) {
		return newCommandError(fmt.Sprintf("collection %s does not hold name rules", collection), nil)
	}
	return nil
}
