package scrutiny

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/monsieurmeh/scrutiny/internal/diff"
	"github.com/monsieurmeh/scrutiny/internal/filter"
)

type OutputFormat string

const (
	TextFormat     OutputFormat = "text" //line-oriented, indentation by depth
	DocumentFormat OutputFormat = "json" //tagged structured document
)

// Settings aggregates everything one operation run depends on. Instances are
// mutated only between operations, never while one is in flight.
type Settings struct {
	MaxDepth           int          `yaml:"max_depth"`            //object nesting bound for dump and compare
	MaxEnumerableItems int          `yaml:"max_items"`            //per-enumerable element cap
	MaxTreeDepth       int          `yaml:"max_tree_depth"`       //structural bound for map
	PruneEmptyBranches bool         `yaml:"prune_empty_branches"` //drop map branches without any matched component
	Format             OutputFormat `yaml:"format"`
	Description        string       `yaml:"description,omitempty"` //free text echoed in output headers

	//member names the default hierarchy adapter recognizes, matched
	//case-insensitively against struct members and document keys
	NameMember     string `yaml:"name_member"`
	ChildrenMember string `yaml:"children_member"`

	//names of the filter rule collections to consult, see CollectionNames
	ActiveCollections []string `yaml:"active_collections"`

	Compare CompareSettings `yaml:"compare"`
}

// CompareSettings gates which comparison classifications are surfaced.
// Suppressed classifications are still computed, just not printed.
type CompareSettings struct {
	ReportEqual   bool `yaml:"report_equal"`    //surface value-equal and reference-equal findings
	ReportBothNil bool `yaml:"report_both_nil"` //surface both-nil findings
}

// DefaultSettings returns the configuration a fresh engine starts with.
func DefaultSettings() *Settings {
	return &Settings{
		MaxDepth:           8,
		MaxEnumerableItems: 64,
		MaxTreeDepth:       16,
		PruneEmptyBranches: true,
		Format:             TextFormat,
		NameMember:         "Name",
		ChildrenMember:     "Children",
		ActiveCollections:  defaultCollectionNames(),
	}
}

func defaultCollectionNames() (names []string) {
	for _, flag := range filter.AllFlags() {
		if flag&filter.DefaultActive != 0 {
			names = append(names, flag.String())
		}
	}
	return
}

// CollectionNames lists the recognized rule collection names for settings
// profiles and the activation API.
func CollectionNames() (names []string) {
	for _, flag := range filter.AllFlags() {
		names = append(names, flag.String())
	}
	return
}

// LoadSettingsFile reads a YAML settings profile, overlaying it onto the
// defaults so partial profiles stay valid.
func LoadSettingsFile(path string) (*Settings, error) {
	profile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings profile unreadable: %w", err)
	}
	settings := DefaultSettings()
	if err := yaml.Unmarshal(profile, settings); err != nil {
		return nil, fmt.Errorf("settings profile malformed: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings profile invalid: %w", err)
	}
	return settings, nil
}

func (s *Settings) Validate() error {
	if s.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", s.MaxDepth)
	}
	if s.MaxEnumerableItems <= 0 {
		return fmt.Errorf("max_items must be positive, got %d", s.MaxEnumerableItems)
	}
	if s.MaxTreeDepth <= 0 {
		return fmt.Errorf("max_tree_depth must be positive, got %d", s.MaxTreeDepth)
	}
	switch s.Format {
	case TextFormat, DocumentFormat:
	default:
		return fmt.Errorf("unknown output format: %q", s.Format)
	}
	for _, name := range s.ActiveCollections {
		if _, known := filter.FlagByName(name); !known {
			return fmt.Errorf("unknown rule collection: %s", name)
		}
	}
	return nil
}

func (s *Settings) report() diff.Report {
	report := diff.DefaultReport()
	report.ValueEqual = s.Compare.ReportEqual
	report.ReferenceEqual = s.Compare.ReportEqual
	report.BothNil = s.Compare.ReportBothNil
	return report
}
