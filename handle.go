package scrutiny

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/monsieurmeh/scrutiny/internal/filter"
	"github.com/monsieurmeh/scrutiny/internal/members"
	"github.com/monsieurmeh/scrutiny/internal/output"
)

// CreateConfig holds a set of common configuration switches that concern all
// calls to the scrutiny API. The zero value is a sensible default.
type CreateConfig struct {
	Verbosity    VerbosityLevel
	AllowEscapes bool           //permit terminal escape sequences in convenience output
	Out          io.Writer      //essential output target, defaults to standard output
	ErrOut       io.Writer      //error output target, defaults to standard error
	Log          *logrus.Logger //diagnostics logger, defaults to a fresh one honoring Verbosity
	Provider     members.Provider
}

// New creates a scrutinizer around the given settings. Settings may be nil,
// in which case defaults apply. The member cache created here is shared by
// every operation of the returned handle.
func New(settings *Settings, config CreateConfig) (Scrutinizer, error) {
	if settings == nil {
		settings = DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings rejected: %w", err)
	}
	handle := makeScrutinizer(config)
	handle.settings = settings
	if err := handle.applyActiveCollections(); err != nil {
		return nil, fmt.Errorf("settings rejected: %w", err)
	}
	return handle, nil
}

type scrutinizer struct {
	settings *Settings
	rules    *filter.Engine
	members  *members.Cache
	out      io.Writer      //essential output (i.e. requested information)
	print    output.Printer //classed convenience and error output
	log      *logrus.Logger
}

func makeScrutinizer(config CreateConfig) (instance *scrutinizer) {
	provider := config.Provider
	if provider == nil {
		provider = members.ReflectProvider{}
	}
	instance = &scrutinizer{
		rules:   filter.NewEngine(),
		members: members.NewCache(provider),
		out:     os.Stdout,
		log:     config.Log,
	}
	errOut := io.Writer(os.Stderr)
	if config.Out != nil {
		instance.out = config.Out
	}
	if config.ErrOut != nil {
		errOut = config.ErrOut
	}
	if instance.log == nil {
		instance.log = logrus.New()
		instance.log.SetOutput(errOut)
		instance.log.SetLevel(logrus.WarnLevel)
	}
	classes := []output.Class{output.Required, output.Error}
	switch config.Verbosity {
	case VerboseMode:
		instance.log.SetLevel(logrus.TraceLevel)
		classes = append(classes, output.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	instance.print = output.NewPrinterTo(classes, config.AllowEscapes, instance.out, errOut)
	return
}

func (s *scrutinizer) Settings() *Settings {
	return s.settings
}

// applyActiveCollections translates the settings' collection names into the
// engine's active flag set.
func (s *scrutinizer) applyActiveCollections() error {
	var active filter.RuleFlag
	for _, name := range s.settings.ActiveCollections {
		flag, known := filter.FlagByName(name)
		if !known {
			return fmt.Errorf("unknown rule collection: %s", name)
		}
		active |= flag
	}
	s.rules.SetActive(active)
	return nil
}
