package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/monsieurmeh/scrutiny"
	"github.com/monsieurmeh/scrutiny/internal/output"
	"gopkg.in/yaml.v3"
)

type CliRequest struct {
	verbose     bool
	quiet       bool
	action      string
	actionFlags map[string]interface{}
	actionArgs  []string
}

func parseFlags(args []string, out io.Writer, errOut io.Writer) (request *CliRequest, exitCode int) {
	flags := flag.NewFlagSet("", flag.ExitOnError)
	flags.Usage = func() {
		flags.Output().Write([]byte(`
Usage:
   scrutiny [-v|-q] [-h] <ACTION> [FLAG] [TARGET]

 ACTIONs:  dump  diff  map  settings

`))
		flags.PrintDefaults()
		flags.Output().Write([]byte(`
 FLAG(s) and TARGET(s) are action-specific.
 You can read the help on any action:
    scrutiny <ACTION> -h

`))
	}

	request = &CliRequest{}
	var generalHelpRequested bool
	flags.BoolVar(&request.verbose, "v", false, "Output more details on what is done (verbose mode)")
	flags.BoolVar(&request.quiet, "q", false, "Output as little as possible, i.e. only requested information (quiet mode)")
	flags.BoolVar(&generalHelpRequested, "h", false, "Display general usage help")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: scrutiny -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	flags.Parse(args) //exits on error

	if generalHelpRequested {
		flags.Usage()
		exitCode = 0
		request = nil
		return
	}
	if flags.NArg() == 0 {
		err = errors.New("No arguments given!")
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}

	request.action = flags.Arg(0)
	request.actionFlags = make(map[string]interface{})
	request.actionArgs = flags.Args()[1:]
	actionDescriptionIndent := "  "
	actionDescription := actionDescriptionIndent
	flagSpecification := ""
	argumentSpecification := ""

	actionParams := flag.NewFlagSet(request.action+" action", flag.ExitOnError)
	actionParams.Usage = func() {
		fmt.Fprintf(actionParams.Output(), `
Usage of %s action:
   scrutiny [MODE] %s%s%s

%s
`, request.action, request.action, flagSpecification, argumentSpecification, actionDescription)
		if len(flagSpecification) > 0 {
			fmt.Fprint(actionParams.Output(), `
 Available flags:
`)
		}
		actionParams.PrintDefaults()
		fmt.Fprintf(actionParams.Output(), `
 Global MODE documentation can be shown by:
    scrutiny -h

`)
	}

	addProfileFlag := func() {
		request.actionFlags["settings"] = actionParams.String("s", "", "settings profile to load (YAML), defaults apply if omitted")
	}

ActionParamCheck:
	switch request.action {
	case "dump":
		flagSpecification = " [-s PROFILE] [-f text|json] [-depth N]"
		argumentSpecification = " FILE"
		actionDescription += "Decode the YAML or JSON document in FILE and dump the resulting\n" +
			actionDescriptionIndent + "object graph, as indented text or as a tagged JSON document."
		addProfileFlag()
		request.actionFlags["format"] = actionParams.String("f", "", "output format, \"text\" or \"json\" (overrides the profile)")
		request.actionFlags["depth"] = actionParams.Int("depth", 0, "object nesting bound (overrides the profile)")
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() != 1 {
			err = errors.New("bad number of arguments, exactly one expected")
			break ActionParamCheck
		}
	case "diff":
		flagSpecification = " [-s PROFILE] [-report-equal]"
		argumentSpecification = " FILE FILE"
		actionDescription += "Decode both documents and compare the resulting graphs member by\n" +
			actionDescriptionIndent + "member, printing one line per reported finding."
		addProfileFlag()
		request.actionFlags["report-equal"] = actionParams.Bool("report-equal", false, "also print members found to be equal")
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() != 2 {
			err = errors.New("bad number of arguments, exactly two expected")
			break ActionParamCheck
		}
	case "map":
		flagSpecification = " [-s PROFILE] [-name MEMBER] [-children MEMBER] [-keep-empty]"
		argumentSpecification = " FILE"
		actionDescription += "Decode the document in FILE and render its tree structure as a type\n" +
			actionDescriptionIndent + "legend plus an indented hierarchy tree."
		addProfileFlag()
		request.actionFlags["name"] = actionParams.String("name", "", "member or key carrying a node's display name (overrides the profile)")
		request.actionFlags["children"] = actionParams.String("children", "", "member or key carrying a node's child list (overrides the profile)")
		request.actionFlags["keep-empty"] = actionParams.Bool("keep-empty", false, "keep branches without any matched component")
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() != 1 {
			err = errors.New("bad number of arguments, exactly one expected")
			break ActionParamCheck
		}
	case "settings":
		flagSpecification = " [-s PROFILE]"
		actionDescription += "Print the effective settings as a YAML profile, followed by the\n" +
			actionDescriptionIndent + "recognized rule collection names."
		addProfileFlag()
		actionParams.Parse(request.actionArgs)
		request.actionArgs = actionParams.Args()
		if actionParams.NArg() > 0 {
			err = errors.New("command accepts no arguments, only flags")
			break ActionParamCheck
		}
	default:
		err = fmt.Errorf(`unknown action "%s"`, request.action)
	}
	return
}

func (rq *CliRequest) settings() (*scrutiny.Settings, error) {
	if profile := *(rq.actionFlags["settings"].(*string)); profile != "" {
		return scrutiny.LoadSettingsFile(profile)
	}
	return scrutiny.DefaultSettings(), nil
}

func (rq *CliRequest) execute() error {
	settings, err := rq.settings()
	if err != nil {
		return err
	}

	config := scrutiny.CreateConfig{AllowEscapes: escapeSequencesSupported(os.Stdout)}
	if rq.verbose {
		config.Verbosity = scrutiny.VerboseMode
	}
	if rq.quiet {
		config.Verbosity = scrutiny.QuietMode
	}

	switch rq.action {
	case "dump":
		if format := *(rq.actionFlags["format"].(*string)); format != "" {
			settings.Format = scrutiny.OutputFormat(format)
		}
		if depth := *(rq.actionFlags["depth"].(*int)); depth != 0 {
			settings.MaxDepth = depth
		}
		api, err := scrutiny.New(settings, config)
		if err != nil {
			return err
		}
		subject, err := loadGraph(rq.actionArgs[0])
		if err != nil {
			return err
		}
		return api.Dump(subject)
	case "diff":
		settings.Compare.ReportEqual = *(rq.actionFlags["report-equal"].(*bool))
		api, err := scrutiny.New(settings, config)
		if err != nil {
			return err
		}
		left, err := loadGraph(rq.actionArgs[0])
		if err != nil {
			return err
		}
		right, err := loadGraph(rq.actionArgs[1])
		if err != nil {
			return err
		}
		return api.Compare(left, right)
	case "map":
		if name := *(rq.actionFlags["name"].(*string)); name != "" {
			settings.NameMember = name
		}
		if children := *(rq.actionFlags["children"].(*string)); children != "" {
			settings.ChildrenMember = children
		}
		if *(rq.actionFlags["keep-empty"].(*bool)) {
			settings.PruneEmptyBranches = false
		}
		api, err := scrutiny.New(settings, config)
		if err != nil {
			return err
		}
		root, err := loadGraph(rq.actionArgs[0])
		if err != nil {
			return err
		}
		return api.Map(root)
	case "settings":
		profile, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		os.Stdout.Write(profile)
		heading := "Recognized rule collections:"
		if escapeSequencesSupported(os.Stdout) {
			heading = output.TerminalFormatAsEmphasis(heading)
		}
		fmt.Fprintf(os.Stdout, "\n%s\n", heading)
		for _, name := range scrutiny.CollectionNames() {
			fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
		return nil
	default:
		panic("bad action")
	}
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stdout, os.Stderr)
	if rc != 0 || rq == nil {
		os.Exit(rc)
	}
	if err := rq.execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
