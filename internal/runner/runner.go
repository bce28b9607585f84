// Package runner parses command-line flags for the pyre CLI.
package runner

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

var version = "v0.1.0"

// Options holds the parsed pyre CLI flags plus the two positional
// arguments (pattern, target-path).
type Options struct {
	Pattern    string
	TargetPath string
	Debug      bool
	First      bool
	MaxStates  int
	Verbose    bool
	Silent     bool
}

// ParseFlags parses os.Args into Options:
// `pyre [--debug] [--first] [--config n] <regex> <target-path>`.
//
// Flags are declared as a goflags.FlagSet built from grouped
// declarations, followed by fatal validation of required input; the
// pattern and target path are positional, read from flagSet.Args()
// after Parse.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`pyre matches regular expressions using a DFA built directly from Brzozowski derivatives.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.BoolVarP(&opts.Debug, "debug", "d", false, "print the compiled DFA's states and transitions before matching"),
		flagSet.BoolVarP(&opts.First, "first", "f", false, "stop at the first match instead of searching the whole file"),
		flagSet.IntVar(&opts.MaxStates, "config", 10000, "maximum DFA state count before aborting compilation"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display match spans only"),
		flagSet.CallbackVar(printVersion, "version", "display pyre version"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	args := flagSet.Args()
	if len(args) < 2 {
		gologger.Fatal().Msgf("pyre: usage: pyre [--debug] [--first] <regex> <target-path>\n")
	}
	opts.Pattern = args[0]
	opts.TargetPath = args[1]

	return opts
}

func printVersion() {
	gologger.Info().Msgf("pyre version %s", version)
}
