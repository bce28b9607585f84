// Command pyre matches a regular expression against a file and prints
// every match span, one per line.
package main

import (
	"fmt"
	"os"

	"github.com/clintolsen/pyre"
	"github.com/clintolsen/pyre/internal/runner"
	"github.com/projectdiscovery/gologger"
)

func main() {
	opts := runner.ParseFlags()

	config := pyre.DefaultConfig()
	config.MaxStates = opts.MaxStates

	re, err := pyre.CompileWithConfig(opts.Pattern, config)
	if err != nil {
		gologger.Error().Msgf("pyre: invalid pattern %q: %v", opts.Pattern, err)
		os.Exit(2)
	}

	if opts.Debug {
		gologger.Info().Msgf("%s", re.Debug())
	}

	data, err := os.ReadFile(opts.TargetPath)
	if err != nil {
		gologger.Error().Msgf("pyre: %v", err)
		os.Exit(2)
	}

	spans := runner.Execute(re, data, opts.First)
	if len(spans) == 0 {
		os.Exit(1)
	}
	for _, span := range spans {
		fmt.Printf("%d,%d\n", span[0], span[1])
	}
	os.Exit(0)
}
