//go:build mage

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// targetArgs are the arguments given after the target name, e.g. "--count 3"
// in "mage demo --count 3". Mage has no named target flags, so init moves
// them out of os.Args before mage parses the command line; targets then read
// them with parseTargetFlags.
var targetArgs []string

func init() {
	// os.Args is [mage, mage flags..., target, target args...]. The target is
	// the first argument not starting with a dash.
	target := -1
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			break
		}
		if arg != "" && arg[0] != '-' {
			target = i
			break
		}
	}
	if target < 0 || target+1 >= len(os.Args) {
		return
	}
	targetArgs = os.Args[target+1:]
	os.Args = os.Args[:target+1]
}

// parseTargetFlags parses targetArgs into fs, exiting on --help or a bad flag.
func parseTargetFlags(fs *flag.FlagSet) {
	err := fs.Parse(targetArgs)
	switch {
	case err == nil:
		return
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
