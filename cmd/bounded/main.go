// Command bounded inspects JSON Schema parameter spaces: it reports unbounded
// fields, counts sampling dimensions and maps unit vectors to instances.
//
// Usage:
//
//	bounded check  schema.yaml [--overrides o.yaml]
//	bounded dims   schema.yaml [--overrides o.yaml] [--allow-constants]
//	bounded sample schema.yaml --units 0.1,0.5,1 [--overrides o.yaml] [--allow-constants]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
)

const version = "0.1.0"

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	return cobrau.ExecCommandAndCatchInterrupt(newRootCmd(args, ver))
}

func newRootCmd(args []string, ver string) *cobra.Command {
	params := &cliParams{}
	rootCmd := cobrau.PrepareRootCmd(
		"bounded",
		"Boundedness checks and unit-hypercube sampling for JSON Schema parameter spaces",
		args,
		ver,
		newCheckCmd(params),
		newDimsCmd(params),
		newSampleCmd(params),
	)
	rootCmd.SetArgs(args[1:])
	initGlobalFlags(rootCmd, params)
	return rootCmd
}
