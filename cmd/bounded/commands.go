package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/reoring/bounded"
)

func newCheckCmd(params *cliParams) *cobra.Command {
	return &cobra.Command{
		Use:   "check schema-file",
		Short: "report the fields that keep the schema from being bounded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ov, err := params.load(args)
			if err != nil {
				return err
			}
			paths, err := params.registry().UnboundedFields(s, ov)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				fmt.Fprintf(out, "%s: bounded\n", s.Name())
				return nil
			}
			for _, p := range paths {
				fmt.Fprintf(out, "%s: unbounded\n", p)
			}
			return fmt.Errorf("%w: %d unbounded field(s)", bounded.ErrNotBounded, len(paths))
		},
	}
}

func newDimsCmd(params *cliParams) *cobra.Command {
	return &cobra.Command{
		Use:   "dims schema-file",
		Short: "print the number of unit values a sample consumes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ov, err := params.load(args)
			if err != nil {
				return err
			}
			n, err := params.registry().ModelDimensions(s, params.AllowConstants, ov)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newSampleCmd(params *cliParams) *cobra.Command {
	var rawUnits []string
	cmd := &cobra.Command{
		Use:   "sample schema-file",
		Short: "map a point of the unit hypercube to an instance, printed as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ov, err := params.load(args)
			if err != nil {
				return err
			}
			units, err := parseUnits(rawUnits)
			if err != nil {
				return err
			}
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("sampling %s at %v", s.Name(), units))
			}
			v, err := params.registry().SampleModel(units, s, params.AllowConstants, ov)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&rawUnits, "units", nil, "comma-separated unit values in [0, 1], one per dimension")
	return cmd
}
