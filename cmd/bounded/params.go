package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/docschema"
)

type cliParams struct {
	OverridesFile   string
	AllowConstants  bool
	PermissiveTypes bool
}

func initGlobalFlags(cmd *cobra.Command, params *cliParams) {
	cmd.SilenceErrors = true
	cmd.PersistentFlags().StringVar(&params.OverridesFile, "overrides", "", "JSON or YAML file with field overrides keyed by dot-path")
	cmd.PersistentFlags().BoolVar(&params.AllowConstants, "allow-constants", false, "Let unbounded fields with a default count as constants")
	cmd.PersistentFlags().BoolVar(&params.PermissiveTypes, "permissive-types", false, "Treat fields no handler understands as bounded instead of failing")
}

// load reads the schema named by args[0] and the overrides file, if any.
func (p *cliParams) load(args []string) (*docschema.Schema, bounded.Overrides, error) {
	s, err := docschema.LoadFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	ov, err := loadOverrides(p.OverridesFile)
	if err != nil {
		return nil, nil, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("loaded schema %s from %s with %d override(s)", s.Name(), args[0], len(ov)))
	}
	return s, ov, nil
}

func (p *cliParams) registry() *bounded.Registry {
	return bounded.NewDefaultRegistry(bounded.WithFailOnNoHandler(!p.PermissiveTypes))
}

func loadOverrides(path string) (bounded.Overrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return bounded.ParseOverridesJSON(data)
	}
	return bounded.ParseOverridesYAML(data)
}

func parseUnits(raw []string) ([]float64, error) {
	out := make([]float64, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		u, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, fmt.Errorf("--units: %q: %w", r, err)
		}
		out = append(out, u)
	}
	return out, nil
}
