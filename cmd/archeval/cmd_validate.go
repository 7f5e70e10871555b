package main

import (
	"fmt"
	"sort"

	"github.com/microsoft/archeval/internal/catalog"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var catalogDir string

	cmd := &cobra.Command{
		Use:   "validate [pillar...]",
		Short: "Validate practice catalogs",
		Long: `Validate checks catalog files against the schema and the structural
rules: unique practice codes, weights summing to 1.0, known scoring modes,
and gap definitions referencing existing practices.

With no arguments every embedded pillar catalog is validated. With
--catalog-dir, the YAML files in that directory are validated instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, catalogDir)
		},
	}

	cmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "Directory of catalog YAML files to validate")

	return cmd
}

func runValidate(cmd *cobra.Command, pillars []string, catalogDir string) error {
	if catalogDir != "" {
		loaded, err := catalog.LoadDir(catalogDir)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(loaded))
		for name := range loaded {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%d practices, %d gap patterns)\n",
				name, len(loaded[name].Practices), len(loaded[name].Gaps))
		}
		return nil
	}

	if len(pillars) == 0 {
		pillars = catalog.Pillars()
	}
	for _, pillar := range pillars {
		cat, err := catalog.LoadPillar(pillar)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%d practices, %d gap patterns)\n",
			cat.Pillar, len(cat.Practices), len(cat.Gaps))
	}
	return nil
}
