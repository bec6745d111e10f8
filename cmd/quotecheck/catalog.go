package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolbeans/quotecheck/pkg/risk"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage risk pattern catalogs",
		Long: `Validate or export risk pattern catalogs.

A custom catalog is a YAML file with the same layout as the built-in one.
Point catalog.path in the configuration file at it to use it.

Examples:
  quotecheck catalog export > my-catalog.yaml
  quotecheck catalog validate my-catalog.yaml`,
	}
	cmd.AddCommand(catalogValidateCmd())
	cmd.AddCommand(catalogExportCmd())
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog-file]",
		Short: "Validate a catalog (default: the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				catalog *risk.Catalog
				source  string
				err     error
			)
			if len(args) == 1 {
				source = args[0]
				catalog, err = risk.LoadCatalogFile(source)
			} else {
				cfg, cfgErr := loadConfig(cmd)
				if cfgErr != nil {
					return cfgErr
				}
				source = cfg.Catalog.Path
				if source == "" {
					source = "built-in catalog"
				}
				catalog, err = cfg.LoadCatalog()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s, %d patterns, %d mentions, %d auto-fixes)\n",
				source, catalog.Version, len(catalog.Patterns), len(catalog.Mentions), len(catalog.AutoFixes))
			return nil
		},
	}
}

func catalogExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the built-in catalog as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(risk.DefaultCatalogYAML())
			return err
		},
	}
}
