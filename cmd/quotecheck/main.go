package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolbeans/quotecheck/pkg/config"
	"github.com/coolbeans/quotecheck/pkg/quote"
	"github.com/coolbeans/quotecheck/pkg/risk"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quotecheck",
		Short: "Legal risk and compliance checks for trade quotes",
		Long: `Quotecheck reviews quotes written by tradespeople before they are sent.

It flags risky commitments in free text (absolute guarantees, unlimited
liability, no cancellation, vague scope), lists the mandatory legal
mentions that are missing for the client's jurisdiction, scores the
overall risk and proposes automatic corrections.

Supported jurisdictions: fr-BE, nl-BE, de-BE, fr-FR, fr-CH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to a quotecheck.yaml configuration file")

	root.AddCommand(analyzeCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(complianceCmd())
	root.AddCommand(packsCmd())
	root.AddCommand(detectLocaleCmd())
	root.AddCommand(numberCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())

	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// analysisSetup loads the configuration and builds the analyzer and
// sensitivity for commands carrying --sensitivity and --no-autofix.
func analysisSetup(cmd *cobra.Command) (*risk.Analyzer, risk.Sensitivity, error) {
	sensitivityFlag, _ := cmd.Flags().GetString("sensitivity")
	noAutoFix, _ := cmd.Flags().GetBool("no-autofix")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	if noAutoFix {
		disabled := false
		cfg.Analysis.AutoFix = &disabled
	}
	analyzer, err := cfg.NewAnalyzer()
	if err != nil {
		return nil, "", err
	}

	sensitivity := cfg.Sensitivity()
	if sensitivityFlag != "" {
		if sensitivity, err = risk.ParseSensitivity(sensitivityFlag); err != nil {
			return nil, "", err
		}
	}
	return analyzer, sensitivity, nil
}

// readRecord loads a quote from path, or from stdin when path is "-".
// Stdin is decoded as YAML, which also accepts JSON.
func readRecord(path string, stdin io.Reader) (quote.Record, error) {
	if path != "-" {
		return quote.ReadFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading quote from stdin: %w", err)
	}
	return quote.ParseYAML(data)
}
