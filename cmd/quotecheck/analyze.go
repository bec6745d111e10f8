package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
	"github.com/coolbeans/quotecheck/pkg/risk"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <quote-file|->",
		Short: "Analyze a quote for legal risks",
		Long: `Analyze a quote (JSON or YAML) for risky wording and missing
mandatory mentions, and print a scored report.

The locale is taken from --locale, then from the quote's "locale" field,
then detected from its VAT number, postal code and country.

Examples:
  quotecheck analyze devis.json
  quotecheck analyze devis.yaml --locale fr-FR --sensitivity strict
  quotecheck analyze devis.json --json
  quotecheck analyze devis.json --fix
  cat devis.json | quotecheck analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localeFlag, _ := cmd.Flags().GetString("locale")
			asJSON, _ := cmd.Flags().GetBool("json")
			fix, _ := cmd.Flags().GetBool("fix")
			maxScore, _ := cmd.Flags().GetInt("max-score")

			analyzer, sensitivity, err := analysisSetup(cmd)
			if err != nil {
				return err
			}

			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			result := analyzer.Analyze(record, locale.Resolve(localeFlag, record), sensitivity)
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				if err := writeJSON(out, result); err != nil {
					return err
				}
			case fix:
				printFixes(out, record, result)
			default:
				printReport(out, result)
			}

			if result.Score > maxScore {
				return fmt.Errorf("risk score %d exceeds maximum %d", result.Score, maxScore)
			}
			return nil
		},
	}

	cmd.Flags().StringP("locale", "l", "", "Locale pack code (e.g. fr-BE, nl-BE, fr-FR)")
	cmd.Flags().Bool("no-autofix", false, "Do not propose pattern auto-fixes")
	cmd.Flags().StringP("sensitivity", "s", "", "Sensitivity: strict, normal or permissive (default from config)")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	cmd.Flags().Bool("fix", false, "Print the fields rewritten with every available auto-fix")
	cmd.Flags().Int("max-score", 100, "Exit with an error when the risk score is above this value")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printReport(w io.Writer, result *risk.AnalysisResult) {
	fmt.Fprintf(w, "Locale: %s  Sensitivity: %s\n", result.Locale, result.Sensitivity)
	fmt.Fprintf(w, "Score: %d/100 (%d critical, %d high, %d medium, %d low)\n",
		result.Score, result.Critical, result.High, result.Medium, result.Low)

	if !result.HasRisks {
		fmt.Fprintln(w, "\nNo risks found.")
		return
	}

	for _, r := range result.Risks {
		fmt.Fprintf(w, "\n[%s] %s\n", strings.ToUpper(string(r.Severity)), r.Description)
		if r.Text != "" {
			fmt.Fprintf(w, "  %s %d-%d: %q\n", r.Position.Field, r.Position.Start, r.Position.End, r.Text)
		}
		if r.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", r.Explanation)
		}
		if r.Suggestion != "" {
			fmt.Fprintf(w, "  Suggestion: %s\n", r.Suggestion)
		}
		if r.AutoFix != nil {
			fmt.Fprintf(w, "  Auto-fix (%s): %q\n", r.AutoFix.Type, r.AutoFix.Value)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

func printFixes(w io.Writer, record quote.Record, result *risk.AnalysisResult) {
	fixed := risk.ApplyFixes(record, result.Risks)
	if len(fixed) == 0 {
		fmt.Fprintln(w, "No automatic corrections available.")
		return
	}

	fields := make([]string, 0, len(fixed))
	for field := range fixed {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for i, field := range fields {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- %s\n%s\n", field, fixed[field])
	}
}
