package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/quotecheck/pkg/locale"
)

func complianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance <quote-file|->",
		Short: "Check a quote against the compliance rules of its locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localeFlag, _ := cmd.Flags().GetString("locale")
			asJSON, _ := cmd.Flags().GetBool("json")

			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			pack := locale.Get(locale.Resolve(localeFlag, record))
			violations := pack.CheckCompliance(record)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, violations); err != nil {
					return err
				}
			} else if len(violations) == 0 {
				fmt.Fprintf(out, "%s: compliant\n", pack.Code)
			} else {
				fmt.Fprintf(out, "%s: %d violation(s)\n", pack.Code, len(violations))
				for _, v := range violations {
					fmt.Fprintf(out, "  [%s] %s: %s\n", v.Severity, v.RuleID, v.Description)
				}
			}

			if locale.HasErrors(violations) {
				return fmt.Errorf("quote is not compliant with %s", pack.Code)
			}
			return nil
		},
	}

	cmd.Flags().StringP("locale", "l", "", "Locale pack code")
	cmd.Flags().Bool("json", false, "Print violations as JSON")

	return cmd
}

func packsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Inspect the built-in locale packs",
	}
	cmd.AddCommand(packsListCmd())
	cmd.AddCommand(packsShowCmd())
	return cmd
}

func packsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the locale packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			packs := locale.List()
			out := cmd.OutOrStdout()

			if formatStr == "json" {
				return writeJSON(out, packs)
			}

			fmt.Fprintf(out, "%-7s %-22s %-8s %-8s %-8s %s\n", "CODE", "NAME", "COUNTRY", "LANG", "CURRENCY", "STANDARD VAT")
			fmt.Fprintln(out, strings.Repeat("-", 70))
			for _, p := range packs {
				fmt.Fprintf(out, "%-7s %-22s %-8s %-8s %-8s %s%%\n",
					p.Code, p.Name, p.Country, p.Language, p.Currency.Code, p.Tax.Standard.String())
			}
			fmt.Fprintf(out, "\n%d pack(s), default %s\n", len(packs), locale.DefaultCode)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func packsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Print a locale pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			pack, ok := locale.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown locale %q (available: %s)", args[0], strings.Join(locale.Codes(), ", "))
			}

			out := cmd.OutOrStdout()
			if formatStr == "json" {
				return writeJSON(out, pack)
			}
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(pack); err != nil {
				return fmt.Errorf("encoding pack: %w", err)
			}
			return encoder.Close()
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func detectLocaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect-locale",
		Short: "Guess the locale pack from client details",
		Long: `Guess the locale pack from a VAT number, postal code, country name or
browser Accept-Language value. The first hint that resolves wins.

Examples:
  quotecheck detect-locale --vat BE0123456789
  quotecheck detect-locale --postal 4700
  quotecheck detect-locale --browser "de-CH,de;q=0.9"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var h locale.Hints
			h.VATNumber, _ = cmd.Flags().GetString("vat")
			h.PostalCode, _ = cmd.Flags().GetString("postal")
			h.Country, _ = cmd.Flags().GetString("country")
			h.BrowserLocale, _ = cmd.Flags().GetString("browser")

			fmt.Fprintln(cmd.OutOrStdout(), locale.DetectLocale(h))
			return nil
		},
	}

	cmd.Flags().String("vat", "", "Client VAT or UID number")
	cmd.Flags().String("postal", "", "Client postal code")
	cmd.Flags().String("country", "", "Client country name")
	cmd.Flags().String("browser", "", "Browser Accept-Language value")

	return cmd
}

func numberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "number <sequence>",
		Short: "Format a quote or invoice number",
		Long: `Format a document number with the numbering template of a locale pack.

Examples:
  quotecheck number 7 --locale fr-FR --date 2024-03-15
  quotecheck number 12 --kind invoice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("locale")
			kindStr, _ := cmd.Flags().GetString("kind")
			dateStr, _ := cmd.Flags().GetString("date")

			seq, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid sequence %q: must be an integer", args[0])
			}
			kind, err := locale.ParseDocumentKind(kindStr)
			if err != nil {
				return err
			}
			date := time.Now()
			if dateStr != "" {
				if date, err = time.Parse(time.DateOnly, dateStr); err != nil {
					return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), locale.Get(code).FormatNumber(kind, seq, date))
			return nil
		},
	}

	cmd.Flags().StringP("locale", "l", locale.DefaultCode, "Locale pack code")
	cmd.Flags().String("kind", "quote", "Document kind (quote, invoice)")
	cmd.Flags().String("date", "", "Issue date as YYYY-MM-DD (default today)")

	return cmd
}
