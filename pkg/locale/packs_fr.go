package locale

import "github.com/coolbeans/quotecheck/pkg/quote"

func frFR() *Pack {
	return &Pack{
		Code:     "fr-FR",
		Name:     "France",
		Country:  "FR",
		Language: "fr",
		Tax: TaxRates{
			Standard:     pct("20"),
			Reduced:      pct("10"),
			SuperReduced: pct("5.5"),
			Zero:         pct("0"),
			Options: []TaxOption{
				{Value: pct("20"), Label: "20 %", Description: "Taux normal"},
				{Value: pct("10"), Label: "10 %", Description: "Travaux d'amélioration de logements de plus de 2 ans"},
				{Value: pct("5.5"), Label: "5,5 %", Description: "Travaux de rénovation énergétique"},
				{Value: pct("2.1"), Label: "2,1 %", Description: "Taux particulier"},
				{Value: pct("0"), Label: "0 %", Description: "TVA non applicable (franchise en base)"},
			},
		},
		Currency: Currency{
			Code:               "EUR",
			Symbol:             "€",
			Position:           SymbolAfter,
			DecimalSeparator:   ",",
			ThousandsSeparator: " ",
			Decimals:           2,
		},
		Legal: LegalTexts{
			ValidityPeriod:     "Devis valable 3 mois à compter de sa date d'émission.",
			PaymentTerms:       "Paiement à 30 jours à compter de la date de réception de la facture.",
			LatePaymentPenalty: "Pénalités de retard : trois fois le taux d'intérêt légal ; indemnité forfaitaire pour frais de recouvrement : 40 euros (art. L441-10 du Code de commerce).",
			WithdrawalRight:    "Le client consommateur dispose d'un délai de rétractation de quatorze jours (art. L221-18 du Code de la consommation).",
			Jurisdiction:       "Tout litige relève de la compétence du tribunal du lieu du siège social de l'entreprise, sous réserve des règles protectrices du consommateur.",
			DataProtection:     "Les données collectées sont traitées conformément au RGPD et à la loi Informatique et Libertés.",
			Insurance:          "Assurance décennale et responsabilité civile professionnelle : assureur, contrat et couverture géographique indiqués sur le devis.",
		},
		Vocabulary: Vocabulary{
			Quote:           "Devis",
			Invoice:         "Facture",
			Client:          "Client",
			VAT:             "TVA",
			VATNumber:       "N° TVA intracommunautaire",
			CompanyRegistry: "SIRET",
			Total:           "Total TTC",
			Extra: map[string]string{
				"registry_number": "Numéro SIRET",
				"trade_register":  "RCS / RM",
				"vat_exemption":   "TVA non applicable, art. 293 B du CGI",
			},
		},
		Compliance: Compliance{
			RequiredFields: []string{"client_name", "client_address", "siret", "items"},
			MandatoryMentions: []string{
				"Numéro SIRET",
				"Date de validité du devis",
				"Pénalités de retard et indemnité forfaitaire",
				"Assurance professionnelle (travaux du bâtiment)",
			},
			Rules: []ComplianceRule{
				{
					ID:          "fr_siret_format",
					Description: "Le numéro SIRET doit comporter 14 chiffres.",
					Check: quote.Any(
						quote.Field("siret", quote.OpAbsent, nil),
						quote.Field("siret", quote.OpMatches, `^\d{3}\s?\d{3}\s?\d{3}\s?\d{5}$`),
					),
					Severity: SeverityError,
				},
				{
					ID:          "fr_tax_rate_allowed",
					Description: "Le taux de TVA doit être 0, 2,1, 5,5, 10 ou 20 %.",
					Check: quote.Any(
						quote.Field(quote.FieldTaxRate, quote.OpAbsent, nil),
						quote.FieldIn(quote.FieldTaxRate, 0, 2.1, 5.5, 10, 20),
					),
					Severity: SeverityError,
				},
				{
					ID:          "fr_vat_number_when_charged",
					Description: "Une TVA facturée suppose un numéro de TVA intracommunautaire.",
					Check: quote.Not(quote.All(
						quote.Field(quote.FieldTaxRate, quote.OpGt, 0),
						quote.Field(quote.FieldVATNumber, quote.OpAbsent, nil),
					)),
					Severity: SeverityWarning,
				},
			},
		},
		NumberFormats: NumberFormats{
			Quote:   "D{YYYY}{MM}-{NNN}",
			Invoice: "F{YYYY}{MM}-{NNN}",
		},
	}
}
