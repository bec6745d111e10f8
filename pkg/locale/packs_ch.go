package locale

import "github.com/coolbeans/quotecheck/pkg/quote"

func frCH() *Pack {
	return &Pack{
		Code:     "fr-CH",
		Name:     "Suisse romande",
		Country:  "CH",
		Language: "fr",
		Tax: TaxRates{
			Standard:     pct("8.1"),
			Reduced:      pct("3.8"),
			SuperReduced: pct("2.6"),
			Zero:         pct("0"),
			Options: []TaxOption{
				{Value: pct("8.1"), Label: "8,1 %", Description: "Taux normal"},
				{Value: pct("3.8"), Label: "3,8 %", Description: "Taux spécial pour l'hébergement"},
				{Value: pct("2.6"), Label: "2,6 %", Description: "Taux réduit"},
				{Value: pct("0"), Label: "0 %", Description: "Non assujetti ou exonéré"},
			},
		},
		Currency: Currency{
			Code:               "CHF",
			Symbol:             "CHF",
			Position:           SymbolBefore,
			DecimalSeparator:   ".",
			ThousandsSeparator: "'",
			Decimals:           2,
		},
		Legal: LegalTexts{
			ValidityPeriod:     "Offre valable 30 jours.",
			PaymentTerms:       "Paiement net à 30 jours.",
			LatePaymentPenalty: "En cas de retard, un intérêt moratoire de 5 % l'an est dû dès la mise en demeure (art. 104 CO).",
			Jurisdiction:       "For juridique au siège de l'entreprise. Le droit suisse est applicable.",
			DataProtection:     "Les données personnelles sont traitées conformément à la loi fédérale sur la protection des données (LPD).",
		},
		Vocabulary: Vocabulary{
			Quote:           "Offre",
			Invoice:         "Facture",
			Client:          "Client",
			VAT:             "TVA",
			VATNumber:       "N° IDE TVA",
			CompanyRegistry: "IDE",
			Total:           "Total",
			Extra: map[string]string{
				"registry_number": "Numéro IDE",
				"sia_norm":        "Norme SIA 118",
			},
		},
		Compliance: Compliance{
			RequiredFields: []string{"client_name", "client_address", "items"},
			MandatoryMentions: []string{
				"Numéro IDE",
				"Durée de validité de l'offre",
			},
			Rules: []ComplianceRule{
				{
					ID:          "ch_uid_format",
					Description: "Le numéro IDE doit suivre le format CHE-123.456.789 (TVA).",
					Check: quote.Any(
						quote.Field(quote.FieldVATNumber, quote.OpAbsent, nil),
						quote.Field(quote.FieldVATNumber, quote.OpMatches, `^CHE-?\d{3}\.?\d{3}\.?\d{3}(\s?(TVA|MWST|IVA))?$`),
					),
					Severity: SeverityError,
				},
				{
					ID:          "ch_tax_rate_allowed",
					Description: "Le taux de TVA doit être 0, 2,6, 3,8 ou 8,1 %.",
					Check: quote.Any(
						quote.Field(quote.FieldTaxRate, quote.OpAbsent, nil),
						quote.FieldIn(quote.FieldTaxRate, 0, 2.6, 3.8, 8.1),
					),
					Severity: SeverityError,
				},
				{
					ID:          "ch_vat_registration_threshold",
					Description: "L'assujettissement à la TVA est obligatoire au-delà de CHF 100'000 de chiffre d'affaires.",
					Check: quote.Any(
						quote.Field(quote.FieldVATNumber, quote.OpPresent, nil),
						quote.Field(quote.FieldAnnualRevenue, quote.OpAbsent, nil),
						quote.Field(quote.FieldAnnualRevenue, quote.OpLt, 100000),
					),
					Severity: SeverityWarning,
				},
			},
		},
		NumberFormats: NumberFormats{
			Quote:   "OF-{YY}{MM}-{NNN}",
			Invoice: "FA-{YY}{MM}-{NNN}",
		},
	}
}
