package locale

import "github.com/coolbeans/quotecheck/pkg/quote"

const belgianVATPattern = `^BE\s?[01]\d{3}\.?\d{3}\.?\d{3}$`

func belgianTax(standard, reduced, superReduced, zero TaxOption) TaxRates {
	return TaxRates{
		Standard:     pct("21"),
		Reduced:      pct("12"),
		SuperReduced: pct("6"),
		Zero:         pct("0"),
		Options: []TaxOption{
			{Value: pct("21"), Label: standard.Label, Description: standard.Description},
			{Value: pct("12"), Label: reduced.Label, Description: reduced.Description},
			{Value: pct("6"), Label: superReduced.Label, Description: superReduced.Description},
			{Value: pct("0"), Label: zero.Label, Description: zero.Description},
		},
	}
}

func belgianRules(vatFormat, taxRate, reducedRate string) []ComplianceRule {
	return []ComplianceRule{
		{
			ID:          "be_vat_number_format",
			Description: vatFormat,
			Check: quote.Any(
				quote.Field(quote.FieldVATNumber, quote.OpAbsent, nil),
				quote.Field(quote.FieldVATNumber, quote.OpMatches, belgianVATPattern),
			),
			Severity: SeverityError,
		},
		{
			ID:          "be_tax_rate_allowed",
			Description: taxRate,
			Check: quote.Any(
				quote.Field(quote.FieldTaxRate, quote.OpAbsent, nil),
				quote.FieldIn(quote.FieldTaxRate, 0, 6, 12, 21),
			),
			Severity: SeverityError,
		},
		{
			ID:          "be_reduced_rate_sector",
			Description: reducedRate,
			Check: quote.Any(
				quote.Not(quote.Field(quote.FieldTaxRate, quote.OpEq, 6)),
				quote.Field(quote.FieldSector, quote.OpPresent, nil),
			),
			Severity: SeverityWarning,
		},
	}
}

func frBE() *Pack {
	return &Pack{
		Code:     "fr-BE",
		Name:     "Belgique (français)",
		Country:  "BE",
		Language: "fr",
		Tax: belgianTax(
			TaxOption{Label: "21 %", Description: "Taux normal"},
			TaxOption{Label: "12 %", Description: "Taux intermédiaire (logement social, certains produits)"},
			TaxOption{Label: "6 %", Description: "Rénovation de logements privés de plus de 10 ans"},
			TaxOption{Label: "0 %", Description: "Autoliquidation ou exportation"},
		),
		Currency: Currency{
			Code:               "EUR",
			Symbol:             "€",
			Position:           SymbolAfter,
			DecimalSeparator:   ",",
			ThousandsSeparator: " ",
			Decimals:           2,
		},
		Legal: LegalTexts{
			ValidityPeriod:     "Ce devis est valable 30 jours à compter de sa date d'émission.",
			PaymentTerms:       "Paiement à 30 jours date de facture.",
			LatePaymentPenalty: "Tout retard de paiement entraîne de plein droit un intérêt de retard au taux légal ainsi qu'une indemnité forfaitaire de 40 euros (loi du 2 août 2002).",
			WithdrawalRight:    "Le consommateur dispose d'un délai de rétractation de 14 jours calendrier pour les contrats conclus à distance ou hors établissement (art. VI.47 CDE).",
			Jurisdiction:       "En cas de litige, seuls les tribunaux de l'arrondissement du siège de l'entrepreneur sont compétents.",
			DataProtection:     "Les données personnelles sont traitées conformément au RGPD et ne sont utilisées que pour l'exécution du présent devis.",
			Insurance:          "L'entrepreneur est couvert par une assurance responsabilité civile professionnelle.",
		},
		Vocabulary: Vocabulary{
			Quote:           "Devis",
			Invoice:         "Facture",
			Client:          "Client",
			VAT:             "TVA",
			VATNumber:       "N° TVA",
			CompanyRegistry: "BCE",
			Total:           "Total",
			Extra: map[string]string{
				"registry_number": "Numéro d'entreprise",
				"self_billing":    "Autoliquidation",
				"contractor":      "Entrepreneur",
			},
		},
		Compliance: Compliance{
			RequiredFields: []string{"client_name", "client_address", "vat_number", "items"},
			MandatoryMentions: []string{
				"Numéro d'entreprise (BCE)",
				"Durée de validité de l'offre",
				"Taux de TVA appliqué",
				"Conditions de paiement",
			},
			Rules: belgianRules(
				"Le numéro de TVA doit suivre le format BE0123.456.789.",
				"Le taux de TVA doit être 0, 6, 12 ou 21 %.",
				"Le taux réduit de 6 % doit être justifié par le secteur des travaux.",
			),
		},
		NumberFormats: NumberFormats{
			Quote:   "DEV-{YYYY}-{NNNN}",
			Invoice: "FAC-{YYYY}-{NNNN}",
		},
	}
}

func nlBE() *Pack {
	return &Pack{
		Code:     "nl-BE",
		Name:     "België (Nederlands)",
		Country:  "BE",
		Language: "nl",
		Tax: belgianTax(
			TaxOption{Label: "21 %", Description: "Normaal tarief"},
			TaxOption{Label: "12 %", Description: "Tussentarief"},
			TaxOption{Label: "6 %", Description: "Renovatie van privéwoningen ouder dan 10 jaar"},
			TaxOption{Label: "0 %", Description: "Verlegging van heffing of uitvoer"},
		),
		Currency: Currency{
			Code:               "EUR",
			Symbol:             "€",
			Position:           SymbolBefore,
			DecimalSeparator:   ",",
			ThousandsSeparator: ".",
			Decimals:           2,
		},
		Legal: LegalTexts{
			ValidityPeriod:     "Deze offerte is 30 dagen geldig vanaf de datum van opmaak.",
			PaymentTerms:       "Betaling binnen 30 dagen na factuurdatum.",
			LatePaymentPenalty: "Bij laattijdige betaling is van rechtswege een verwijlintrest aan de wettelijke rentevoet en een forfaitaire vergoeding van 40 euro verschuldigd (wet van 2 augustus 2002).",
			WithdrawalRight:    "De consument beschikt over een herroepingstermijn van 14 kalenderdagen voor overeenkomsten op afstand of buiten de verkoopruimte (art. VI.47 WER).",
			Jurisdiction:       "Bij geschillen zijn uitsluitend de rechtbanken van het arrondissement van de zetel van de aannemer bevoegd.",
			DataProtection:     "Persoonsgegevens worden verwerkt overeenkomstig de AVG en enkel gebruikt voor de uitvoering van deze offerte.",
			Insurance:          "De aannemer is verzekerd voor beroepsaansprakelijkheid.",
		},
		Vocabulary: Vocabulary{
			Quote:           "Offerte",
			Invoice:         "Factuur",
			Client:          "Klant",
			VAT:             "btw",
			VATNumber:       "Btw-nummer",
			CompanyRegistry: "KBO",
			Total:           "Totaal",
			Extra: map[string]string{
				"registry_number": "Ondernemingsnummer",
				"self_billing":    "Btw verlegd",
				"contractor":      "Aannemer",
			},
		},
		Compliance: Compliance{
			RequiredFields: []string{"client_name", "client_address", "vat_number", "items"},
			MandatoryMentions: []string{
				"Ondernemingsnummer (KBO)",
				"Geldigheidsduur van de offerte",
				"Toegepast btw-tarief",
				"Betalingsvoorwaarden",
			},
			Rules: belgianRules(
				"Het btw-nummer moet het formaat BE0123.456.789 volgen.",
				"Het btw-tarief moet 0, 6, 12 of 21 % zijn.",
				"Het verlaagd tarief van 6 % moet door de sector van de werken verantwoord worden.",
			),
		},
		NumberFormats: NumberFormats{
			Quote:   "OFF-{YYYY}-{NNNN}",
			Invoice: "FAC-{YYYY}-{NNNN}",
		},
	}
}

func deBE() *Pack {
	return &Pack{
		Code:     "de-BE",
		Name:     "Belgien (Deutsch)",
		Country:  "BE",
		Language: "de",
		Tax: belgianTax(
			TaxOption{Label: "21 %", Description: "Normalsatz"},
			TaxOption{Label: "12 %", Description: "Zwischensatz"},
			TaxOption{Label: "6 %", Description: "Renovierung von Privatwohnungen, die älter als 10 Jahre sind"},
			TaxOption{Label: "0 %", Description: "Umkehrung der Steuerschuldnerschaft oder Ausfuhr"},
		),
		Currency: Currency{
			Code:               "EUR",
			Symbol:             "€",
			Position:           SymbolAfter,
			DecimalSeparator:   ",",
			ThousandsSeparator: ".",
			Decimals:           2,
		},
		Legal: LegalTexts{
			ValidityPeriod:     "Dieses Angebot ist 30 Tage ab Ausstellungsdatum gültig.",
			PaymentTerms:       "Zahlung innerhalb von 30 Tagen nach Rechnungsdatum.",
			LatePaymentPenalty: "Bei Zahlungsverzug werden von Rechts wegen Verzugszinsen zum gesetzlichen Zinssatz sowie eine Pauschalentschädigung von 40 Euro fällig (Gesetz vom 2. August 2002).",
			WithdrawalRight:    "Der Verbraucher verfügt über eine Widerrufsfrist von 14 Kalendertagen bei Fernabsatzverträgen oder außerhalb von Geschäftsräumen geschlossenen Verträgen (Art. VI.47 WGB).",
			Jurisdiction:       "Bei Streitigkeiten sind ausschließlich die Gerichte des Bezirks des Unternehmenssitzes zuständig.",
			DataProtection:     "Personenbezogene Daten werden gemäß DSGVO verarbeitet und ausschließlich zur Ausführung dieses Angebots verwendet.",
			Insurance:          "Der Unternehmer ist berufshaftpflichtversichert.",
		},
		Vocabulary: Vocabulary{
			Quote:           "Angebot",
			Invoice:         "Rechnung",
			Client:          "Kunde",
			VAT:             "MwSt.",
			VATNumber:       "MwSt.-Nr.",
			CompanyRegistry: "ZUD",
			Total:           "Gesamtbetrag",
			Extra: map[string]string{
				"registry_number": "Unternehmensnummer",
				"self_billing":    "Steuerschuldnerschaft des Leistungsempfängers",
				"contractor":      "Unternehmer",
			},
		},
		Compliance: Compliance{
			RequiredFields: []string{"client_name", "client_address", "vat_number", "items"},
			MandatoryMentions: []string{
				"Unternehmensnummer (ZUD)",
				"Gültigkeitsdauer des Angebots",
				"Angewandter MwSt.-Satz",
				"Zahlungsbedingungen",
			},
			Rules: belgianRules(
				"Die MwSt.-Nummer muss dem Format BE0123.456.789 entsprechen.",
				"Der MwSt.-Satz muss 0, 6, 12 oder 21 % betragen.",
				"Der ermäßigte Satz von 6 % muss durch den Tätigkeitsbereich begründet sein.",
			),
		},
		NumberFormats: NumberFormats{
			Quote:   "ANG-{YYYY}-{NNNN}",
			Invoice: "RE-{YYYY}-{NNNN}",
		},
	}
}
