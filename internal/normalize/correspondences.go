package normalize

// DefaultCorrespondences returns the built-in race-card to ranking-table
// aliases. Keys and values are matched after case and accent folding.
func DefaultCorrespondences() map[string]string {
	return map[string]string{
		"CORTEZ BANK H.PS. 6 A.":   "CORTEZ BANK (GB)",
		"LEHMAN M.PS. 6 A.":        "LEHMAN (GB)",
		"BAK S WOOD":               "BAK'S WOOD",
		"BAKS WOOD":                "BAK'S WOOD",
		"S.STEMPNIAK":              "ECURIES SERGE STEMPNIAK",
		"S. STEMPNIAK":             "ECURIES SERGE STEMPNIAK",
		"G.AUGU":                   "GERARD AUGUSTIN-NORMAND",
		"G. AUGU":                  "GERARD AUGUSTIN-NORMAND",
		"JP. CAYROUZE":             "MR JEAN-PAUL CAYROUZE",
		"JP.CAYROUZE":              "MR JEAN-PAUL CAYROUZE",
		"J.P. CAYROUZE":            "MR JEAN-PAUL CAYROUZE",
		"MAT. DAGUZAN-GARROS":      "MR MATHIEU DAGUZAN-GARROS",
		"ECURIE JEAN-LOUIS BO":     "ECURIE JEAN-LOUIS BOUCHARD",
		"E. LEMAITRE":              "MME LISA LEMIERE DUBOIS",
		"E.LEMAITRE":               "MME LISA LEMIERE DUBOIS",
		"SUC. S.A. AGA KHAN":       "SUCCESSION AGA KHAN",
		"SUC.S.A. AGA KHAN":        "SUCCESSION AGA KHAN",
		"SUC S.A. AGA KHAN":        "SUCCESSION AGA KHAN",
		"PAT. CHEDEVILLE":          "PATRICK CHEDEVILLE",
		"PAT.CHEDEVILLE":           "PATRICK CHEDEVILLE",
		"PAT CHEDEVILLE":           "PATRICK CHEDEVILLE",
		"MME K. MORICE":            "MME KARINE MORICE",
		"MME K.MORICE":             "MME KARINE MORICE",
		"JPJ. DUBOIS":              "MR JEAN-PIERRE-JOSEPH DUBOIS",
		"JPJ.DUBOIS":               "MR JEAN-PIERRE-JOSEPH DUBOIS",
		"T.DE LA HERONNIERE":       "THIERRY DE LA HERONNIERE",
		"T. DE LA HERONNIERE":      "THIERRY DE LA HERONNIERE",
		"ECURIE ARTU SNC":          "ECURIE ARTU",
		"D. BOUQ":                  "DOMINIQUE BOUQUETOT",
	}
}
