package resolver

// roster maps IOC country codes to continent and ISO 3166-1 alpha-3 codes.
// Delegations without an ISO country keep Unknown as ISO-3.
var roster = map[string]Record{
	// Africa
	"ALG": {Africa, "DZA"}, "ANG": {Africa, "AGO"}, "BEN": {Africa, "BEN"},
	"BOT": {Africa, "BWA"}, "BUR": {Africa, "BFA"}, "BDI": {Africa, "BDI"},
	"CMR": {Africa, "CMR"}, "CPV": {Africa, "CPV"}, "CAF": {Africa, "CAF"},
	"CHA": {Africa, "TCD"}, "COM": {Africa, "COM"}, "CGO": {Africa, "COG"},
	"COD": {Africa, "COD"}, "CIV": {Africa, "CIV"}, "DJI": {Africa, "DJI"},
	"EGY": {Africa, "EGY"}, "GEQ": {Africa, "GNQ"}, "ERI": {Africa, "ERI"},
	"SWZ": {Africa, "SWZ"}, "ETH": {Africa, "ETH"}, "GAB": {Africa, "GAB"},
	"GAM": {Africa, "GMB"}, "GHA": {Africa, "GHA"}, "GUI": {Africa, "GIN"},
	"GBS": {Africa, "GNB"}, "KEN": {Africa, "KEN"}, "LES": {Africa, "LSO"},
	"LBR": {Africa, "LBR"}, "LBA": {Africa, "LBY"}, "MAD": {Africa, "MDG"},
	"MAW": {Africa, "MWI"}, "MLI": {Africa, "MLI"}, "MTN": {Africa, "MRT"},
	"MRI": {Africa, "MUS"}, "MAR": {Africa, "MAR"}, "MOZ": {Africa, "MOZ"},
	"NAM": {Africa, "NAM"}, "NIG": {Africa, "NER"}, "NGR": {Africa, "NGA"},
	"RWA": {Africa, "RWA"}, "STP": {Africa, "STP"}, "SEN": {Africa, "SEN"},
	"SEY": {Africa, "SYC"}, "SLE": {Africa, "SLE"}, "SOM": {Africa, "SOM"},
	"RSA": {Africa, "ZAF"}, "SSD": {Africa, "SSD"}, "SUD": {Africa, "SDN"},
	"TAN": {Africa, "TZA"}, "TOG": {Africa, "TGO"}, "TUN": {Africa, "TUN"},
	"UGA": {Africa, "UGA"}, "ZAM": {Africa, "ZMB"}, "ZIM": {Africa, "ZWE"},

	// Asia
	"AFG": {Asia, "AFG"}, "BRN": {Asia, "BHR"}, "BAN": {Asia, "BGD"},
	"BHU": {Asia, "BTN"}, "BRU": {Asia, "BRN"}, "CAM": {Asia, "KHM"},
	"CHN": {Asia, "CHN"}, "TPE": {Asia, "TWN"}, "HKG": {Asia, "HKG"},
	"IND": {Asia, "IND"}, "INA": {Asia, "IDN"}, "IRI": {Asia, "IRN"},
	"IRQ": {Asia, "IRQ"}, "JPN": {Asia, "JPN"}, "JOR": {Asia, "JOR"},
	"KAZ": {Asia, "KAZ"}, "KOR": {Asia, "KOR"}, "PRK": {Asia, "PRK"},
	"KUW": {Asia, "KWT"}, "KGZ": {Asia, "KGZ"}, "LAO": {Asia, "LAO"},
	"LBN": {Asia, "LBN"}, "MAS": {Asia, "MYS"}, "MDV": {Asia, "MDV"},
	"MGL": {Asia, "MNG"}, "MYA": {Asia, "MMR"}, "NEP": {Asia, "NPL"},
	"OMA": {Asia, "OMN"}, "PAK": {Asia, "PAK"}, "PLE": {Asia, "PSE"},
	"PHI": {Asia, "PHL"}, "QAT": {Asia, "QAT"}, "KSA": {Asia, "SAU"},
	"SGP": {Asia, "SGP"}, "SRI": {Asia, "LKA"}, "SYR": {Asia, "SYR"},
	"TJK": {Asia, "TJK"}, "THA": {Asia, "THA"}, "TLS": {Asia, "TLS"},
	"TKM": {Asia, "TKM"}, "UAE": {Asia, "ARE"}, "UZB": {Asia, "UZB"},
	"VIE": {Asia, "VNM"}, "YEM": {Asia, "YEM"},

	// Europe
	"ALB": {Europe, "ALB"}, "AND": {Europe, "AND"}, "ARM": {Europe, "ARM"},
	"AUT": {Europe, "AUT"}, "AZE": {Europe, "AZE"}, "BLR": {Europe, "BLR"},
	"BEL": {Europe, "BEL"}, "BIH": {Europe, "BIH"}, "BUL": {Europe, "BGR"},
	"CRO": {Europe, "HRV"}, "CYP": {Europe, "CYP"}, "CZE": {Europe, "CZE"},
	"DEN": {Europe, "DNK"}, "EST": {Europe, "EST"}, "FIN": {Europe, "FIN"},
	"FRA": {Europe, "FRA"}, "GEO": {Europe, "GEO"}, "GER": {Europe, "DEU"},
	"GBR": {Europe, "GBR"}, "GRE": {Europe, "GRC"}, "HUN": {Europe, "HUN"},
	"ISL": {Europe, "ISL"}, "IRL": {Europe, "IRL"}, "ISR": {Europe, "ISR"},
	"ITA": {Europe, "ITA"}, "KOS": {Europe, "XKX"}, "LAT": {Europe, "LVA"},
	"LIE": {Europe, "LIE"}, "LTU": {Europe, "LTU"}, "LUX": {Europe, "LUX"},
	"MLT": {Europe, "MLT"}, "MDA": {Europe, "MDA"}, "MON": {Europe, "MCO"},
	"MNE": {Europe, "MNE"}, "NED": {Europe, "NLD"}, "MKD": {Europe, "MKD"},
	"NOR": {Europe, "NOR"}, "POL": {Europe, "POL"}, "POR": {Europe, "PRT"},
	"ROU": {Europe, "ROU"}, "RUS": {Europe, "RUS"}, "SMR": {Europe, "SMR"},
	"SRB": {Europe, "SRB"}, "SVK": {Europe, "SVK"}, "SLO": {Europe, "SVN"},
	"ESP": {Europe, "ESP"}, "SWE": {Europe, "SWE"}, "SUI": {Europe, "CHE"},
	"TUR": {Europe, "TUR"}, "UKR": {Europe, "UKR"},

	// North America
	"ANT": {NorthAmerica, "ATG"}, "ARU": {NorthAmerica, "ABW"},
	"BAH": {NorthAmerica, "BHS"}, "BAR": {NorthAmerica, "BRB"},
	"BIZ": {NorthAmerica, "BLZ"}, "BER": {NorthAmerica, "BMU"},
	"IVB": {NorthAmerica, "VGB"}, "CAN": {NorthAmerica, "CAN"},
	"CAY": {NorthAmerica, "CYM"}, "CRC": {NorthAmerica, "CRI"},
	"CUB": {NorthAmerica, "CUB"}, "DMA": {NorthAmerica, "DMA"},
	"DOM": {NorthAmerica, "DOM"}, "ESA": {NorthAmerica, "SLV"},
	"GRN": {NorthAmerica, "GRD"}, "GUA": {NorthAmerica, "GTM"},
	"HAI": {NorthAmerica, "HTI"}, "HON": {NorthAmerica, "HND"},
	"JAM": {NorthAmerica, "JAM"}, "MEX": {NorthAmerica, "MEX"},
	"NCA": {NorthAmerica, "NIC"}, "PAN": {NorthAmerica, "PAN"},
	"PUR": {NorthAmerica, "PRI"}, "SKN": {NorthAmerica, "KNA"},
	"LCA": {NorthAmerica, "LCA"}, "VIN": {NorthAmerica, "VCT"},
	"TTO": {NorthAmerica, "TTO"}, "ISV": {NorthAmerica, "VIR"},
	"USA": {NorthAmerica, "USA"},

	// South America
	"ARG": {SouthAmerica, "ARG"}, "BOL": {SouthAmerica, "BOL"},
	"BRA": {SouthAmerica, "BRA"}, "CHI": {SouthAmerica, "CHL"},
	"COL": {SouthAmerica, "COL"}, "ECU": {SouthAmerica, "ECU"},
	"GUY": {SouthAmerica, "GUY"}, "PAR": {SouthAmerica, "PRY"},
	"PER": {SouthAmerica, "PER"}, "SUR": {SouthAmerica, "SUR"},
	"URU": {SouthAmerica, "URY"}, "VEN": {SouthAmerica, "VEN"},

	// Oceania
	"ASA": {Oceania, "ASM"}, "AUS": {Oceania, "AUS"}, "COK": {Oceania, "COK"},
	"FIJ": {Oceania, "FJI"}, "GUM": {Oceania, "GUM"}, "KIR": {Oceania, "KIR"},
	"MHL": {Oceania, "MHL"}, "FSM": {Oceania, "FSM"}, "NRU": {Oceania, "NRU"},
	"NZL": {Oceania, "NZL"}, "PLW": {Oceania, "PLW"}, "PNG": {Oceania, "PNG"},
	"SAM": {Oceania, "WSM"}, "SOL": {Oceania, "SLB"}, "TGA": {Oceania, "TON"},
	"TUV": {Oceania, "TUV"}, "VAN": {Oceania, "VUT"},

	// Historical codes still found in older datasets.
	"LIB": {Asia, "LBN"},
	"SIN": {Asia, "SGP"},
	"ROC": {Europe, Unknown}, // Russian Olympic Committee
	"OAR": {Europe, Unknown}, // Olympic Athletes from Russia
	"RPC": {Europe, Unknown}, // Russian Paralympic Committee
	"EUN": {Europe, Unknown}, // Unified Team 1992
	"COR": {Asia, Unknown},   // unified Korea team

	// Composite and neutral delegations.
	"AIN": {Multiple, Unknown}, // Individual Neutral Athletes
	"EOR": {Multiple, Unknown}, // Refugee Olympic Team
	"ROT": {Multiple, Unknown}, // Refugee Olympic Team, pre-2024 code
	"IOP": {Multiple, Unknown}, // Independent Olympic Participants
	"IOA": {Multiple, Unknown}, // Independent Olympic Athletes
	"IOC": {Multiple, Unknown},
	"ZZX": {Multiple, Unknown}, // mixed-NOC teams
}

// venues holds coordinates of Paris 2024 competition sites.
var venues = map[string]Coordinates{
	"Stade de France":             {48.9244, 2.3601},
	"Aquatics Centre":             {48.9279, 2.3619},
	"Paris La Defense Arena":      {48.8959, 2.2287},
	"Paris La Défense Arena":      {48.8959, 2.2287},
	"Eiffel Tower Stadium":        {48.8584, 2.2945},
	"Grand Palais":                {48.8662, 2.3124},
	"Invalides":                   {48.8566, 2.3122},
	"Champ de Mars Arena":         {48.8556, 2.2986},
	"Trocadéro":                   {48.8620, 2.2876},
	"Pont Alexandre III":          {48.8638, 2.3135},
	"Roland-Garros Stadium":       {48.8467, 2.2520},
	"Court Philippe Chatrier":     {48.8467, 2.2520},
	"Court Suzanne Lenglen":       {48.8462, 2.2508},
	"Bercy Arena":                 {48.8394, 2.3791},
	"Parc des Princes":            {48.8415, 2.2530},
	"Porte de La Chapelle Arena":  {48.8985, 2.3595},
	"North Paris Arena":           {48.9342, 2.3601},
	"South Paris Arena 1":         {48.8211, 2.3658},
	"South Paris Arena 4":         {48.8211, 2.3658},
	"South Paris Arena 6":         {48.8211, 2.3658},
	"Concorde":                    {48.8656, 2.3212},
	"La Concorde":                 {48.8656, 2.3212},
	"Château de Versailles":       {48.8049, 2.1204},
	"Marina de Marseille":         {43.2799, 5.3599},
	"Marseille Marina":            {43.2799, 5.3599},
	"Stade Vélodrome":             {43.2698, 5.3958},
	"Marseille Stadium":           {43.2698, 5.3958},
	"Stade de Lyon":               {45.7652, 4.9821},
	"Lyon Stadium":                {45.7652, 4.9821},
	"Stade Pierre-Mauroy":         {50.6119, 3.1304},
	"Pierre Mauroy Stadium":       {50.6119, 3.1304},
	"Stade de Bordeaux":           {44.8978, -0.5610},
	"Bordeaux Stadium":            {44.8978, -0.5610},
	"Stade de Nice":               {43.7053, 7.1926},
	"Nice Stadium":                {43.7053, 7.1926},
	"Stade Geoffroy-Guichard":     {45.4608, 4.3900},
	"Geoffroy-Guichard Stadium":   {45.4608, 4.3900},
	"Teahupo'o, Tahiti":           {-17.8667, -149.2833},
	"Teahupo'o":                   {-17.8667, -149.2833},
	"Tahiti":                      {-17.5334, -149.5668},
	"Vaires-sur-Marne Nautical Stadium": {48.8640, 2.6390},
	"Elancourt Hill":              {48.7726, 1.9563},
	"Le Golf National":           {48.7542, 2.0772},
	"Saint-Quentin-en-Yvelines Velodrome": {48.7878, 2.0347},
	"Saint-Quentin-en-Yvelines BMX Stadium": {48.7878, 2.0347},
	"Yves-du-Manoir Stadium":      {48.9287, 2.2479},
	"Chateauroux Shooting Centre": {46.8422, 1.6857},
	"Hôtel de Ville":              {48.8566, 2.3522},
}
