package domain

// Фиксированный NUTS-каркас Румынии и справочные таблицы SIRUTA.
// Source: Institutul Național de Statistică (INS), nomenclatorul SIRUTA.

// JudToCounty maps the numeric SIRUTA jurisdiction code (JUD column) to the
// two-letter county code. Codes outside this map (diaspora, reserved ranges)
// are not territories.
var JudToCounty = map[int]string{
	1: "AB", 2: "AR", 3: "AG", 4: "BC", 5: "BH", 6: "BN", 7: "BT", 8: "BV",
	9: "BR", 10: "BZ", 11: "CS", 12: "CJ", 13: "CT", 14: "CV", 15: "DB",
	16: "DJ", 17: "GL", 18: "GJ", 19: "HR", 20: "HD", 21: "IL", 22: "IS",
	23: "IF", 24: "MM", 25: "MH", 26: "MS", 27: "NT", 28: "OT", 29: "PH",
	30: "SM", 31: "SJ", 32: "SB", 33: "SV", 34: "TR", 35: "TM", 36: "TL",
	37: "VS", 38: "VL", 39: "VN", 40: "B", 51: "CL", 52: "GR",
}

type Macroregion struct {
	Code   string
	Name   string
	Parent string
}

var Macroregions = []Macroregion{
	{Code: "RO1", Name: "MACROREGIUNEA UNU", Parent: "RO"},
	{Code: "RO2", Name: "MACROREGIUNEA DOI", Parent: "RO"},
	{Code: "RO3", Name: "MACROREGIUNEA TREI", Parent: "RO"},
	{Code: "RO4", Name: "MACROREGIUNEA PATRU", Parent: "RO"},
}

type Region struct {
	Code     string
	Name     string
	Parent   string
	Counties []string // county codes contained in the region
}

var Regions = []Region{
	{Code: "RO11", Name: "Nord-Vest", Parent: "RO1", Counties: []string{"BH", "BN", "CJ", "MM", "SJ", "SM"}},
	{Code: "RO12", Name: "Centru", Parent: "RO1", Counties: []string{"AB", "BV", "CV", "HR", "MS", "SB"}},
	{Code: "RO21", Name: "Nord-Est", Parent: "RO2", Counties: []string{"BC", "BT", "IS", "NT", "SV", "VS"}},
	{Code: "RO22", Name: "Sud-Est", Parent: "RO2", Counties: []string{"BR", "BZ", "CT", "GL", "TL", "VN"}},
	{Code: "RO31", Name: "Sud - Muntenia", Parent: "RO3", Counties: []string{"AG", "CL", "DB", "GR", "IL", "PH", "TR"}},
	{Code: "RO32", Name: "București - Ilfov", Parent: "RO3", Counties: []string{"B", "IF"}},
	{Code: "RO41", Name: "Sud-Vest Oltenia", Parent: "RO4", Counties: []string{"DJ", "GJ", "MH", "OT", "VL"}},
	{Code: "RO42", Name: "Vest", Parent: "RO4", Counties: []string{"AR", "CS", "HD", "TM"}},
}

type County struct {
	Code string
	Name string
}

var Counties = []County{
	{Code: "AB", Name: "Alba"},
	{Code: "AR", Name: "Arad"},
	{Code: "AG", Name: "Argeș"},
	{Code: "BC", Name: "Bacău"},
	{Code: "BH", Name: "Bihor"},
	{Code: "BN", Name: "Bistrița-Năsăud"},
	{Code: "BT", Name: "Botoșani"},
	{Code: "BV", Name: "Brașov"},
	{Code: "BR", Name: "Brăila"},
	{Code: "B", Name: "București"},
	{Code: "BZ", Name: "Buzău"},
	{Code: "CS", Name: "Caraș-Severin"},
	{Code: "CL", Name: "Călărași"},
	{Code: "CJ", Name: "Cluj"},
	{Code: "CT", Name: "Constanța"},
	{Code: "CV", Name: "Covasna"},
	{Code: "DB", Name: "Dâmbovița"},
	{Code: "DJ", Name: "Dolj"},
	{Code: "GL", Name: "Galați"},
	{Code: "GR", Name: "Giurgiu"},
	{Code: "GJ", Name: "Gorj"},
	{Code: "HR", Name: "Harghita"},
	{Code: "HD", Name: "Hunedoara"},
	{Code: "IL", Name: "Ialomița"},
	{Code: "IS", Name: "Iași"},
	{Code: "IF", Name: "Ilfov"},
	{Code: "MM", Name: "Maramureș"},
	{Code: "MH", Name: "Mehedinți"},
	{Code: "MS", Name: "Mureș"},
	{Code: "NT", Name: "Neamț"},
	{Code: "OT", Name: "Olt"},
	{Code: "PH", Name: "Prahova"},
	{Code: "SM", Name: "Satu Mare"},
	{Code: "SJ", Name: "Sălaj"},
	{Code: "SB", Name: "Sibiu"},
	{Code: "SV", Name: "Suceava"},
	{Code: "TR", Name: "Teleorman"},
	{Code: "TM", Name: "Timiș"},
	{Code: "TL", Name: "Tulcea"},
	{Code: "VS", Name: "Vaslui"},
	{Code: "VL", Name: "Vâlcea"},
	{Code: "VN", Name: "Vrancea"},
}

type ManualUnit struct {
	RegistryCode string
	Name         string
	County       string
}

// ManualUnits lists villages that INS treats as local units even though the
// official extract does not carry them at NIV=2. The order is fixed so a
// first run mints their identifiers deterministically.
var ManualUnits = []ManualUnit{
	{RegistryCode: "70049", Name: "CERNELE", County: "DJ"}, // sat în Dolj
	{RegistryCode: "167589", Name: "GORANU", County: "VL"}, // sat în Vâlcea
}
