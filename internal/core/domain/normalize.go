package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Старые кодировки SIRUTA используют седиль (U+015F/U+0163) вместо
// принятой запятой снизу (U+0219/U+021B).
var cedillaReplacer = strings.NewReplacer(
	"ş", "ș", // ş → ș
	"ţ", "ț", // ţ → ț
	"Ş", "Ș", // Ş → Ș
	"Ţ", "Ț", // Ţ → Ț
)

// NormalizeCedillas rewrites legacy cedilla diacritics to the modern
// comma-below forms. Example: Argeş → Argeș
func NormalizeCedillas(s string) string {
	return cedillaReplacer.Replace(s)
}

// FoldDiacritics removes combining diacritical marks for accent-insensitive
// search. Example: Argeș → Arges, Târgu-Mureș → Targu-Mures
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
