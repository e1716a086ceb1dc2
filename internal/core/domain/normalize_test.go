package domain

import (
	"testing"
)

func TestNormalizeCedillas(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase s cedilla", "Argeş", "Argeș"},
		{"Lowercase t cedilla", "Constanţa", "Constanța"},
		{"Uppercase s cedilla", "ŞTEFĂNEŞTI", "ȘTEFĂNEȘTI"},
		{"Uppercase t cedilla", "ŢARA", "ȚARA"},
		{"Both in one word", "Botoşanţi", "Botoșanți"},
		{"Already comma-below unchanged", "Argeș", "Argeș"},
		{"Plain ASCII unchanged", "Cluj-Napoca", "Cluj-Napoca"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCedillas(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCedillas(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldDiacritics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Comma-below s", "Argeș", "Arges"},
		{"Cedilla s", "Argeş", "Arges"},
		{"Breve a", "Bacău", "Bacau"},
		{"Circumflex a", "Târgu-Mureș", "Targu-Mures"},
		{"Circumflex i", "Întorsura Buzăului", "Intorsura Buzaului"},
		{"Uppercase", "TIMIŞOARA", "TIMISOARA"},
		{"Plain ASCII unchanged", "Bucuresti", "Bucuresti"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoldDiacritics(tt.input)
			if got != tt.want {
				t.Errorf("FoldDiacritics(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldDiacriticsCountyNames(t *testing.T) {
	// Все справочные имена жудецов должны сворачиваться в чистый ASCII
	for _, c := range Counties {
		folded := FoldDiacritics(c.Name)
		for _, r := range folded {
			if r > 127 {
				t.Errorf("FoldDiacritics(%q) = %q still carries non-ASCII %q", c.Name, folded, r)
			}
		}
	}
}
