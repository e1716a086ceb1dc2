package services

import (
	"fmt"

	"github.com/terratensor/siruta/internal/core/domain"
)

// HierarchyBuilder emits the fixed NUTS skeleton: the national root, the
// macroregions, the development regions and the counties. Local units come
// from the registry extract, never from here.
type HierarchyBuilder struct {
	// Кэши обратных ссылок, строятся один раз
	countyRegion map[string]string
	regionMacro  map[string]string
}

// NewHierarchyBuilder validates the embedded reference tables and
// precomputes the reverse lookups. An inconsistent table is a defect in the
// tables themselves, so any violation is a hard error.
func NewHierarchyBuilder() (*HierarchyBuilder, error) {
	b := &HierarchyBuilder{
		countyRegion: make(map[string]string, len(domain.Counties)),
		regionMacro:  make(map[string]string, len(domain.Regions)),
	}

	macros := make(map[string]bool, len(domain.Macroregions))
	for _, m := range domain.Macroregions {
		macros[m.Code] = true
	}

	declared := make(map[string]bool, len(domain.Counties))
	for _, c := range domain.Counties {
		declared[c.Code] = true
	}

	// Шаг 1: каждый регион ссылается на объявленный макрорегион,
	// каждый жудец входит ровно в один регион
	for _, r := range domain.Regions {
		if !macros[r.Parent] {
			return nil, fmt.Errorf("region %s references undeclared macroregion %s", r.Code, r.Parent)
		}
		b.regionMacro[r.Code] = r.Parent

		for _, county := range r.Counties {
			if !declared[county] {
				return nil, fmt.Errorf("region %s contains undeclared county %s", r.Code, county)
			}
			if prev, ok := b.countyRegion[county]; ok {
				return nil, fmt.Errorf("county %s listed in both %s and %s", county, prev, r.Code)
			}
			b.countyRegion[county] = r.Code
		}
	}

	// Шаг 2: каждый объявленный жудец должен входить в какой-то регион
	for _, c := range domain.Counties {
		if _, ok := b.countyRegion[c.Code]; !ok {
			return nil, fmt.Errorf("county %s missing from region containment", c.Code)
		}
	}

	// Шаг 3: карта кодов JUD должна вести только на объявленные жудецы
	for jud, county := range domain.JudToCounty {
		if !declared[county] {
			return nil, fmt.Errorf("jurisdiction %d maps to undeclared county %s", jud, county)
		}
	}

	return b, nil
}

// RegionForCounty returns the NUTS2 region containing the county
func (b *HierarchyBuilder) RegionForCounty(countyCode string) (string, bool) {
	region, ok := b.countyRegion[countyCode]
	return region, ok
}

// MacroForRegion returns the NUTS1 macroregion containing the region
func (b *HierarchyBuilder) MacroForRegion(regionCode string) (string, bool) {
	macro, ok := b.regionMacro[regionCode]
	return macro, ok
}

// Build returns the static territories in containment order
func (b *HierarchyBuilder) Build() []*domain.Territory {
	territories := make([]*domain.Territory, 0,
		1+len(domain.Macroregions)+len(domain.Regions)+len(domain.Counties))

	// Национальный уровень
	territories = append(territories, &domain.Territory{
		Code:   "RO",
		Level:  domain.LevelNational,
		Name:   "TOTAL",
		Source: domain.SourceStatic,
	})

	// Макрорегионы (NUTS1)
	for _, m := range domain.Macroregions {
		territories = append(territories, &domain.Territory{
			Code:       m.Code,
			Level:      domain.LevelNUTS1,
			ParentCode: m.Parent,
			Name:       m.Name,
			Source:     domain.SourceStatic,
		})
	}

	// Регионы развития (NUTS2)
	for _, r := range domain.Regions {
		territories = append(territories, &domain.Territory{
			Code:       r.Code,
			Level:      domain.LevelNUTS2,
			ParentCode: r.Parent,
			Name:       r.Name,
			Source:     domain.SourceStatic,
		})
	}

	// Жудецы (NUTS3)
	for _, c := range domain.Counties {
		territories = append(territories, &domain.Territory{
			Code:       c.Code,
			Level:      domain.LevelNUTS3,
			ParentCode: b.countyRegion[c.Code],
			Name:       c.Name,
			TypeHint:   "40", // тип "жудец" в номенклатуре SIRUTA
			Source:     domain.SourceStatic,
		})
	}

	return territories
}
