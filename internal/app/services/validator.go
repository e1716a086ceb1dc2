package services

import (
	"fmt"
	"log"
	"sort"

	"github.com/terratensor/siruta/internal/core/domain"
)

// ValidationReport aggregates advisory findings and operator statistics.
// Findings never block the seed write: downstream loaders treat the seed as
// best-effort reference data and the operator reads the log.
type ValidationReport struct {
	Findings    []string
	LevelCounts map[domain.Level]int
	CountyUnits map[string]int // LAU rows per county code
}

func (r *ValidationReport) OK() bool {
	return len(r.Findings) == 0
}

// Validate checks the assembled territories for duplicate keys, dangling
// parents and counties without local units
func Validate(territories []*domain.Territory) *ValidationReport {
	report := &ValidationReport{
		LevelCounts: make(map[domain.Level]int),
		CountyUnits: make(map[string]int),
	}

	codes := make(map[string]bool, len(territories))
	registryCodes := make(map[string]bool, len(territories))
	allCodes := make(map[string]bool, len(territories))
	parentCodes := make(map[string]bool)

	for _, t := range territories {
		allCodes[t.Code] = true
		if t.ParentCode != "" {
			parentCodes[t.ParentCode] = true
		}
	}

	// Дубликаты бизнес-кодов и кодов реестра
	for _, t := range territories {
		if codes[t.Code] {
			report.Findings = append(report.Findings, fmt.Sprintf("Duplicate code: %s", t.Code))
		}
		codes[t.Code] = true

		if t.RegistryCode != "" {
			if registryCodes[t.RegistryCode] {
				report.Findings = append(report.Findings, fmt.Sprintf("Duplicate registry code: %s", t.RegistryCode))
			}
			registryCodes[t.RegistryCode] = true
		}

		report.LevelCounts[t.Level]++
		if t.IsLAU() {
			report.CountyUnits[t.ParentCode]++
		}
	}

	// Все родительские коды должны разрешаться
	unresolved := make([]string, 0)
	for parent := range parentCodes {
		if !allCodes[parent] {
			unresolved = append(unresolved, parent)
		}
	}
	sort.Strings(unresolved)
	for _, parent := range unresolved {
		report.Findings = append(report.Findings, fmt.Sprintf("Unresolved parent code: %s", parent))
	}

	// Каждый жудец должен иметь хотя бы одну местную единицу
	for _, county := range domain.Counties {
		if report.CountyUnits[county.Code] == 0 {
			report.Findings = append(report.Findings, fmt.Sprintf("County %s has no local units", county.Code))
		}
	}

	return report
}

// Log prints the report the way the operator reads it: statistics first,
// then the findings capped at ten lines
func (r *ValidationReport) Log() {
	log.Println("Territory counts by level:")
	for _, level := range []domain.Level{domain.LevelNational, domain.LevelNUTS1, domain.LevelNUTS2, domain.LevelNUTS3, domain.LevelLAU} {
		log.Printf("  %s: %d", level, r.LevelCounts[level])
	}

	counties := make([]string, 0, len(r.CountyUnits))
	for code := range r.CountyUnits {
		counties = append(counties, code)
	}
	sort.Strings(counties)

	log.Println("Local units per county (sample):")
	for i, code := range counties {
		if i >= 5 {
			log.Println("  ...")
			break
		}
		log.Printf("  %s: %d", code, r.CountyUnits[code])
	}

	if r.OK() {
		log.Println("Validation passed")
		return
	}

	log.Printf("%d validation issues:", len(r.Findings))
	for i, finding := range r.Findings {
		if i >= 10 {
			log.Printf("  ... and %d more", len(r.Findings)-10)
			break
		}
		log.Printf("  - %s", finding)
	}
}
