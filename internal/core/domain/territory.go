package domain

import "fmt"

type Level string

const (
	LevelNational Level = "NATIONAL" // country total row
	LevelNUTS1    Level = "NUTS1"    // macroregions RO1-RO4
	LevelNUTS2    Level = "NUTS2"    // development regions RO11-RO42
	LevelNUTS3    Level = "NUTS3"    // counties
	LevelLAU      Level = "LAU"      // local administrative units
)

type Source string

const (
	SourceStatic         Source = "STATIC"          // fixed NUTS skeleton
	SourceRegistry       Source = "REGISTRY"        // official SIRUTA extract
	SourceManualOverride Source = "MANUAL_OVERRIDE" // INS-only units absent from the extract
)

// Depth returns the containment depth of the level, national root being 0.
// Unknown levels sort last.
func (l Level) Depth() int {
	switch l {
	case LevelNational:
		return 0
	case LevelNUTS1:
		return 1
	case LevelNUTS2:
		return 2
	case LevelNUTS3:
		return 3
	case LevelLAU:
		return 4
	default:
		return 99
	}
}

// ParseLevel validates a level read from a seed file
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelNational, LevelNUTS1, LevelNUTS2, LevelNUTS3, LevelLAU:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown level %q", s)
	}
}

type Territory struct {
	ID           int64
	Code         string // NUTS-style code, or the SIRUTA code for LAU rows
	RegistryCode string // SIRUTA code, set only on LAU rows
	Level        Level
	ParentCode   string // empty only for the national root
	Name         string
	NUTSHint     string
	TypeHint     string
	UrbanFlag    string // "1"/"0" on LAU rows, empty above
	Source       Source

	// Иерархия (заполняется перед индексацией, в seed не пишется)
	HierarchyPath string
}

// SeedColumns is the column order of the seed file.
var SeedColumns = []string{
	"id",
	"code",
	"registry_code",
	"level",
	"parent_code",
	"name",
	"nuts_hint",
	"type_hint",
	"urban_flag",
	"source",
}

func (t *Territory) IsLAU() bool {
	return t.Level == LevelLAU
}

func (t *Territory) IsRoot() bool {
	return t.ParentCode == ""
}

// Record converts the territory into a seed record keyed by column name
func (t *Territory) Record() map[string]interface{} {
	return map[string]interface{}{
		"id":            t.ID,
		"code":          t.Code,
		"registry_code": t.RegistryCode,
		"level":         string(t.Level),
		"parent_code":   t.ParentCode,
		"name":          t.Name,
		"nuts_hint":     t.NUTSHint,
		"type_hint":     t.TypeHint,
		"urban_flag":    t.UrbanFlag,
		"source":        string(t.Source),
	}
}

// String returns a string representation of the territory
func (t *Territory) String() string {
	return fmt.Sprintf("%d: %s %s (%s)", t.ID, t.Code, t.Name, t.Level)
}
