package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terratensor/siruta/internal/adapters/exporters"
	"github.com/terratensor/siruta/internal/core/domain"
	"github.com/terratensor/siruta/internal/core/ports"
)

func TestSeedReaderRead(t *testing.T) {
	content := strings.Join([]string{
		"id,code,registry_code,level,parent_code,name,nuts_hint,type_hint,urban_flag,source",
		"1,RO,,NATIONAL,,TOTAL,,,,STATIC",
		"2,RO1,,NUTS1,RO,MACROREGIUNEA UNU,,,,STATIC",
		"56,1017,1017,LAU,AB,MUNICIPIUL ALBA IULIA,RO121,1,1,REGISTRY",
	}, "\n") + "\n"

	path := writeTempFile(t, "seed.csv", content)
	territories, err := NewSeedReader(testConfig()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(territories) != 3 {
		t.Fatalf("Read() returned %d territories; want 3", len(territories))
	}

	root := territories[0]
	if root.ID != 1 || root.Code != "RO" || root.Level != domain.LevelNational {
		t.Errorf("root = %+v; want id 1, code RO, level NATIONAL", root)
	}
	if root.Name != "TOTAL" || root.Source != domain.SourceStatic {
		t.Errorf("root = %+v; want name TOTAL, source STATIC", root)
	}

	unit := territories[2]
	if unit.ID != 56 || unit.RegistryCode != "1017" || unit.ParentCode != "AB" {
		t.Errorf("unit = %+v; want id 56, registry 1017, parent AB", unit)
	}
	if unit.UrbanFlag != "1" || unit.NUTSHint != "RO121" {
		t.Errorf("unit = %+v; want urban 1, nuts RO121", unit)
	}
}

func TestSeedReaderRoundTrip(t *testing.T) {
	// Что записал CSV-экспортёр, то ридер должен прочитать без потерь
	territories := []*domain.Territory{
		{ID: 1, Code: "RO", Level: domain.LevelNational, Name: "TOTAL", Source: domain.SourceStatic},
		{ID: 27, Code: "CJ", Level: domain.LevelNUTS3, ParentCode: "RO11", Name: "Cluj", TypeHint: "40", Source: domain.SourceStatic},
		{ID: 57, Code: "54975", RegistryCode: "54975", Level: domain.LevelLAU, ParentCode: "CJ",
			Name: "MUNICIPIUL CLUJ-NAPOCA", NUTSHint: "RO113", TypeHint: "1", UrbanFlag: "1", Source: domain.SourceRegistry},
	}

	path := filepath.Join(t.TempDir(), "roundtrip.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	writer, err := exporters.NewCSVWriter(file, ports.ExportOptions{
		Format:        ports.FormatCSV,
		IncludeHeader: true,
		Delimiter:     ',',
		Columns:       domain.SeedColumns,
	})
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}
	if err := writer.WriteHeader(domain.SeedColumns); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	for _, territory := range territories {
		if err := writer.WriteRecord(territory.Record()); err != nil {
			t.Fatalf("WriteRecord() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	file.Close()

	got, err := NewSeedReader(testConfig()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != len(territories) {
		t.Fatalf("Read() returned %d territories; want %d", len(got), len(territories))
	}
	for i, want := range territories {
		if *got[i] != *want {
			t.Errorf("territory %d = %+v; want %+v", i, got[i], want)
		}
	}
}

func TestSeedReaderBadLevel(t *testing.T) {
	content := strings.Join([]string{
		"id,code,registry_code,level,parent_code,name,nuts_hint,type_hint,urban_flag,source",
		"1,RO,,COUNTRY,,TOTAL,,,,STATIC",
	}, "\n") + "\n"

	path := writeTempFile(t, "seed_badlevel.csv", content)
	_, err := NewSeedReader(testConfig()).Read(context.Background(), path)
	if err == nil {
		t.Fatal("Read() with unknown level should fail")
	}
	if !strings.Contains(err.Error(), "COUNTRY") {
		t.Errorf("error = %v; want mention of bad level", err)
	}
}

func TestSeedReaderBadID(t *testing.T) {
	content := strings.Join([]string{
		"id,code,registry_code,level,parent_code,name,nuts_hint,type_hint,urban_flag,source",
		"x,RO,,NATIONAL,,TOTAL,,,,STATIC",
	}, "\n") + "\n"

	path := writeTempFile(t, "seed_badid.csv", content)
	_, err := NewSeedReader(testConfig()).Read(context.Background(), path)
	if err == nil {
		t.Fatal("Read() with invalid id should fail")
	}
}

func TestSeedReaderMissingColumn(t *testing.T) {
	// Неполный заголовок: нет source
	content := "id,code,registry_code,level,parent_code,name,nuts_hint,type_hint,urban_flag\n"

	path := writeTempFile(t, "seed_nocol.csv", content)
	_, err := NewSeedReader(testConfig()).Read(context.Background(), path)
	if err == nil {
		t.Fatal("Read() with incomplete header should fail")
	}
	if !strings.Contains(err.Error(), "source") {
		t.Errorf("error = %v; want mention of missing source column", err)
	}
}
